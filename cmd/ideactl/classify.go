package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"idea-feed/feeder"
	"idea-feed/models"
	"idea-feed/services"
)

func newClassifyCmd() *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "classify <title> [body]",
		Short: "Classify a single post and print the result as JSON",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePlatform(platform)
			if err != nil {
				return err
			}
			post := feeder.Post{Platform: p, Title: args[0]}
			if len(args) > 1 {
				post.Body = args[1]
			}

			cfg := configFromContext(cmd.Context())
			result := services.NewClassifierSet(cfg.Classifier.Preset).Classify(post)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().StringVarP(&platform, "platform", "p", "", "reddit, twitter or rss")
	return cmd
}

func parsePlatform(v string) (models.Platform, error) {
	switch p := models.Platform(strings.ToLower(strings.TrimSpace(v))); p {
	case "", models.PlatformReddit, models.PlatformTwitter, models.PlatformRSS:
		return p, nil
	default:
		return "", fmt.Errorf("unknown platform: %s", v)
	}
}
