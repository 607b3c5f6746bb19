package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"idea-feed/config"
	"idea-feed/internal/logger"
	"idea-feed/services"
)

// deps 는 테스트에서 네트워크 소스와 저장소를 교체하기 위한 주입점이다.
type deps struct {
	sources func(cfg config.AppConfig) []services.Source
	sink    func(ctx context.Context, cfg config.AppConfig) (services.Sink, func(), error)
}

func defaultDeps() deps {
	return deps{
		sources: services.SourcesFromConfig,
		sink: func(ctx context.Context, cfg config.AppConfig) (services.Sink, func(), error) {
			return services.NewSinkFromConfig(ctx, cfg, "ideactl")
		},
	}
}

type contextKey string

const configKey contextKey = "config"

func newRootCmd(d deps) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "ideactl",
		Short:         "Classify and collect idea posts from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				cfg = loaded
			}
			config.SetConfig(cfg)
			logger.InitFromEnv("LOG_LEVEL", "warn")

			cmd.SetContext(context.WithValue(cmd.Context(), configKey, cfg))
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (defaults are used when empty)")

	root.AddCommand(newClassifyCmd())
	root.AddCommand(newScrapeCmd(d))
	return root
}

func configFromContext(ctx context.Context) config.AppConfig {
	if cfg, ok := ctx.Value(configKey).(config.AppConfig); ok {
		return cfg
	}
	return config.Default()
}
