package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"idea-feed/models"
	"idea-feed/repositories"
	"idea-feed/services"
)

const titleWidth = 60

func newScrapeCmd(d deps) *cobra.Command {
	var (
		platforms []string
		query     services.FeedQuery
		sinkName  string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Collect idea posts from the configured sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			if sinkName != "" {
				cfg.Aggregate.Sink = sinkName
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			req := services.CollectRequest{Query: &query}
			for _, v := range platforms {
				p, err := parsePlatform(v)
				if err != nil {
					return err
				}
				if p != "" {
					req.Platforms = append(req.Platforms, p)
				}
			}

			var opts []services.CollectorOption
			sink, closeSink, err := d.sink(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize sink: %w", err)
			}
			defer closeSink()
			if sink != nil {
				opts = append(opts, services.WithSink(sink))
			}

			collector := services.NewCollector(d.sources(cfg), services.NewClassifierSet(cfg.Classifier.Preset), opts...)
			res, collectErr := collector.Collect(cmd.Context(), req)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			} else {
				renderIdeas(out, res.Ideas)
				renderSummary(out, res)
			}
			return collectErr
		},
	}

	cmd.Flags().StringSliceVarP(&platforms, "platform", "p", nil, "sources to run (reddit, twitter, rss); all when empty")
	cmd.Flags().StringVar(&query.Category, "category", services.FilterAll, "category filter")
	cmd.Flags().StringVarP(&query.Search, "search", "s", "", "case-insensitive search over title, description and tags")
	cmd.Flags().StringVar(&query.Sort, "sort", repositories.SortTrending, "trending, newest or popular")
	cmd.Flags().StringVar(&sinkName, "sink", "none", "where collected ideas are written: none, mongo or kafka")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the collect result as JSON")
	return cmd
}

func renderIdeas(w io.Writer, ideas []models.Idea) {
	if len(ideas) == 0 {
		fmt.Fprintln(w, "No ideas found.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Platform", "Category", "Title", "Tags", "Popularity"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, idea := range ideas {
		table.Append([]string{
			idea.ID,
			string(idea.Platform),
			string(idea.Category),
			truncate(idea.Title, titleWidth),
			fmt.Sprint(idea.Tags),
			strconv.Itoa(idea.Score()),
		})
	}
	table.Render()
}

func renderSummary(w io.Writer, res services.CollectResult) {
	platforms := make([]string, 0, len(res.Status))
	for p := range res.Status {
		platforms = append(platforms, string(p))
	}
	sort.Strings(platforms)

	for _, p := range platforms {
		line := fmt.Sprintf("%s: %s", p, res.Status[models.Platform(p)])
		if msg, ok := res.Errors[models.Platform(p)]; ok {
			line += " (" + msg + ")"
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "%d ideas, %d duplicates dropped\n", len(res.Ideas), res.Duplicates)
	if res.Sink != nil {
		fmt.Fprintf(w, "sink: %d inserted, %d updated, %d published, %d failed\n",
			res.Sink.Inserted, res.Sink.Updated, res.Sink.Published, res.Sink.Failed)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
