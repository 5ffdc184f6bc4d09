package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/recall/pkg/model"
)

func listCommand() *cli.Command {
	var (
		cfg    config
		filter string
		asJSON bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "filter",
			Aliases:     []string{"f"},
			Usage:       "Memory band filter: all, strong, review, forgotten",
			Value:       "all",
			Destination: &filter,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Output as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "list",
		Usage: "Show tracked topics with current memory scores",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			band, ok := parseBand(filter)
			if !ok {
				return fmt.Errorf("unknown filter: %s", filter)
			}

			uc, _, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}

			topics, stats, err := uc.List(ctx, band)
			if err != nil {
				return err
			}

			w := c.Root().Writer

			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"topics": topics, "stats": stats})
			}

			fmt.Fprintf(w, "Topics: %d  Needs review: %d  Average memory: %.0f%%\n\n",
				stats.Total, stats.NeedsReview, stats.AvgScore)

			tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
			fmt.Fprintln(tw, "SCORE\tTOPIC\tDOMAIN\tREVIEWS\tTIME\tID")
			for _, t := range topics {
				fmt.Fprintf(tw, "%3.0f%%\t%s\t%s\t%d\t%dm\t%s\n",
					t.MemoryScore, t.MainTopic, t.Domain, t.ReviewCnt, t.TimeSpent/60, t.ID)
			}
			return tw.Flush()
		},
	}
}

func parseBand(filter string) (model.Band, bool) {
	switch filter {
	case "", "all":
		return "", true
	case "strong":
		return model.BandStrong, true
	case "review":
		return model.BandReview, true
	case "forgotten":
		return model.BandForgotten, true
	default:
		return "", false
	}
}
