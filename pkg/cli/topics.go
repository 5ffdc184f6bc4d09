package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/recall/pkg/model"
)

func restoreCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:      "restore",
		Usage:     "Reset a topic's memory strength to 100% (\"I remember\")",
		ArgsUsage: "<topic-id>",
		Flags:     globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			id := c.Args().First()
			if id == "" {
				return goerr.New("topic ID is required")
			}

			uc, _, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}

			if err := uc.Restore(ctx, model.TopicID(id)); err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Memory restored: %s\n", id)
			return nil
		},
	}
}

func deleteCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:      "delete",
		Usage:     "Remove a topic from the learning history",
		ArgsUsage: "<topic-id>",
		Flags:     globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			id := c.Args().First()
			if id == "" {
				return goerr.New("topic ID is required")
			}

			uc, _, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}

			if err := uc.Delete(ctx, model.TopicID(id)); err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Topic removed: %s\n", id)
			return nil
		},
	}
}

func clearCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "clear",
		Usage: "Remove all tracked topics",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			uc, _, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}

			if err := uc.Clear(ctx); err != nil {
				return err
			}

			fmt.Fprintln(c.Root().Writer, "All learning data cleared")
			return nil
		},
	}
}
