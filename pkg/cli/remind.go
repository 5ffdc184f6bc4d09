package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/recall/pkg/adapter"
	"github.com/m-mizutani/recall/pkg/usecase/reminder"
)

func remindCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "remind",
		Usage: "Run a single reminder scan (for external schedulers)",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			_, topicStore, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}

			scanner := reminder.New(topicStore, adapter.LogNotifier{})
			return scanner.Scan(ctx)
		},
	}
}
