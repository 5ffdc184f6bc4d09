package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

// Version is injected at build time.
var Version = "dev"

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	cmd := &cli.Command{
		Name:  "recall",
		Usage: "Personal learning tracker with memory decay modeling",
		Commands: []*cli.Command{
			ingestCommand(),
			listCommand(),
			restoreCommand(),
			deleteCommand(),
			clearCommand(),
			remindCommand(),
			serveCommand(),
			mcpCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
