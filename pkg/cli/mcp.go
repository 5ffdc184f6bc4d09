package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/recall/pkg/mcp"
)

func mcpCommand() *cli.Command {
	var cfg config

	flags := globalFlags(&cfg)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the learning tracker as MCP tools over stdio",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			uc, _, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}

			return mcp.New(uc, Version).Run(ctx)
		},
	}
}
