package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/recall/pkg/model"
)

func ingestCommand() *cli.Command {
	var (
		cfg       config
		inputPath string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Path to JSON file containing the captured session",
			Sources:     cli.EnvVars("RECALL_INPUT"),
			Destination: &inputPath,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "ingest",
		Usage: "Process a captured learning session from JSON input",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			if inputPath == "" {
				return goerr.New("input file path is required")
			}

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return goerr.Wrap(err, "failed to read input file", goerr.V("path", inputPath))
			}

			var session model.Session
			if err := json.Unmarshal(data, &session); err != nil {
				return goerr.Wrap(err, "failed to parse session JSON")
			}

			if !session.Trackable() {
				return goerr.New("session below tracking thresholds",
					goerr.V("timeSpent", session.TimeSpent),
					goerr.V("contentLength", len(session.Content)))
			}

			uc, _, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}

			if err := uc.Ingest(ctx, &session); err != nil {
				return goerr.Wrap(err, "failed to ingest session")
			}

			fmt.Fprintln(c.Root().Writer, "Session processed")
			return nil
		},
	}
}
