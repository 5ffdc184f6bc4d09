package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/recall/pkg/adapter"
	"github.com/m-mizutani/recall/pkg/server"
	"github.com/m-mizutani/recall/pkg/usecase/reminder"
	"github.com/m-mizutani/recall/pkg/utils/logging"
)

func serveCommand() *cli.Command {
	var (
		cfg        config
		addr       string
		configPath string
		noRemind   bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Listen address",
			Value:       ":8080",
			Sources:     cli.EnvVars("RECALL_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to YAML config file (flags take precedence)",
			Sources:     cli.EnvVars("RECALL_CONFIG"),
			Destination: &configPath,
		},
		&cli.BoolFlag{
			Name:        "no-remind",
			Usage:       "Disable the hourly reminder scan",
			Destination: &noRemind,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "serve",
		Usage: "Run the dashboard HTTP API with the hourly reminder scheduler",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if configPath != "" {
				if err := cfg.applyFile(configPath); err != nil {
					return err
				}
			}
			ctx = cfg.setupLogger(ctx)
			logger := logging.From(ctx)

			uc, topicStore, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}

			if !noRemind {
				scanner := reminder.New(topicStore, adapter.LogNotifier{})
				scheduler, err := reminder.NewScheduler(ctx, scanner)
				if err != nil {
					return err
				}
				scheduler.Start()
				defer scheduler.Stop()
				logger.Info("reminder scheduler started")
			}

			srv := &http.Server{
				Addr:    addr,
				Handler: server.New(uc),
			}

			go func() {
				<-ctx.Done()
				_ = srv.Close()
			}()

			logger.Info("serving dashboard API", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return goerr.Wrap(err, "http server failed")
			}
			return nil
		},
	}
}
