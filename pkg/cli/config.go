package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/m-mizutani/recall/pkg/adapter"
	"github.com/m-mizutani/recall/pkg/repository"
	"github.com/m-mizutani/recall/pkg/store"
	"github.com/m-mizutani/recall/pkg/usecase/topic"
	"github.com/m-mizutani/recall/pkg/utils/logging"
)

// config holds configuration values
type config struct {
	// Repository
	Local    bool   `yaml:"local"`
	Project  string `yaml:"project"`
	Database string `yaml:"database"`

	// Adapters
	GeminiAPIKey  string `yaml:"gemini_api_key"`
	GeminiModel   string `yaml:"gemini_model"`
	ArchiveBucket string `yaml:"archive_bucket"`

	LogLevel string `yaml:"log_level"`
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "local",
			Usage:       "Use the in-memory repository instead of Firestore",
			Destination: &cfg.Local,
		},
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Google Cloud project ID",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_PROJECT"),
			Destination: &cfg.Project,
		},
		&cli.StringFlag{
			Name:        "database",
			Aliases:     []string{"d"},
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Sources:     cli.EnvVars("FIRESTORE_DATABASE_ID"),
			Destination: &cfg.Database,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("RECALL_LOG_LEVEL"),
			Destination: &cfg.LogLevel,
		},
	}
}

// llmFlags returns flags for LLM-related configuration with destination config
func llmFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-api-key",
			Usage:       "Gemini API key; without it classification runs on local heuristics",
			Sources:     cli.EnvVars("GEMINI_API_KEY"),
			Destination: &cfg.GeminiAPIKey,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini model name",
			Sources:     cli.EnvVars("GEMINI_MODEL"),
			Destination: &cfg.GeminiModel,
		},
		&cli.StringFlag{
			Name:        "archive-bucket",
			Usage:       "Cloud Storage bucket for raw session archives (optional)",
			Sources:     cli.EnvVars("RECALL_ARCHIVE_BUCKET"),
			Destination: &cfg.ArchiveBucket,
		},
	}
}

// applyFile fills unset config fields from a YAML file. Flag and
// environment values take precedence over the file.
func (cfg *config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var fileCfg config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}

	if !cfg.Local {
		cfg.Local = fileCfg.Local
	}
	if cfg.Project == "" {
		cfg.Project = fileCfg.Project
	}
	if cfg.Database == "" || cfg.Database == "(default)" {
		if fileCfg.Database != "" {
			cfg.Database = fileCfg.Database
		}
	}
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = fileCfg.GeminiAPIKey
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = fileCfg.GeminiModel
	}
	if cfg.ArchiveBucket == "" {
		cfg.ArchiveBucket = fileCfg.ArchiveBucket
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}

	return nil
}

// setupLogger installs the configured logger as default and on the context
func (cfg *config) setupLogger(ctx context.Context) context.Context {
	logger := logging.New(cfg.LogLevel, os.Stderr)
	logging.SetDefault(logger)
	return logging.With(ctx, logger)
}

// newRepository creates a repository instance
func (cfg *config) newRepository(ctx context.Context) (repository.Repository, error) {
	if cfg.Local {
		return repository.NewMemory(), nil
	}

	if cfg.Project == "" {
		return nil, goerr.New("project is required (or use --local)")
	}
	if cfg.Database == "" {
		return nil, goerr.New("database is required")
	}

	repo, err := repository.NewFirestore(ctx, cfg.Project, cfg.Database)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create repository")
	}
	return repo, nil
}

// newUseCase wires the topic use case with its configured collaborators
func (cfg *config) newUseCase(ctx context.Context) (*topic.UseCase, *store.Store, error) {
	repo, err := cfg.newRepository(ctx)
	if err != nil {
		return nil, nil, err
	}

	topicStore := store.New(repo)

	opts := []topic.Option{}

	if cfg.GeminiAPIKey != "" {
		geminiOpts := []adapter.GeminiOption{}
		if cfg.GeminiModel != "" {
			geminiOpts = append(geminiOpts, adapter.WithModel(cfg.GeminiModel))
		}
		gemini, err := adapter.NewGemini(ctx, cfg.GeminiAPIKey, geminiOpts...)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to create gemini adapter")
		}
		opts = append(opts, topic.WithGemini(gemini))
	}

	if cfg.ArchiveBucket != "" {
		archive, err := adapter.NewStorage(ctx, cfg.ArchiveBucket)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to create archive storage")
		}
		opts = append(opts, topic.WithArchive(archive))
	}

	return topic.New(topicStore, opts...), topicStore, nil
}
