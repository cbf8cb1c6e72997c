package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-wizard/internal/client"
	"github.com/jonathan/resume-wizard/internal/config"
	"github.com/jonathan/resume-wizard/internal/db"
	"github.com/jonathan/resume-wizard/internal/logging"
	"github.com/jonathan/resume-wizard/internal/submit"
)

// loadConfig reads the config file and environment, then applies the
// persistent flags on top.
func loadConfig(overrides config.Config) (*config.Config, error) {
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	overrides.LogLevel = logLevel
	overrides.LogFormat = logFormat
	cfg := overrides.MergeWithDefaults(*fileCfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// openStore builds the resume store selected by cfg. The returned func
// releases it and is never nil.
func openStore(ctx context.Context, cfg *config.Config) (submit.ResumeStore, func(), error) {
	switch cfg.Store {
	case config.StoreHTTP:
		opts := client.DefaultOptions()
		opts.Timeout = cfg.APITimeout
		if cfg.ResumeAPIToken != "" {
			opts.Headers = map[string]string{"Authorization": "Bearer " + cfg.ResumeAPIToken}
		}
		c, err := client.New(cfg.ResumeAPIURL, opts)
		if err != nil {
			return nil, nil, err
		}
		return c, func() {}, nil
	case config.StorePostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, nil, err
		}
		return database, database.Close, nil
	default:
		return submit.NewMemoryStore(), func() {}, nil
	}
}
