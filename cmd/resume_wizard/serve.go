package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-wizard/internal/config"
	"github.com/jonathan/resume-wizard/internal/server"
)

var (
	servePort        int
	serveStore       string
	serveDatabaseURL string
	serveAPIURL      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the wizard session API server",
	Long:  `Start an HTTP server that exposes wizard editing sessions: navigation, document edits, validation and submit.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	serveCmd.Flags().StringVar(&serveStore, "store", "", "Resume store: memory, http or postgres")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "database-url", "", "PostgreSQL connection URL for the postgres store")
	serveCmd.Flags().StringVar(&serveAPIURL, "api-url", "", "Resume backend base URL for the http store")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(config.Config{
		Port:         servePort,
		Store:        serveStore,
		DatabaseURL:  serveDatabaseURL,
		ResumeAPIURL: serveAPIURL,
	})
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, closeStore, err := openStore(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	logger.Info("resume store ready", zap.String("store", cfg.Store))

	srv, err := server.New(server.Config{
		Port:              cfg.Port,
		Store:             store,
		Logger:            logger,
		DefaultResumeName: cfg.DefaultResumeName,
		AllowedOrigins:    cfg.AllowedOrigins,
		OnClose:           closeStore,
	})
	if err != nil {
		closeStore()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
