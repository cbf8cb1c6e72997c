package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-wizard/internal/config"
	"github.com/jonathan/resume-wizard/internal/observability"
	"github.com/jonathan/resume-wizard/internal/submit"
	"github.com/jonathan/resume-wizard/internal/wizard"
	"github.com/jonathan/resume-wizard/internal/wizard/steps"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Validate and save a resume document through the configured store",
	Long: `Runs the full save cycle on a resume document: step validation, payload schema
check and create or update through the resume store. New resumes are named
interactively unless --yes is given.`,
	RunE: runSubmit,
}

var (
	submitInput       string
	submitFormat      string
	submitResumeID    string
	submitName        string
	submitYes         bool
	submitStore       string
	submitAPIURL      string
	submitDatabaseURL string
)

func init() {
	submitCmd.Flags().StringVarP(&submitInput, "in", "i", "", "Path to document JSON, or - for stdin (required)")
	submitCmd.Flags().StringVarP(&submitFormat, "format", "f", formatWorking, "Input format: working, persisted or extraction")
	submitCmd.Flags().StringVar(&submitResumeID, "resume-id", "", "Update this stored resume instead of creating a new one")
	submitCmd.Flags().StringVar(&submitName, "name", "", "Name for a new resume")
	submitCmd.Flags().BoolVarP(&submitYes, "yes", "y", false, "Accept the suggested name without prompting")
	submitCmd.Flags().StringVar(&submitStore, "store", "", "Resume store: memory, http or postgres")
	submitCmd.Flags().StringVar(&submitAPIURL, "api-url", "", "Resume backend base URL for the http store")
	submitCmd.Flags().StringVar(&submitDatabaseURL, "database-url", "", "PostgreSQL connection URL for the postgres store")

	if err := submitCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	data, err := readInput(submitInput, cmd.InOrStdin())
	if err != nil {
		return err
	}
	doc, warnings, err := loadWorkingDocument(data, submitFormat)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", w)
	}

	cfg, err := loadConfig(config.Config{
		Store:        submitStore,
		ResumeAPIURL: submitAPIURL,
		DatabaseURL:  submitDatabaseURL,
	})
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	defer closeStore()

	opts := []submit.Option{
		submit.WithLogger(logger),
		submit.WithDefaultName(cfg.DefaultResumeName),
	}
	if !submitYes {
		opts = append(opts, submit.WithPrompter(newLinePrompter(cmd.InOrStdin(), cmd.ErrOrStderr())))
	}
	if submitResumeID != "" {
		h, err := submit.Hydrate(ctx, store, submitResumeID)
		if err != nil {
			return err
		}
		opts = append(opts, submit.WithStoredResume(h.Resume.ID, h.Resume.Name))
	}

	ctrl := wizard.NewControllerWithDocument(doc)
	ctrl.JumpTo(steps.Review)
	orch := submit.New(ctrl, store, opts...)
	res := orch.Submit(ctx, submit.Request{Name: submitName})

	observability.NewPrinter(cmd.OutOrStdout()).PrintSubmitResult(res)
	if res.Outcome != submit.OutcomeSuccess {
		return fmt.Errorf("resume not saved: %s", res.Outcome)
	}
	return nil
}
