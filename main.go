// Bulk-creates Discourse users from an Excel workbook: one POST per eligible
// row, with the outcome written back into status columns in the same file.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ashishdungdung/discourse-create-bulk-users/internal/config"
	"github.com/ashishdungdung/discourse-create-bulk-users/internal/discourse"
	"github.com/ashishdungdung/discourse-create-bulk-users/internal/importer"
	"github.com/ashishdungdung/discourse-create-bulk-users/internal/sheet"
)

type options struct {
	file            string
	siteURL         string
	apiKey          string
	apiUsername     string
	timeout         time.Duration
	active          bool
	approved        bool
	suppressWelcome bool
	dryRun          bool
	logLevel        string
	logFormat       string
}

func newRootCmd() *cobra.Command {
	_ = godotenv.Load()
	env, envErr := config.FromEnv()

	var opts options
	cmd := &cobra.Command{
		Use:           "discourse-create-bulk-users",
		Short:         "Bulk-create Discourse users from an Excel workbook",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return envErr
			}
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "users.xlsx", "Path to the Excel workbook")
	cmd.Flags().StringVar(&opts.siteURL, "site-url", env.SiteURL, "Discourse base URL (env DISCOURSE_SITE_URL)")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", env.APIKey, "Discourse API key (env DISCOURSE_API_KEY)")
	cmd.Flags().StringVar(&opts.apiUsername, "api-username", env.APIUsername, "Admin username tied to the API key (env DISCOURSE_API_USERNAME)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")
	cmd.Flags().BoolVar(&opts.active, "active", false, "Create users as active")
	cmd.Flags().BoolVar(&opts.approved, "approved", false, "Create users as approved")
	cmd.Flags().BoolVar(&opts.suppressWelcome, "suppress-welcome-message", false, "Suppress the Discourse welcome message on create")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Validate input and simulate API calls")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")
	return cmd
}

func newLogger(opts options) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(opts.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if opts.logFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
}

func run(ctx context.Context, opts options) error {
	logger := newLogger(opts)

	cfg := config.New(opts.siteURL, opts.apiKey, opts.apiUsername, opts.timeout,
		opts.active, opts.approved, opts.suppressWelcome, opts.dryRun)
	if err := cfg.Validate(); err != nil {
		return err
	}

	wb, err := sheet.Open(opts.file)
	if err != nil {
		return err
	}
	defer wb.Close()

	cols, err := sheet.ResolveColumns(wb)
	if err != nil {
		return err
	}

	summary, err := importer.Run(ctx, wb, cols, discourse.NewClient(cfg), logger)
	if err != nil {
		return err
	}

	if err := wb.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	logger.Info("completed",
		slog.Int("created", summary.Created),
		slog.Int("failed", summary.Failed),
		slog.Int("skipped", summary.Skipped),
	)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
