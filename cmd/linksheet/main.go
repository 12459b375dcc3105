// Package main provides the CLI entry point for linksheet.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/ukaji3/linksheet-go/pkg/linksheet"
	"github.com/ukaji3/linksheet-go/pkg/linksheet/config"
	"github.com/ukaji3/linksheet-go/pkg/linksheet/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath   string
	workbookPath string
	verbose      bool
	longURL      string

	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "linksheet",
		Short: "Keep a spreadsheet of shortened links and their click counts",
		Long: `linksheet lists the shortened links of your account into the "Data" sheet,
with page titles and all-time click counts, and shortens the url typed into
the "Make Short Url" sheet.

Titles you edit in the sheet are kept across updates. Run without a command
to show the menu and update, as opening the sheet does.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: runOpen,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./linksheet.yaml or ~/.config/linksheet/linksheet.yaml)")
	rootCmd.PersistentFlags().StringVarP(&workbookPath, "workbook", "w", "", "Workbook path for the xlsx backend (overrides storage.workbook)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update the Data sheet from the link shortener",
		Args:  cobra.NoArgs,
		RunE:  runUpdate,
	}

	shortenCmd := &cobra.Command{
		Use:   "shorten",
		Short: "Get a shortened url for the url in the Make Short Url sheet",
		Long: `Shortens the url in cell A2 of the "Make Short Url" sheet and writes the
short url into B2. With --url, the url is entered into A2 first.`,
		Args: cobra.NoArgs,
		RunE: runShorten,
	}
	shortenCmd.Flags().StringVarP(&longURL, "url", "u", "", "Url to enter into the sheet and shorten")

	rootCmd.AddCommand(updateCmd, shortenCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if workbookPath != "" {
		cfg.Storage.Workbook = workbookPath
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err = newLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func newLogger(lc config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = lc.Format
	if lc.Format == "console" {
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zc.Build()
}

func runOpen(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Data")
	fmt.Fprintln(out, "  Update from link shortener   linksheet update")
	fmt.Fprintln(out, "  ---")
	fmt.Fprintln(out, "  Get Shortened Url            linksheet shorten")
	fmt.Fprintln(out)
	return runUpdate(cmd, args)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx, cfg, newTerminalNotifier(cmd.ErrOrStderr(), os.Stdin), logger)
	if err != nil {
		return err
	}
	defer app.Close()

	records, err := app.service.Update(ctx)
	if err != nil {
		var emptyErr *linksheet.EmptyResultError
		if errors.As(err, &emptyErr) {
			return nil
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated %d links in %q of %s\n", len(records), app.service.Options().DataSheet, app.location)
	return nil
}

func runShorten(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx, cfg, newTerminalNotifier(cmd.ErrOrStderr(), os.Stdin), logger)
	if err != nil {
		return err
	}
	defer app.Close()

	var link models.Link
	if longURL != "" {
		link, err = app.service.ShortenURL(ctx, longURL)
	} else {
		link, err = app.service.Shorten(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Short url: %s\n", link.ShortURL)
	fmt.Fprintf(cmd.OutOrStdout(), "Long url:  %s\n", link.LongURL)
	return nil
}
