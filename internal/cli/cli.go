package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pfrederiksen/acal-sync/internal/config"
	"github.com/pfrederiksen/acal-sync/internal/gcal"
	"github.com/pfrederiksen/acal-sync/internal/logger"
	"github.com/pfrederiksen/acal-sync/internal/reconcile"
	"github.com/pfrederiksen/acal-sync/internal/scraper"
	"github.com/spf13/cobra"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	// ExitPartial means the sync finished but some remote calls failed.
	ExitPartial = 2
)

// errPartialFailure is returned after the summary was written for a sync
// that counted errors.
var errPartialFailure = errors.New("some events could not be synced")

// remoteCalendar is the slice of the Google adapter the commands use.
type remoteCalendar interface {
	EnsureCalendar(ctx context.Context, name, timeZone string) (string, error)
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]reconcile.RemoteEvent, error)
	Store(calendarID string) reconcile.Store
}

type gcalRemote struct {
	*gcal.Client
}

func (g gcalRemote) Store(calendarID string) reconcile.Store {
	return g.Calendar(calendarID)
}

// deps are the outside world; tests replace them.
type deps struct {
	now       func() time.Time
	newRemote func(ctx context.Context, cfg *config.Config) (remoteCalendar, error)
	scrape    func(ctx context.Context, url string, strict bool) (scraper.Result, error)
	stdout    io.Writer
	stderr    io.Writer
}

func defaultDeps() *deps {
	return &deps{
		now: time.Now,
		newRemote: func(ctx context.Context, cfg *config.Config) (remoteCalendar, error) {
			client, err := gcal.New(ctx,
				option.WithCredentialsFile(cfg.CredentialsPath()),
				option.WithScopes(calendar.CalendarScope),
			)
			if err != nil {
				return nil, err
			}
			return gcalRemote{client}, nil
		},
		scrape: func(ctx context.Context, url string, strict bool) (scraper.Result, error) {
			return scraper.New(url).Scrape(ctx, strict)
		},
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// app carries global flag values and the loaded configuration.
type app struct {
	deps *deps

	configPath string
	verbose    bool
	logLevel   string
	logFile    string

	cfg     *config.Config
	logSink io.Closer
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd(defaultDeps())
	return cmd
}

func newRootCmd(d *deps) (*cobra.Command, *app) {
	a := &app{deps: d}

	cmd := &cobra.Command{
		Use:   "acal-sync",
		Short: "Sync an academic calendar page into a Google calendar",
		Long: `A CLI tool that scrapes the undergraduate dates of an academic calendar page
and keeps a dedicated Google calendar in step with it. Only entries created by
this tool are ever changed or removed.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	cmd.SetOut(d.stdout)
	cmd.SetErr(d.stderr)

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Enable verbose logging (same as --log-level debug)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Append logs to this file instead of stderr")

	cmd.AddCommand(
		newSyncCmd(a),
		newScrapeCmd(a),
		newExportCmd(a),
		newLastRunCmd(a),
	)

	return cmd, a
}

// setup configures logging and loads the configuration for every subcommand.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level, err := logger.ParseLevel(a.logLevel)
	if err != nil {
		return err
	}
	if a.verbose {
		level = logger.LevelDebug
	}

	var out io.Writer = a.deps.stderr
	if a.logFile != "" {
		f, err := os.OpenFile(config.ExpandHome(a.logFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		a.logSink = f
		out = f
	}
	logger.SetDefault(logger.New(level, out))

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	logger.Debug("configuration loaded", logger.Fields{
		"source_url": cfg.SourceURL,
		"timezone":   cfg.Timezone,
		"calendar":   cfg.CalendarName,
		"data_dir":   cfg.DataDir,
	})
	return nil
}

// strict resolves --strict against the configured default.
func (a *app) strict(cmd *cobra.Command, flagValue bool) bool {
	if cmd.Flags().Changed("strict") {
		return flagValue
	}
	return a.cfg.StrictMode()
}

func (a *app) close() {
	if a.logSink != nil {
		a.logSink.Close()
		a.logSink = nil
	}
}

// Execute runs the CLI
func Execute() {
	cmd, a := newRootCmd(defaultDeps())
	err := cmd.Execute()
	a.close()

	switch {
	case err == nil:
		os.Exit(ExitSuccess)
	case errors.Is(err, errPartialFailure):
		os.Exit(ExitPartial)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}

func parseFormat(s string) (OutputFormat, error) {
	format := OutputFormat(s)
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
	return format, nil
}
