package cli

import (
	"fmt"

	"github.com/pfrederiksen/acal-sync/internal/category"
	"github.com/pfrederiksen/acal-sync/internal/event"
	"github.com/pfrederiksen/acal-sync/internal/logger"
	"github.com/pfrederiksen/acal-sync/internal/reconcile"
	"github.com/pfrederiksen/acal-sync/internal/storage"
	"github.com/spf13/cobra"
)

type syncOptions struct {
	mode   string
	dryRun bool
	yes    bool
	strict bool
	format string
}

func newSyncCmd(a *app) *cobra.Command {
	opts := &syncOptions{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the remote calendar with the academic calendar page",
		Long: `Scrape the page, list the dedicated calendar and apply one of the modes:

  add_future              create or update events starting today or later
  add_future_remove_past  as add_future, then delete owned events that ended before today
  remove_past             only delete owned events that ended before today
  remove_all              delete every owned event (requires --yes)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSync(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", string(reconcile.ModeAddFuture), "Sync mode")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show what would be done without making changes")
	cmd.Flags().BoolVar(&opts.yes, "yes", false, "Confirm destructive modes")
	cmd.Flags().BoolVar(&opts.strict, "strict", true, "Only use rows with an UNDER G. date (default from config)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")

	return cmd
}

func (a *app) runSync(cmd *cobra.Command, opts *syncOptions) error {
	mode, err := reconcile.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	format, err := parseFormat(opts.format)
	if err != nil {
		return err
	}
	if mode == reconcile.ModeRemoveAll && !opts.yes && !opts.dryRun {
		return fmt.Errorf("mode %s deletes every event created by this tool; rerun with --yes to confirm", mode)
	}

	cfg := a.cfg
	if err := cfg.RequireCredentials(); err != nil {
		return err
	}

	ctx := cmd.Context()
	startedAt := a.deps.now()

	remote, err := a.deps.newRemote(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connecting to Google Calendar: %w", err)
	}
	calendarID, err := remote.EnsureCalendar(ctx, cfg.CalendarName, cfg.Timezone)
	if err != nil {
		return err
	}

	today := cfg.Today(startedAt)
	logger.Info("resolved today", logger.Fields{"today": today.String(), "timezone": cfg.Timezone})

	// The page is scraped on every run, whatever the mode.
	scraped, err := a.scrape(cmd, opts.strict)
	if err != nil {
		return err
	}

	timeMin, timeMax := reconcile.Window(today, cfg.Location())
	existing, err := remote.ListEvents(ctx, calendarID, timeMin, timeMax)
	if err != nil {
		return err
	}

	engine := &reconcile.Engine{
		Store:      remote.Store(calendarID),
		Categories: category.Default(),
		Tags:       cfg.Tags,
		SourceURL:  cfg.SourceURL,
		DryRun:     opts.dryRun,
	}
	report := engine.Run(ctx, reconcile.Input{
		Mode:   mode,
		Today:  today,
		Parsed: scraped.Events,
		Remote: existing,
	})

	a.recordRun(&storage.RunRecord{
		StartedAt: startedAt.UTC(),
		Mode:      string(mode),
		Today:     today.String(),
		DryRun:    opts.dryRun,
		Stats:     report.Stats,
		Scraped:   len(scraped.Events),
		UIDs:      event.UIDs(scraped.Events),
		Warnings:  scraped.Warnings,
	})

	result := &SyncResult{
		Mode:     string(mode),
		Today:    today.String(),
		DryRun:   opts.dryRun,
		Scraped:  len(scraped.Events),
		Stats:    report.Stats,
		Warnings: scraped.Warnings,
		Failures: failures(report.Outcomes),
		LogFile:  a.logFile,
	}
	if err := WriteSyncResult(a.deps.stdout, result, format, a.verbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if report.Stats.Errors > 0 {
		return errPartialFailure
	}
	return nil
}

// recordRun stores the run for last-run and scrape; failures are logged only.
func (a *app) recordRun(rec *storage.RunRecord) {
	store, err := storage.New(a.cfg.DataPath())
	if err != nil {
		logger.Error("initializing storage", nil, err)
		return
	}
	if err := store.SaveRun(rec); err != nil {
		logger.Error("saving run", logger.Fields{"dir": store.Dir()}, err)
	}
}

func failures(outcomes []reconcile.Outcome) []FailureView {
	out := make([]FailureView, 0)
	for _, o := range outcomes {
		if !o.Failed() {
			continue
		}
		out = append(out, FailureView{
			Action: string(o.Action),
			Title:  o.Title,
			ID:     o.RemoteID,
			Error:  o.Err.Error(),
		})
	}
	return out
}
