package cli

import (
	"fmt"
	"os"

	"github.com/pfrederiksen/acal-sync/internal/calendar"
	"github.com/pfrederiksen/acal-sync/internal/category"
	"github.com/pfrederiksen/acal-sync/internal/event"
	"github.com/pfrederiksen/acal-sync/internal/logger"
	"github.com/pfrederiksen/acal-sync/internal/scraper"
	"github.com/pfrederiksen/acal-sync/internal/storage"
	"github.com/spf13/cobra"
)

func newScrapeCmd(a *app) *cobra.Command {
	var (
		format    string
		sortOrder string
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Print the events found on the academic calendar page",
		Long: `Fetch and parse the page without touching the remote calendar. Events that
were not on the page during the last recorded sync are marked NEW.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}
			order, err := parseSortOrder(sortOrder)
			if err != nil {
				return err
			}

			res, err := a.scrape(cmd, strict)
			if err != nil {
				return err
			}

			var previous []string
			hasHistory := false
			if rec := a.lastRun(); rec != nil {
				previous, hasHistory = rec.UIDs, true
			}
			diff := event.Diff(previous, res.Events)

			added := make(map[string]bool, len(diff.Added))
			if hasHistory {
				for _, evt := range diff.Added {
					added[evt.UID()] = true
				}
			}

			cats := category.Default()
			events := append([]event.ParsedEvent(nil), res.Events...)
			sortEvents(events, order, cats)

			result := &ScrapeResult{
				CheckedAt: a.deps.now().UTC(),
				Source:    a.cfg.SourceURL,
				Events:    eventViews(events, cats, added),
				Warnings:  res.Warnings,
			}
			result.EventCount = len(result.Events)
			result.NewCount = len(added)
			if hasHistory {
				result.Removed = diff.Removed
			}

			return WriteScrapeResult(a.deps.stdout, result, f, a.verbose)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&sortOrder, "sort", string(SortByDate), "Sort order: date, title or category")
	cmd.Flags().BoolVar(&strict, "strict", true, "Only use rows with an UNDER G. date (default from config)")

	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		out    string
		all    bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the page's events to an .ics file",
		Long: `Fetch and parse the page and write the events as all-day iCalendar entries.
Only events starting today or later are written unless --all is given.
Use --out - to write to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.scrape(cmd, strict)
			if err != nil {
				return err
			}

			events := res.Events
			if !all {
				today := a.cfg.Today(a.deps.now())
				events = make([]event.ParsedEvent, 0, len(res.Events))
				for _, evt := range res.Events {
					if !evt.Start.Before(today) {
						events = append(events, evt)
					}
				}
			}

			ics := calendar.GenerateICS(events, category.Default(), a.cfg.CalendarName, a.deps.now())
			if out == "-" {
				_, err := fmt.Fprint(a.deps.stdout, ics)
				return err
			}
			if err := os.WriteFile(out, []byte(ics), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(a.deps.stdout, "Exported %d events to %s\n", len(events), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Destination .ics file, or - for stdout (required)")
	cmd.Flags().BoolVar(&all, "all", false, "Include events that started before today")
	cmd.Flags().BoolVar(&strict, "strict", true, "Only use rows with an UNDER G. date (default from config)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newLastRunCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "last-run",
		Short: "Show the record of the previous sync",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}

			store, err := storage.New(a.cfg.DataPath())
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}
			rec, err := store.LoadRun()
			if err != nil {
				return err
			}
			return WriteRunRecord(a.deps.stdout, rec, f)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	return cmd
}

// scrape fetches the page and extracts its events.
func (a *app) scrape(cmd *cobra.Command, strictFlag bool) (scraper.Result, error) {
	res, err := a.deps.scrape(cmd.Context(), a.cfg.SourceURL, a.strict(cmd, strictFlag))
	if err != nil {
		return scraper.Result{}, fmt.Errorf("fetching events: %w", err)
	}
	for _, w := range res.Warnings {
		logger.Warn("scrape warning", logger.Fields{"warning": w})
	}
	return res, nil
}

// lastRun returns the stored run, or nil when none can be read.
func (a *app) lastRun() *storage.RunRecord {
	store, err := storage.New(a.cfg.DataPath())
	if err != nil {
		logger.Warn("run history unavailable", logger.Fields{"error": err.Error()})
		return nil
	}
	rec, err := store.LoadRun()
	if err != nil {
		logger.Warn("run history unreadable", logger.Fields{"error": err.Error()})
		return nil
	}
	return rec
}
