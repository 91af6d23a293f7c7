package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/acal-sync/internal/category"
	"github.com/pfrederiksen/acal-sync/internal/event"
	"github.com/pfrederiksen/acal-sync/internal/reconcile"
	"github.com/pfrederiksen/acal-sync/internal/storage"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// FailureView is one rejected remote call.
type FailureView struct {
	Action string `json:"action"`
	Title  string `json:"title"`
	ID     string `json:"id,omitempty"`
	Error  string `json:"error"`
}

// SyncResult is the outcome of a sync run
type SyncResult struct {
	Mode     string          `json:"mode"`
	Today    string          `json:"today"`
	DryRun   bool            `json:"dry_run"`
	Scraped  int             `json:"scraped"`
	Stats    reconcile.Stats `json:"stats"`
	Warnings []string        `json:"warnings"`
	Failures []FailureView   `json:"failures,omitempty"`
	LogFile  string          `json:"log_file,omitempty"`
}

// EventView is a parsed event decorated for display.
type EventView struct {
	Title    string `json:"title"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Category string `json:"category"`
	Emoji    string `json:"emoji"`
	UID      string `json:"uid"`
	New      bool   `json:"new,omitempty"`
}

// ScrapeResult contains the events found on the page
type ScrapeResult struct {
	CheckedAt  time.Time   `json:"checked_at"`
	Source     string      `json:"source"`
	Events     []EventView `json:"events"`
	EventCount int         `json:"event_count"`
	NewCount   int         `json:"new_count"`
	Removed    []string    `json:"removed,omitempty"`
	Warnings   []string    `json:"warnings"`
}

func eventViews(events []event.ParsedEvent, cats *category.Table, added map[string]bool) []EventView {
	views := make([]EventView, 0, len(events))
	for _, evt := range events {
		cat := cats.Categorize(evt.TitleRaw)
		uid := evt.UID()
		views = append(views, EventView{
			Title:    evt.TitleRaw,
			Start:    evt.Start.String(),
			End:      evt.End.String(),
			Category: cat.Name,
			Emoji:    cat.Emoji,
			UID:      uid,
			New:      added[uid],
		})
	}
	return views
}

// WriteSyncResult writes the sync summary in the specified format
func WriteSyncResult(w io.Writer, result *SyncResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeSyncText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteScrapeResult writes the scraped events in the specified format
func WriteScrapeResult(w io.Writer, result *ScrapeResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeScrapeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteRunRecord writes a stored run; rec may be nil.
func WriteRunRecord(w io.Writer, rec *storage.RunRecord, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rec)
	case FormatText:
		return writeRunText(w, rec)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeSyncText(w io.Writer, result *SyncResult, verbose bool) error {
	if result.DryRun {
		fmt.Fprintln(w, "Dry run: no changes were made.")
	}
	if verbose {
		fmt.Fprintf(w, "Mode: %s  Today: %s  Scraped: %d\n", result.Mode, result.Today, result.Scraped)
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "WARNING: %s\n", warning)
		}
	}
	for _, f := range result.Failures {
		fmt.Fprintf(w, "FAILED %s: %s (%s)\n", f.Action, f.Title, f.Error)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "================ SUMMARY ================")
	fmt.Fprintf(w, "Added:    %d\n", result.Stats.Created)
	fmt.Fprintf(w, "Updated:  %d\n", result.Stats.Updated)
	fmt.Fprintf(w, "Deleted:  %d\n", result.Stats.Deleted)
	fmt.Fprintf(w, "Skipped:  %d\n", result.Stats.Skipped)
	fmt.Fprintf(w, "Errors:   %d\n", result.Stats.Errors)
	if len(result.Warnings) > 0 {
		fmt.Fprintf(w, "Warnings: %d\n", len(result.Warnings))
	}
	if result.LogFile != "" {
		fmt.Fprintf(w, "Log file: %s\n", result.LogFile)
	}
	fmt.Fprintln(w, "=========================================")
	return nil
}

func writeScrapeText(w io.Writer, result *ScrapeResult, verbose bool) error {
	if result.EventCount == 0 {
		fmt.Fprintln(w, "No events found.")
	}

	for _, evt := range result.Events {
		dates := evt.Start
		if evt.End != evt.Start {
			dates = evt.Start + ".." + evt.End
		}
		if evt.New {
			fmt.Fprintf(w, "NEW: %s  %s %s\n", dates, evt.Emoji, evt.Title)
		} else {
			fmt.Fprintf(w, "%s  %s %s\n", dates, evt.Emoji, evt.Title)
		}
		if verbose {
			fmt.Fprintf(w, "     Category: %s\n", evt.Category)
			fmt.Fprintf(w, "     UID: %s\n", evt.UID)
		}
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "WARNING: %s\n", warning)
	}
	if len(result.Removed) > 0 {
		fmt.Fprintf(w, "%d events from the last sync are no longer on the page\n", len(result.Removed))
	}

	if result.EventCount > 0 {
		fmt.Fprintf(w, "\nTotal: %d events (%d new)\n", result.EventCount, result.NewCount)
	}
	return nil
}

func writeRunText(w io.Writer, rec *storage.RunRecord) error {
	if rec == nil {
		fmt.Fprintln(w, "No sync has been recorded yet.")
		return nil
	}

	dry := ""
	if rec.DryRun {
		dry = " (dry run)"
	}
	fmt.Fprintf(w, "Last sync: %s%s\n", rec.StartedAt.Format(time.RFC3339), dry)
	fmt.Fprintf(w, "Mode:     %s\n", rec.Mode)
	fmt.Fprintf(w, "Today:    %s\n", rec.Today)
	fmt.Fprintf(w, "Scraped:  %d\n", rec.Scraped)
	fmt.Fprintf(w, "Added:    %d\n", rec.Stats.Created)
	fmt.Fprintf(w, "Updated:  %d\n", rec.Stats.Updated)
	fmt.Fprintf(w, "Deleted:  %d\n", rec.Stats.Deleted)
	fmt.Fprintf(w, "Skipped:  %d\n", rec.Stats.Skipped)
	fmt.Fprintf(w, "Errors:   %d\n", rec.Stats.Errors)
	for _, warning := range rec.Warnings {
		fmt.Fprintf(w, "WARNING: %s\n", warning)
	}
	return nil
}
