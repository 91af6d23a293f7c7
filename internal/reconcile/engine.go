package reconcile

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/pfrederiksen/acal-sync/internal/category"
	"github.com/pfrederiksen/acal-sync/internal/event"
	"github.com/pfrederiksen/acal-sync/internal/logger"
)

// Action is what the engine decided for one event.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionSkip   Action = "skip"
)

// Outcome is the result of one decision. Err is set when the remote call failed.
type Outcome struct {
	Action   Action
	RemoteID string
	UID      string
	Title    string
	Fuzzy    bool // matched by title similarity instead of UID
	Err      error
}

// Failed reports whether the remote call for this outcome was rejected.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Stats are the aggregate counts of a run.
type Stats struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

func (s *Stats) record(o Outcome) {
	if o.Failed() {
		s.Errors++
		return
	}
	switch o.Action {
	case ActionCreate:
		s.Created++
	case ActionUpdate:
		s.Updated++
	case ActionDelete:
		s.Deleted++
	case ActionSkip:
		s.Skipped++
	}
}

// Report is everything a run produced.
type Report struct {
	Stats    Stats
	Outcomes []Outcome
}

func (r *Report) add(o Outcome) {
	r.Stats.record(o)
	r.Outcomes = append(r.Outcomes, o)
}

// Input is one run's view of the world. Remote is the start-of-run snapshot
// and is never re-read during the run.
type Input struct {
	Mode   Mode
	Today  civil.Date
	Parsed []event.ParsedEvent
	Remote []RemoteEvent
}

// Engine reconciles parsed events against the entries it previously created.
type Engine struct {
	Store      Store
	Categories *category.Table
	Tags       Tags
	SourceURL  string
	DryRun     bool // decide and count, but never call Store
}

// Run computes and applies the actions for in.Mode. Failed remote calls are
// counted in Stats.Errors and never stop the run.
func (e *Engine) Run(ctx context.Context, in Input) Report {
	report := Report{Outcomes: make([]Outcome, 0)}

	byUID, owned := e.index(in.Remote)

	logger.Info("sync started", logger.Fields{
		"mode":           in.Mode.String(),
		"today":          in.Today.String(),
		"existing_owned": len(owned),
		"scraped":        len(in.Parsed),
		"dry_run":        e.DryRun,
	})

	if in.Mode.AddsEvents() {
		for _, evt := range desired(in.Parsed, in.Today) {
			report.add(e.upsert(ctx, evt, byUID, owned))
		}
	}

	if in.Mode.DeletesEvents() {
		for _, ev := range owned {
			o, counted := e.prune(ctx, in.Mode, in.Today, ev)
			if counted {
				report.add(o)
			}
		}
	}

	logger.Info("sync finished", logger.Fields{
		"created": report.Stats.Created,
		"updated": report.Stats.Updated,
		"deleted": report.Stats.Deleted,
		"skipped": report.Stats.Skipped,
		"errors":  report.Stats.Errors,
	})

	return report
}

// index keeps the owned entries in listing order and maps them by UID.
func (e *Engine) index(remote []RemoteEvent) (map[string]RemoteEvent, []RemoteEvent) {
	byUID := make(map[string]RemoteEvent)
	owned := make([]RemoteEvent, 0)
	for _, ev := range remote {
		if !e.Tags.Owns(ev) {
			continue
		}
		owned = append(owned, ev)
		byUID[e.Tags.UID(ev)] = ev
	}
	return byUID, owned
}

// desired keeps events starting today or later; past events are never recreated.
func desired(parsed []event.ParsedEvent, today civil.Date) []event.ParsedEvent {
	out := make([]event.ParsedEvent, 0, len(parsed))
	for _, evt := range parsed {
		if !evt.Start.Before(today) {
			out = append(out, evt)
		}
	}
	return out
}

func (e *Engine) categories() *category.Table {
	if e.Categories == nil {
		return category.Default()
	}
	return e.Categories
}

func (e *Engine) upsert(ctx context.Context, evt event.ParsedEvent, byUID map[string]RemoteEvent, owned []RemoteEvent) Outcome {
	norm := evt.NormalizedTitle()
	uid := event.UID(evt.Start.String(), evt.End.String(), norm)

	existing, found := byUID[uid]
	fuzzy := false
	if !found {
		var score float64
		existing, score, found = bestFuzzyMatch(norm, evt.Start, evt.EndExclusive(), owned)
		fuzzy = found
		if found {
			logger.Debug("fuzzy match", logger.Fields{"title": evt.TitleRaw, "id": existing.ID, "score": score})
		}
	}

	body := buildBody(evt, e.categories().Categorize(evt.TitleRaw), uid, e.SourceURL, e.Tags)
	fields := logger.Fields{
		"title": evt.TitleRaw,
		"start": evt.Start.String(),
		"end":   evt.End.String(),
		"uid":   uid,
	}

	if !found {
		o := Outcome{Action: ActionCreate, UID: uid, Title: evt.TitleRaw}
		if !e.DryRun {
			o.RemoteID, o.Err = e.Store.Insert(ctx, body)
		}
		fields["action"] = string(o.Action)
		e.logOutcome(o, fields)
		return o
	}

	o := Outcome{Action: ActionUpdate, RemoteID: existing.ID, UID: uid, Title: evt.TitleRaw, Fuzzy: fuzzy}
	if !e.DryRun {
		o.Err = e.Store.Patch(ctx, existing.ID, body)
	}
	fields["action"] = string(o.Action)
	fields["id"] = existing.ID
	fields["fuzzy"] = fuzzy
	e.logOutcome(o, fields)
	return o
}

// prune decides whether an owned entry goes. Entries without readable dates
// are left alone and not counted.
func (e *Engine) prune(ctx context.Context, mode Mode, today civil.Date, ev RemoteEvent) (Outcome, bool) {
	o := Outcome{Action: ActionSkip, RemoteID: ev.ID, UID: e.Tags.UID(ev), Title: ev.Title}
	if !ev.HasDates() {
		logger.Warn("skipping owned event without all-day dates", logger.Fields{"id": ev.ID, "title": ev.Title})
		return o, false
	}

	endInclusive := ev.EndInclusive()
	if mode != ModeRemoveAll && !endInclusive.Before(today) {
		return o, true
	}

	o.Action = ActionDelete
	if !e.DryRun {
		o.Err = e.Store.Delete(ctx, ev.ID)
	}
	e.logOutcome(o, logger.Fields{
		"action": string(o.Action),
		"title":  ev.Title,
		"ends":   endInclusive.String(),
		"id":     ev.ID,
	})
	return o, true
}

func (e *Engine) logOutcome(o Outcome, fields logger.Fields) {
	if o.Failed() {
		logger.Error(string(o.Action)+" failed", fields, o.Err)
		return
	}
	fields["dry_run"] = e.DryRun
	logger.Info(string(o.Action), fields)
}
