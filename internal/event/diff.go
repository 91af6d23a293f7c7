package event

import "sort"

// DiffResult describes how the scraped page changed since a previous run.
type DiffResult struct {
	Added   []ParsedEvent
	Removed []string // UIDs seen previously but no longer on the page
}

// Diff compares the current scrape against the UIDs recorded by an earlier run.
func Diff(previousUIDs []string, current []ParsedEvent) *DiffResult {
	result := &DiffResult{
		Added:   make([]ParsedEvent, 0),
		Removed: make([]string, 0),
	}

	previous := make(map[string]bool, len(previousUIDs))
	for _, uid := range previousUIDs {
		previous[uid] = true
	}

	seen := make(map[string]bool, len(current))
	for _, evt := range current {
		uid := evt.UID()
		seen[uid] = true
		if !previous[uid] {
			result.Added = append(result.Added, evt)
		}
	}

	for uid := range previous {
		if !seen[uid] {
			result.Removed = append(result.Removed, uid)
		}
	}
	sort.Strings(result.Removed)

	return result
}

// UIDs returns the identity of every event, in order.
func UIDs(events []ParsedEvent) []string {
	uids := make([]string, 0, len(events))
	for _, evt := range events {
		uids = append(uids, evt.UID())
	}
	return uids
}
