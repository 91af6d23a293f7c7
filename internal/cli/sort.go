package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/acal-sync/internal/category"
	"github.com/pfrederiksen/acal-sync/internal/event"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDate     SortOrder = "date"
	SortByTitle    SortOrder = "title"
	SortByCategory SortOrder = "category"
)

func parseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(s)); order {
	case SortByDate, SortByTitle, SortByCategory:
		return order, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (must be 'date', 'title' or 'category')", s)
	}
}

// sortEvents sorts a slice of events based on the specified sort order.
// Category order follows the table's rule order, fallback last.
func sortEvents(events []event.ParsedEvent, sortOrder SortOrder, cats *category.Table) {
	switch sortOrder {
	case SortByDate:
		sort.SliceStable(events, func(i, j int) bool {
			return compareByDate(events[i], events[j])
		})
	case SortByTitle:
		sort.SliceStable(events, func(i, j int) bool {
			ti, tj := strings.ToLower(events[i].TitleRaw), strings.ToLower(events[j].TitleRaw)
			if ti != tj {
				return ti < tj
			}
			// If titles are equal, sort by date
			return compareByDate(events[i], events[j])
		})
	case SortByCategory:
		rank := make(map[string]int)
		for i, c := range cats.Categories() {
			if _, ok := rank[c.Name]; !ok {
				rank[c.Name] = i
			}
		}
		if _, ok := rank[cats.Fallback().Name]; !ok {
			rank[cats.Fallback().Name] = len(cats.Categories())
		}
		sort.SliceStable(events, func(i, j int) bool {
			ri := rank[cats.Categorize(events[i].TitleRaw).Name]
			rj := rank[cats.Categorize(events[j].TitleRaw).Name]
			if ri != rj {
				return ri < rj
			}
			return compareByDate(events[i], events[j])
		})
	}
}

// compareByDate orders by start, then end, then title.
func compareByDate(i, j event.ParsedEvent) bool {
	if i.Start != j.Start {
		return i.Start.Before(j.Start)
	}
	if i.End != j.End {
		return i.End.Before(j.End)
	}
	return strings.ToLower(i.TitleRaw) < strings.ToLower(j.TitleRaw)
}
