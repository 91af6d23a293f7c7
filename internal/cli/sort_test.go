package cli

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/pfrederiksen/acal-sync/internal/category"
	"github.com/pfrederiksen/acal-sync/internal/event"
)

func sortFixture() []event.ParsedEvent {
	d := func(m time.Month, day int) civil.Date { return civil.Date{Year: 2025, Month: m, Day: day} }
	return []event.ParsedEvent{
		{TitleRaw: "Republic Day", Start: d(time.October, 29), End: d(time.October, 29)},
		{TitleRaw: "Final Exams", Start: d(time.December, 1), End: d(time.December, 12)},
		{TitleRaw: "Course Registration", Start: d(time.September, 1), End: d(time.September, 4)},
		{TitleRaw: "Add-Drop", Start: d(time.September, 1), End: d(time.September, 2)},
		{TitleRaw: "Application Deadline", Start: d(time.December, 1), End: d(time.December, 1)},
	}
}

func titles(events []event.ParsedEvent) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.TitleRaw)
	}
	return out
}

func TestSortEvents(t *testing.T) {
	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortByDate, []string{"Add-Drop", "Course Registration", "Republic Day", "Application Deadline", "Final Exams"}},
		{SortByTitle, []string{"Add-Drop", "Application Deadline", "Course Registration", "Final Exams", "Republic Day"}},
		// Admissions, Registration, ..., Exams, ..., Holidays
		{SortByCategory, []string{"Application Deadline", "Add-Drop", "Course Registration", "Final Exams", "Republic Day"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			events := sortFixture()
			sortEvents(events, tt.order, category.Default())

			got := titles(events)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("sortEvents(%s) = %v, want %v", tt.order, got, tt.want)
				}
			}
		})
	}
}

func TestSortEvents_FallbackLast(t *testing.T) {
	exams := category.Category{Name: "Exams"}
	other := category.Category{Name: "Other"}
	table := category.NewTable(other, category.MustRule(exams, `\bexam`))

	events := sortFixture()
	sortEvents(events, SortByCategory, table)

	if events[0].TitleRaw != "Final Exams" {
		t.Errorf("matched category should sort before the fallback, got %v", titles(events))
	}
}

func TestParseSortOrder(t *testing.T) {
	for _, s := range []string{"date", "TITLE", "category"} {
		if _, err := parseSortOrder(s); err != nil {
			t.Errorf("parseSortOrder(%q) error = %v", s, err)
		}
	}
	if _, err := parseSortOrder("state"); err == nil {
		t.Error("expected error for unknown sort order")
	}
}
