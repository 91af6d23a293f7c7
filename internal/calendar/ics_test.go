package calendar

import (
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	ical "github.com/arran4/golang-ical"
	"github.com/pfrederiksen/acal-sync/internal/category"
	"github.com/pfrederiksen/acal-sync/internal/event"
)

var stamp = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func mustEvent(t *testing.T, title string, start, end civil.Date) event.ParsedEvent {
	t.Helper()
	evt, ok := event.NewParsedEvent(title, start, end, "https://example.edu/cal")
	if !ok {
		t.Fatalf("invalid event %q", title)
	}
	return evt
}

func TestGenerateICS(t *testing.T) {
	events := []event.ParsedEvent{
		mustEvent(t, "Course Registration", civil.Date{Year: 2025, Month: time.September, Day: 1}, civil.Date{Year: 2025, Month: time.September, Day: 4}),
		mustEvent(t, "Republic Day", civil.Date{Year: 2025, Month: time.October, Day: 29}, civil.Date{Year: 2025, Month: time.October, Day: 29}),
	}

	ics := GenerateICS(events, nil, "Academic Calendar", stamp)

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//acal-sync//acal-sync//EN",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:Academic Calendar",
		"UID:" + events[0].UID() + "@acal-sync",
		"DTSTART;VALUE=DATE:20250901",
		"DTEND;VALUE=DATE:20250905",
		"DTSTART;VALUE=DATE:20251029",
		"DTEND;VALUE=DATE:20251030",
		"BEGIN:VALARM",
		"TRIGGER:-PT1440M",
		"END:VCALENDAR",
	}
	for _, field := range requiredFields {
		if !strings.Contains(ics, field) {
			t.Errorf("ICS missing required field: %s", field)
		}
	}

	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("Expected 2 BEGIN:VEVENT, got %d", got)
	}
	// Only registration carries a reminder.
	if got := strings.Count(ics, "BEGIN:VALARM"); got != 1 {
		t.Errorf("Expected 1 VALARM, got %d", got)
	}
	if !strings.Contains(ics, "\r\n") {
		t.Error("ICS should use \\r\\n line endings")
	}
	if lf, crlf := strings.Count(ics, "\n"), strings.Count(ics, "\r\n"); lf != crlf {
		t.Errorf("ICS has %d bare \\n line endings", lf-crlf)
	}
}

func TestGenerateICS_RoundTrip(t *testing.T) {
	evt := mustEvent(t, "Final Exams", civil.Date{Year: 2025, Month: time.December, Day: 1}, civil.Date{Year: 2025, Month: time.December, Day: 12})

	cal, err := ical.ParseCalendar(strings.NewReader(GenerateICS([]event.ParsedEvent{evt}, nil, "", stamp)))
	if err != nil {
		t.Fatalf("ParseCalendar() error = %v", err)
	}

	events := cal.Events()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ve := events[0]

	if p := ve.GetProperty(ical.ComponentPropertySummary); p == nil || p.Value != category.Exams.Emoji+" Final Exams" {
		t.Errorf("SUMMARY = %v", p)
	}
	if p := ve.GetProperty(ical.ComponentPropertyCategories); p == nil || !strings.Contains(p.Value, "Academic Evaluation") {
		t.Errorf("CATEGORIES = %v", p)
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p == nil || p.Value != "Source: https://example.edu/cal" {
		t.Errorf("DESCRIPTION = %v", p)
	}
}

func TestGenerateICS_CustomCategories(t *testing.T) {
	custom := category.Category{Name: "Everything", Emoji: "★", ColorID: "1"}
	evt := mustEvent(t, "Final Exams", civil.Date{Year: 2025, Month: time.December, Day: 1}, civil.Date{Year: 2025, Month: time.December, Day: 1})

	ics := GenerateICS([]event.ParsedEvent{evt}, category.NewTable(custom), "", stamp)

	if !strings.Contains(ics, "CATEGORIES:Everything") {
		t.Error("custom category name should be used")
	}
	if strings.Contains(ics, "BEGIN:VALARM") {
		t.Error("categories without a reminder should not get an alarm")
	}
	if strings.Contains(ics, "X-WR-CALNAME:") {
		t.Error("Should not include X-WR-CALNAME when name is empty")
	}
}

func TestGenerateICS_Empty(t *testing.T) {
	ics := GenerateICS(nil, nil, "Empty", stamp)

	if !strings.Contains(ics, "BEGIN:VCALENDAR") || !strings.Contains(ics, "END:VCALENDAR") {
		t.Error("empty export should still be a calendar")
	}
	if strings.Contains(ics, "BEGIN:VEVENT") {
		t.Error("empty export should have no events")
	}
}
