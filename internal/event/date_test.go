package event

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
)

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantStart civil.Date
		wantEnd   civil.Date
		wantOK    bool
	}{
		{
			name:      "single date",
			text:      "11 Jul 2025",
			wantStart: date(2025, time.July, 11),
			wantEnd:   date(2025, time.July, 11),
			wantOK:    true,
		},
		{
			name:      "same month range",
			text:      "01-04 Sep 2025",
			wantStart: date(2025, time.September, 1),
			wantEnd:   date(2025, time.September, 4),
			wantOK:    true,
		},
		{
			name:      "same month range with spaces around dash",
			text:      "1 - 4 Sep 2025",
			wantStart: date(2025, time.September, 1),
			wantEnd:   date(2025, time.September, 4),
			wantOK:    true,
		},
		{
			name:      "cross month range",
			text:      "03 Aug - 01 Sep 2026",
			wantStart: date(2026, time.August, 3),
			wantEnd:   date(2026, time.September, 1),
			wantOK:    true,
		},
		{
			name:      "cross month range with en dash",
			text:      "10 Nov – 05 Dec 2025",
			wantStart: date(2025, time.November, 10),
			wantEnd:   date(2025, time.December, 5),
			wantOK:    true,
		},
		{
			name:      "two full dates without separator",
			text:      "29 Sep 2025 13 Jan 2026",
			wantStart: date(2025, time.September, 29),
			wantEnd:   date(2026, time.January, 13),
			wantOK:    true,
		},
		{
			name:      "full month name, mixed case",
			text:      "5 sEPTember 2025",
			wantStart: date(2025, time.September, 5),
			wantEnd:   date(2025, time.September, 5),
			wantOK:    true,
		},
		{
			name:      "four letter abbreviation",
			text:      "5 Sept 2025",
			wantStart: date(2025, time.September, 5),
			wantEnd:   date(2025, time.September, 5),
			wantOK:    true,
		},
		{
			name:      "extra whitespace is collapsed",
			text:      "  11 \n Jul\t2025 ",
			wantStart: date(2025, time.July, 11),
			wantEnd:   date(2025, time.July, 11),
			wantOK:    true,
		},
		{
			name:      "ISO fallback",
			text:      "2025-07-11",
			wantStart: date(2025, time.July, 11),
			wantEnd:   date(2025, time.July, 11),
			wantOK:    true,
		},
		{
			name:      "dotted numeric date is day first",
			text:      "11.07.2025",
			wantStart: date(2025, time.July, 11),
			wantEnd:   date(2025, time.July, 11),
			wantOK:    true,
		},
		{
			name:      "dashed numeric date is day first",
			text:      "14-12-2025",
			wantStart: date(2025, time.December, 14),
			wantEnd:   date(2025, time.December, 14),
			wantOK:    true,
		},
		{
			name:      "slashed numeric date is day first",
			text:      "11/07/2025",
			wantStart: date(2025, time.July, 11),
			wantEnd:   date(2025, time.July, 11),
			wantOK:    true,
		},
		{
			name:   "numeric date with impossible month",
			text:   "07.13.2025",
			wantOK: false,
		},
		{
			name:   "numeric date with mixed separators",
			text:   "11.07/2025",
			wantOK: false,
		},
		{
			name:   "year only",
			text:   "2025",
			wantOK: false,
		},
		{
			name:   "month and year only",
			text:   "July 2025",
			wantOK: false,
		},
		{
			name:   "truncated year",
			text:   "1 Jan 2",
			wantOK: false,
		},
		{
			name:   "date with time of day",
			text:   "2025-07-11 10:30",
			wantOK: false,
		},
		{
			name:   "reversed same month range",
			text:   "05-01 Sep 2025",
			wantOK: false,
		},
		{
			name:   "reversed cross month range",
			text:   "10 Dec - 05 Nov 2025",
			wantOK: false,
		},
		{
			name:   "reversed full dates",
			text:   "13 Jan 2026 29 Sep 2025",
			wantOK: false,
		},
		{
			name:   "impossible day",
			text:   "31 Feb 2025",
			wantOK: false,
		},
		{
			name:   "unknown month",
			text:   "11 Foo 2025",
			wantOK: false,
		},
		{
			name:   "empty",
			text:   "",
			wantOK: false,
		},
		{
			name:   "whitespace only",
			text:   "   \t ",
			wantOK: false,
		},
		{
			name:   "free text",
			text:   "To be announced",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := ParseDateRange(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ParseDateRange(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if !ok {
				if start != (civil.Date{}) || end != (civil.Date{}) {
					t.Errorf("ParseDateRange(%q) returned partial result %v..%v", tt.text, start, end)
				}
				return
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("ParseDateRange(%q) = %v..%v, want %v..%v", tt.text, start, end, tt.wantStart, tt.wantEnd)
			}
			if end.Before(start) {
				t.Errorf("ParseDateRange(%q) returned end before start", tt.text)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name string
		want time.Month
	}{
		{"Jan", time.January},
		{"january", time.January},
		{"MAY", time.May},
		{"Jun", time.June},
		{"Jul", time.July},
		{"Sept", time.September},
		{"Ma", 0},
		{"Mayo", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseMonth(tt.name); got != tt.want {
				t.Errorf("parseMonth(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
