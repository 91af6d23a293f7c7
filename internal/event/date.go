package event

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/araddon/dateparse"
)

// Supported cell formats, tried in this order:
//
//	"11 Jul 2025"
//	"01-04 Sep 2025"
//	"03 Aug - 01 Sep 2026"
//	"29 Sep 2025 13 Jan 2026"
//
// Anything else goes through a day-first single-date parse.
var (
	singleDatePattern = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3,})\s+(\d{4})$`)
	sameMonthPattern  = regexp.MustCompile(`^(\d{1,2})\s*[-–—]\s*(\d{1,2})\s+([A-Za-z]{3,})\s+(\d{4})$`)
	crossMonthPattern = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3,})\s*[-–—]\s*(\d{1,2})\s+([A-Za-z]{3,})\s+(\d{4})$`)
	twoDatesPattern   = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3,})\s+(\d{4})\s+(\d{1,2})\s+([A-Za-z]{3,})\s+(\d{4})$`)

	// Numeric dates are always day-first: "11.07.2025", "14-12-2025", "11/07/2025".
	numericDatePattern = regexp.MustCompile(`^(\d{1,2})([./-])(\d{1,2})([./-])(\d{4})$`)
	digitRunPattern    = regexp.MustCompile(`\d+`)
	wordPattern        = regexp.MustCompile(`[A-Za-z]+`)
)

// minYear rejects fallback results built from a truncated year ("1 Jan 2").
const minYear = 1000

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// ParseDateRange converts a date cell into an inclusive (start, end) pair.
// ok is false when the text is empty, unrecognized, names an impossible day,
// or describes a range whose end precedes its start.
func ParseDateRange(text string) (start, end civil.Date, ok bool) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return civil.Date{}, civil.Date{}, false
	}

	if m := singleDatePattern.FindStringSubmatch(text); m != nil {
		d, ok := resolveDate(m[1], m[2], m[3])
		return d, d, ok
	}

	if m := sameMonthPattern.FindStringSubmatch(text); m != nil {
		s, ok1 := resolveDate(m[1], m[3], m[4])
		e, ok2 := resolveDate(m[2], m[3], m[4])
		return checkedRange(s, e, ok1 && ok2)
	}

	if m := crossMonthPattern.FindStringSubmatch(text); m != nil {
		s, ok1 := resolveDate(m[1], m[2], m[5])
		e, ok2 := resolveDate(m[3], m[4], m[5])
		return checkedRange(s, e, ok1 && ok2)
	}

	if m := twoDatesPattern.FindStringSubmatch(text); m != nil {
		s, ok1 := resolveDate(m[1], m[2], m[3])
		e, ok2 := resolveDate(m[4], m[5], m[6])
		return checkedRange(s, e, ok1 && ok2)
	}

	d, ok := parseSingleDate(text)
	return d, d, ok
}

func checkedRange(start, end civil.Date, ok bool) (civil.Date, civil.Date, bool) {
	if !ok || end.Before(start) {
		return civil.Date{}, civil.Date{}, false
	}
	return start, end, true
}

// resolveDate builds a date from day, month-name and year tokens.
func resolveDate(day, month, year string) (civil.Date, bool) {
	m := parseMonth(month)
	if m == 0 {
		return civil.Date{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return civil.Date{}, false
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return civil.Date{}, false
	}
	return exactDate(y, m, d)
}

// exactDate rejects days that time.Date would normalize, so "31 Feb" does
// not silently become March.
func exactDate(y int, m time.Month, d int) (civil.Date, bool) {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || t.Month() != m {
		return civil.Date{}, false
	}
	return civil.DateOf(t), true
}

// parseMonth accepts a full month name or any prefix of at least three letters.
func parseMonth(name string) time.Month {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) < 3 {
		return 0
	}
	for i, full := range monthNames {
		if strings.HasPrefix(full, name) {
			return time.Month(i + 1)
		}
	}
	return 0
}

// parseSingleDate is the last resort: one day-first date with no time of day.
// Input that does not name a day, a month and a year is rejected.
func parseSingleDate(text string) (civil.Date, bool) {
	if m := numericDatePattern.FindStringSubmatch(text); m != nil {
		if m[2] != m[4] {
			return civil.Date{}, false
		}
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[3])
		y, _ := strconv.Atoi(m[5])
		if mo < 1 || mo > 12 {
			return civil.Date{}, false
		}
		return exactDate(y, time.Month(mo), d)
	}

	if dateComponents(text) < 3 {
		return civil.Date{}, false
	}
	t, err := dateparse.ParseIn(text, time.UTC, dateparse.PreferMonthFirst(false))
	if err != nil {
		return civil.Date{}, false
	}
	if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
		return civil.Date{}, false
	}
	if t.Year() < minYear {
		return civil.Date{}, false
	}
	return civil.DateOf(t), true
}

// dateComponents counts numeric runs plus one for a month name.
func dateComponents(text string) int {
	n := len(digitRunPattern.FindAllString(text, -1))
	for _, w := range wordPattern.FindAllString(text, -1) {
		if parseMonth(w) != 0 {
			return n + 1
		}
	}
	return n
}
