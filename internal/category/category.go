// Package category classifies calendar titles into a fixed set of display
// categories using ordered keyword rules.
package category

import (
	"fmt"
	"regexp"
)

// Category is the display treatment shared by a group of calendar entries.
type Category struct {
	Name    string `json:"name"`
	Emoji   string `json:"emoji"`
	ColorID string `json:"color_id"` // Google Calendar event colorId, "1".."11"

	// ReminderMinutes is the popup lead time. Nil keeps the calendar's defaults.
	ReminderMinutes *int `json:"reminder_minutes,omitempty"`
}

// HasReminder reports whether the category overrides default reminders.
func (c Category) HasReminder() bool {
	return c.ReminderMinutes != nil
}

// Rule maps a category to the patterns that select it.
type Rule struct {
	Category Category
	Patterns []*regexp.Regexp
}

// NewRule compiles each pattern case-insensitively.
func NewRule(cat Category, patterns ...string) (Rule, error) {
	rule := Rule{Category: cat, Patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return Rule{}, fmt.Errorf("compiling pattern %q for %s: %w", p, cat.Name, err)
		}
		rule.Patterns = append(rule.Patterns, re)
	}
	return rule, nil
}

// MustRule is like NewRule but panics on an invalid pattern.
func MustRule(cat Category, patterns ...string) Rule {
	rule, err := NewRule(cat, patterns...)
	if err != nil {
		panic(err)
	}
	return rule
}

// Matches reports whether any pattern matches the title.
func (r Rule) Matches(title string) bool {
	for _, p := range r.Patterns {
		if p.MatchString(title) {
			return true
		}
	}
	return false
}

// Table is an ordered rule list plus the category used when nothing matches.
// Rule order decides ties: the earliest matching rule wins.
type Table struct {
	rules    []Rule
	fallback Category
}

// NewTable builds a table. The rules slice is copied.
func NewTable(fallback Category, rules ...Rule) *Table {
	return &Table{
		rules:    append([]Rule(nil), rules...),
		fallback: fallback,
	}
}

// Categorize returns the first category whose rule matches the raw title.
func (t *Table) Categorize(title string) Category {
	for _, r := range t.rules {
		if r.Matches(title) {
			return r.Category
		}
	}
	return t.fallback
}

// Fallback returns the category used for unmatched titles.
func (t *Table) Fallback() Category {
	return t.fallback
}

// Categories lists the rule categories in priority order.
func (t *Table) Categories() []Category {
	out := make([]Category, 0, len(t.rules))
	for _, r := range t.rules {
		out = append(out, r.Category)
	}
	return out
}
