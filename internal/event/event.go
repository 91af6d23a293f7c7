package event

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"cloud.google.com/go/civil"
)

// UIDLength is the number of hex characters kept from the SHA-256 digest.
const UIDLength = 24

var (
	punctPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)
	spacePattern = regexp.MustCompile(`\s+`)

	// Dotted capital I lower-cases to "i" plus a combining dot above, which
	// punctPattern then splits off: "İstanbul" normalizes to "i stanbul".
	dottedCapitalI = strings.NewReplacer("İ", "i\u0307")
)

// ParsedEvent is one calendar row scraped from the source page.
// End is inclusive and never before Start.
type ParsedEvent struct {
	TitleRaw  string     `json:"title"`
	Start     civil.Date `json:"start"`
	End       civil.Date `json:"end"`
	SourceURL string     `json:"source_url"`
}

// NewParsedEvent builds a ParsedEvent. It reports false if end is before start.
func NewParsedEvent(title string, start, end civil.Date, sourceURL string) (ParsedEvent, bool) {
	if end.Before(start) {
		return ParsedEvent{}, false
	}
	return ParsedEvent{
		TitleRaw:  title,
		Start:     start,
		End:       end,
		SourceURL: sourceURL,
	}, true
}

// NormalizedTitle returns the title in the form used for identity and matching.
func (e ParsedEvent) NormalizedTitle() string {
	return NormalizeTitle(e.TitleRaw)
}

// UID returns the deterministic identity of the event.
func (e ParsedEvent) UID() string {
	return UID(e.Start.String(), e.End.String(), e.NormalizedTitle())
}

// EndExclusive returns the day after the last covered day, as all-day
// calendar entries store it.
func (e ParsedEvent) EndExclusive() civil.Date {
	return e.End.AddDays(1)
}

// NormalizeTitle lower-cases a title, turns punctuation runs (emoji included)
// into single spaces and collapses whitespace. It is idempotent.
func NormalizeTitle(title string) string {
	s := strings.ToLower(dottedCapitalI.Replace(strings.TrimSpace(title)))
	s = punctPattern.ReplaceAllString(s, " ")
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// UID fingerprints an inclusive date range and a normalized title.
func UID(startISO, endISO, normalizedTitle string) string {
	sum := sha256.Sum256([]byte(startISO + "|" + endISO + "|" + normalizedTitle))
	return hex.EncodeToString(sum[:])[:UIDLength]
}
