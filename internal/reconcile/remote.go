package reconcile

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
)

// Listing window around "today", wide enough to cover a full academic year
// in both directions.
const (
	lookbackDays  = 400
	lookaheadDays = 800
)

// RemoteEvent is the part of a remote all-day entry the engine inspects.
// EndExclusive follows all-day semantics: one day past the last covered day.
// Dates are the zero civil.Date when the remote entry is not an all-day event.
type RemoteEvent struct {
	ID           string
	Title        string
	Start        civil.Date
	EndExclusive civil.Date
	Private      map[string]string
	ColorID      string
}

// HasDates reports whether both stored dates were readable.
func (e RemoteEvent) HasDates() bool {
	return e.Start.IsValid() && e.EndExclusive.IsValid()
}

// EndInclusive returns the last covered day.
func (e RemoteEvent) EndInclusive() civil.Date {
	return e.EndExclusive.AddDays(-1)
}

// Tags names the private metadata keys that mark an entry as ours.
type Tags struct {
	TagKey   string `yaml:"tag_key"`
	TagValue string `yaml:"tag_value"`
	UIDKey   string `yaml:"uid_key"`
	SrcKey   string `yaml:"src_key"`
}

// DefaultTags are the metadata keys written by every release so far.
var DefaultTags = Tags{
	TagKey:   "sac_tag",
	TagValue: "1",
	UIDKey:   "sac_uid",
	SrcKey:   "sac_src",
}

// Owns reports whether the entry carries the ownership tag and a non-empty UID.
func (t Tags) Owns(e RemoteEvent) bool {
	return e.Private[t.TagKey] == t.TagValue && e.Private[t.UIDKey] != ""
}

// UID returns the identity stored on the entry.
func (t Tags) UID(e RemoteEvent) string {
	return e.Private[t.UIDKey]
}

// Store applies mutations to one remote calendar.
type Store interface {
	Insert(ctx context.Context, body EventBody) (string, error)
	Patch(ctx context.Context, id string, body EventBody) error
	Delete(ctx context.Context, id string) error
}

// Window returns the half-open listing range [timeMin, timeMax) around today,
// as midnights in loc.
func Window(today civil.Date, loc *time.Location) (timeMin, timeMax time.Time) {
	timeMin = today.AddDays(-lookbackDays).In(loc)
	timeMax = today.AddDays(lookaheadDays + 1).In(loc)
	return timeMin, timeMax
}
