package reconcile

import (
	"cloud.google.com/go/civil"
	"github.com/pfrederiksen/acal-sync/internal/category"
	"github.com/pfrederiksen/acal-sync/internal/event"
)

// EventBody is the desired state of one remote all-day entry.
type EventBody struct {
	Summary         string
	Description     string
	Start           civil.Date
	EndExclusive    civil.Date
	ColorID         string
	Private         map[string]string
	ReminderMinutes *int // nil keeps the calendar's default reminders
}

// buildBody decorates a parsed event with its category and ownership metadata.
func buildBody(evt event.ParsedEvent, cat category.Category, uid, sourceURL string, tags Tags) EventBody {
	return EventBody{
		Summary:      cat.Emoji + " " + evt.TitleRaw,
		Description:  "Source: " + sourceURL,
		Start:        evt.Start,
		EndExclusive: evt.EndExclusive(),
		ColorID:      cat.ColorID,
		Private: map[string]string{
			tags.TagKey: tags.TagValue,
			tags.UIDKey: uid,
			tags.SrcKey: sourceURL,
		},
		ReminderMinutes: cat.ReminderMinutes,
	}
}
