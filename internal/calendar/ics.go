package calendar

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	ical "github.com/arran4/golang-ical"
	"github.com/pfrederiksen/acal-sync/internal/category"
	"github.com/pfrederiksen/acal-sync/internal/event"
)

const (
	productID  = "-//acal-sync//acal-sync//EN"
	uidDomain  = "acal-sync"
	dateLayout = "20060102"
)

// GenerateICS renders events as all-day VEVENTs. Each event is decorated
// with its category: the summary gets the emoji, CATEGORIES the name, and
// categories with a reminder lead time get a display alarm. A nil table
// selects category.Default; an empty name omits X-WR-CALNAME.
func GenerateICS(events []event.ParsedEvent, cats *category.Table, name string, now time.Time) string {
	if cats == nil {
		cats = category.Default()
	}

	cal := ical.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ical.MethodPublish)
	if name != "" {
		cal.SetXWRCalName(name)
	}

	for _, evt := range events {
		cat := cats.Categorize(evt.TitleRaw)

		ve := cal.AddEvent(fmt.Sprintf("%s@%s", evt.UID(), uidDomain))
		ve.SetDtStampTime(now.UTC())
		setDate(ve, ical.ComponentPropertyDtStart, evt.Start)
		// DTEND is exclusive for all-day events.
		setDate(ve, ical.ComponentPropertyDtEnd, evt.EndExclusive())
		ve.SetSummary(cat.Emoji + " " + evt.TitleRaw)
		ve.SetProperty(ical.ComponentPropertyCategories, cat.Name)
		if evt.SourceURL != "" {
			ve.SetDescription("Source: " + evt.SourceURL)
			ve.SetURL(evt.SourceURL)
		}
		ve.SetStatus(ical.ObjectStatusConfirmed)

		if cat.HasReminder() {
			alarm := ve.AddAlarm()
			alarm.SetAction(ical.ActionDisplay)
			alarm.SetTrigger(fmt.Sprintf("-PT%dM", *cat.ReminderMinutes))
			alarm.SetProperty(ical.ComponentPropertyDescription, evt.TitleRaw)
		}
	}

	return cal.Serialize(ical.WithNewLineWindows)
}

func setDate(ve *ical.VEvent, prop ical.ComponentProperty, d civil.Date) {
	ve.SetProperty(prop, d.In(time.UTC).Format(dateLayout), ical.WithValue(string(ical.ValueDataTypeDate)))
}
