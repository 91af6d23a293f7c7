package gcal

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/pfrederiksen/acal-sync/internal/logger"
	"github.com/pfrederiksen/acal-sync/internal/reconcile"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	calendarPageSize = 250
	eventPageSize    = 2500
)

// Client talks to the Google Calendar API.
type Client struct {
	svc *calendar.Service
}

// New creates a Client. opts are passed to calendar.NewService, typically
// option.WithCredentialsFile.
func New(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// EnsureCalendar returns the id of the first calendar whose summary equals
// name, creating one in timeZone if none exists.
func (c *Client) EnsureCalendar(ctx context.Context, name, timeZone string) (string, error) {
	pageToken := ""
	for {
		call := c.svc.CalendarList.List().MaxResults(calendarPageSize).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		list, err := call.Do()
		if err != nil {
			return "", fmt.Errorf("failed to list calendars: %w", err)
		}
		for _, item := range list.Items {
			if item.Summary == name {
				logger.Info("found existing calendar", logger.Fields{"name": name, "id": item.Id})
				return item.Id, nil
			}
		}
		if list.NextPageToken == "" {
			break
		}
		pageToken = list.NextPageToken
	}

	created, err := c.svc.Calendars.Insert(&calendar.Calendar{Summary: name, TimeZone: timeZone}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create calendar %q: %w", name, err)
	}
	logger.Info("created calendar", logger.Fields{"name": name, "id": created.Id})
	return created.Id, nil
}

// ListEvents returns every non-deleted entry of calendarID overlapping
// [timeMin, timeMax), following pagination to the end.
func (c *Client) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]reconcile.RemoteEvent, error) {
	out := make([]reconcile.RemoteEvent, 0)
	pageToken := ""
	for {
		call := c.svc.Events.List(calendarID).
			TimeMin(timeMin.Format(time.RFC3339)).
			TimeMax(timeMax.Format(time.RFC3339)).
			SingleEvents(true).
			ShowDeleted(false).
			MaxResults(eventPageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		page, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list events: %w", err)
		}
		for _, item := range page.Items {
			out = append(out, toRemote(item))
		}
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	logger.Info("listed events", logger.Fields{
		"count":    len(out),
		"time_min": timeMin.Format(time.RFC3339),
		"time_max": timeMax.Format(time.RFC3339),
	})
	return out, nil
}

// Calendar returns a reconcile.Store bound to calendarID.
func (c *Client) Calendar(calendarID string) *Calendar {
	return &Calendar{svc: c.svc, id: calendarID}
}

// Calendar applies mutations to one calendar.
type Calendar struct {
	svc *calendar.Service
	id  string
}

var _ reconcile.Store = (*Calendar)(nil)

// Insert creates an entry and returns its id.
func (c *Calendar) Insert(ctx context.Context, body reconcile.EventBody) (string, error) {
	created, err := c.svc.Events.Insert(c.id, toWire(body)).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to insert event %q: %w", body.Summary, err)
	}
	return created.Id, nil
}

// Patch overwrites the fields carried by body on entry id.
func (c *Calendar) Patch(ctx context.Context, id string, body reconcile.EventBody) error {
	if _, err := c.svc.Events.Patch(c.id, id, toWire(body)).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to patch event %s: %w", id, err)
	}
	return nil
}

// Delete removes entry id.
func (c *Calendar) Delete(ctx context.Context, id string) error {
	if err := c.svc.Events.Delete(c.id, id).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	return nil
}

// toRemote keeps the fields the engine needs. Timed or malformed entries get
// zero dates.
func toRemote(item *calendar.Event) reconcile.RemoteEvent {
	ev := reconcile.RemoteEvent{
		ID:      item.Id,
		Title:   item.Summary,
		ColorID: item.ColorId,
		Private: map[string]string{},
	}
	if item.ExtendedProperties != nil && item.ExtendedProperties.Private != nil {
		ev.Private = item.ExtendedProperties.Private
	}
	if item.Start == nil || item.End == nil {
		return ev
	}

	start, errStart := civil.ParseDate(item.Start.Date)
	end, errEnd := civil.ParseDate(item.End.Date)
	if errStart != nil || errEnd != nil {
		return ev
	}
	ev.Start, ev.EndExclusive = start, end
	return ev
}

func toWire(body reconcile.EventBody) *calendar.Event {
	evt := &calendar.Event{
		Summary:     body.Summary,
		Description: body.Description,
		Start:       &calendar.EventDateTime{Date: body.Start.String()},
		End:         &calendar.EventDateTime{Date: body.EndExclusive.String()},
		ColorId:     body.ColorID,
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: body.Private,
		},
		Reminders: &calendar.EventReminders{UseDefault: true},
	}
	if body.ReminderMinutes != nil {
		evt.Reminders = &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: int64(*body.ReminderMinutes), ForceSendFields: []string{"Minutes"}},
			},
			ForceSendFields: []string{"UseDefault"},
		}
	}
	return evt
}
