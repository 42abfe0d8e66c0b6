// Package scheduler creates meeting events on the sales calendar through the
// Google Calendar API, delegated to the sales address like the Gmail inbox.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Meeting is a created (or proposed) calendar event.
type Meeting struct {
	EventID  string    `json:"event_id,omitempty"`
	Link     string    `json:"link,omitempty"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Attendee string    `json:"attendee"`
}

// GoogleCalendar creates real events on the delegated sales calendar.
type GoogleCalendar struct {
	svc  *calendarapi.Service
	user string
}

// NewGoogleCalendarFromEnv reads SERVICE_ACCOUNT_FILE and SALES_EMAIL, the
// same pair the Gmail inbox uses.
func NewGoogleCalendarFromEnv(ctx context.Context) (*GoogleCalendar, error) {
	keyPath := os.Getenv("SERVICE_ACCOUNT_FILE")
	user := os.Getenv("SALES_EMAIL")
	if keyPath == "" || user == "" {
		return nil, errors.New("scheduler: SERVICE_ACCOUNT_FILE and SALES_EMAIL are required")
	}

	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("scheduler: read key: %w", err)
	}
	cfg, err := google.JWTConfigFromJSON(key, calendarapi.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("scheduler: parse key: %w", err)
	}
	cfg.Subject = user

	svc, err := calendarapi.NewService(ctx, option.WithTokenSource(cfg.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("scheduler: connect: %w", err)
	}
	return &GoogleCalendar{svc: svc, user: user}, nil
}

// Schedule inserts the event and invites the attendee.
func (g *GoogleCalendar) Schedule(ctx context.Context, attendeeEmail, topic string, start, end time.Time) (*Meeting, error) {
	event := &calendarapi.Event{
		Summary:     topic,
		Description: "Scheduled by SalesShortcut",
		Start:       &calendarapi.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:         &calendarapi.EventDateTime{DateTime: end.Format(time.RFC3339)},
		Attendees:   []*calendarapi.EventAttendee{{Email: attendeeEmail}},
	}

	created, err := g.svc.Events.Insert("primary", event).SendUpdates("all").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("scheduler: insert event: %w", err)
	}

	return &Meeting{
		EventID:  created.Id,
		Link:     created.HtmlLink,
		Start:    start,
		End:      end,
		Attendee: attendeeEmail,
	}, nil
}
