// Package usecase implements the calendar assistant's application service.
package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/pkg/calendar/scheduler"
	"github.com/sernur/SalesShortcut/internal/pkg/lead"
)

// EventScheduler creates events. *scheduler.GoogleCalendar satisfies it.
type EventScheduler interface {
	Schedule(ctx context.Context, attendeeEmail, topic string, start, end time.Time) (*scheduler.Meeting, error)
}

// StatusNotifier reports calendar activity to the dashboard.
type StatusNotifier interface {
	Notify(ctx context.Context, businessID string, status lead.Status, message string, data map[string]interface{}) error
}

const meetingDuration = 30 * time.Minute

// ScheduleMeetingInput describes one meeting request.
type ScheduleMeetingInput struct {
	AttendeeEmail string
	AttendeeName  string
	Topic         string
}

// ScheduleMeetingResult is the decision returned to the lead manager.
type ScheduleMeetingResult struct {
	Meeting   *scheduler.Meeting
	Simulated bool
}

// ScheduleMeetingUseCase books the next free demo slot. Without a calendar
// backend the slot is proposed but no event exists, so the pipeline still
// completes in local runs.
type ScheduleMeetingUseCase struct {
	Scheduler EventScheduler
	Notifier  StatusNotifier
	Logger    *zap.Logger

	// Now is swappable for deterministic slot tests.
	Now func() time.Time
}

func NewScheduleMeetingUseCase(sched EventScheduler, notifier StatusNotifier, logger *zap.Logger) *ScheduleMeetingUseCase {
	return &ScheduleMeetingUseCase{Scheduler: sched, Notifier: notifier, Logger: logger, Now: time.Now}
}

// Execute books the meeting and reports it to the dashboard.
func (uc *ScheduleMeetingUseCase) Execute(ctx context.Context, in ScheduleMeetingInput) (*ScheduleMeetingResult, error) {
	if in.AttendeeEmail == "" {
		return nil, fmt.Errorf("usecase: attendee email is required")
	}
	if in.Topic == "" {
		in.Topic = "Website demo walkthrough"
	}
	if in.AttendeeName == "" {
		in.AttendeeName = in.AttendeeEmail
	}

	start := NextDemoSlot(uc.Now())
	end := start.Add(meetingDuration)

	result := &ScheduleMeetingResult{}
	if uc.Scheduler == nil {
		uc.Logger.Info("meeting proposed, no calendar configured",
			zap.String("attendee", in.AttendeeEmail),
			zap.Time("start", start),
		)
		result.Meeting = &scheduler.Meeting{Start: start, End: end, Attendee: in.AttendeeEmail}
		result.Simulated = true
	} else {
		meeting, err := uc.Scheduler.Schedule(ctx, in.AttendeeEmail, in.Topic, start, end)
		if err != nil {
			return nil, fmt.Errorf("usecase: schedule with %s: %w", in.AttendeeEmail, err)
		}
		result.Meeting = meeting
	}

	if uc.Notifier != nil {
		message := fmt.Sprintf("Meeting with %s on %s", in.AttendeeEmail, start.Format("Mon Jan 2 15:04"))
		_ = uc.Notifier.Notify(ctx, in.AttendeeEmail, lead.StatusMeetingScheduled, message, map[string]interface{}{
			"name":       in.AttendeeName,
			"city":       "unknown",
			"event_link": result.Meeting.Link,
			"start_time": start.Format(time.RFC3339),
		})
	}
	return result, nil
}

// NextDemoSlot returns 10:00 local time on the next business day.
func NextDemoSlot(now time.Time) time.Time {
	day := now.AddDate(0, 0, 1)
	for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, 1)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, now.Location())
}
