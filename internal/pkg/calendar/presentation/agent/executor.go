// Package agent exposes the calendar assistant over the task protocol.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/sernur/SalesShortcut/internal/a2a"
	"github.com/sernur/SalesShortcut/internal/config"
	"github.com/sernur/SalesShortcut/internal/pkg/calendar/application/usecase"
)

// Executor handles schedule_meeting tasks from the lead manager.
type Executor struct {
	scheduleUC *usecase.ScheduleMeetingUseCase
}

var _ a2a.Executor = (*Executor)(nil)

func NewExecutor(scheduleUC *usecase.ScheduleMeetingUseCase) *Executor {
	return &Executor{scheduleUC: scheduleUC}
}

func (e *Executor) Execute(ctx context.Context, req *a2a.Request) (*a2a.Result, error) {
	if op := req.Operation(); op != "" && op != "schedule_meeting" {
		return nil, fmt.Errorf("agent: unsupported operation %q", op)
	}

	attendee, _ := req.Data["attendee_email"].(string)
	name, _ := req.Data["attendee_name"].(string)
	topic, _ := req.Data["topic"].(string)

	result, err := e.scheduleUC.Execute(ctx, usecase.ScheduleMeetingInput{
		AttendeeEmail: attendee,
		AttendeeName:  name,
		Topic:         topic,
	})
	if err != nil {
		return nil, err
	}

	meeting := result.Meeting
	return &a2a.Result{
		Message:      fmt.Sprintf("Meeting scheduled with %s", attendee),
		ArtifactName: config.CalendarArtifact,
		Data: map[string]interface{}{
			"status":     "scheduled",
			"event_id":   meeting.EventID,
			"event_link": meeting.Link,
			"start_time": meeting.Start.Format(time.RFC3339),
			"end_time":   meeting.End.Format(time.RFC3339),
			"attendee":   meeting.Attendee,
			"simulated":  result.Simulated,
		},
	}, nil
}
