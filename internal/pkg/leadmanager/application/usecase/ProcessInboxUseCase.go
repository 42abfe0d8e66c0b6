// Package usecase implements the lead manager's application service: triage
// replies in the sales inbox and move the funnel accordingly, scheduling
// meetings through the calendar assistant.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/a2a"
	"github.com/sernur/SalesShortcut/internal/config"
	"github.com/sernur/SalesShortcut/internal/infrastructure/llm"
	"github.com/sernur/SalesShortcut/internal/pkg/lead"
	"github.com/sernur/SalesShortcut/internal/pkg/leadmanager/gmail"
)

// InboxReader is the slice of the Gmail adapter the triage needs.
type InboxReader interface {
	Unread(ctx context.Context, limit int) ([]gmail.Email, error)
	MarkRead(ctx context.Context, id string) error
}

// AgentCaller is the slice of the task client used to reach the calendar
// assistant.
type AgentCaller interface {
	SendData(ctx context.Context, taskID, contextID, operation string, data map[string]interface{}) (*a2a.Task, error)
}

// StatusNotifier reports funnel progress to the dashboard.
type StatusNotifier interface {
	Notify(ctx context.Context, businessID string, status lead.Status, message string, data map[string]interface{}) error
}

// Reply classifications.
const (
	replyMeetingRequest = "meeting_request"
	replyInterested     = "interested"
	replyNotInterested  = "not_interested"
	replyOther          = "other"
)

// InboxSummary is the sweep result returned to the dashboard.
type InboxSummary struct {
	Processed         int      `json:"processed"`
	MeetingsScheduled int      `json:"meetings_scheduled"`
	Details           []string `json:"details"`
}

// ProcessInboxUseCase runs one inbox sweep. The LLM is optional; keyword
// heuristics take over without it.
type ProcessInboxUseCase struct {
	Inbox    InboxReader
	Calendar AgentCaller
	LLM      llm.Generator
	Notifier StatusNotifier
	Logger   *zap.Logger
}

func NewProcessInboxUseCase(inbox InboxReader, calendar AgentCaller, gen llm.Generator, notifier StatusNotifier, logger *zap.Logger) *ProcessInboxUseCase {
	return &ProcessInboxUseCase{Inbox: inbox, Calendar: calendar, LLM: gen, Notifier: notifier, Logger: logger}
}

// Execute triages every unread reply. Per-email failures are recorded and
// skipped; the sweep itself only fails when the inbox cannot be read.
func (uc *ProcessInboxUseCase) Execute(ctx context.Context, contextID string) (*InboxSummary, error) {
	if uc.Inbox == nil {
		return nil, fmt.Errorf("usecase: no inbox configured")
	}

	emails, err := uc.Inbox.Unread(ctx, 20)
	if err != nil {
		return nil, fmt.Errorf("usecase: read inbox: %w", err)
	}

	summary := &InboxSummary{}
	for _, email := range emails {
		detail, scheduled := uc.triage(ctx, contextID, email)
		summary.Processed++
		summary.Details = append(summary.Details, detail)
		if scheduled {
			summary.MeetingsScheduled++
		}

		if err := uc.Inbox.MarkRead(ctx, email.ID); err != nil {
			uc.Logger.Warn("reply left unread", zap.String("email_id", email.ID), zap.Error(err))
		}
	}
	uc.Logger.Info("inbox sweep done",
		zap.Int("processed", summary.Processed),
		zap.Int("meetings", summary.MeetingsScheduled),
	)
	return summary, nil
}

func (uc *ProcessInboxUseCase) triage(ctx context.Context, contextID string, email gmail.Email) (string, bool) {
	classification := uc.classify(ctx, email)
	uc.Logger.Info("reply triaged",
		zap.String("from", email.Address),
		zap.String("classification", classification),
	)

	// Replies are keyed by sender address; the dashboard materializes senders
	// it has not seen as new leads.
	data := map[string]interface{}{
		"name": senderName(email),
		"city": "unknown",
	}

	switch classification {
	case replyMeetingRequest:
		if uc.schedule(ctx, contextID, email) {
			_ = uc.notify(ctx, email.Address, lead.StatusMeetingScheduled, "Meeting scheduled with "+email.Address, data)
			return fmt.Sprintf("%s: meeting scheduled", email.Address), true
		}
		_ = uc.notify(ctx, email.Address, lead.StatusConverting, "Meeting requested, scheduling failed", data)
		return fmt.Sprintf("%s: meeting requested, scheduling failed", email.Address), false
	case replyInterested:
		_ = uc.notify(ctx, email.Address, lead.StatusConverting, "Positive reply received", data)
		return fmt.Sprintf("%s: interested", email.Address), false
	case replyNotInterested:
		_ = uc.notify(ctx, email.Address, lead.StatusNotInterested, "Prospect declined by email", data)
		return fmt.Sprintf("%s: not interested", email.Address), false
	default:
		_ = uc.notify(ctx, email.Address, lead.StatusEngaged, "Reply received: "+email.Subject, data)
		return fmt.Sprintf("%s: reply noted", email.Address), false
	}
}

func (uc *ProcessInboxUseCase) notify(ctx context.Context, businessID string, status lead.Status, message string, data map[string]interface{}) error {
	if uc.Notifier == nil {
		return nil
	}
	return uc.Notifier.Notify(ctx, businessID, status, message, data)
}

func (uc *ProcessInboxUseCase) schedule(ctx context.Context, contextID string, email gmail.Email) bool {
	if uc.Calendar == nil {
		return false
	}
	task, err := uc.Calendar.SendData(ctx, "calendar-"+email.ID, contextID, "schedule_meeting", map[string]interface{}{
		"attendee_email": email.Address,
		"attendee_name":  senderName(email),
		"topic":          "Website demo walkthrough",
	})
	if err != nil {
		uc.Logger.Warn("meeting not scheduled", zap.String("attendee", email.Address), zap.Error(err))
		return false
	}
	return task.ArtifactData(config.CalendarArtifact) != nil
}

// classify maps a reply to a funnel action, via the model when available.
func (uc *ProcessInboxUseCase) classify(ctx context.Context, email gmail.Email) string {
	if uc.LLM != nil {
		prompt := fmt.Sprintf(
			"A prospect replied to a cold email about building them a website. Classify the reply. "+
				"Answer with exactly one word: meeting_request, interested, not_interested, or other.\n\n"+
				"Subject: %s\n\n%s",
			email.Subject, email.Body,
		)
		if answer, err := uc.LLM.Generate(ctx, prompt); err == nil {
			answer = strings.ToLower(answer)
			for _, c := range []string{replyMeetingRequest, replyNotInterested, replyInterested, replyOther} {
				if strings.Contains(answer, c) {
					return c
				}
			}
		} else {
			uc.Logger.Warn("reply triage fell back to heuristics", zap.Error(err))
		}
	}

	text := strings.ToLower(email.Subject + " " + email.Body)
	switch {
	case strings.Contains(text, "meeting"), strings.Contains(text, "schedule"), strings.Contains(text, "calendar"):
		return replyMeetingRequest
	case strings.Contains(text, "not interested"), strings.Contains(text, "unsubscribe"), strings.Contains(text, "stop"):
		return replyNotInterested
	case strings.Contains(text, "interested"), strings.Contains(text, "demo"), strings.Contains(text, "yes"):
		return replyInterested
	}
	return replyOther
}

func senderName(email gmail.Email) string {
	name := email.From
	if i := strings.Index(name, "<"); i != -1 {
		name = name[:i]
	}
	name = strings.Trim(strings.TrimSpace(name), `"`)
	if name == "" {
		return email.Address
	}
	return name
}
