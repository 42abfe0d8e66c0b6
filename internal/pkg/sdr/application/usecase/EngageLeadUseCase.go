// Package usecase implements the SDR's application service: pick a channel,
// run the first outreach touch, and walk the lead down the funnel based on
// the outcome.
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/a2a"
	"github.com/sernur/SalesShortcut/internal/config"
	"github.com/sernur/SalesShortcut/internal/infrastructure/llm"
	"github.com/sernur/SalesShortcut/internal/pkg/lead"
	"github.com/sernur/SalesShortcut/internal/pkg/sdr/application/state"
)

// AgentCaller is the slice of the task client the SDR needs.
type AgentCaller interface {
	SendData(ctx context.Context, taskID, contextID, operation string, data map[string]interface{}) (*a2a.Task, error)
}

// StatusNotifier reports funnel progress to the dashboard.
type StatusNotifier interface {
	Notify(ctx context.Context, businessID string, status lead.Status, message string, data map[string]interface{}) error
	NotifyLead(ctx context.Context, l *lead.Lead, status lead.Status, message string) error
}

// InputRequester files a human-input request with the dashboard.
type InputRequester interface {
	RequestInput(ctx context.Context, requestID, prompt, inputType string) error
}

// Channel is the outreach medium chosen for the first touch.
type Channel string

const (
	ChannelPhone Channel = "phone"
	ChannelEmail Channel = "email"
)

// EngageLeadUseCase runs one lead engagement end to end. LLM, Inputs and
// Requester are optional; without them the use case falls back to a phone
// first heuristic and skips the demo-site approval step.
type EngageLeadUseCase struct {
	Outreach  AgentCaller
	LLM       llm.Generator
	Notifier  StatusNotifier
	Inputs    *state.PendingInputs
	Requester InputRequester
	Logger    *zap.Logger

	// ApprovalTimeout bounds the wait for the operator's demo-site answer.
	ApprovalTimeout time.Duration
}

func NewEngageLeadUseCase(outreach AgentCaller, gen llm.Generator, notifier StatusNotifier, inputs *state.PendingInputs, requester InputRequester, logger *zap.Logger) *EngageLeadUseCase {
	return &EngageLeadUseCase{
		Outreach:        outreach,
		LLM:             gen,
		Notifier:        notifier,
		Inputs:          inputs,
		Requester:       requester,
		Logger:          logger,
		ApprovalTimeout: 2 * time.Minute,
	}
}

// Execute engages the lead over the chosen channel and reports every funnel
// transition to the dashboard.
func (uc *EngageLeadUseCase) Execute(ctx context.Context, contextID string, l lead.Lead) error {
	channel := uc.chooseChannel(ctx, l)
	uc.Logger.Info("engaging lead",
		zap.String("lead_id", l.ID),
		zap.String("name", l.Name),
		zap.String("channel", string(channel)),
	)

	task, err := uc.reachOut(ctx, contextID, l, channel)
	if err != nil {
		_ = uc.Notifier.NotifyLead(ctx, &l, lead.StatusNoResponse, "Outreach failed: "+err.Error())
		return fmt.Errorf("usecase: engage %s: %w", l.ID, err)
	}

	touch := "Placed introduction call"
	if channel == ChannelEmail {
		touch = "Sent introduction email"
	}
	_ = uc.Notifier.NotifyLead(ctx, &l, lead.StatusContacted, touch)

	outcome := ""
	if data := task.ArtifactData(config.OutreachArtifact); data != nil {
		outcome, _ = data["outcome"].(string)
	}

	switch outcome {
	case "interested":
		_ = uc.Notifier.NotifyLead(ctx, &l, lead.StatusEngaged, "Prospect showed interest")
		uc.proposeDemoSite(ctx, l)
	case "not_interested":
		_ = uc.Notifier.NotifyLead(ctx, &l, lead.StatusNotInterested, "Prospect declined")
	default:
		_ = uc.Notifier.NotifyLead(ctx, &l, lead.StatusNoResponse, "No response from prospect")
	}
	return nil
}

func (uc *EngageLeadUseCase) reachOut(ctx context.Context, contextID string, l lead.Lead, channel Channel) (*a2a.Task, error) {
	data := map[string]interface{}{
		"business_id": l.ID,
		"name":        l.Name,
		"city":        l.City,
		"phone":       l.Phone,
		"email":       l.Email,
		"category":    l.Category,
		"objective":   "Introduce the web agency and gauge interest in a free website demo",
	}

	if channel == ChannelPhone {
		return uc.Outreach.SendData(ctx, "outreach-call-"+l.ID, contextID, "make_call", data)
	}
	data["email_type"] = "outreach"
	return uc.Outreach.SendData(ctx, "outreach-email-"+l.ID, contextID, "send_email", data)
}

// chooseChannel asks the model which medium fits the lead; without a model or
// on any model failure the phone wins whenever a number exists.
func (uc *EngageLeadUseCase) chooseChannel(ctx context.Context, l lead.Lead) Channel {
	if l.Phone == "" {
		return ChannelEmail
	}
	if l.Email == "" || uc.LLM == nil {
		return ChannelPhone
	}

	prompt := fmt.Sprintf(
		"A %s business named %q in %s has both a phone number and an email address on file. "+
			"For a first sales touch about building them a website, which channel is more likely to get a response? "+
			"Answer with exactly one word: phone or email.",
		l.Category, l.Name, l.City,
	)
	answer, err := uc.LLM.Generate(ctx, prompt)
	if err != nil {
		uc.Logger.Warn("channel selection fell back to phone", zap.String("lead_id", l.ID), zap.Error(err))
		return ChannelPhone
	}
	if strings.Contains(strings.ToLower(answer), "email") {
		return ChannelEmail
	}
	return ChannelPhone
}

// proposeDemoSite asks the operator to approve a demo-site URL for an engaged
// lead. A missing or late answer leaves the lead engaged; an answer promotes
// it to converting.
func (uc *EngageLeadUseCase) proposeDemoSite(ctx context.Context, l lead.Lead) {
	if uc.Inputs == nil || uc.Requester == nil {
		return
	}

	requestID := uuid.NewString()
	prompt := fmt.Sprintf("Approve the demo website URL to pitch to %s (%s)", l.Name, l.City)
	if err := uc.Requester.RequestInput(ctx, requestID, prompt, "url"); err != nil {
		uc.Logger.Warn("demo site approval not requested", zap.String("lead_id", l.ID), zap.Error(err))
		return
	}

	waitCtx, cancel := context.WithTimeout(ctx, uc.ApprovalTimeout)
	defer cancel()

	url, err := uc.Inputs.Await(waitCtx, requestID)
	if err != nil {
		uc.Logger.Info("demo site approval timed out", zap.String("lead_id", l.ID))
		return
	}

	_ = uc.Notifier.Notify(ctx, l.ID, lead.StatusConverting, "Demo site approved for pitch", map[string]interface{}{
		"demo_site_url": url,
	})
}
