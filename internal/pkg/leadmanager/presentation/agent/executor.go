// Package agent exposes the lead manager over the task protocol.
package agent

import (
	"context"
	"fmt"

	"github.com/sernur/SalesShortcut/internal/a2a"
	"github.com/sernur/SalesShortcut/internal/config"
	"github.com/sernur/SalesShortcut/internal/pkg/leadmanager/application/usecase"
)

// Executor handles process_lead_management tasks.
type Executor struct {
	inboxUC *usecase.ProcessInboxUseCase
}

var _ a2a.Executor = (*Executor)(nil)

func NewExecutor(inboxUC *usecase.ProcessInboxUseCase) *Executor {
	return &Executor{inboxUC: inboxUC}
}

func (e *Executor) Execute(ctx context.Context, req *a2a.Request) (*a2a.Result, error) {
	if op := req.Operation(); op != "" && op != "process_lead_management" {
		return nil, fmt.Errorf("agent: unsupported operation %q", op)
	}
	if query, ok := req.Data["query"].(string); ok && query != "" && query != "check_lead_emails" {
		return nil, fmt.Errorf("agent: unsupported query %q", query)
	}

	summary, err := e.inboxUC.Execute(ctx, req.ContextID)
	if err != nil {
		return nil, err
	}

	details := make([]interface{}, len(summary.Details))
	for i, d := range summary.Details {
		details[i] = d
	}

	return &a2a.Result{
		Message:      fmt.Sprintf("Processed %d replies, scheduled %d meetings", summary.Processed, summary.MeetingsScheduled),
		ArtifactName: config.LeadManagerArtifact,
		Data: map[string]interface{}{
			"processed":          summary.Processed,
			"meetings_scheduled": summary.MeetingsScheduled,
			"details":            details,
		},
	}, nil
}
