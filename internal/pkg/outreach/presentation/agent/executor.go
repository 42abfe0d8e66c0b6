// Package agent exposes the outreach service over the task protocol.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sernur/SalesShortcut/internal/a2a"
	"github.com/sernur/SalesShortcut/internal/config"
	"github.com/sernur/SalesShortcut/internal/pkg/outreach/application/usecase"
)

// Executor handles make_call and send_email tasks from the SDR.
type Executor struct {
	callUC  *usecase.MakeCallUseCase
	emailUC *usecase.SendEmailUseCase
}

var _ a2a.Executor = (*Executor)(nil)

func NewExecutor(callUC *usecase.MakeCallUseCase, emailUC *usecase.SendEmailUseCase) *Executor {
	return &Executor{callUC: callUC, emailUC: emailUC}
}

func (e *Executor) Execute(ctx context.Context, req *a2a.Request) (*a2a.Result, error) {
	switch req.Operation() {
	case "make_call":
		return e.makeCall(ctx, req)
	case "send_email":
		return e.sendEmail(ctx, req)
	default:
		return nil, fmt.Errorf("agent: unsupported operation %q", req.Operation())
	}
}

func (e *Executor) makeCall(ctx context.Context, req *a2a.Request) (*a2a.Result, error) {
	in := usecase.MakeCallInput{
		BusinessID: str(req.Data, "business_id"),
		Name:       str(req.Data, "name"),
		City:       str(req.Data, "city"),
		Phone:      str(req.Data, "phone"),
		Objective:  str(req.Data, "objective"),
	}
	result, err := e.callUC.Execute(ctx, in)
	if err != nil {
		return nil, err
	}
	return e.decision(in.BusinessID, fmt.Sprintf("Call finished: %s", result.Outcome), result)
}

func (e *Executor) sendEmail(ctx context.Context, req *a2a.Request) (*a2a.Result, error) {
	in := usecase.SendEmailInput{
		BusinessID: str(req.Data, "business_id"),
		Name:       str(req.Data, "name"),
		City:       str(req.Data, "city"),
		To:         str(req.Data, "email"),
		Subject:    str(req.Data, "subject"),
		Body:       str(req.Data, "body"),
		Objective:  str(req.Data, "objective"),
		EmailType:  str(req.Data, "email_type"),
	}
	result, err := e.emailUC.Execute(ctx, in)
	if err != nil {
		return nil, err
	}
	return e.decision(in.BusinessID, fmt.Sprintf("Email sent to %s", in.To), result)
}

// decision wraps a use case result into the outreach artifact.
func (e *Executor) decision(businessID, message string, result interface{}) (*a2a.Result, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("agent: encode decision: %w", err)
	}
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("agent: decode decision: %w", err)
	}
	data["business_id"] = businessID

	return &a2a.Result{
		Message:      message,
		ArtifactName: config.OutreachArtifact,
		Data:         data,
	}, nil
}

func str(data map[string]interface{}, key string) string {
	v, _ := data[key].(string)
	return v
}
