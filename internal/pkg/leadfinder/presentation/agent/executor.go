// Package agent exposes the lead finder over the task protocol.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sernur/SalesShortcut/internal/a2a"
	"github.com/sernur/SalesShortcut/internal/config"
	"github.com/sernur/SalesShortcut/internal/pkg/leadfinder/application/usecase"
)

// Executor handles find_leads tasks from the dashboard.
type Executor struct {
	findUC *usecase.FindLeadsUseCase
}

var _ a2a.Executor = (*Executor)(nil)

func NewExecutor(findUC *usecase.FindLeadsUseCase) *Executor {
	return &Executor{findUC: findUC}
}

func (e *Executor) Execute(ctx context.Context, req *a2a.Request) (*a2a.Result, error) {
	if op := req.Operation(); op != "" && op != "find_leads" {
		return nil, fmt.Errorf("agent: unsupported operation %q", op)
	}

	city, _ := req.Data["city"].(string)
	maxResults := 0
	if v, ok := req.Data["max_results"].(float64); ok {
		maxResults = int(v)
	}

	leads, err := e.findUC.Execute(ctx, usecase.FindLeadsInput{City: city, MaxResults: maxResults})
	if err != nil {
		return nil, err
	}

	// Round-trip through JSON so the artifact carries plain objects.
	raw, err := json.Marshal(leads)
	if err != nil {
		return nil, fmt.Errorf("agent: encode leads: %w", err)
	}
	var businesses []interface{}
	if err := json.Unmarshal(raw, &businesses); err != nil {
		return nil, fmt.Errorf("agent: decode leads: %w", err)
	}
	if businesses == nil {
		businesses = []interface{}{}
	}

	return &a2a.Result{
		Message:      fmt.Sprintf("Found %d businesses in %s", len(leads), city),
		ArtifactName: config.LeadFinderArtifact,
		Data: map[string]interface{}{
			"city":       city,
			"count":      len(leads),
			"businesses": businesses,
		},
	}, nil
}
