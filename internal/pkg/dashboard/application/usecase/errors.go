// Package usecase implements the dashboard's application services: starting
// lead-finding runs, folding agent callbacks into the registry, and relaying
// operator actions to the worker services.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sernur/SalesShortcut/internal/a2a"
	"github.com/sernur/SalesShortcut/internal/pkg/lead"
)

// AgentCaller is the slice of the A2A client the use cases need; tests
// substitute fakes.
type AgentCaller interface {
	SendData(ctx context.Context, taskID, contextID, operation string, data map[string]interface{}) (*a2a.Task, error)
}

// ErrAgent wraps a downstream agent failure for the HTTP layer.
var ErrAgent = fmt.Errorf("dashboard: agent call failed")

// ErrInvalidCity rejects empty or oversized city names.
var ErrInvalidCity = fmt.Errorf("dashboard: city must be 1-100 characters")

// leadAsData renders a lead as the generic JSON object the A2A layer carries.
func leadAsData(l lead.Lead) (map[string]interface{}, error) {
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("dashboard: encode lead: %w", err)
	}
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("dashboard: decode lead: %w", err)
	}
	return data, nil
}
