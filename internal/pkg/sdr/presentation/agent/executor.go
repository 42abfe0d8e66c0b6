// Package agent exposes the SDR over the task protocol.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/a2a"
	"github.com/sernur/SalesShortcut/internal/config"
	qport "github.com/sernur/SalesShortcut/internal/infrastructure/queue/port"
	"github.com/sernur/SalesShortcut/internal/pkg/lead"
	"github.com/sernur/SalesShortcut/internal/pkg/sdr/application/task"
	"github.com/sernur/SalesShortcut/internal/pkg/sdr/application/usecase"
)

// Executor handles engage_lead tasks. The caller gets an immediate working
// acknowledgement; the engagement itself runs on the queue, or on a local
// goroutine when no queue is configured.
type Executor struct {
	queue    qport.Client
	engageUC *usecase.EngageLeadUseCase
	logger   *zap.Logger
}

var _ a2a.Executor = (*Executor)(nil)

func NewExecutor(queue qport.Client, engageUC *usecase.EngageLeadUseCase, logger *zap.Logger) *Executor {
	return &Executor{queue: queue, engageUC: engageUC, logger: logger}
}

func (e *Executor) Execute(ctx context.Context, req *a2a.Request) (*a2a.Result, error) {
	if op := req.Operation(); op != "" && op != "engage_lead" {
		return nil, fmt.Errorf("agent: unsupported operation %q", op)
	}

	l, err := decodeLead(req.Data)
	if err != nil {
		return nil, err
	}

	if e.queue != nil {
		if err := e.enqueue(ctx, req.ContextID, *l); err != nil {
			return nil, err
		}
	} else {
		go e.runInline(req.ContextID, *l)
	}

	return &a2a.Result{
		State:        a2a.StateWorking,
		Message:      fmt.Sprintf("Engaging %s", l.Name),
		ArtifactName: config.SDRArtifact,
		Data: map[string]interface{}{
			"business_id": l.ID,
			"status":      "accepted",
		},
	}, nil
}

func (e *Executor) enqueue(ctx context.Context, contextID string, l lead.Lead) error {
	payload, err := json.Marshal(task.EngageLeadTaskPayload{ContextID: contextID, Lead: l})
	if err != nil {
		return fmt.Errorf("agent: encode engagement: %w", err)
	}
	id, err := e.queue.Enqueue(ctx,
		qport.Task{Type: task.EngageLeadTaskType, Payload: payload},
		qport.EnqueueOption{Queue: "sdr", MaxRetry: 3},
	)
	if err != nil {
		return fmt.Errorf("agent: enqueue engagement: %w", err)
	}
	e.logger.Info("engagement queued", zap.String("lead_id", l.ID), zap.String("queue_task_id", id))
	return nil
}

func (e *Executor) runInline(contextID string, l lead.Lead) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	if err := e.engageUC.Execute(ctx, contextID, l); err != nil {
		e.logger.Error("engagement failed", zap.String("lead_id", l.ID), zap.Error(err))
	}
}

func decodeLead(data map[string]interface{}) (*lead.Lead, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("agent: encode lead data: %w", err)
	}
	var l lead.Lead
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("agent: decode lead: %w", err)
	}
	validated, err := lead.New(l)
	if err != nil {
		return nil, fmt.Errorf("agent: %w", err)
	}
	return validated, nil
}
