package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/config"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/application/state"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/events"
)

// TriggerLeadManagerUseCase asks the lead manager to sweep the sales inbox for
// replies. Used both by the manual dashboard button and by the Gmail watcher.
type TriggerLeadManagerUseCase struct {
	Registry *state.Registry
	Hub      events.Broadcaster
	Manager  AgentCaller
	Logger   *zap.Logger

	// Timeout bounds the inbox sweep; a sweep reads mail, consults the model
	// and may schedule meetings before answering.
	Timeout time.Duration
}

func NewTriggerLeadManagerUseCase(registry *state.Registry, hub events.Broadcaster, manager AgentCaller, logger *zap.Logger) *TriggerLeadManagerUseCase {
	return &TriggerLeadManagerUseCase{
		Registry: registry,
		Hub:      hub,
		Manager:  manager,
		Logger:   logger,
		Timeout:  3 * time.Minute,
	}
}

// Execute runs one inbox sweep, surfacing the agent's liveness on the
// dashboard as agent_status transitions.
func (uc *TriggerLeadManagerUseCase) Execute(ctx context.Context) error {
	sessionID := uc.Registry.SessionID()

	events.Publish(uc.Hub, events.TypeAgentStatus, map[string]interface{}{
		"agent":  "lead_manager",
		"status": "active",
	})

	ctx, cancel := context.WithTimeout(ctx, uc.Timeout)
	defer cancel()

	task, err := uc.Manager.SendData(ctx, "lead-management-"+sessionID, sessionID, "process_lead_management", map[string]interface{}{
		"query":         "check_lead_emails",
		"ui_client_url": config.UIClientURL(),
	})
	if err != nil {
		uc.Logger.Error("lead manager sweep failed", zap.Error(err))
		events.Publish(uc.Hub, events.TypeAgentStatus, map[string]interface{}{
			"agent":  "lead_manager",
			"status": "error",
			"error":  err.Error(),
		})
		return err
	}

	fields := map[string]interface{}{
		"agent":  "lead_manager",
		"status": "idle",
	}
	if data := task.ArtifactData(config.LeadManagerArtifact); data != nil {
		fields["decision"] = data
	}
	uc.Logger.Info("lead manager sweep completed")
	events.Publish(uc.Hub, events.TypeAgentStatus, fields)
	return nil
}
