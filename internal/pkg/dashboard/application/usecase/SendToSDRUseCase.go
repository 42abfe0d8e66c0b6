package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/application/state"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/events"
)

// SendToSDRUseCase hands a discovered lead to the SDR agent for engagement.
// The SDR acknowledges immediately and works the lead asynchronously; progress
// comes back through the callback endpoint.
type SendToSDRUseCase struct {
	Registry *state.Registry
	Hub      events.Broadcaster
	SDR      AgentCaller
	Logger   *zap.Logger

	Timeout time.Duration
}

func NewSendToSDRUseCase(registry *state.Registry, hub events.Broadcaster, sdr AgentCaller, logger *zap.Logger) *SendToSDRUseCase {
	return &SendToSDRUseCase{
		Registry: registry,
		Hub:      hub,
		SDR:      sdr,
		Logger:   logger,
		Timeout:  30 * time.Second,
	}
}

// Execute looks up the lead and sends it to the SDR service.
func (uc *SendToSDRUseCase) Execute(ctx context.Context, businessID string) error {
	l, ok := uc.Registry.Get(businessID)
	if !ok {
		return fmt.Errorf("dashboard: unknown business %q", businessID)
	}

	data, err := leadAsData(l)
	if err != nil {
		return err
	}

	sessionID := uc.Registry.SessionID()
	taskID := fmt.Sprintf("sdr-engagement-%s-%s", sessionID, l.ID)

	ctx, cancel := context.WithTimeout(ctx, uc.Timeout)
	defer cancel()

	if _, err := uc.SDR.SendData(ctx, taskID, sessionID, "engage_lead", data); err != nil {
		uc.Logger.Error("sdr engagement failed", zap.String("business_id", l.ID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrAgent, err)
	}

	uc.Logger.Info("lead sent to sdr", zap.String("business_id", l.ID), zap.String("name", l.Name))
	events.Publish(uc.Hub, events.TypeSDREngaged, map[string]interface{}{
		"business_id":   l.ID,
		"business_name": l.Name,
	})
	return nil
}
