package usecase

import (
	"encoding/json"

	"github.com/sernur/SalesShortcut/internal/callback"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/application/state"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/events"
	"github.com/sernur/SalesShortcut/internal/pkg/lead"
)

// RecordCallbackUseCase folds a worker callback into the registry and pushes
// the resulting lead card to every dashboard.
type RecordCallbackUseCase struct {
	Registry *state.Registry
	Hub      events.Broadcaster
}

func NewRecordCallbackUseCase(registry *state.Registry, hub events.Broadcaster) *RecordCallbackUseCase {
	return &RecordCallbackUseCase{Registry: registry, Hub: hub}
}

// Execute applies the update. New leads produce business_added, known leads
// business_updated; either way the event carries the post-update lead.
// Calendar callbacks additionally raise calendar_notification so the browser
// can surface the booking.
func (uc *RecordCallbackUseCase) Execute(u callback.Update) error {
	applied, created, err := uc.Registry.Apply(u)
	if err != nil {
		return err
	}

	typ := events.TypeBusinessUpdated
	if created {
		typ = events.TypeBusinessAdded
	}

	// Round-trip through JSON so the event carries plain objects.
	var business map[string]interface{}
	if raw, err := json.Marshal(applied); err == nil {
		_ = json.Unmarshal(raw, &business)
	}
	var update map[string]interface{}
	if raw, err := json.Marshal(u); err == nil {
		_ = json.Unmarshal(raw, &update)
	}

	events.Publish(uc.Hub, typ, map[string]interface{}{
		"agent":    string(u.AgentType),
		"business": business,
		"update":   update,
	})

	if u.AgentType == lead.AgentCalendar {
		events.Publish(uc.Hub, events.TypeCalendarNotification, map[string]interface{}{
			"business_id": u.BusinessID,
			"message":     u.Message,
			"data":        u.Data,
		})
	}
	return nil
}
