package task

import (
	"context"
	"encoding/json"
	"time"

	qport "github.com/sernur/SalesShortcut/internal/infrastructure/queue/port"
	"github.com/sernur/SalesShortcut/internal/pkg/lead"
	"github.com/sernur/SalesShortcut/internal/pkg/sdr/application/usecase"
)

// EngageLeadTaskType is the queue task name for engaging a lead.
const EngageLeadTaskType = "sdr:engage_lead"

// EngageLeadTaskPayload is the JSON payload transported via the queue.
type EngageLeadTaskPayload struct {
	ContextID string    `json:"contextId"`
	Lead      lead.Lead `json:"lead"`
}

// RegisterEngageLeadTask binds the engagement handler to the worker server.
func RegisterEngageLeadTask(srv qport.Server, uc *usecase.EngageLeadUseCase) {
	srv.Register(EngageLeadTaskType, func(ctx context.Context, t qport.Task) error {
		var p EngageLeadTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// Malformed payload: retrying cannot help.
			return err
		}

		// An engagement spans a phone call plus an approval wait.
		ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
		defer cancel()

		return uc.Execute(ctx, p.ContextID, p.Lead)
	})
}
