package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/application/state"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/events"
)

// HumanInputUseCase tracks agent requests for operator input and forwards the
// operator's answers back to the requesting agent. Requests stay pending until
// the agent confirms receipt of the answer.
type HumanInputUseCase struct {
	Registry *state.Registry
	Hub      events.Broadcaster
	Logger   *zap.Logger

	// SDRBaseURL is where answers are delivered, under /api/human-input/{id}.
	SDRBaseURL string

	client *http.Client
}

func NewHumanInputUseCase(registry *state.Registry, hub events.Broadcaster, sdrBaseURL string, logger *zap.Logger) *HumanInputUseCase {
	return &HumanInputUseCase{
		Registry:   registry,
		Hub:        hub,
		Logger:     logger,
		SDRBaseURL: sdrBaseURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Receive files an incoming request and pushes it to every dashboard.
func (uc *HumanInputUseCase) Receive(req state.HumanInputRequest) error {
	if req.RequestID == "" || req.Prompt == "" {
		return fmt.Errorf("dashboard: human input request needs request_id and prompt")
	}
	if req.Timestamp == "" {
		req.Timestamp = time.Now().Format(time.RFC3339)
	}

	uc.Registry.AddHumanInput(req)
	uc.Logger.Info("human input requested", zap.String("request_id", req.RequestID))

	events.Publish(uc.Hub, events.TypeHumanInputRequest, map[string]interface{}{
		"request_id": req.RequestID,
		"prompt":     req.Prompt,
		"input_type": req.Type,
	})
	return nil
}

// Pending lists requests still awaiting an answer.
func (uc *HumanInputUseCase) Pending() []state.HumanInputRequest {
	return uc.Registry.HumanInputs()
}

// Submit delivers the operator's answer to the agent. The request is removed
// only after the agent acknowledges, so a failed delivery can be retried from
// the dashboard.
func (uc *HumanInputUseCase) Submit(ctx context.Context, requestID, response string) error {
	if _, ok := uc.Registry.HumanInput(requestID); !ok {
		return fmt.Errorf("dashboard: unknown human input request %q", requestID)
	}

	body, err := json.Marshal(map[string]string{"url": response})
	if err != nil {
		return fmt.Errorf("dashboard: encode human input response: %w", err)
	}

	url := fmt.Sprintf("%s/api/human-input/%s", uc.SDRBaseURL, requestID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("dashboard: build human input forward: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := uc.client.Do(httpReq)
	if err != nil {
		uc.Logger.Error("human input forward failed", zap.String("request_id", requestID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrAgent, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		uc.Logger.Error("human input forward rejected",
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: agent answered %d", ErrAgent, resp.StatusCode)
	}

	uc.Registry.RemoveHumanInput(requestID)
	uc.Logger.Info("human input delivered", zap.String("request_id", requestID))

	events.Publish(uc.Hub, events.TypeHumanInputResponseSubmitted, map[string]interface{}{
		"request_id": requestID,
	})
	return nil
}
