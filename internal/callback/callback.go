// Package callback implements the status-update protocol every worker service
// uses to report progress to the dashboard: a POST /agent_callback with the
// agent type, the lead it concerns, and the new funnel status.
package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/pkg/lead"
	"github.com/sernur/SalesShortcut/internal/retry"
)

// Update is the callback wire payload.
type Update struct {
	AgentType  lead.AgentType         `json:"agent_type"`
	BusinessID string                 `json:"business_id"`
	Status     lead.Status            `json:"status"`
	Message    string                 `json:"message"`
	Timestamp  time.Time              `json:"timestamp"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// LeadData builds the data object the dashboard needs to create an unknown
// lead from a callback (name and city are mandatory on the receiving side).
func LeadData(l *lead.Lead) map[string]interface{} {
	return map[string]interface{}{
		"name":        l.Name,
		"city":        l.City,
		"phone":       l.Phone,
		"email":       l.Email,
		"description": l.Description,
	}
}

// Notifier delivers updates to the dashboard, retrying transient failures
// with the shared bounded backoff. Delivery is best-effort: the workflow
// never fails because the dashboard is unreachable.
type Notifier struct {
	url    string
	agent  lead.AgentType
	http   *http.Client
	logger *zap.Logger
}

// NewNotifier builds a notifier posting to uiBaseURL/agent_callback on behalf
// of the given agent.
func NewNotifier(uiBaseURL string, agent lead.AgentType, logger *zap.Logger) *Notifier {
	return &Notifier{
		url:    uiBaseURL + "/agent_callback",
		agent:  agent,
		http:   &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// Notify reports a status change for a lead. The data payload may be nil for
// leads the dashboard already knows about.
func (n *Notifier) Notify(ctx context.Context, businessID string, status lead.Status, message string, data map[string]interface{}) error {
	update := Update{
		AgentType:  n.agent,
		BusinessID: businessID,
		Status:     status,
		Message:    message,
		Timestamp:  time.Now(),
		Data:       data,
	}

	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("callback: encode update: %w", err)
	}

	backoff := retry.NewDefault()
	for {
		err = n.post(ctx, body)
		if err == nil {
			return nil
		}
		if waitErr := backoff.Wait(ctx); waitErr != nil {
			n.logger.Warn("callback dropped",
				zap.String("business_id", businessID),
				zap.String("status", string(status)),
				zap.Error(err),
			)
			return fmt.Errorf("callback: deliver update: %w", err)
		}
	}
}

// NotifyLead is Notify with the lead's creation data attached, so the
// dashboard can materialize leads it has never seen.
func (n *Notifier) NotifyLead(ctx context.Context, l *lead.Lead, status lead.Status, message string) error {
	return n.Notify(ctx, l.ID, status, message, LeadData(l))
}

func (n *Notifier) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("dashboard returned %s", resp.Status)
	}
	return nil
}
