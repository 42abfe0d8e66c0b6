// Package gmailwatch turns Gmail push notifications into lead manager
// sweeps. Gmail publishes mailbox changes to a Pub/Sub topic; the watcher
// pulls the subscription and triggers process_lead_management for each
// notification.
package gmailwatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"cloud.google.com/go/pubsub"
	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/a2a"
	"github.com/sernur/SalesShortcut/internal/config"
	"github.com/sernur/SalesShortcut/internal/retry"
)

// AgentCaller is the slice of the task client used to reach the lead manager.
type AgentCaller interface {
	SendData(ctx context.Context, taskID, contextID, operation string, data map[string]interface{}) (*a2a.Task, error)
}

// notification is the payload Gmail publishes on mailbox changes.
type notification struct {
	EmailAddress string `json:"emailAddress"`
	HistoryID    uint64 `json:"historyId"`
}

// Watcher pulls Gmail notifications and triggers inbox sweeps.
type Watcher struct {
	sub     *pubsub.Subscription
	manager AgentCaller
	logger  *zap.Logger
}

// NewWatcherFromEnv reads GOOGLE_CLOUD_PROJECT and GMAIL_PUBSUB_SUBSCRIPTION.
func NewWatcherFromEnv(ctx context.Context, manager AgentCaller, logger *zap.Logger) (*Watcher, error) {
	project := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if project == "" {
		return nil, errors.New("gmailwatch: GOOGLE_CLOUD_PROJECT is not set")
	}
	subID := os.Getenv("GMAIL_PUBSUB_SUBSCRIPTION")
	if subID == "" {
		subID = "gmail-notifications-sub"
	}

	client, err := pubsub.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("gmailwatch: connect: %w", err)
	}
	return &Watcher{sub: client.Subscription(subID), manager: manager, logger: logger}, nil
}

// Run pulls the subscription until the context is canceled. Transient Receive
// failures are retried with the shared bounded backoff; once the budget is
// spent the watcher gives up.
func (w *Watcher) Run(ctx context.Context) error {
	backoff := retry.NewDefault()
	for {
		err := w.sub.Receive(ctx, w.handle)
		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			backoff.Reset()
			continue
		}

		w.logger.Warn("subscription receive failed", zap.Error(err))
		if waitErr := backoff.Wait(ctx); waitErr != nil {
			if errors.Is(waitErr, retry.ErrAttemptsExhausted) {
				return fmt.Errorf("gmailwatch: receive: %w", err)
			}
			return nil
		}
	}
}

func (w *Watcher) handle(ctx context.Context, msg *pubsub.Message) {
	var n notification
	if err := json.Unmarshal(msg.Data, &n); err != nil {
		// Malformed notifications are dropped, redelivery cannot fix them.
		w.logger.Warn("notification dropped", zap.Error(err))
		msg.Ack()
		return
	}

	historyID := strconv.FormatUint(n.HistoryID, 10)
	w.logger.Info("mailbox changed",
		zap.String("email", n.EmailAddress),
		zap.String("history_id", historyID),
	)

	_, err := w.manager.SendData(ctx, "gmail-history-"+historyID, historyID, "process_lead_management", map[string]interface{}{
		"query":         "check_lead_emails",
		"trigger":       "gmail",
		"email_address": n.EmailAddress,
		"history_id":    historyID,
		"ui_client_url": config.UIClientURL(),
	})
	if err != nil {
		w.logger.Error("sweep not triggered", zap.String("history_id", historyID), zap.Error(err))
		msg.Nack()
		return
	}
	msg.Ack()
}
