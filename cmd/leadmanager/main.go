// The leadmanager binary watches the sales inbox for prospect replies,
// classifies them, and schedules meetings through the calendar assistant.
package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/a2a"
	"github.com/sernur/SalesShortcut/internal/callback"
	"github.com/sernur/SalesShortcut/internal/config"
	"github.com/sernur/SalesShortcut/internal/infrastructure/llm"
	"github.com/sernur/SalesShortcut/internal/logging"
	"github.com/sernur/SalesShortcut/internal/pkg/lead"
	"github.com/sernur/SalesShortcut/internal/pkg/leadmanager/application/usecase"
	"github.com/sernur/SalesShortcut/internal/pkg/leadmanager/gmail"
	"github.com/sernur/SalesShortcut/internal/pkg/leadmanager/presentation/agent"
	"github.com/sernur/SalesShortcut/internal/service"
)

func main() {
	flags := service.ParseFlags(config.DefaultLeadManagerPort)
	logger := logging.New("lead_manager")
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	var gen llm.Generator
	if g, err := llm.NewGeminiFromEnv(ctx); err != nil {
		logger.Warn("reply triage runs on heuristics", zap.Error(err))
	} else {
		gen = g
	}

	var inbox usecase.InboxReader
	if i, err := gmail.NewInboxFromEnv(ctx); err != nil {
		// The service still answers tasks so the pipeline stays wired; sweeps
		// fail with a clear error until the mailbox is configured.
		logger.Warn("sales inbox unavailable", zap.Error(err))
	} else {
		inbox = i
	}

	notifier := callback.NewNotifier(config.UIClientURL(), lead.AgentLeadManager, logger)
	inboxUC := usecase.NewProcessInboxUseCase(inbox, a2a.NewClient(config.CalendarURL()), gen, notifier, logger)

	r := gin.Default()
	a2a.RegisterRoutes(r, "lead_manager", agent.NewExecutor(inboxUC), logger)

	if err := service.Serve(r, flags, logger); err != nil {
		logger.Fatal("lead manager stopped", zap.Error(err))
	}
}
