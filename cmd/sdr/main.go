// The sdr binary engages discovered leads: it picks a channel, drives the
// outreach service, and reports funnel progress to the dashboard. With Redis
// configured, engagements run on an asynq worker; without it they run on
// local goroutines.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/a2a"
	"github.com/sernur/SalesShortcut/internal/callback"
	"github.com/sernur/SalesShortcut/internal/config"
	"github.com/sernur/SalesShortcut/internal/infrastructure/llm"
	queueadapter "github.com/sernur/SalesShortcut/internal/infrastructure/queue/adapter"
	qport "github.com/sernur/SalesShortcut/internal/infrastructure/queue/port"
	"github.com/sernur/SalesShortcut/internal/logging"
	"github.com/sernur/SalesShortcut/internal/pkg/lead"
	"github.com/sernur/SalesShortcut/internal/pkg/sdr/application/state"
	"github.com/sernur/SalesShortcut/internal/pkg/sdr/application/task"
	"github.com/sernur/SalesShortcut/internal/pkg/sdr/application/usecase"
	"github.com/sernur/SalesShortcut/internal/pkg/sdr/presentation/agent"
	sdrhttp "github.com/sernur/SalesShortcut/internal/pkg/sdr/presentation/http"
	"github.com/sernur/SalesShortcut/internal/pkg/sdr/uiclient"
	"github.com/sernur/SalesShortcut/internal/service"
)

func main() {
	flags := service.ParseFlags(config.DefaultSDRPort)
	logger := logging.New("sdr")
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var gen llm.Generator
	if g, err := llm.NewGeminiFromEnv(ctx); err != nil {
		logger.Warn("channel selection runs on heuristics", zap.Error(err))
	} else {
		gen = g
	}

	inputs := state.NewPendingInputs()
	notifier := callback.NewNotifier(config.UIClientURL(), lead.AgentSDR, logger)
	requester := uiclient.NewClient(config.UIClientURL())
	engageUC := usecase.NewEngageLeadUseCase(
		a2a.NewClient(config.OutreachURL()), gen, notifier, inputs, requester, logger)

	var queue qport.Client
	if os.Getenv("REDIS_URL") != "" {
		client, err := queueadapter.NewAsynqClientFromEnv()
		if err != nil {
			logger.Fatal("queue client unavailable", zap.Error(err))
		}
		defer client.Close()
		queue = client

		worker, err := queueadapter.NewAsynqServer(logger)
		if err != nil {
			logger.Fatal("queue worker unavailable", zap.Error(err))
		}
		task.RegisterEngageLeadTask(worker, engageUC)
		go func() {
			if err := worker.Run(ctx); err != nil {
				logger.Error("queue worker stopped", zap.Error(err))
			}
		}()
	} else {
		logger.Info("running engagements inline, no REDIS_URL set")
	}

	r := gin.Default()
	sdrhttp.RegisterRoutes(r, agent.NewExecutor(queue, engageUC, logger), inputs, logger)

	if err := service.Serve(r, flags, logger); err != nil {
		logger.Fatal("sdr stopped", zap.Error(err))
	}
}
