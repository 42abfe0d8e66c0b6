// The calendar binary books demo meetings on the sales calendar for the lead
// manager. Without calendar credentials it proposes slots instead of booking
// them, so local runs still complete.
package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/a2a"
	"github.com/sernur/SalesShortcut/internal/callback"
	"github.com/sernur/SalesShortcut/internal/config"
	"github.com/sernur/SalesShortcut/internal/logging"
	"github.com/sernur/SalesShortcut/internal/pkg/calendar/application/usecase"
	"github.com/sernur/SalesShortcut/internal/pkg/calendar/presentation/agent"
	"github.com/sernur/SalesShortcut/internal/pkg/calendar/scheduler"
	"github.com/sernur/SalesShortcut/internal/pkg/lead"
	"github.com/sernur/SalesShortcut/internal/service"
)

func main() {
	flags := service.ParseFlags(config.DefaultCalendarPort)
	logger := logging.New("calendar")
	defer func() { _ = logger.Sync() }()

	var sched usecase.EventScheduler
	if s, err := scheduler.NewGoogleCalendarFromEnv(context.Background()); err != nil {
		logger.Warn("meetings will be proposed, not booked", zap.Error(err))
	} else {
		sched = s
	}

	notifier := callback.NewNotifier(config.UIClientURL(), lead.AgentCalendar, logger)
	scheduleUC := usecase.NewScheduleMeetingUseCase(sched, notifier, logger)

	r := gin.Default()
	a2a.RegisterRoutes(r, "calendar", agent.NewExecutor(scheduleUC), logger)

	if err := service.Serve(r, flags, logger); err != nil {
		logger.Fatal("calendar stopped", zap.Error(err))
	}
}
