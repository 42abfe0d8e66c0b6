// The ui binary serves the SalesShortcut dashboard: the operator page, the
// websocket event feed, and the callback endpoint the worker agents report to.
package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/a2a"
	"github.com/sernur/SalesShortcut/internal/config"
	"github.com/sernur/SalesShortcut/internal/infrastructure/realtime"
	"github.com/sernur/SalesShortcut/internal/logging"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/application/state"
	dashhttp "github.com/sernur/SalesShortcut/internal/pkg/dashboard/presentation/http"
	"github.com/sernur/SalesShortcut/internal/service"
)

func main() {
	flags := service.ParseFlags(config.DefaultUIClientPort)
	logger := logging.New("ui_client")
	defer func() { _ = logger.Sync() }()

	registry := state.NewRegistry()
	hub := realtime.NewHub()
	defer hub.Close()

	r := gin.Default()
	dashhttp.RegisterRoutes(r, dashhttp.Deps{
		Registry:   registry,
		Hub:        hub,
		Logger:     logger,
		Finder:     a2a.NewClient(config.LeadFinderURL()),
		SDR:        a2a.NewClient(config.SDRURL()),
		Manager:    a2a.NewClient(config.LeadManagerURL()),
		SDRBaseURL: config.SDRURL(),
	})

	if err := service.Serve(r, flags, logger); err != nil {
		logger.Fatal("ui client stopped", zap.Error(err))
	}
}
