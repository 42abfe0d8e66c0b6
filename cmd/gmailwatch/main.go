// The gmailwatch binary bridges Gmail push notifications to the lead
// manager: each Pub/Sub notification about the sales mailbox triggers an
// inbox sweep. A small HTTP surface serves health probes.
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/a2a"
	"github.com/sernur/SalesShortcut/internal/config"
	"github.com/sernur/SalesShortcut/internal/logging"
	"github.com/sernur/SalesShortcut/internal/pkg/gmailwatch"
	"github.com/sernur/SalesShortcut/internal/service"
)

func main() {
	flags := service.ParseFlags(config.DefaultGmailWatchPort)
	logger := logging.New("gmail_watch")
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher, err := gmailwatch.NewWatcherFromEnv(ctx, a2a.NewClient(config.LeadManagerURL()), logger)
	if err != nil {
		logger.Fatal("watcher unavailable", zap.Error(err))
	}
	go func() {
		if err := watcher.Run(ctx); err != nil {
			logger.Error("watcher stopped", zap.Error(err))
		}
	}()

	r := gin.Default()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "gmail_watch"})
	})

	if err := service.Serve(r, flags, logger); err != nil {
		logger.Fatal("gmail watch stopped", zap.Error(err))
	}
}
