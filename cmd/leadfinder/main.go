// The leadfinder binary discovers local businesses without websites for a
// given city and streams them to the dashboard.
package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/a2a"
	"github.com/sernur/SalesShortcut/internal/callback"
	"github.com/sernur/SalesShortcut/internal/config"
	cacheadapter "github.com/sernur/SalesShortcut/internal/infrastructure/cache/adapter"
	cacheport "github.com/sernur/SalesShortcut/internal/infrastructure/cache/port"
	"github.com/sernur/SalesShortcut/internal/infrastructure/database"
	"github.com/sernur/SalesShortcut/internal/logging"
	"github.com/sernur/SalesShortcut/internal/pkg/lead"
	"github.com/sernur/SalesShortcut/internal/pkg/leadfinder/application/usecase"
	repoadapter "github.com/sernur/SalesShortcut/internal/pkg/leadfinder/persistence/repository/adapter"
	repository "github.com/sernur/SalesShortcut/internal/pkg/leadfinder/persistence/repository/port"
	"github.com/sernur/SalesShortcut/internal/pkg/leadfinder/places"
	"github.com/sernur/SalesShortcut/internal/pkg/leadfinder/presentation/agent"
	"github.com/sernur/SalesShortcut/internal/service"
)

func main() {
	flags := service.ParseFlags(config.DefaultLeadFinderPort)
	logger := logging.New("lead_finder")
	defer func() { _ = logger.Sync() }()

	searcher, err := places.NewGooglePlaces(os.Getenv("GOOGLE_MAPS_API_KEY"), newCache(logger), logger)
	if err != nil {
		logger.Fatal("places client unavailable", zap.Error(err))
	}

	notifier := callback.NewNotifier(config.UIClientURL(), lead.AgentLeadFinder, logger)
	findUC := usecase.NewFindLeadsUseCase(searcher, newRepository(logger), notifier, logger)

	r := gin.Default()
	a2a.RegisterRoutes(r, "lead_finder", agent.NewExecutor(findUC), logger)

	if err := service.Serve(r, flags, logger); err != nil {
		logger.Fatal("lead finder stopped", zap.Error(err))
	}
}

// newCache wires the optional Redis memoization layer.
func newCache(logger *zap.Logger) cacheport.Cache {
	if os.Getenv("REDIS_URL") == "" {
		return nil
	}
	cache, err := cacheadapter.NewRedisAdapter()
	if err != nil {
		logger.Warn("search cache disabled", zap.Error(err))
		return nil
	}
	return cache
}

// newRepository picks the persistence backend: BigQuery when a project is
// configured, Postgres for local development, nothing otherwise.
func newRepository(logger *zap.Logger) repository.LeadRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if project := os.Getenv("GOOGLE_CLOUD_PROJECT"); project != "" {
		repo, err := repoadapter.NewBqLeadRepository(ctx, project)
		if err != nil {
			logger.Warn("bigquery persistence disabled", zap.Error(err))
			return nil
		}
		return repo
	}

	if os.Getenv("DB_URL") != "" {
		pool, err := database.NewPoolFromEnv(ctx)
		if err != nil {
			logger.Warn("postgres persistence disabled", zap.Error(err))
			return nil
		}
		repo := repoadapter.NewPgLeadRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Warn("postgres schema setup failed", zap.Error(err))
			return nil
		}
		return repo
	}

	logger.Info("lead persistence disabled")
	return nil
}
