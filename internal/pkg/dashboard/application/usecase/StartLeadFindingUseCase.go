package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/config"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/application/state"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/events"
)

// StartLeadFindingUseCase kicks off a discovery run against the lead finder
// service. The A2A call runs in a background goroutine; individual leads
// stream back through the callback endpoint while the run is in flight.
type StartLeadFindingUseCase struct {
	Registry *state.Registry
	Hub      events.Broadcaster
	Finder   AgentCaller
	Logger   *zap.Logger

	// Timeout bounds the whole discovery call; Maps searches over large
	// cities can take minutes.
	Timeout time.Duration
}

func NewStartLeadFindingUseCase(registry *state.Registry, hub events.Broadcaster, finder AgentCaller, logger *zap.Logger) *StartLeadFindingUseCase {
	return &StartLeadFindingUseCase{
		Registry: registry,
		Hub:      hub,
		Finder:   finder,
		Logger:   logger,
		Timeout:  5 * time.Minute,
	}
}

// Execute validates the city, claims the run slot, and launches the search.
func (uc *StartLeadFindingUseCase) Execute(city string) error {
	city = strings.TrimSpace(city)
	if city == "" || len(city) > 100 {
		return ErrInvalidCity
	}
	sessionID, err := uc.Registry.BeginRun(city)
	if err != nil {
		return err
	}

	events.Publish(uc.Hub, events.TypeProcessStarted, map[string]interface{}{"city": city})

	go uc.run(city, sessionID)
	return nil
}

func (uc *StartLeadFindingUseCase) run(city, sessionID string) {
	defer func() {
		uc.Registry.EndRun()
		events.Publish(uc.Hub, events.TypeProcessFinished, nil)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), uc.Timeout)
	defer cancel()

	task, err := uc.Finder.SendData(ctx, "lead-search-"+sessionID, sessionID, "find_leads", map[string]interface{}{
		"city":        city,
		"max_results": 50,
	})
	if err != nil {
		uc.Logger.Error("lead finding failed", zap.String("city", city), zap.Error(err))
		events.Publish(uc.Hub, events.TypeLeadFindingFailed, map[string]interface{}{"error": err.Error()})
		return
	}

	// Missing artifact means an empty result, not a failure.
	count := 0
	if data := task.ArtifactData(config.LeadFinderArtifact); data != nil {
		if businesses, ok := data["businesses"].([]interface{}); ok {
			count = len(businesses)
		}
	}

	uc.Logger.Info("lead finding completed", zap.String("city", city), zap.Int("businesses", count))
	events.Publish(uc.Hub, events.TypeLeadFindingCompleted, map[string]interface{}{
		"city":           city,
		"business_count": count,
	})
	if count == 0 {
		events.Publish(uc.Hub, events.TypeLeadFindingEmpty, map[string]interface{}{
			"city":    city,
			"message": "No businesses found for this city. Try another city.",
		})
	}
}
