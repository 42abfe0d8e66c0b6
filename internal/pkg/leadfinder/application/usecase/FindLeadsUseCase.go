// Package usecase implements the lead finder's application service: turn a
// city name into qualified leads, persist them, and stream them to the
// dashboard as they appear.
package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/pkg/lead"
	repository "github.com/sernur/SalesShortcut/internal/pkg/leadfinder/persistence/repository/port"
)

// Searcher finds candidate businesses for a city. *places.GooglePlaces
// satisfies it; tests substitute fakes.
type Searcher interface {
	Search(ctx context.Context, city string, max int) ([]lead.Lead, error)
}

// ProgressNotifier streams per-lead progress to the dashboard.
type ProgressNotifier interface {
	NotifyLead(ctx context.Context, l *lead.Lead, status lead.Status, message string) error
}

// FindLeadsInput carries one discovery request.
type FindLeadsInput struct {
	City       string
	MaxResults int
}

// FindLeadsUseCase runs a discovery pass. Repo and Notifier are optional:
// a nil repo skips persistence, a nil notifier skips dashboard streaming.
type FindLeadsUseCase struct {
	Places   Searcher
	Repo     repository.LeadRepository
	Notifier ProgressNotifier
	Logger   *zap.Logger
}

func NewFindLeadsUseCase(places Searcher, repo repository.LeadRepository, notifier ProgressNotifier, logger *zap.Logger) *FindLeadsUseCase {
	return &FindLeadsUseCase{Places: places, Repo: repo, Notifier: notifier, Logger: logger}
}

// Execute searches the city and fans each qualified lead out to the
// repository and the dashboard. Persistence and notification failures are
// logged but do not abort the run; when the search itself fails, previously
// stored leads for the city are served instead.
func (uc *FindLeadsUseCase) Execute(ctx context.Context, in FindLeadsInput) ([]lead.Lead, error) {
	if in.City == "" {
		return nil, fmt.Errorf("usecase: city is required")
	}
	if in.MaxResults <= 0 {
		in.MaxResults = 50
	}

	fresh := true
	leads, err := uc.Places.Search(ctx, in.City, in.MaxResults)
	if err != nil {
		stored := uc.storedLeads(ctx, in)
		if len(stored) == 0 {
			return nil, fmt.Errorf("usecase: search %q: %w", in.City, err)
		}
		uc.Logger.Warn("search failed, serving stored leads",
			zap.String("city", in.City), zap.Int("leads", len(stored)), zap.Error(err))
		leads, fresh = stored, false
	} else {
		uc.Logger.Info("search finished", zap.String("city", in.City), zap.Int("leads", len(leads)))
	}

	for i := range leads {
		l := &leads[i]
		if fresh && uc.Repo != nil {
			if err := uc.Repo.Save(ctx, *l); err != nil {
				uc.Logger.Warn("lead not persisted", zap.String("lead_id", l.ID), zap.Error(err))
			}
		}
		if uc.Notifier != nil {
			msg := fmt.Sprintf("Found %s in %s", l.Name, l.City)
			if err := uc.Notifier.NotifyLead(ctx, l, lead.StatusFound, msg); err != nil {
				uc.Logger.Warn("lead not announced", zap.String("lead_id", l.ID), zap.Error(err))
			}
		}
	}

	return leads, nil
}

// storedLeads pulls previously persisted leads for the city, best-effort.
func (uc *FindLeadsUseCase) storedLeads(ctx context.Context, in FindLeadsInput) []lead.Lead {
	if uc.Repo == nil {
		return nil
	}
	stored, err := uc.Repo.ListByCity(ctx, in.City, in.MaxResults)
	if err != nil {
		uc.Logger.Warn("stored leads unavailable", zap.String("city", in.City), zap.Error(err))
		return nil
	}
	return stored
}
