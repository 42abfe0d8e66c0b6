package repository

import (
	"context"

	"github.com/sernur/SalesShortcut/internal/pkg/lead"
)

// LeadRepository persists discovered leads. Discovery still succeeds when no
// repository is configured; stored leads double as a fallback source when the
// Places search is unavailable.
type LeadRepository interface {
	Save(ctx context.Context, l lead.Lead) error
	ListByCity(ctx context.Context, city string, limit int) ([]lead.Lead, error)
}
