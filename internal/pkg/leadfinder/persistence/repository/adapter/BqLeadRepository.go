package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/sernur/SalesShortcut/internal/pkg/lead"
	repository "github.com/sernur/SalesShortcut/internal/pkg/leadfinder/persistence/repository/port"
)

const (
	bqDataset = "lead_finder_data"
	bqTable   = "business_leads"
)

// BqLeadRepository stores leads in BigQuery, the deployed backend. Writes go
// through the streaming inserter; dedup happens at read time because
// streaming rows cannot be updated in place.
type BqLeadRepository struct {
	client *bigquery.Client
}

var _ repository.LeadRepository = (*BqLeadRepository)(nil)

func NewBqLeadRepository(ctx context.Context, projectID string) (*BqLeadRepository, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("BqLeadRepository: connect: %w", err)
	}
	return &BqLeadRepository{client: client}, nil
}

func (r *BqLeadRepository) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

type bqLeadRow struct {
	ID          string    `bigquery:"id"`
	Name        string    `bigquery:"name"`
	City        string    `bigquery:"city"`
	Address     string    `bigquery:"address"`
	Phone       string    `bigquery:"phone"`
	Email       string    `bigquery:"email"`
	Description string    `bigquery:"description"`
	Category    string    `bigquery:"category"`
	Website     string    `bigquery:"website"`
	Rating      float64   `bigquery:"rating"`
	Status      string    `bigquery:"status"`
	CreatedAt   time.Time `bigquery:"created_at"`
	UpdatedAt   time.Time `bigquery:"updated_at"`
}

func (r *BqLeadRepository) Save(ctx context.Context, l lead.Lead) error {
	if r == nil || r.client == nil {
		return errors.New("BqLeadRepository: nil client")
	}
	row := bqLeadRow{
		ID:          l.ID,
		Name:        l.Name,
		City:        l.City,
		Address:     l.Address,
		Phone:       l.Phone,
		Email:       l.Email,
		Description: l.Description,
		Category:    l.Category,
		Website:     l.Website,
		Rating:      l.Rating,
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	ins := r.client.Dataset(bqDataset).Table(bqTable).Inserter()
	if err := ins.Put(ctx, row); err != nil {
		return fmt.Errorf("BqLeadRepository: insert %s: %w", l.ID, err)
	}
	return nil
}

func (r *BqLeadRepository) ListByCity(ctx context.Context, city string, limit int) ([]lead.Lead, error) {
	if r == nil || r.client == nil {
		return nil, errors.New("BqLeadRepository: nil client")
	}
	if limit <= 0 {
		limit = 50
	}

	// Latest row per lead ID wins; streaming inserts append, never update.
	q := r.client.Query(fmt.Sprintf(`
		SELECT * EXCEPT (rn) FROM (
			SELECT *, ROW_NUMBER() OVER (PARTITION BY id ORDER BY updated_at DESC) AS rn
			FROM %s.%s
			WHERE LOWER(city) = LOWER(@city)
		)
		WHERE rn = 1
		ORDER BY created_at
		LIMIT @limit
	`, bqDataset, bqTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "city", Value: city},
		{Name: "limit", Value: limit},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("BqLeadRepository: query: %w", err)
	}

	var leads []lead.Lead
	for {
		var row bqLeadRow
		err := it.Next(&row)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("BqLeadRepository: scan: %w", err)
		}
		leads = append(leads, lead.Lead{
			ID:          row.ID,
			Name:        row.Name,
			City:        row.City,
			Address:     row.Address,
			Phone:       row.Phone,
			Email:       row.Email,
			Description: row.Description,
			Category:    row.Category,
			Website:     row.Website,
			Rating:      row.Rating,
			Status:      lead.Status(row.Status),
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		})
	}
	return leads, nil
}
