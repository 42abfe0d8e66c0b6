package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sernur/SalesShortcut/internal/pkg/lead"
	repository "github.com/sernur/SalesShortcut/internal/pkg/leadfinder/persistence/repository/port"
)

// PgLeadRepository stores leads in Postgres, the local-development backend.
// Deployments use BigQuery instead.
type PgLeadRepository struct {
	pool *pgxpool.Pool
}

var _ repository.LeadRepository = (*PgLeadRepository)(nil)

func NewPgLeadRepository(pool *pgxpool.Pool) *PgLeadRepository {
	return &PgLeadRepository{pool: pool}
}

// EnsureSchema creates the leads table when it does not exist yet.
func (r *PgLeadRepository) EnsureSchema(ctx context.Context) error {
	if r == nil || r.pool == nil {
		return errors.New("PgLeadRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS leads (
			id          text PRIMARY KEY,
			name        text NOT NULL,
			city        text NOT NULL,
			address     text,
			phone       text,
			email       text,
			description text,
			category    text,
			website     text,
			rating      double precision,
			status      text NOT NULL,
			notes       text[],
			created_at  timestamptz NOT NULL,
			updated_at  timestamptz NOT NULL
		)
	`)
	return err
}

func (r *PgLeadRepository) Save(ctx context.Context, l lead.Lead) error {
	if r == nil || r.pool == nil {
		return errors.New("PgLeadRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO leads (
			id, name, city, address, phone, email, description, category,
			website, rating, status, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id)
		DO UPDATE SET status = EXCLUDED.status,
		              notes = EXCLUDED.notes,
		              updated_at = EXCLUDED.updated_at
	`, l.ID, l.Name, l.City, l.Address, l.Phone, l.Email, l.Description, l.Category,
		l.Website, l.Rating, l.Status, l.Notes, l.CreatedAt, l.UpdatedAt)
	return err
}

func (r *PgLeadRepository) ListByCity(ctx context.Context, city string, limit int) ([]lead.Lead, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgLeadRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, city, address, phone, email, description, category,
		       website, rating, status, notes, created_at, updated_at
		FROM leads
		WHERE lower(city) = lower($1)
		ORDER BY created_at
		LIMIT $2
	`, city, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []lead.Lead
	for rows.Next() {
		var l lead.Lead
		if err := rows.Scan(&l.ID, &l.Name, &l.City, &l.Address, &l.Phone, &l.Email,
			&l.Description, &l.Category, &l.Website, &l.Rating, &l.Status, &l.Notes,
			&l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}
