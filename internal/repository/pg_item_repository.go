package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/contactware/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ItemRepository defines the persistence interface for contact items.
type ItemRepository interface {
	Create(ctx context.Context, item *model.ContactItem) error
	Update(ctx context.Context, item *model.ContactItem) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.ContactItem, error)
	ListByComponent(ctx context.Context, componentID string) ([]*model.ContactItem, error)
}

// PgItemRepository is the PostgreSQL implementation of ItemRepository. The
// kind-specific fields travel as one JSONB column.
type PgItemRepository struct {
	pool *pgxpool.Pool
}

// NewPgItemRepository creates a PgItemRepository backed by the given pool.
func NewPgItemRepository(pool *pgxpool.Pool) *PgItemRepository {
	return &PgItemRepository{pool: pool}
}

var _ ItemRepository = (*PgItemRepository)(nil)

const itemColumns = `id, component_id, kind, title, hide_title, sort, disabled, detail, created_at`

func scanItem(row pgx.Row) (*model.ContactItem, error) {
	var (
		item   model.ContactItem
		detail []byte
	)
	err := row.Scan(
		&item.ID, &item.ComponentID, &item.Kind, &item.Title,
		&item.HideTitle, &item.Sort, &item.Disabled, &detail, &item.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(detail) > 0 {
		if err := json.Unmarshal(detail, &item.Detail); err != nil {
			return nil, err
		}
	}
	return &item, nil
}

// Create inserts a new contact_items row.
func (r *PgItemRepository) Create(ctx context.Context, item *model.ContactItem) error {
	detail, err := json.Marshal(item.Detail)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO contact_items
		   (id, component_id, kind, title, hide_title, sort, disabled, detail, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		item.ID, item.ComponentID, item.Kind, item.Title,
		item.HideTitle, item.Sort, item.Disabled, detail, item.CreatedAt,
	)
	return err
}

// Update rewrites a contact_items row. The kind is fixed at creation.
func (r *PgItemRepository) Update(ctx context.Context, item *model.ContactItem) error {
	detail, err := json.Marshal(item.Detail)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_items
		 SET title = $2, hide_title = $3, sort = $4, disabled = $5, detail = $6
		 WHERE id = $1`,
		item.ID, item.Title, item.HideTitle, item.Sort, item.Disabled, detail,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an item.
func (r *PgItemRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns the item with the given id, or ErrNotFound.
func (r *PgItemRepository) GetByID(ctx context.Context, id string) (*model.ContactItem, error) {
	return scanItem(r.pool.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM contact_items WHERE id = $1`, id))
}

// ListByComponent returns the items of a component in sort order.
func (r *PgItemRepository) ListByComponent(ctx context.Context, componentID string) ([]*model.ContactItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+itemColumns+` FROM contact_items
		 WHERE component_id = $1 ORDER BY sort, created_at`, componentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*model.ContactItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
