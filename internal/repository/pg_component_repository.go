package repository

import (
	"context"
	"errors"

	"github.com/contactware/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ComponentRepository defines the persistence interface for contact
// components.
type ComponentRepository interface {
	Create(ctx context.Context, component *model.ContactComponent) error
	Update(ctx context.Context, component *model.ContactComponent) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.ContactComponent, error)
	ListByPage(ctx context.Context, pageID string) ([]*model.ContactComponent, error)
}

// PgComponentRepository is the PostgreSQL implementation of
// ComponentRepository.
type PgComponentRepository struct {
	pool *pgxpool.Pool
}

// NewPgComponentRepository creates a PgComponentRepository backed by the
// given pool.
func NewPgComponentRepository(pool *pgxpool.Pool) *PgComponentRepository {
	return &PgComponentRepository{pool: pool}
}

var _ ComponentRepository = (*PgComponentRepository)(nil)

const componentColumns = `id, page_id, title, COALESCE(heading_level, ''),
	COALESCE(item_mode, ''), show_icons, created_at`

func scanComponent(row pgx.Row) (*model.ContactComponent, error) {
	var c model.ContactComponent
	err := row.Scan(
		&c.ID, &c.PageID, &c.Title, &c.HeadingLevel,
		&c.ItemMode, &c.ShowIcons, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new contact_components row.
func (r *PgComponentRepository) Create(ctx context.Context, component *model.ContactComponent) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO contact_components
		   (id, page_id, title, heading_level, item_mode, show_icons, created_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7)`,
		component.ID, component.PageID, component.Title, component.HeadingLevel,
		component.ItemMode, component.ShowIcons, component.CreatedAt,
	)
	return err
}

// Update rewrites a contact_components row.
func (r *PgComponentRepository) Update(ctx context.Context, component *model.ContactComponent) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_components
		 SET title = $2, heading_level = NULLIF($3, ''),
		     item_mode = NULLIF($4, ''), show_icons = $5
		 WHERE id = $1`,
		component.ID, component.Title, component.HeadingLevel,
		component.ItemMode, component.ShowIcons,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a component; its items cascade away.
func (r *PgComponentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_components WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns the component with the given id, or ErrNotFound.
func (r *PgComponentRepository) GetByID(ctx context.Context, id string) (*model.ContactComponent, error) {
	return scanComponent(r.pool.QueryRow(ctx,
		`SELECT `+componentColumns+` FROM contact_components WHERE id = $1`, id))
}

// ListByPage returns the components of a page in creation order.
func (r *PgComponentRepository) ListByPage(ctx context.Context, pageID string) ([]*model.ContactComponent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+componentColumns+` FROM contact_components
		 WHERE page_id = $1 ORDER BY created_at`, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var components []*model.ContactComponent
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return components, rows.Err()
}
