package repository

import (
	"context"
	"errors"

	"github.com/contactware/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PageRepository defines the persistence interface for contact pages.
type PageRepository interface {
	Create(ctx context.Context, page *model.ContactPage) error
	Update(ctx context.Context, page *model.ContactPage) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.ContactPage, error)
	GetBySlug(ctx context.Context, slug string) (*model.ContactPage, error)
	List(ctx context.Context) ([]*model.ContactPage, error)
	UnreadMessageCount(ctx context.Context, pageID string) (int, error)
}

// PgPageRepository is the PostgreSQL implementation of PageRepository.
type PgPageRepository struct {
	pool *pgxpool.Pool
}

// NewPgPageRepository creates a PgPageRepository backed by the given pool.
func NewPgPageRepository(pool *pgxpool.Pool) *PgPageRepository {
	return &PgPageRepository{pool: pool}
}

// Ensure PgPageRepository implements PageRepository at compile time.
var _ PageRepository = (*PgPageRepository)(nil)

const pageColumns = `id, title, slug, on_send_message, COALESCE(recipient_field_label, ''),
	send_via_email, phone_required, show_phone_field, show_subject_field,
	show_recipient_field, created_at, updated_at`

func scanPage(row pgx.Row) (*model.ContactPage, error) {
	var p model.ContactPage
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.OnSendMessage, &p.RecipientFieldLabel,
		&p.SendViaEmail, &p.PhoneRequired, &p.ShowPhoneField, &p.ShowSubjectField,
		&p.ShowRecipientField, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new contact_pages row.
func (r *PgPageRepository) Create(ctx context.Context, page *model.ContactPage) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO contact_pages
		   (id, title, slug, on_send_message, recipient_field_label,
		    send_via_email, phone_required, show_phone_field,
		    show_subject_field, show_recipient_field, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12)`,
		page.ID, page.Title, page.Slug, page.OnSendMessage, page.RecipientFieldLabel,
		page.SendViaEmail, page.PhoneRequired, page.ShowPhoneField,
		page.ShowSubjectField, page.ShowRecipientField, page.CreatedAt, page.UpdatedAt,
	)
	return err
}

// Update rewrites the configurable fields of a contact_pages row.
func (r *PgPageRepository) Update(ctx context.Context, page *model.ContactPage) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_pages
		 SET title = $2, slug = $3, on_send_message = $4,
		     recipient_field_label = NULLIF($5, ''), send_via_email = $6,
		     phone_required = $7, show_phone_field = $8, show_subject_field = $9,
		     show_recipient_field = $10, updated_at = $11
		 WHERE id = $1`,
		page.ID, page.Title, page.Slug, page.OnSendMessage, page.RecipientFieldLabel,
		page.SendViaEmail, page.PhoneRequired, page.ShowPhoneField,
		page.ShowSubjectField, page.ShowRecipientField, page.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a contact page. Recipients, messages, components and items
// cascade away at the schema level.
func (r *PgPageRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_pages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns the page with the given id, or ErrNotFound.
func (r *PgPageRepository) GetByID(ctx context.Context, id string) (*model.ContactPage, error) {
	return scanPage(r.pool.QueryRow(ctx,
		`SELECT `+pageColumns+` FROM contact_pages WHERE id = $1`, id))
}

// GetBySlug returns the page with the given slug, or ErrNotFound.
func (r *PgPageRepository) GetBySlug(ctx context.Context, slug string) (*model.ContactPage, error) {
	return scanPage(r.pool.QueryRow(ctx,
		`SELECT `+pageColumns+` FROM contact_pages WHERE slug = $1`, slug))
}

// List returns all contact pages ordered by title.
func (r *PgPageRepository) List(ctx context.Context) ([]*model.ContactPage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+pageColumns+` FROM contact_pages ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*model.ContactPage
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// UnreadMessageCount returns the number of unread messages for the page.
func (r *PgPageRepository) UnreadMessageCount(ctx context.Context, pageID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM contact_messages WHERE page_id = $1 AND read = FALSE`,
		pageID,
	).Scan(&count)
	return count, err
}
