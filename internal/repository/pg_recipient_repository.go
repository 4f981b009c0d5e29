package repository

import (
	"context"
	"errors"

	"github.com/contactware/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecipientRepository defines the persistence interface for contact
// recipients.
type RecipientRepository interface {
	Create(ctx context.Context, recipient *model.ContactRecipient) error
	Update(ctx context.Context, recipient *model.ContactRecipient) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.ContactRecipient, error)
	ListByPage(ctx context.Context, pageID string) ([]*model.ContactRecipient, error)
	ListEnabledByPage(ctx context.Context, pageID string) ([]*model.ContactRecipient, error)
}

// PgRecipientRepository is the PostgreSQL implementation of
// RecipientRepository.
type PgRecipientRepository struct {
	pool *pgxpool.Pool
}

// NewPgRecipientRepository creates a PgRecipientRepository backed by the
// given pool.
func NewPgRecipientRepository(pool *pgxpool.Pool) *PgRecipientRepository {
	return &PgRecipientRepository{pool: pool}
}

// Ensure PgRecipientRepository implements RecipientRepository at compile time.
var _ RecipientRepository = (*PgRecipientRepository)(nil)

const recipientColumns = `id, page_id, name, slug, COALESCE(name_to, ''), email_to,
	COALESCE(name_from, ''), email_from, email_subject,
	COALESCE(on_send_message, ''), disabled, created_at`

func scanRecipient(row pgx.Row) (*model.ContactRecipient, error) {
	var rec model.ContactRecipient
	err := row.Scan(
		&rec.ID, &rec.PageID, &rec.Name, &rec.Slug, &rec.NameTo, &rec.EmailTo,
		&rec.NameFrom, &rec.EmailFrom, &rec.EmailSubject,
		&rec.OnSendMessage, &rec.Disabled, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create inserts a new contact_recipients row.
func (r *PgRecipientRepository) Create(ctx context.Context, recipient *model.ContactRecipient) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO contact_recipients
		   (id, page_id, name, slug, name_to, email_to, name_from, email_from,
		    email_subject, on_send_message, disabled, created_at)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, NULLIF($7, ''), $8,
		         $9, NULLIF($10, ''), $11, $12)`,
		recipient.ID, recipient.PageID, recipient.Name, recipient.Slug,
		recipient.NameTo, recipient.EmailTo, recipient.NameFrom, recipient.EmailFrom,
		recipient.EmailSubject, recipient.OnSendMessage, recipient.Disabled,
		recipient.CreatedAt,
	)
	return err
}

// Update rewrites a contact_recipients row.
func (r *PgRecipientRepository) Update(ctx context.Context, recipient *model.ContactRecipient) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_recipients
		 SET name = $2, slug = $3, name_to = NULLIF($4, ''), email_to = $5,
		     name_from = NULLIF($6, ''), email_from = $7, email_subject = $8,
		     on_send_message = NULLIF($9, ''), disabled = $10
		 WHERE id = $1`,
		recipient.ID, recipient.Name, recipient.Slug, recipient.NameTo,
		recipient.EmailTo, recipient.NameFrom, recipient.EmailFrom,
		recipient.EmailSubject, recipient.OnSendMessage, recipient.Disabled,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a recipient. Join rows to historical messages cascade away;
// the messages themselves are untouched.
func (r *PgRecipientRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_recipients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns the recipient with the given id, or ErrNotFound.
func (r *PgRecipientRepository) GetByID(ctx context.Context, id string) (*model.ContactRecipient, error) {
	return scanRecipient(r.pool.QueryRow(ctx,
		`SELECT `+recipientColumns+` FROM contact_recipients WHERE id = $1`, id))
}

// ListByPage returns all recipients of a page ordered by name.
func (r *PgRecipientRepository) ListByPage(ctx context.Context, pageID string) ([]*model.ContactRecipient, error) {
	return r.listByPage(ctx, pageID, false)
}

// ListEnabledByPage returns the enabled recipients of a page ordered by name.
func (r *PgRecipientRepository) ListEnabledByPage(ctx context.Context, pageID string) ([]*model.ContactRecipient, error) {
	return r.listByPage(ctx, pageID, true)
}

func (r *PgRecipientRepository) listByPage(ctx context.Context, pageID string, enabledOnly bool) ([]*model.ContactRecipient, error) {
	query := `SELECT ` + recipientColumns + ` FROM contact_recipients WHERE page_id = $1`
	if enabledOnly {
		query += ` AND disabled = FALSE`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipients []*model.ContactRecipient
	for rows.Next() {
		rec, err := scanRecipient(rows)
		if err != nil {
			return nil, err
		}
		recipients = append(recipients, rec)
	}
	return recipients, rows.Err()
}
