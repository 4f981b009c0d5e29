package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/contactware/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageRepository defines the persistence interface for contact messages.
type MessageRepository interface {
	// Create inserts the message together with its recipient snapshot in a
	// single transaction.
	Create(ctx context.Context, msg *model.ContactMessage, recipientIDs []string) error
	GetByID(ctx context.Context, id string) (*model.ContactMessage, error)
	ListByPage(ctx context.Context, pageID string, opts model.MessageListOptions) ([]*model.ContactMessage, error)
	// MarkRead sets the read flag. Writes only when the flag is still false.
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// PgMessageRepository is the PostgreSQL implementation of MessageRepository.
type PgMessageRepository struct {
	pool *pgxpool.Pool
}

// NewPgMessageRepository creates a PgMessageRepository backed by the given
// pool.
func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

// Ensure PgMessageRepository implements MessageRepository at compile time.
var _ MessageRepository = (*PgMessageRepository)(nil)

const messageColumns = `id, page_id, first_name, last_name, email,
	COALESCE(phone, ''), COALESCE(subject, ''), message, read, created_at`

func scanMessage(row pgx.Row) (*model.ContactMessage, error) {
	var m model.ContactMessage
	err := row.Scan(
		&m.ID, &m.PageID, &m.FirstName, &m.LastName, &m.Email,
		&m.Phone, &m.Subject, &m.Message, &m.Read, &m.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a contact_messages row and its recipient join rows in one
// transaction, so a message is never visible without its recipient snapshot.
func (r *PgMessageRepository) Create(ctx context.Context, msg *model.ContactMessage, recipientIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO contact_messages
		   (id, page_id, first_name, last_name, email, phone, subject,
		    message, read, created_at)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10)`,
		msg.ID, msg.PageID, msg.FirstName, msg.LastName, msg.Email,
		msg.Phone, msg.Subject, msg.Message, msg.Read, msg.CreatedAt,
	)
	if err != nil {
		return err
	}

	for i, recipientID := range recipientIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO contact_message_recipients (message_id, recipient_id, position)
			 VALUES ($1, $2, $3)`,
			msg.ID, recipientID, i,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetByID returns the message with the given id, including its remaining
// recipient snapshot, or ErrNotFound.
func (r *PgMessageRepository) GetByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	msg, err := scanMessage(r.pool.QueryRow(ctx,
		`SELECT `+messageColumns+` FROM contact_messages WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT r.id, r.page_id, r.name, r.slug, COALESCE(r.name_to, ''), r.email_to,
		        COALESCE(r.name_from, ''), r.email_from, r.email_subject,
		        COALESCE(r.on_send_message, ''), r.disabled, r.created_at
		 FROM contact_recipients r
		 JOIN contact_message_recipients mr ON mr.recipient_id = r.id
		 WHERE mr.message_id = $1
		 ORDER BY mr.position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanRecipient(rows)
		if err != nil {
			return nil, err
		}
		msg.Recipients = append(msg.Recipients, rec)
	}
	return msg, rows.Err()
}

// ListByPage returns the messages of a page, newest first, filtered by read
// state and paginated by limit/offset. Status "" or "all" returns all
// messages.
func (r *PgMessageRepository) ListByPage(ctx context.Context, pageID string, opts model.MessageListOptions) ([]*model.ContactMessage, error) {
	query := `SELECT ` + messageColumns + ` FROM contact_messages WHERE page_id = $1`
	args := []any{pageID}

	switch strings.TrimSpace(opts.Status) {
	case "", "all":
	case "unread":
		query += ` AND read = FALSE`
	case "read":
		query += ` AND read = TRUE`
	}

	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*model.ContactMessage
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// MarkRead flips the read flag to true. The WHERE clause keeps the write a
// no-op for already-read messages.
func (r *PgMessageRepository) MarkRead(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE contact_messages SET read = TRUE WHERE id = $1 AND read = FALSE`, id)
	return err
}

// Delete removes a message and its join rows.
func (r *PgMessageRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
