package service

import (
	"context"

	"github.com/contactware/backend/internal/model"
	"github.com/contactware/backend/internal/repository"
)

// MessageService defines the admin-facing operations on stored contact
// messages.
type MessageService interface {
	// List returns the messages of a page according to the given options.
	List(ctx context.Context, pageID string, opts model.MessageListOptions) ([]*model.ContactMessage, error)

	// View returns one message with its recipient snapshot and marks it
	// read. Viewing an already-read message causes no write.
	View(ctx context.Context, id string) (*model.ContactMessage, error)

	// MarkAsRead sets the read flag. Idempotent: already-read messages
	// short-circuit without a write.
	MarkAsRead(ctx context.Context, msg *model.ContactMessage) error

	// Delete removes a message.
	Delete(ctx context.Context, id string) error
}

// messageServiceImpl is the production implementation of MessageService.
type messageServiceImpl struct {
	repo repository.MessageRepository
}

// NewMessageService creates a MessageService backed by the given repository.
func NewMessageService(repo repository.MessageRepository) MessageService {
	return &messageServiceImpl{repo: repo}
}

// List returns messages filtered and paginated per opts.
func (s *messageServiceImpl) List(ctx context.Context, pageID string, opts model.MessageListOptions) ([]*model.ContactMessage, error) {
	return s.repo.ListByPage(ctx, pageID, opts)
}

// View fetches one message and marks it read.
func (s *messageServiceImpl) View(ctx context.Context, id string) (*model.ContactMessage, error) {
	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.MarkAsRead(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// MarkAsRead persists the read flag unless it is already set.
func (s *messageServiceImpl) MarkAsRead(ctx context.Context, msg *model.ContactMessage) error {
	if msg.IsRead() {
		return nil
	}
	if err := s.repo.MarkRead(ctx, msg.ID); err != nil {
		return err
	}
	msg.Read = true
	return nil
}

// Delete removes a message.
func (s *messageServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
