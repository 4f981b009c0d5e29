package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/contactware/backend/internal/model"
	"github.com/contactware/backend/internal/repository"
)

// RecipientService defines the admin-facing operations on contact
// recipients.
type RecipientService interface {
	Create(ctx context.Context, recipient *model.ContactRecipient) error
	Update(ctx context.Context, recipient *model.ContactRecipient) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*model.ContactRecipient, error)
	ListByPage(ctx context.Context, pageID string) ([]*model.ContactRecipient, error)
	ListEnabledByPage(ctx context.Context, pageID string) ([]*model.ContactRecipient, error)
}

// recipientServiceImpl is the production implementation of RecipientService.
type recipientServiceImpl struct {
	repo repository.RecipientRepository
}

// NewRecipientService creates a RecipientService backed by the given
// repository.
func NewRecipientService(repo repository.RecipientRepository) RecipientService {
	return &recipientServiceImpl{repo: repo}
}

// Create validates and stores a new recipient.
func (s *recipientServiceImpl) Create(ctx context.Context, recipient *model.ContactRecipient) error {
	if verr := validateRecipient(recipient); verr.HasErrors() {
		return verr
	}
	recipient.ID = uuid.NewString()
	recipient.CreatedAt = time.Now().UTC()
	if recipient.Slug == "" {
		recipient.Slug = Slugify(recipient.Name)
	}
	return s.repo.Create(ctx, recipient)
}

// Update validates and rewrites a recipient.
func (s *recipientServiceImpl) Update(ctx context.Context, recipient *model.ContactRecipient) error {
	if verr := validateRecipient(recipient); verr.HasErrors() {
		return verr
	}
	if recipient.Slug == "" {
		recipient.Slug = Slugify(recipient.Name)
	}
	return s.repo.Update(ctx, recipient)
}

// Delete removes a recipient. Historical messages keep existing; only their
// join rows to this recipient disappear.
func (s *recipientServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Get returns the recipient with the given id.
func (s *recipientServiceImpl) Get(ctx context.Context, id string) (*model.ContactRecipient, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByPage returns all recipients of a page, name ascending.
func (s *recipientServiceImpl) ListByPage(ctx context.Context, pageID string) ([]*model.ContactRecipient, error) {
	return s.repo.ListByPage(ctx, pageID)
}

// ListEnabledByPage returns the enabled recipients of a page, name
// ascending.
func (s *recipientServiceImpl) ListEnabledByPage(ctx context.Context, pageID string) ([]*model.ContactRecipient, error) {
	return s.repo.ListEnabledByPage(ctx, pageID)
}

// validateRecipient enforces the required fields and address syntax for a
// usable mail destination.
func validateRecipient(recipient *model.ContactRecipient) *ValidationError {
	verr := NewValidationError()

	if strings.TrimSpace(recipient.Name) == "" {
		verr.Add("name", "Name is required")
	}
	if recipient.EmailTo == "" {
		verr.Add("emailTo", "Email to is required")
	} else if !ValidEmail(recipient.EmailTo) {
		verr.Add("emailTo", "Email to is not a valid address")
	}
	if recipient.EmailFrom == "" {
		verr.Add("emailFrom", "Email from is required")
	} else if !ValidEmail(recipient.EmailFrom) {
		verr.Add("emailFrom", "Email from is not a valid address")
	}
	if strings.TrimSpace(recipient.EmailSubject) == "" {
		verr.Add("emailSubject", "Email subject is required")
	}

	return verr
}
