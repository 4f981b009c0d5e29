package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/contactware/backend/internal/model"
	"github.com/contactware/backend/internal/repository"
)

// PageService defines the admin-facing operations on contact pages.
type PageService interface {
	Create(ctx context.Context, page *model.ContactPage) error
	Update(ctx context.Context, page *model.ContactPage) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*model.ContactPage, error)
	GetBySlug(ctx context.Context, slug string) (*model.ContactPage, error)
	List(ctx context.Context) ([]*model.ContactPage, error)
	UnreadMessageCount(ctx context.Context, pageID string) (int, error)
}

// pageServiceImpl is the production implementation of PageService.
type pageServiceImpl struct {
	repo repository.PageRepository
}

// NewPageService creates a PageService backed by the given repository.
func NewPageService(repo repository.PageRepository) PageService {
	return &pageServiceImpl{repo: repo}
}

// Create validates and stores a new page, populating ID, slug, the default
// confirmation text and timestamps.
func (s *pageServiceImpl) Create(ctx context.Context, page *model.ContactPage) error {
	if verr := validatePage(page); verr.HasErrors() {
		return verr
	}

	now := time.Now().UTC()
	page.ID = uuid.NewString()
	page.CreatedAt = now
	page.UpdatedAt = now
	if page.Slug == "" {
		page.Slug = Slugify(page.Title)
	}
	if page.OnSendMessage == "" {
		page.OnSendMessage = model.DefaultOnSendMessage
	}
	return s.repo.Create(ctx, page)
}

// Update validates and rewrites a page's configuration.
func (s *pageServiceImpl) Update(ctx context.Context, page *model.ContactPage) error {
	if verr := validatePage(page); verr.HasErrors() {
		return verr
	}
	if page.Slug == "" {
		page.Slug = Slugify(page.Title)
	}
	page.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, page)
}

// Delete removes a page and everything it owns.
func (s *pageServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Get returns the page with the given id.
func (s *pageServiceImpl) Get(ctx context.Context, id string) (*model.ContactPage, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySlug returns the page with the given public slug.
func (s *pageServiceImpl) GetBySlug(ctx context.Context, slug string) (*model.ContactPage, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// List returns all pages.
func (s *pageServiceImpl) List(ctx context.Context) ([]*model.ContactPage, error) {
	return s.repo.List(ctx)
}

// UnreadMessageCount returns the unread-message badge count for a page.
func (s *pageServiceImpl) UnreadMessageCount(ctx context.Context, pageID string) (int, error) {
	return s.repo.UnreadMessageCount(ctx, pageID)
}

func validatePage(page *model.ContactPage) *ValidationError {
	verr := NewValidationError()
	if strings.TrimSpace(page.Title) == "" {
		verr.Add("title", "Title is required")
	}
	return verr
}

// Slugify lowercases s and collapses every non-alphanumeric run into a
// single hyphen.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
