package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/contactware/backend/internal/model"
	"github.com/contactware/backend/internal/repository"
	"github.com/contactware/backend/pkg/countries"
)

// ItemService defines the admin-facing operations on contact components and
// their items.
type ItemService interface {
	CreateComponent(ctx context.Context, component *model.ContactComponent) error
	UpdateComponent(ctx context.Context, component *model.ContactComponent) error
	DeleteComponent(ctx context.Context, id string) error
	GetComponent(ctx context.Context, id string) (*model.ContactComponent, error)
	ListComponentsByPage(ctx context.Context, pageID string) ([]*model.ContactComponent, error)

	CreateItem(ctx context.Context, item *model.ContactItem) error
	UpdateItem(ctx context.Context, item *model.ContactItem) error
	DeleteItem(ctx context.Context, id string) error
	GetItem(ctx context.Context, id string) (*model.ContactItem, error)
	ListItems(ctx context.Context, componentID string) ([]*model.ContactItem, error)

	// EnabledItems returns the displayable items of a component in sort
	// order, excluding disabled items and link items with nothing to link
	// to.
	EnabledItems(ctx context.Context, componentID string) ([]*model.ContactItem, error)
}

// itemServiceImpl is the production implementation of ItemService.
type itemServiceImpl struct {
	components repository.ComponentRepository
	items      repository.ItemRepository
}

// NewItemService creates an ItemService backed by the given repositories.
func NewItemService(components repository.ComponentRepository, items repository.ItemRepository) ItemService {
	return &itemServiceImpl{components: components, items: items}
}

func (s *itemServiceImpl) CreateComponent(ctx context.Context, component *model.ContactComponent) error {
	if verr := validateComponent(component); verr.HasErrors() {
		return verr
	}
	component.ID = uuid.NewString()
	component.CreatedAt = time.Now().UTC()
	return s.components.Create(ctx, component)
}

func (s *itemServiceImpl) UpdateComponent(ctx context.Context, component *model.ContactComponent) error {
	if verr := validateComponent(component); verr.HasErrors() {
		return verr
	}
	return s.components.Update(ctx, component)
}

func (s *itemServiceImpl) DeleteComponent(ctx context.Context, id string) error {
	return s.components.Delete(ctx, id)
}

func (s *itemServiceImpl) GetComponent(ctx context.Context, id string) (*model.ContactComponent, error) {
	return s.components.GetByID(ctx, id)
}

func (s *itemServiceImpl) ListComponentsByPage(ctx context.Context, pageID string) ([]*model.ContactComponent, error) {
	return s.components.ListByPage(ctx, pageID)
}

func (s *itemServiceImpl) CreateItem(ctx context.Context, item *model.ContactItem) error {
	if verr := validateItem(item); verr.HasErrors() {
		return verr
	}
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now().UTC()
	return s.items.Create(ctx, item)
}

func (s *itemServiceImpl) UpdateItem(ctx context.Context, item *model.ContactItem) error {
	if verr := validateItem(item); verr.HasErrors() {
		return verr
	}
	return s.items.Update(ctx, item)
}

func (s *itemServiceImpl) DeleteItem(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}

func (s *itemServiceImpl) GetItem(ctx context.Context, id string) (*model.ContactItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *itemServiceImpl) ListItems(ctx context.Context, componentID string) ([]*model.ContactItem, error) {
	return s.items.ListByComponent(ctx, componentID)
}

func (s *itemServiceImpl) EnabledItems(ctx context.Context, componentID string) ([]*model.ContactItem, error) {
	items, err := s.items.ListByComponent(ctx, componentID)
	if err != nil {
		return nil, err
	}
	enabled := items[:0]
	for _, item := range items {
		if item.IsEnabled() {
			enabled = append(enabled, item)
		}
	}
	return enabled, nil
}

func validateComponent(component *model.ContactComponent) *ValidationError {
	verr := NewValidationError()
	if strings.TrimSpace(component.Title) == "" {
		verr.Add("title", "Title is required")
	}
	return verr
}

// validateItem checks the common fields plus the fields the item's kind
// formats.
func validateItem(item *model.ContactItem) *ValidationError {
	verr := NewValidationError()

	if !model.ValidItemKind(item.Kind) {
		verr.Add("kind", "Unknown item kind")
		return verr
	}
	if strings.TrimSpace(item.Title) == "" {
		verr.Add("title", "Title is required")
	}

	d := item.Detail
	switch item.Kind {
	case model.ItemKindAddress:
		if d.Country != "" && !countries.Valid(d.Country) {
			verr.Add("country", "Unknown country code")
		}
	case model.ItemKindEmail:
		if d.Email == "" {
			verr.Add("email", "Email is required")
		} else if !ValidEmail(d.Email) {
			verr.Add("email", "Email address is not valid")
		}
	case model.ItemKindFax:
		if d.FaxNumber == "" {
			verr.Add("faxNumber", "Fax number is required")
		}
	case model.ItemKindHeading, model.ItemKindText:
		if d.Text == "" {
			verr.Add("text", "Text is required")
		}
	case model.ItemKindPhone:
		if d.PhoneNumber == "" && d.CallToNumber == "" {
			verr.Add("phoneNumber", "Phone number is required")
		}
		if d.LinkScheme != "" && d.LinkScheme != model.PhoneSchemeCallTo && d.LinkScheme != model.PhoneSchemeTel {
			verr.Add("linkScheme", "Link scheme must be callto or tel")
		}
	case model.ItemKindSkype:
		if d.SkypeName == "" {
			verr.Add("skypeName", "Skype name is required")
		}
		if d.SkypeMode != model.SkypeModeCall && d.SkypeMode != model.SkypeModeChat {
			verr.Add("skypeMode", "Skype mode must be call or chat")
		}
	}

	return verr
}
