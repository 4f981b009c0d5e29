package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/contactware/backend/internal/model"
	"github.com/contactware/backend/internal/repository"
)

type mockMessageService struct {
	listFunc   func(ctx context.Context, pageID string, opts model.MessageListOptions) ([]*model.ContactMessage, error)
	viewFunc   func(ctx context.Context, id string) (*model.ContactMessage, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockMessageService) List(ctx context.Context, pageID string, opts model.MessageListOptions) ([]*model.ContactMessage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, pageID, opts)
	}
	return nil, nil
}

func (m *mockMessageService) View(ctx context.Context, id string) (*model.ContactMessage, error) {
	if m.viewFunc != nil {
		return m.viewFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockMessageService) MarkAsRead(ctx context.Context, msg *model.ContactMessage) error {
	return nil
}

func (m *mockMessageService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func TestMessageHandler_List_ParsesQueryOptions(t *testing.T) {
	var gotOpts model.MessageListOptions
	svc := &mockMessageService{
		listFunc: func(ctx context.Context, pageID string, opts model.MessageListOptions) ([]*model.ContactMessage, error) {
			gotOpts = opts
			return []*model.ContactMessage{{ID: "m-1", PageID: pageID}}, nil
		},
	}
	h := NewMessageHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/pages/page-1/messages?status=unread&limit=5&offset=10", nil)
	req.SetPathValue("id", "page-1")
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotOpts.Status != "unread" || gotOpts.Limit != 5 || gotOpts.Offset != 10 {
		t.Errorf("unexpected options %+v", gotOpts)
	}

	var body struct {
		Messages []*model.ContactMessage `json:"messages"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Messages) != 1 || body.Messages[0].ID != "m-1" {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestMessageHandler_List_BoundsAndDefaults(t *testing.T) {
	var gotOpts model.MessageListOptions
	svc := &mockMessageService{
		listFunc: func(ctx context.Context, pageID string, opts model.MessageListOptions) ([]*model.ContactMessage, error) {
			gotOpts = opts
			return nil, nil
		},
	}
	h := NewMessageHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/pages/page-1/messages?limit=9999&offset=-1", nil)
	req.SetPathValue("id", "page-1")
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if gotOpts.Limit != 20 || gotOpts.Offset != 0 {
		t.Errorf("expected out-of-range values replaced by defaults, got %+v", gotOpts)
	}

	var body struct {
		Messages []*model.ContactMessage `json:"messages"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Messages == nil {
		t.Error("expected empty array, not null")
	}
}

func TestMessageHandler_Get_ReturnsViewedMessage(t *testing.T) {
	svc := &mockMessageService{
		viewFunc: func(ctx context.Context, id string) (*model.ContactMessage, error) {
			return &model.ContactMessage{ID: id, Read: true}, nil
		},
	}
	h := NewMessageHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/messages/m-1", nil)
	req.SetPathValue("id", "m-1")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var msg model.ContactMessage
	if err := json.NewDecoder(rec.Body).Decode(&msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.ID != "m-1" || !msg.Read {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestMessageHandler_Get_NotFound(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/messages/no-such", nil)
	req.SetPathValue("id", "no-such")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestMessageHandler_Delete(t *testing.T) {
	var deletedID string
	svc := &mockMessageService{
		deleteFunc: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	h := NewMessageHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/messages/m-1", nil)
	req.SetPathValue("id", "m-1")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deletedID != "m-1" {
		t.Errorf("deleted id = %q", deletedID)
	}
}
