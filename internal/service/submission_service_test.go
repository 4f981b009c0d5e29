package service

import (
	"context"
	"errors"
	"testing"
	"time"

	outbound "github.com/contactware/backend/internal/mail"
	"github.com/contactware/backend/internal/model"
)

// ---------------------------------------------------------------------------
// mocks — in-memory stubs for testing
// ---------------------------------------------------------------------------

type mockMessageRepository struct {
	createFunc   func(ctx context.Context, msg *model.ContactMessage, recipientIDs []string) error
	getByIDFunc  func(ctx context.Context, id string) (*model.ContactMessage, error)
	listFunc     func(ctx context.Context, pageID string, opts model.MessageListOptions) ([]*model.ContactMessage, error)
	markReadFunc func(ctx context.Context, id string) error
	deleteFunc   func(ctx context.Context, id string) error
}

func (m *mockMessageRepository) Create(ctx context.Context, msg *model.ContactMessage, recipientIDs []string) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, msg, recipientIDs)
	}
	return nil
}

func (m *mockMessageRepository) GetByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockMessageRepository) ListByPage(ctx context.Context, pageID string, opts model.MessageListOptions) ([]*model.ContactMessage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, pageID, opts)
	}
	return nil, nil
}

func (m *mockMessageRepository) MarkRead(ctx context.Context, id string) error {
	if m.markReadFunc != nil {
		return m.markReadFunc(ctx, id)
	}
	return nil
}

func (m *mockMessageRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockRecipientRepository struct {
	listEnabledFunc func(ctx context.Context, pageID string) ([]*model.ContactRecipient, error)
}

func (m *mockRecipientRepository) Create(ctx context.Context, r *model.ContactRecipient) error { return nil }
func (m *mockRecipientRepository) Update(ctx context.Context, r *model.ContactRecipient) error { return nil }
func (m *mockRecipientRepository) Delete(ctx context.Context, id string) error                 { return nil }
func (m *mockRecipientRepository) GetByID(ctx context.Context, id string) (*model.ContactRecipient, error) {
	return nil, nil
}
func (m *mockRecipientRepository) ListByPage(ctx context.Context, pageID string) ([]*model.ContactRecipient, error) {
	return nil, nil
}
func (m *mockRecipientRepository) ListEnabledByPage(ctx context.Context, pageID string) ([]*model.ContactRecipient, error) {
	if m.listEnabledFunc != nil {
		return m.listEnabledFunc(ctx, pageID)
	}
	return nil, nil
}

type mockSender struct {
	sendFunc func(ctx context.Context, email *outbound.Email) error
}

func (m *mockSender) Send(ctx context.Context, email *outbound.Email) error {
	if m.sendFunc != nil {
		return m.sendFunc(ctx, email)
	}
	return nil
}

// ---------------------------------------------------------------------------
// fixtures
// ---------------------------------------------------------------------------

func testPage() *model.ContactPage {
	return &model.ContactPage{
		ID:    "page-1",
		Title: "Contact Us",
		Slug:  "contact-us",
	}
}

func testInput() SubmissionInput {
	return SubmissionInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Message:   "Hello there",
	}
}

func twoRecipients() []*model.ContactRecipient {
	return []*model.ContactRecipient{
		{ID: "r-1", PageID: "page-1", Name: "Alice", EmailTo: "alice@example.com", EmailFrom: "noreply@example.com", EmailSubject: "Website enquiry for Alice"},
		{ID: "r-2", PageID: "page-1", Name: "Bob", EmailTo: "bob@example.com", EmailFrom: "noreply@example.com", EmailSubject: "Website enquiry for Bob"},
	}
}

// ---------------------------------------------------------------------------
// ResolveRecipients
// ---------------------------------------------------------------------------

func TestResolveRecipients_BroadcastWhenFieldHidden(t *testing.T) {
	enabled := twoRecipients()
	got := ResolveRecipients(false, "", enabled)
	if len(got) != 2 {
		t.Fatalf("expected all enabled recipients, got %d", len(got))
	}
	if got[0].ID != "r-1" || got[1].ID != "r-2" {
		t.Errorf("expected order preserved, got %q then %q", got[0].ID, got[1].ID)
	}
}

func TestResolveRecipients_SingleChoice(t *testing.T) {
	got := ResolveRecipients(true, "r-2", twoRecipients())
	if len(got) != 1 {
		t.Fatalf("expected one recipient, got %d", len(got))
	}
	if got[0].ID != "r-2" {
		t.Errorf("expected r-2, got %q", got[0].ID)
	}
}

func TestResolveRecipients_UnknownIDResolvesNothing(t *testing.T) {
	if got := ResolveRecipients(true, "r-99", twoRecipients()); len(got) != 0 {
		t.Errorf("expected no recipients for unknown id, got %d", len(got))
	}
}

// ---------------------------------------------------------------------------
// Submit — validation
// ---------------------------------------------------------------------------

func TestSubmit_MissingRequiredFields(t *testing.T) {
	var createCalled bool
	messages := &mockMessageRepository{
		createFunc: func(ctx context.Context, msg *model.ContactMessage, ids []string) error {
			createCalled = true
			return nil
		},
	}
	svc := NewSubmissionService(messages, &mockRecipientRepository{}, &mockSender{}, 0)

	_, err := svc.Submit(context.Background(), testPage(), SubmissionInput{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"firstName", "lastName", "email", "message"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("expected error on %q, got %v", field, verr.Fields)
		}
	}
	if createCalled {
		t.Error("nothing should be persisted when validation fails")
	}
}

func TestSubmit_InvalidEmailSyntax(t *testing.T) {
	svc := NewSubmissionService(&mockMessageRepository{}, &mockRecipientRepository{}, &mockSender{}, 0)

	input := testInput()
	input.Email = "not-an-address"
	_, err := svc.Submit(context.Background(), testPage(), input)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["email"]; !ok {
		t.Errorf("expected email error, got %v", verr.Fields)
	}
}

func TestSubmit_PhoneRequiredOnlyWhenShown(t *testing.T) {
	svc := NewSubmissionService(&mockMessageRepository{}, &mockRecipientRepository{}, &mockSender{}, 0)

	// Required but hidden: the phone field must not be validated.
	page := testPage()
	page.PhoneRequired = true
	if _, err := svc.Submit(context.Background(), page, testInput()); err != nil {
		t.Fatalf("unexpected error with hidden phone field: %v", err)
	}

	page.ShowPhoneField = true
	_, err := svc.Submit(context.Background(), page, testInput())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["phone"]; !ok {
		t.Errorf("expected phone error, got %v", verr.Fields)
	}
}

func TestSubmit_RecipientRequiredWhenFieldShown(t *testing.T) {
	var createCalled bool
	messages := &mockMessageRepository{
		createFunc: func(ctx context.Context, msg *model.ContactMessage, ids []string) error {
			createCalled = true
			return nil
		},
	}
	recipients := &mockRecipientRepository{
		listEnabledFunc: func(ctx context.Context, pageID string) ([]*model.ContactRecipient, error) {
			return twoRecipients(), nil
		},
	}
	svc := NewSubmissionService(messages, recipients, &mockSender{}, 0)

	page := testPage()
	page.ShowRecipientField = true

	_, err := svc.Submit(context.Background(), page, testInput())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["recipientId"]; !ok {
		t.Errorf("expected recipientId error, got %v", verr.Fields)
	}
	if createCalled {
		t.Error("nothing should be persisted when the recipient is missing")
	}
}

func TestSubmit_StaleRecipientIDRejected(t *testing.T) {
	recipients := &mockRecipientRepository{
		listEnabledFunc: func(ctx context.Context, pageID string) ([]*model.ContactRecipient, error) {
			return twoRecipients(), nil
		},
	}
	svc := NewSubmissionService(&mockMessageRepository{}, recipients, &mockSender{}, 0)

	page := testPage()
	page.ShowRecipientField = true
	input := testInput()
	input.RecipientID = "r-deleted"

	_, err := svc.Submit(context.Background(), page, input)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for stale recipient id, got %v", err)
	}
	if _, ok := verr.Fields["recipientId"]; !ok {
		t.Errorf("expected recipientId error, got %v", verr.Fields)
	}
}

// ---------------------------------------------------------------------------
// Submit — persistence and dispatch
// ---------------------------------------------------------------------------

func TestSubmit_PersistsBeforeDispatch(t *testing.T) {
	var order []string
	messages := &mockMessageRepository{
		createFunc: func(ctx context.Context, msg *model.ContactMessage, ids []string) error {
			order = append(order, "create")
			return nil
		},
	}
	recipients := &mockRecipientRepository{
		listEnabledFunc: func(ctx context.Context, pageID string) ([]*model.ContactRecipient, error) {
			return twoRecipients(), nil
		},
	}
	sender := &mockSender{
		sendFunc: func(ctx context.Context, email *outbound.Email) error {
			order = append(order, "send")
			return nil
		},
	}
	svc := NewSubmissionService(messages, recipients, sender, 0)

	page := testPage()
	page.SendViaEmail = true

	if _, err := svc.Submit(context.Background(), page, testInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 3 || order[0] != "create" {
		t.Fatalf("expected create before sends, got %v", order)
	}
}

func TestSubmit_BroadcastSendsOnePerRecipient(t *testing.T) {
	var sent []*outbound.Email
	sender := &mockSender{
		sendFunc: func(ctx context.Context, email *outbound.Email) error {
			sent = append(sent, email)
			return nil
		},
	}
	recipients := &mockRecipientRepository{
		listEnabledFunc: func(ctx context.Context, pageID string) ([]*model.ContactRecipient, error) {
			return twoRecipients(), nil
		},
	}
	svc := NewSubmissionService(&mockMessageRepository{}, recipients, sender, 0)

	page := testPage()
	page.SendViaEmail = true

	if _, err := svc.Submit(context.Background(), page, testInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(sent))
	}
	if sent[0].To.Email != "alice@example.com" || sent[1].To.Email != "bob@example.com" {
		t.Errorf("unexpected delivery addresses: %q, %q", sent[0].To.Email, sent[1].To.Email)
	}
	// No visitor subject given, so each email carries its recipient's own.
	if sent[0].Subject != "Website enquiry for Alice" || sent[1].Subject != "Website enquiry for Bob" {
		t.Errorf("unexpected subjects: %q, %q", sent[0].Subject, sent[1].Subject)
	}
}

func TestSubmit_VisitorSubjectOverridesRecipientSubject(t *testing.T) {
	var sent []*outbound.Email
	sender := &mockSender{
		sendFunc: func(ctx context.Context, email *outbound.Email) error {
			sent = append(sent, email)
			return nil
		},
	}
	recipients := &mockRecipientRepository{
		listEnabledFunc: func(ctx context.Context, pageID string) ([]*model.ContactRecipient, error) {
			return twoRecipients(), nil
		},
	}
	svc := NewSubmissionService(&mockMessageRepository{}, recipients, sender, 0)

	page := testPage()
	page.SendViaEmail = true
	page.ShowSubjectField = true
	input := testInput()
	input.Subject = "Broken widget"

	if _, err := svc.Submit(context.Background(), page, input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, email := range sent {
		if email.Subject != "Broken widget" {
			t.Errorf("expected visitor subject, got %q", email.Subject)
		}
	}
}

func TestSubmit_NoDispatchWhenSendViaEmailOff(t *testing.T) {
	var sendCalled bool
	sender := &mockSender{
		sendFunc: func(ctx context.Context, email *outbound.Email) error {
			sendCalled = true
			return nil
		},
	}
	recipients := &mockRecipientRepository{
		listEnabledFunc: func(ctx context.Context, pageID string) ([]*model.ContactRecipient, error) {
			return twoRecipients(), nil
		},
	}
	svc := NewSubmissionService(&mockMessageRepository{}, recipients, sender, 0)

	if _, err := svc.Submit(context.Background(), testPage(), testInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sendCalled {
		t.Error("no email should be sent when send_via_email is off")
	}
}

func TestSubmit_SendFailureDoesNotFailSubmission(t *testing.T) {
	calls := 0
	sender := &mockSender{
		sendFunc: func(ctx context.Context, email *outbound.Email) error {
			calls++
			if calls == 1 {
				return errors.New("connection refused")
			}
			return nil
		},
	}
	recipients := &mockRecipientRepository{
		listEnabledFunc: func(ctx context.Context, pageID string) ([]*model.ContactRecipient, error) {
			return twoRecipients(), nil
		},
	}
	svc := NewSubmissionService(&mockMessageRepository{}, recipients, sender, 0)

	page := testPage()
	page.SendViaEmail = true

	result, err := svc.Submit(context.Background(), page, testInput())
	if err != nil {
		t.Fatalf("delivery failure must not surface: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected delivery attempted for both recipients, got %d", calls)
	}
	if result.Confirmation == "" {
		t.Error("expected a confirmation text despite the failed delivery")
	}
}

func TestSubmit_DisabledRecipientsNeverAddressed(t *testing.T) {
	// The repository only ever returns enabled recipients; an empty result
	// means a broadcast submission addresses nobody but still persists.
	var savedIDs []string
	messages := &mockMessageRepository{
		createFunc: func(ctx context.Context, msg *model.ContactMessage, ids []string) error {
			savedIDs = ids
			return nil
		},
	}
	recipients := &mockRecipientRepository{
		listEnabledFunc: func(ctx context.Context, pageID string) ([]*model.ContactRecipient, error) {
			return nil, nil
		},
	}
	svc := NewSubmissionService(messages, recipients, &mockSender{}, 0)

	page := testPage()
	page.SendViaEmail = true

	result, err := svc.Submit(context.Background(), page, testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(savedIDs) != 0 {
		t.Errorf("expected empty recipient snapshot, got %v", savedIDs)
	}
	if len(result.Message.Recipients) != 0 {
		t.Errorf("expected no recipients on the message, got %d", len(result.Message.Recipients))
	}
}

func TestSubmit_MessageFieldsAndTimestamps(t *testing.T) {
	before := time.Now().UTC()
	var saved *model.ContactMessage
	messages := &mockMessageRepository{
		createFunc: func(ctx context.Context, msg *model.ContactMessage, ids []string) error {
			saved = msg
			return nil
		},
	}
	svc := NewSubmissionService(messages, &mockRecipientRepository{}, &mockSender{}, 0)

	input := SubmissionInput{
		FirstName: "  Jane ",
		LastName:  " Doe ",
		Email:     " jane@example.com ",
		Message:   " Hello there ",
	}
	if _, err := svc.Submit(context.Background(), testPage(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil {
		t.Fatal("expected Create to be called")
	}
	if saved.ID == "" {
		t.Error("expected a generated id")
	}
	if saved.FirstName != "Jane" || saved.LastName != "Doe" || saved.Email != "jane@example.com" {
		t.Errorf("expected trimmed fields, got %q %q %q", saved.FirstName, saved.LastName, saved.Email)
	}
	if saved.Read {
		t.Error("new messages start unread")
	}
	if saved.CreatedAt.Before(before) || saved.CreatedAt.After(time.Now().UTC()) {
		t.Errorf("unexpected CreatedAt %v", saved.CreatedAt)
	}
}

// ---------------------------------------------------------------------------
// confirmation text
// ---------------------------------------------------------------------------

func TestSubmit_ConfirmationUsesRecipientOverride(t *testing.T) {
	rs := twoRecipients()
	rs[1].OnSendMessage = "Bob will reply within a day."
	recipients := &mockRecipientRepository{
		listEnabledFunc: func(ctx context.Context, pageID string) ([]*model.ContactRecipient, error) {
			return rs, nil
		},
	}
	svc := NewSubmissionService(&mockMessageRepository{}, recipients, &mockSender{}, 0)

	page := testPage()
	page.ShowRecipientField = true
	page.OnSendMessage = "Thanks from the page."
	input := testInput()
	input.RecipientID = "r-2"

	result, err := svc.Submit(context.Background(), page, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Confirmation != "Bob will reply within a day." {
		t.Errorf("expected recipient confirmation, got %q", result.Confirmation)
	}
}

func TestSubmit_ConfirmationFallsBackToPageText(t *testing.T) {
	recipients := &mockRecipientRepository{
		listEnabledFunc: func(ctx context.Context, pageID string) ([]*model.ContactRecipient, error) {
			return twoRecipients(), nil
		},
	}
	svc := NewSubmissionService(&mockMessageRepository{}, recipients, &mockSender{}, 0)

	page := testPage()
	page.ShowRecipientField = true
	page.OnSendMessage = "Thanks from the page."
	input := testInput()
	input.RecipientID = "r-1"

	result, err := svc.Submit(context.Background(), page, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Confirmation != "Thanks from the page." {
		t.Errorf("expected page confirmation, got %q", result.Confirmation)
	}
}

func TestSubmit_ConfirmationDefaultWhenPageTextEmpty(t *testing.T) {
	svc := NewSubmissionService(&mockMessageRepository{}, &mockRecipientRepository{}, &mockSender{}, 0)

	result, err := svc.Submit(context.Background(), testPage(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Confirmation != model.DefaultOnSendMessage {
		t.Errorf("expected default confirmation, got %q", result.Confirmation)
	}
}
