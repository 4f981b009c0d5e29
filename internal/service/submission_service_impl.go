package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	outbound "github.com/contactware/backend/internal/mail"
	"github.com/contactware/backend/internal/model"
	"github.com/contactware/backend/internal/repository"
)

const defaultSendTimeout = 10 * time.Second

// submissionServiceImpl is the production implementation of
// SubmissionService.
type submissionServiceImpl struct {
	messages    repository.MessageRepository
	recipients  repository.RecipientRepository
	sender      outbound.Sender
	sendTimeout time.Duration
}

// NewSubmissionService creates a SubmissionService backed by the given
// repositories and mail sender. sendTimeout bounds each recipient delivery;
// zero selects the default.
func NewSubmissionService(
	messages repository.MessageRepository,
	recipients repository.RecipientRepository,
	sender outbound.Sender,
	sendTimeout time.Duration,
) SubmissionService {
	if sendTimeout <= 0 {
		sendTimeout = defaultSendTimeout
	}
	return &submissionServiceImpl{
		messages:    messages,
		recipients:  recipients,
		sender:      sender,
		sendTimeout: sendTimeout,
	}
}

// Submit runs the submission workflow. The message is persisted with its
// recipient snapshot before any delivery attempt, so a message that fails to
// send still exists for administrators.
func (s *submissionServiceImpl) Submit(ctx context.Context, page *model.ContactPage, input SubmissionInput) (*SubmissionResult, error) {
	input = trimInput(input)

	if verr := validateInput(page, input); verr.HasErrors() {
		return nil, verr
	}

	enabled, err := s.recipients.ListEnabledByPage(ctx, page.ID)
	if err != nil {
		return nil, fmt.Errorf("loading recipients: %w", err)
	}

	resolved := ResolveRecipients(page.ShowRecipientField, input.RecipientID, enabled)
	if page.ShowRecipientField && len(resolved) == 0 {
		verr := NewValidationError()
		verr.Add("recipientId", "Please choose a recipient")
		return nil, verr
	}

	msg := &model.ContactMessage{
		ID:         uuid.NewString(),
		PageID:     page.ID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Phone:      input.Phone,
		Subject:    input.Subject,
		Message:    input.Message,
		Read:       false,
		CreatedAt:  time.Now().UTC(),
		Recipients: resolved,
	}

	recipientIDs := make([]string, len(resolved))
	for i, r := range resolved {
		recipientIDs[i] = r.ID
	}

	if err := s.messages.Create(ctx, msg, recipientIDs); err != nil {
		return nil, fmt.Errorf("persisting message: %w", err)
	}

	if page.SendViaEmail {
		s.dispatch(ctx, page, msg, resolved)
	}

	return &SubmissionResult{
		Message:      msg,
		Confirmation: confirmationText(page, input.RecipientID, resolved),
	}, nil
}

// dispatch sends one email per recipient. Each send is independent: a
// failure is logged and the loop continues with the next recipient.
func (s *submissionServiceImpl) dispatch(ctx context.Context, page *model.ContactPage, msg *model.ContactMessage, recipients []*model.ContactRecipient) {
	for _, r := range recipients {
		subject := msg.Subject
		if subject == "" {
			subject = r.EmailSubject
		}

		html, err := outbound.RenderBody(outbound.BodyData{
			PageTitle:     page.Title,
			RecipientName: r.Name,
			FullName:      msg.FullName(),
			Email:         msg.Email,
			Phone:         msg.Phone,
			Subject:       msg.Subject,
			Message:       msg.Message,
			ReceivedAt:    msg.CreatedAt,
		})
		if err != nil {
			slog.Error("rendering contact email failed",
				"message_id", msg.ID, "recipient_id", r.ID, "error", err)
			continue
		}

		email := &outbound.Email{
			From:    outbound.Address{Name: r.NameFrom, Email: r.EmailFrom},
			To:      outbound.Address{Name: r.NameTo, Email: r.EmailTo},
			Subject: subject,
			HTML:    html,
		}

		sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
		err = s.sender.Send(sendCtx, email)
		cancel()
		if err != nil {
			slog.Error("contact email delivery failed",
				"message_id", msg.ID, "recipient_id", r.ID,
				"to", email.To.String(), "error", err)
		}
	}
}

// confirmationText picks the acknowledgment shown to the visitor: the chosen
// recipient's own text when one explicit recipient was selected and defines
// one, otherwise the page text.
func confirmationText(page *model.ContactPage, recipientID string, resolved []*model.ContactRecipient) string {
	if page.ShowRecipientField && recipientID != "" {
		for _, r := range resolved {
			if r.ID == recipientID && r.OnSendMessage != "" {
				return r.OnSendMessage
			}
		}
	}
	return page.OnSendMessageOrDefault()
}

func trimInput(input SubmissionInput) SubmissionInput {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Subject = strings.TrimSpace(input.Subject)
	input.Message = strings.TrimSpace(input.Message)
	input.RecipientID = strings.TrimSpace(input.RecipientID)
	return input
}

// validateInput checks the required-per-configuration fields and the email
// syntax.
func validateInput(page *model.ContactPage, input SubmissionInput) *ValidationError {
	verr := NewValidationError()

	if input.FirstName == "" {
		verr.Add("firstName", "First name is required")
	}
	if input.LastName == "" {
		verr.Add("lastName", "Last name is required")
	}
	if input.Email == "" {
		verr.Add("email", "Email is required")
	} else if !ValidEmail(input.Email) {
		verr.Add("email", "Email address is not valid")
	}
	if input.Message == "" {
		verr.Add("message", "Message is required")
	}
	if page.ShowPhoneField && page.PhoneRequired && input.Phone == "" {
		verr.Add("phone", "Phone is required")
	}
	if page.ShowSubjectField && input.Subject == "" {
		verr.Add("subject", "Subject is required")
	}
	if page.ShowRecipientField && input.RecipientID == "" {
		verr.Add("recipientId", "Please choose a recipient")
	}

	return verr
}

// ValidEmail reports whether addr is a syntactically valid bare email
// address.
func ValidEmail(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return false
	}
	// Reject display-name forms like `Name <a@b.com>`; the form collects
	// the address alone.
	return parsed.Address == addr
}
