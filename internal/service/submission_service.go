package service

import (
	"context"

	"github.com/contactware/backend/internal/model"
)

// SubmissionInput carries the raw visitor input from the public contact
// form. Field names mirror the form field names.
type SubmissionInput struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Subject     string
	Message     string
	RecipientID string
}

// SubmissionResult reports the outcome of a successful submission.
type SubmissionResult struct {
	// Message is the persisted record, including its recipient snapshot.
	Message *model.ContactMessage
	// Confirmation is the text to show the visitor.
	Confirmation string
}

// SubmissionService handles the contact form submission workflow: validate,
// construct, resolve recipients, persist, dispatch, acknowledge.
type SubmissionService interface {
	// Submit processes one form submission against the given page
	// configuration. Input that fails validation returns a
	// *ValidationError and leaves no record behind. Once the message is
	// persisted the submission is a success; email delivery failures are
	// logged per recipient and never surface to the visitor.
	Submit(ctx context.Context, page *model.ContactPage, input SubmissionInput) (*SubmissionResult, error)
}

// ResolveRecipients determines which recipients a submission addresses. When
// the recipient field is shown, the choice narrows to the one enabled
// recipient matching recipientID, or nothing when it does not resolve.
// Otherwise every enabled recipient is addressed, in the given order.
func ResolveRecipients(showRecipientField bool, recipientID string, enabled []*model.ContactRecipient) []*model.ContactRecipient {
	if !showRecipientField {
		return enabled
	}
	for _, r := range enabled {
		if r.ID == recipientID {
			return []*model.ContactRecipient{r}
		}
	}
	return nil
}
