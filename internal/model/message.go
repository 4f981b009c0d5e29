package model

import (
	"fmt"
	"strings"
	"time"
)

// ContactMessage is one stored inbound visitor submission.
type ContactMessage struct {
	ID        string    `json:"id"`
	PageID    string    `json:"page_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`

	// Recipients is the snapshot of recipients the message was addressed to
	// at creation time. Entries for recipients deleted since then are absent.
	Recipients []*ContactRecipient `json:"recipients,omitempty"`
}

// FullName joins the non-empty name parts with a space.
func (m *ContactMessage) FullName() string {
	var names []string
	if m.FirstName != "" {
		names = append(names, m.FirstName)
	}
	if m.LastName != "" {
		names = append(names, m.LastName)
	}
	return strings.Join(names, " ")
}

// ReceivedFrom returns the sender as "Name <email>", or the bare address
// when no name was given.
func (m *ContactMessage) ReceivedFrom() string {
	if name := m.FullName(); name != "" {
		return fmt.Sprintf("%s <%s>", name, m.Email)
	}
	return m.Email
}

// RecipientNames returns a comma-separated listing of the recipient names,
// or "None" when the message has no remaining recipients.
func (m *ContactMessage) RecipientNames() string {
	if len(m.Recipients) == 0 {
		return "None"
	}
	names := make([]string, 0, len(m.Recipients))
	for _, r := range m.Recipients {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}

// IsRead reports whether the message has been viewed by an administrator.
func (m *ContactMessage) IsRead() bool {
	return m.Read
}

// MessageListOptions carries filter and pagination parameters for listing
// contact messages.
type MessageListOptions struct {
	// Status filters by read state: "", "all", "unread", "read".
	// Empty string and "all" return all messages.
	Status string
	Limit  int
	Offset int
}
