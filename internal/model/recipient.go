package model

import (
	"fmt"
	"time"
)

// ContactRecipient is a configured mail destination attached to a contact page.
type ContactRecipient struct {
	ID            string    `json:"id"`
	PageID        string    `json:"page_id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	NameTo        string    `json:"name_to,omitempty"`
	EmailTo       string    `json:"email_to"`
	NameFrom      string    `json:"name_from,omitempty"`
	EmailFrom     string    `json:"email_from"`
	EmailSubject  string    `json:"email_subject"`
	OnSendMessage string    `json:"on_send_message,omitempty"`
	Disabled      bool      `json:"disabled"`
	CreatedAt     time.Time `json:"created_at"`
}

// SendTo returns the name and address for sending to, as "Name <email>"
// when a name is configured, or the bare address otherwise.
func (r *ContactRecipient) SendTo() string {
	if r.NameTo != "" {
		return fmt.Sprintf("%s <%s>", r.NameTo, r.EmailTo)
	}
	return r.EmailTo
}

// SendFrom returns the name and address for sending from.
func (r *ContactRecipient) SendFrom() string {
	if r.NameFrom != "" {
		return fmt.Sprintf("%s <%s>", r.NameFrom, r.EmailFrom)
	}
	return r.EmailFrom
}

// Link returns the recipient-specific anchor link on the parent page.
func (r *ContactRecipient) Link(page *ContactPage) string {
	if r.Slug == "" {
		return page.Link()
	}
	return page.Link() + "#" + r.Slug
}
