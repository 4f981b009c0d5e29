package model

import "time"

// DefaultOnSendMessage is shown to the visitor after sending when the page
// does not configure its own confirmation text.
const DefaultOnSendMessage = "Thank you for contacting us via our website."

// ContactPage is the configuration for one public contact form.
type ContactPage struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Slug                string    `json:"slug"`
	OnSendMessage       string    `json:"on_send_message"`
	RecipientFieldLabel string    `json:"recipient_field_label,omitempty"`
	SendViaEmail        bool      `json:"send_via_email"`
	PhoneRequired       bool      `json:"phone_required"`
	ShowPhoneField      bool      `json:"show_phone_field"`
	ShowSubjectField    bool      `json:"show_subject_field"`
	ShowRecipientField  bool      `json:"show_recipient_field"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// GetRecipientFieldLabel returns the configured label for the recipient
// dropdown, or "Recipient" when none is set.
func (p *ContactPage) GetRecipientFieldLabel() string {
	if p.RecipientFieldLabel != "" {
		return p.RecipientFieldLabel
	}
	return "Recipient"
}

// OnSendMessageOrDefault returns the page confirmation text, falling back to
// the module-wide default.
func (p *ContactPage) OnSendMessageOrDefault() string {
	if p.OnSendMessage != "" {
		return p.OnSendMessage
	}
	return DefaultOnSendMessage
}

// Link returns the public URL path of the contact page.
func (p *ContactPage) Link() string {
	return "/contact/" + p.Slug
}
