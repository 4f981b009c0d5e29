package model

import "testing"

func TestContactMessage_FullName(t *testing.T) {
	cases := []struct {
		first, last, want string
	}{
		{"Jane", "Doe", "Jane Doe"},
		{"Jane", "", "Jane"},
		{"", "Doe", "Doe"},
		{"", "", ""},
	}
	for _, c := range cases {
		m := &ContactMessage{FirstName: c.first, LastName: c.last}
		if got := m.FullName(); got != c.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", c.first, c.last, got, c.want)
		}
	}
}

func TestContactMessage_ReceivedFrom(t *testing.T) {
	m := &ContactMessage{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}
	if got := m.ReceivedFrom(); got != "Jane Doe <jane@example.com>" {
		t.Errorf("ReceivedFrom() = %q", got)
	}

	m = &ContactMessage{Email: "jane@example.com"}
	if got := m.ReceivedFrom(); got != "jane@example.com" {
		t.Errorf("ReceivedFrom() = %q, want bare address", got)
	}
}

func TestContactMessage_RecipientNames(t *testing.T) {
	m := &ContactMessage{}
	if got := m.RecipientNames(); got != "None" {
		t.Errorf("RecipientNames() = %q, want None for empty snapshot", got)
	}

	m.Recipients = []*ContactRecipient{{Name: "Alice"}, {Name: "Bob"}}
	if got := m.RecipientNames(); got != "Alice, Bob" {
		t.Errorf("RecipientNames() = %q", got)
	}
}

func TestContactRecipient_SendToSendFrom(t *testing.T) {
	r := &ContactRecipient{
		NameTo: "Alice", EmailTo: "alice@example.com",
		EmailFrom: "noreply@example.com",
	}
	if got := r.SendTo(); got != "Alice <alice@example.com>" {
		t.Errorf("SendTo() = %q", got)
	}
	if got := r.SendFrom(); got != "noreply@example.com" {
		t.Errorf("SendFrom() = %q, want bare address without a name", got)
	}
}

func TestContactRecipient_Link(t *testing.T) {
	page := &ContactPage{Slug: "contact-us"}
	r := &ContactRecipient{Slug: "alice"}
	if got := r.Link(page); got != "/contact/contact-us#alice" {
		t.Errorf("Link() = %q", got)
	}

	r.Slug = ""
	if got := r.Link(page); got != "/contact/contact-us" {
		t.Errorf("Link() = %q, want page link without anchor", got)
	}
}

func TestContactPage_Defaults(t *testing.T) {
	p := &ContactPage{Slug: "contact-us"}
	if got := p.GetRecipientFieldLabel(); got != "Recipient" {
		t.Errorf("GetRecipientFieldLabel() = %q", got)
	}
	if got := p.OnSendMessageOrDefault(); got != DefaultOnSendMessage {
		t.Errorf("OnSendMessageOrDefault() = %q", got)
	}
	if got := p.Link(); got != "/contact/contact-us" {
		t.Errorf("Link() = %q", got)
	}

	p.RecipientFieldLabel = "Department"
	p.OnSendMessage = "Cheers!"
	if got := p.GetRecipientFieldLabel(); got != "Department" {
		t.Errorf("GetRecipientFieldLabel() = %q", got)
	}
	if got := p.OnSendMessageOrDefault(); got != "Cheers!" {
		t.Errorf("OnSendMessageOrDefault() = %q", got)
	}
}
