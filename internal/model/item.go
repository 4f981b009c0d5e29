package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/contactware/backend/pkg/countries"
)

// ItemKind identifies the variant of a contact item.
type ItemKind string

const (
	ItemKindAddress ItemKind = "address"
	ItemKindEmail   ItemKind = "email"
	ItemKindFax     ItemKind = "fax"
	ItemKindHeading ItemKind = "heading"
	ItemKindLink    ItemKind = "link"
	ItemKindPhone   ItemKind = "phone"
	ItemKindSkype   ItemKind = "skype"
	ItemKindText    ItemKind = "text"
)

// ValidItemKind reports whether k is a known item kind.
func ValidItemKind(k ItemKind) bool {
	switch k {
	case ItemKindAddress, ItemKindEmail, ItemKindFax, ItemKindHeading,
		ItemKindLink, ItemKindPhone, ItemKindSkype, ItemKindText:
		return true
	}
	return false
}

// Skype link modes.
const (
	SkypeModeCall = "call"
	SkypeModeChat = "chat"
)

// Phone link schemes.
const (
	PhoneSchemeCallTo = "callto"
	PhoneSchemeTel    = "tel"
)

// ItemDetail holds the kind-specific fields of a contact item. Only the
// fields for the item's kind are populated; the struct is persisted as a
// single JSONB column.
type ItemDetail struct {
	// address
	Street         string `json:"street,omitempty"`
	StreetLine2    string `json:"street_line_2,omitempty"`
	Suburb         string `json:"suburb,omitempty"`
	StateTerritory string `json:"state_territory,omitempty"`
	PostalCode     string `json:"postal_code,omitempty"`
	Country        string `json:"country,omitempty"` // ISO 3166-1 alpha-2

	// email
	Email        string `json:"email,omitempty"`
	LinkEmail    bool   `json:"link_email,omitempty"`
	ProtectEmail bool   `json:"protect_email,omitempty"`

	// fax
	FaxNumber string `json:"fax_number,omitempty"`

	// heading / text
	Text         string `json:"text,omitempty"`
	HeadingLevel string `json:"heading_level,omitempty"`

	// link
	LinkName     string `json:"link_name,omitempty"`
	LinkURL      string `json:"link_url,omitempty"`
	LinkPageURL  string `json:"link_page_url,omitempty"`
	OpenInNewTab bool   `json:"open_in_new_tab,omitempty"`

	// phone
	PhoneNumber  string `json:"phone_number,omitempty"`
	CallToNumber string `json:"call_to_number,omitempty"`
	LinkScheme   string `json:"link_scheme,omitempty"` // "callto" (default) or "tel"

	// skype
	SkypeName    string `json:"skype_name,omitempty"`
	SkypeMode    string `json:"skype_mode,omitempty"` // "call" or "chat"
	VideoEnabled bool   `json:"video_enabled,omitempty"`
}

// ContactItem is one displayable contact datum shown by a contact component.
// It is a tagged union: Kind selects which Detail fields apply and how
// Value/Link format them.
type ContactItem struct {
	ID          string     `json:"id"`
	ComponentID string     `json:"component_id"`
	Kind        ItemKind   `json:"kind"`
	Title       string     `json:"title"`
	HideTitle   bool       `json:"hide_title"`
	Sort        int        `json:"sort"`
	Disabled    bool       `json:"disabled"`
	Detail      ItemDetail `json:"detail"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsEnabled reports whether the item should be displayed. A link item with
// neither a URL nor a resolved page is considered disabled.
func (i *ContactItem) IsEnabled() bool {
	if i.Disabled {
		return false
	}
	if i.Kind == ItemKindLink {
		return i.Link() != ""
	}
	return true
}

// Value returns the display text of the item. Pure formatting; no side
// effects.
func (i *ContactItem) Value() string {
	switch i.Kind {
	case ItemKindAddress:
		return i.fullAddress()
	case ItemKindEmail:
		if i.Detail.ProtectEmail {
			return ObfuscateDirection(i.Detail.Email)
		}
		return i.Detail.Email
	case ItemKindFax:
		return i.Detail.FaxNumber
	case ItemKindHeading, ItemKindText:
		return i.Detail.Text
	case ItemKindLink:
		if i.Detail.LinkName != "" {
			return i.Detail.LinkName
		}
		return i.Link()
	case ItemKindPhone:
		return i.Detail.PhoneNumber
	case ItemKindSkype:
		return i.skypeLinkTitle()
	}
	return ""
}

// Link returns the link target of the item, or "" for kinds without one.
func (i *ContactItem) Link() string {
	switch i.Kind {
	case ItemKindEmail:
		if i.Detail.Email == "" {
			return ""
		}
		if i.Detail.ProtectEmail {
			return "mailto:" + ObfuscateHex(i.Detail.Email)
		}
		return "mailto:" + i.Detail.Email
	case ItemKindLink:
		if url := strings.TrimSpace(i.Detail.LinkURL); url != "" {
			return normalizeURL(url)
		}
		return i.Detail.LinkPageURL
	case ItemKindPhone:
		if n := i.LinkableNumber(); n != "" {
			return i.phoneScheme() + ":" + n
		}
		return ""
	case ItemKindSkype:
		if i.Detail.SkypeName == "" {
			return ""
		}
		return fmt.Sprintf("skype:%s?%s&video=%s",
			i.Detail.SkypeName, i.Detail.SkypeMode, boolString(i.Detail.VideoEnabled))
	}
	return ""
}

// LinkableNumber strips the phone item's number down to digits and a leading
// plus sign. The call-to number takes precedence over the display number.
func (i *ContactItem) LinkableNumber() string {
	number := i.Detail.CallToNumber
	if number == "" {
		number = i.Detail.PhoneNumber
	}
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && b.Len() == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (i *ContactItem) phoneScheme() string {
	if i.Detail.LinkScheme == PhoneSchemeTel {
		return PhoneSchemeTel
	}
	return PhoneSchemeCallTo
}

// fullAddress joins the non-empty address parts with newlines: street lines,
// then "suburb postalCode stateTerritory", then the country's full name.
func (i *ContactItem) fullAddress() string {
	d := i.Detail
	var address []string

	if d.Street != "" {
		address = append(address, d.Street)
	}
	if d.StreetLine2 != "" {
		address = append(address, d.StreetLine2)
	}

	if d.Suburb != "" || d.PostalCode != "" || d.StateTerritory != "" {
		var line []string
		if d.Suburb != "" {
			line = append(line, d.Suburb)
		}
		if d.PostalCode != "" {
			line = append(line, d.PostalCode)
		}
		if d.StateTerritory != "" {
			line = append(line, d.StateTerritory)
		}
		address = append(address, strings.Join(line, " "))
	}

	if d.Country != "" {
		if name := countries.Name(d.Country); name != "" {
			address = append(address, name)
		}
	}

	return strings.Join(address, "\n")
}

func (i *ContactItem) skypeLinkTitle() string {
	switch i.Detail.SkypeMode {
	case SkypeModeCall:
		return "Call to " + i.Detail.SkypeName
	case SkypeModeChat:
		return "Chat with " + i.Detail.SkypeName
	}
	return i.Detail.SkypeName
}

// ObfuscateHex encodes every character of s as an HTML hex entity. Used for
// mailto links on protected email items.
func ObfuscateHex(s string) string {
	var b strings.Builder
	for _, r := range s {
		fmt.Fprintf(&b, "&#x%X;", r)
	}
	return b.String()
}

// ObfuscateDirection reverses s and wraps it in a span that renders
// right-to-left, so the address reads correctly on screen but not in the
// page source.
func ObfuscateDirection(s string) string {
	runes := []rune(s)
	for l, r := 0, len(runes)-1; l < r; l, r = l+1, r-1 {
		runes[l], runes[r] = runes[r], runes[l]
	}
	return fmt.Sprintf(
		`<span style="unicode-bidi:bidi-override;direction:rtl;">%s</span>`,
		string(runes),
	)
}

func normalizeURL(url string) string {
	if strings.Contains(url, "://") ||
		strings.HasPrefix(url, "/") ||
		strings.HasPrefix(url, "#") ||
		strings.HasPrefix(url, "mailto:") {
		return url
	}
	return "http://" + url
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
