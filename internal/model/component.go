package model

import "time"

// Component display defaults.
const (
	DefaultItemMode     = "block"
	DefaultHeadingLevel = "h4"
)

// ContactComponent is a page building block that renders a collection of
// contact items.
type ContactComponent struct {
	ID           string    `json:"id"`
	PageID       string    `json:"page_id"`
	Title        string    `json:"title"`
	HeadingLevel string    `json:"heading_level,omitempty"`
	ItemMode     string    `json:"item_mode,omitempty"`
	ShowIcons    bool      `json:"show_icons"`
	CreatedAt    time.Time `json:"created_at"`
}

// HeadingTag returns the heading tag to render item titles with.
func (c *ContactComponent) HeadingTag() string {
	if c.HeadingLevel != "" {
		return c.HeadingLevel
	}
	return DefaultHeadingLevel
}

// Mode returns the item rendering mode.
func (c *ContactComponent) Mode() string {
	if c.ItemMode != "" {
		return c.ItemMode
	}
	return DefaultItemMode
}
