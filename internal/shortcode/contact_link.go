package shortcode

import (
	"context"

	"github.com/contactware/backend/internal/repository"
)

// ContactLinkName is the shortcode name for contact page links.
const ContactLinkName = "contact_link"

// uuidLen is the length of a canonical UUID string. The shortcode id joins
// page and recipient ids with a hyphen, so the page id is carved off by
// length rather than by splitting on hyphens.
const uuidLen = 36

// NewContactLinkHandler builds the handler for [contact_link id="<page>"]
// and [contact_link id="<page>-<recipient>"]. It resolves to the
// recipient-specific anchor link when the recipient id resolves on that
// page, to the bare page link when only the page resolves, and to empty
// output otherwise.
func NewContactLinkHandler(pages repository.PageRepository, recipients repository.RecipientRepository) Handler {
	return func(ctx context.Context, attrs map[string]string, content string) string {
		id, ok := attrs["id"]
		if !ok {
			return ""
		}

		pageID, recipientID := splitLinkID(id)

		page, err := pages.GetByID(ctx, pageID)
		if err != nil {
			return ""
		}

		link := page.Link()
		if recipientID != "" {
			if recipient, err := recipients.GetByID(ctx, recipientID); err == nil && recipient.PageID == page.ID {
				link = recipient.Link(page)
			}
		}

		return WrapLink(link, content)
	}
}

func splitLinkID(id string) (pageID, recipientID string) {
	if len(id) <= uuidLen {
		return id, ""
	}
	pageID = id[:uuidLen]
	rest := id[uuidLen:]
	if rest[0] == '-' {
		rest = rest[1:]
	}
	return pageID, rest
}
