package handler

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/contactware/backend/internal/model"
	"github.com/contactware/backend/internal/repository"
	"github.com/contactware/backend/internal/service"
	"github.com/contactware/backend/internal/shortcode"
	"github.com/contactware/backend/pkg/flash"
)

//go:embed templates/contact.html
var templateFS embed.FS

// ContactHandler serves the public contact page: the rendered form and the
// form submission endpoint.
type ContactHandler struct {
	pages       service.PageService
	recipients  service.RecipientService
	items       service.ItemService
	submissions service.SubmissionService
	shortcodes  *shortcode.Parser
	tmpl        *template.Template
}

// NewContactHandler creates a ContactHandler with the given services.
func NewContactHandler(
	pages service.PageService,
	recipients service.RecipientService,
	items service.ItemService,
	submissions service.SubmissionService,
	shortcodes *shortcode.Parser,
) *ContactHandler {
	return &ContactHandler{
		pages:       pages,
		recipients:  recipients,
		items:       items,
		submissions: submissions,
		shortcodes:  shortcodes,
		tmpl: template.Must(template.New("contact.html").Funcs(template.FuncMap{
			"itemHref":  itemHref,
			"itemValue": itemValue,
		}).ParseFS(templateFS, "templates/contact.html")),
	}
}

// itemHref emits the href attribute verbatim. Item links carry
// admin-configured schemes like callto: and skype:, and protected email
// items embed hex entities, all of which html/template would otherwise
// mangle.
func itemHref(i *model.ContactItem) template.HTMLAttr {
	return template.HTMLAttr(`href="` + i.Link() + `"`)
}

// itemValue renders the display text. Protected email items produce their
// own markup; every other kind is escaped, with address newlines kept as
// line breaks.
func itemValue(i *model.ContactItem) template.HTML {
	if i.Kind == model.ItemKindEmail && i.Detail.ProtectEmail {
		return template.HTML(i.Value())
	}
	escaped := template.HTMLEscapeString(i.Value())
	if i.Kind == model.ItemKindAddress {
		escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	}
	return template.HTML(escaped)
}

// componentView pairs a component with its displayable items for the
// template.
type componentView struct {
	Component *model.ContactComponent
	Items     []*model.ContactItem
}

// pageView is the template data for the contact page.
type pageView struct {
	Page       *model.ContactPage
	Recipients []*model.ContactRecipient
	Components []componentView
	Flash      *flash.Message
	Errors     map[string]string
	Values     map[string]string
}

// Show handles GET /contact/{slug}: renders the contact form with any flash
// message from a previous submission.
func (h *ContactHandler) Show(w http.ResponseWriter, r *http.Request) {
	page, err := h.pages.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	view := pageView{
		Page:   page,
		Errors: map[string]string{},
		Values: map[string]string{},
	}

	if page.ShowRecipientField {
		view.Recipients, err = h.recipients.ListEnabledByPage(r.Context(), page.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}

	components, err := h.items.ListComponentsByPage(r.Context(), page.ID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	for _, c := range components {
		items, err := h.items.EnabledItems(r.Context(), c.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		view.Components = append(view.Components, componentView{Component: c, Items: items})
	}

	if msg := flash.Take(w, r, page.Link()); msg != nil {
		view.Flash = msg
		if msg.Fields != nil {
			view.Errors = msg.Fields
		}
		if msg.Values != nil {
			view.Values = msg.Values
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, view); err != nil {
		slog.Error("rendering contact page failed", "page_id", page.ID, "error", err)
	}
}

// Send handles POST /contact/{slug}: runs the submission workflow and
// redirects back to the form (303) with a flash message either way.
func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	page, err := h.pages.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	input := service.SubmissionInput{
		FirstName:   r.PostFormValue("firstName"),
		LastName:    r.PostFormValue("lastName"),
		Email:       r.PostFormValue("email"),
		Phone:       r.PostFormValue("phone"),
		Subject:     r.PostFormValue("subject"),
		Message:     r.PostFormValue("message"),
		RecipientID: r.PostFormValue("recipientId"),
	}

	result, err := h.submissions.Submit(r.Context(), page, input)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			flash.Set(w, page.Link(), &flash.Message{
				Type:   flash.TypeError,
				Fields: verr.Fields,
				Values: formValues(input),
			})
		} else {
			slog.Error("contact submission failed", "page_id", page.ID, "error", err)
			flash.Set(w, page.Link(), &flash.Message{
				Type:   flash.TypeError,
				Text:   "Your message could not be sent. Please try again.",
				Values: formValues(input),
			})
		}
		http.Redirect(w, r, page.Link(), http.StatusSeeOther)
		return
	}

	// Confirmation text may embed shortcodes such as contact_link.
	confirmation := result.Confirmation
	if h.shortcodes != nil {
		confirmation = h.shortcodes.Parse(r.Context(), confirmation)
	}
	flash.Set(w, page.Link(), &flash.Message{
		Type: flash.TypeSuccess,
		Text: confirmation,
	})
	http.Redirect(w, r, page.Link(), http.StatusSeeOther)
}

func formValues(input service.SubmissionInput) map[string]string {
	return map[string]string{
		"firstName":   input.FirstName,
		"lastName":    input.LastName,
		"email":       input.Email,
		"phone":       input.Phone,
		"subject":     input.Subject,
		"message":     input.Message,
		"recipientId": input.RecipientID,
	}
}
