// Package flash implements single-use cookie messages for the
// post/redirect/get cycle of the public contact form.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const cookieName = "contact_flash"

// Message kinds.
const (
	TypeSuccess = "success"
	TypeError   = "error"
)

// Message is one flash payload: a confirmation or a set of validation
// errors together with the visitor's input for re-filling the form.
type Message struct {
	Type   string            `json:"type"`
	Text   string            `json:"text,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
	Values map[string]string `json:"values,omitempty"`
}

// Set stores the message in a short-lived cookie on the response.
func Set(w http.ResponseWriter, path string, msg *Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     path,
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Take reads and clears the flash message, if any. A malformed cookie is
// treated as absent.
func Take(w http.ResponseWriter, r *http.Request, path string) *Message {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return nil
	}

	// Expire the cookie regardless of whether it decodes.
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	payload, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil
	}
	return &msg
}
