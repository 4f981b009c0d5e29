package mail

import (
	"bytes"
	"html/template"
	"time"
)

// BodyData feeds the notification email template. It deliberately mirrors
// the visitor-entered fields rather than any storage type.
type BodyData struct {
	PageTitle     string
	RecipientName string
	FullName      string
	Email         string
	Phone         string
	Subject       string
	Message       string
	ReceivedAt    time.Time
}

var bodyTemplate = template.Must(template.New("contact-message").Parse(`<!DOCTYPE html>
<html>
<body>
<h2>Contact message{{if .PageTitle}} via {{.PageTitle}}{{end}}</h2>
<table>
<tr><td><strong>From</strong></td><td>{{.FullName}} &lt;{{.Email}}&gt;</td></tr>
{{- if .Phone}}
<tr><td><strong>Phone</strong></td><td>{{.Phone}}</td></tr>
{{- end}}
{{- if .Subject}}
<tr><td><strong>Subject</strong></td><td>{{.Subject}}</td></tr>
{{- end}}
{{- if .RecipientName}}
<tr><td><strong>Recipient</strong></td><td>{{.RecipientName}}</td></tr>
{{- end}}
<tr><td><strong>Received</strong></td><td>{{.ReceivedAt.Format "2 Jan 2006 15:04"}}</td></tr>
</table>
<h3>Message</h3>
<p>{{.Message}}</p>
</body>
</html>
`))

// RenderBody renders the notification email body for one recipient.
func RenderBody(data BodyData) (string, error) {
	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
