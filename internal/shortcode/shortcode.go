// Package shortcode expands bracket directives like
// [contact_link id="..."]text[/contact_link] in rendered content. Handlers
// are registered on an explicit parser instance; there is no global
// registry.
package shortcode

import (
	"context"
	"fmt"
	"regexp"
)

// Handler resolves one shortcode occurrence to its replacement text.
// content is the inner text of a paired tag, empty for the self-closing
// form.
type Handler func(ctx context.Context, attrs map[string]string, content string) string

// Parser expands the shortcodes it knows about and leaves everything else
// untouched.
type Parser struct {
	handlers map[string]Handler
}

// NewParser creates an empty Parser.
func NewParser() *Parser {
	return &Parser{handlers: make(map[string]Handler)}
}

// Register maps a shortcode name to its handler. Registering a name twice
// replaces the earlier handler.
func (p *Parser) Register(name string, h Handler) {
	p.handlers[name] = h
}

var attrPattern = regexp.MustCompile(`(\w+)\s*=\s*"([^"]*)"`)

// Parse expands every registered shortcode in s. Paired tags are resolved
// before self-closing ones so that [name]...[/name] never splits apart.
func (p *Parser) Parse(ctx context.Context, s string) string {
	for name, handler := range p.handlers {
		paired := regexp.MustCompile(
			`(?s)\[` + regexp.QuoteMeta(name) + `([^\]/]*)\](.*?)\[/` + regexp.QuoteMeta(name) + `\]`)
		s = paired.ReplaceAllStringFunc(s, func(match string) string {
			groups := paired.FindStringSubmatch(match)
			return handler(ctx, parseAttrs(groups[1]), groups[2])
		})

		single := regexp.MustCompile(
			`\[` + regexp.QuoteMeta(name) + `([^\]/]*)/?\]`)
		s = single.ReplaceAllStringFunc(s, func(match string) string {
			groups := single.FindStringSubmatch(match)
			return handler(ctx, parseAttrs(groups[1]), "")
		})
	}
	return s
}

func parseAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attrPattern.FindAllStringSubmatch(s, -1) {
		attrs[m[1]] = m[2]
	}
	return attrs
}

// WrapLink renders the standard anchor form for link-producing handlers.
func WrapLink(href, content string) string {
	if content == "" {
		return href
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, href, content)
}
