// Package mail composes and delivers the outbound notification emails for
// contact form submissions.
package mail

import (
	"context"
	"fmt"
)

// Address is a named email address.
type Address struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// String formats the address as "Name <email>", or the bare address when no
// name is set.
func (a Address) String() string {
	if a.Name != "" {
		return fmt.Sprintf("%s <%s>", a.Name, a.Email)
	}
	return a.Email
}

// Email is one outbound message.
type Email struct {
	From    Address
	To      Address
	Subject string
	HTML    string
}

// Sender delivers a composed email.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}
