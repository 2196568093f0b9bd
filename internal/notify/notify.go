// Package notify relays new contact submissions to a mailbox.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/contactform/backend/internal/model"
)

// Notifier sends a notification about a stored submission.
type Notifier interface {
	Notify(ctx context.Context, sub *model.Submission) error
}

// Error wraps a failure to compose or deliver a notification.
type Error struct {
	Op  string // "compose" or "send"
	Err error
}

func (e *Error) Error() string { return "notify " + e.Op + ": " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Subject is the subject line of every notification.
const Subject = "New Submission"

// timestampLayout matches the server-side timestamp printed in the mail body.
const timestampLayout = "2006-01-02 15:04:05.000000"

// ComposeBody renders the plain-text notification body.
func ComposeBody(company string, sub *model.Submission, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New Submission on Contact us Section of %s\n\n", company)
	fmt.Fprintf(&b, "\tName = %s\n", sub.Name)
	fmt.Fprintf(&b, "\temail = %s\n", sub.Email)
	fmt.Fprintf(&b, "\tcontact = %s\n", sub.ContactNo)
	fmt.Fprintf(&b, "\tmessage = %s\n", sub.Message)
	fmt.Fprintf(&b, "\ttimestamp = %s\n", at.Format(timestampLayout))
	return b.String()
}

// NopNotifier accepts and discards every notification.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, *model.Submission) error { return nil }
