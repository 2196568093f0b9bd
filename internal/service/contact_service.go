package service

import (
	"context"
	"errors"
	"time"

	"github.com/contactform/backend/internal/model"
)

// DuplicateWindow is how long a sender must wait before submitting again.
const DuplicateWindow = 10 * time.Minute

// ErrDuplicateSubmission is returned when the same email or contact number
// was used within DuplicateWindow.
var ErrDuplicateSubmission = errors.New("duplicate submission within window")

// PersistenceError wraps a storage failure during Submit.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return "persistence " + e.Op + ": " + e.Err.Error() }

func (e *PersistenceError) Unwrap() error { return e.Err }

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit stores a validated submission and sends the notification email.
	// sub.ID and sub.SubmittedAt are populated on success.
	//
	// Errors: ErrDuplicateSubmission, *PersistenceError, *notify.Error.
	Submit(ctx context.Context, sub *model.Submission) error
}
