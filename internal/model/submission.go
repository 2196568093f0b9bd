package model

import "time"

// Submission represents a contact form entry stored in contact_submissions.
type Submission struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	ContactNo   string    `json:"contact_no"` // normalized, e.g. "9876543210"
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}
