package repository

import (
	"context"
	"errors"
	"time"

	"github.com/contactform/backend/internal/model"
	"github.com/jackc/pgx/v5"
)

// SubmissionRepository defines the persistence interface for contact submissions.
// It is defined here (in repository) to avoid an import cycle with service.
type SubmissionRepository interface {
	// FindRecentDuplicate returns the newest submission sharing email or
	// contactNo submitted no longer than window ago, or nil when there is none.
	// The cutoff is taken from the database clock.
	FindRecentDuplicate(ctx context.Context, email, contactNo string, window time.Duration) (*model.Submission, error)
	// Insert appends sub stamped with the database clock and populates
	// sub.ID and sub.SubmittedAt.
	Insert(ctx context.Context, sub *model.Submission) error
}

// PgSubmissionRepository is the PostgreSQL implementation of SubmissionRepository.
type PgSubmissionRepository struct {
	db Querier
}

// NewPgSubmissionRepository creates a PgSubmissionRepository backed by the given pool.
func NewPgSubmissionRepository(db Querier) *PgSubmissionRepository {
	return &PgSubmissionRepository{db: db}
}

// Ensure PgSubmissionRepository implements SubmissionRepository at compile time.
var _ SubmissionRepository = (*PgSubmissionRepository)(nil)

const findRecentDuplicateSQL = `SELECT id, name, email, contact_no, message, submitted_at
	 FROM contact_submissions
	 WHERE (email = $1 OR contact_no = $2)
	   AND submitted_at >= now() - make_interval(secs => $3)
	 ORDER BY submitted_at DESC
	 LIMIT 1`

const insertSubmissionSQL = `INSERT INTO contact_submissions (name, email, contact_no, message)
	 VALUES ($1, $2, $3, $4)
	 RETURNING id, submitted_at`

// FindRecentDuplicate looks up the most recent submission within the window.
func (r *PgSubmissionRepository) FindRecentDuplicate(ctx context.Context, email, contactNo string, window time.Duration) (*model.Submission, error) {
	var s model.Submission
	err := querier(ctx, r.db).QueryRow(ctx, findRecentDuplicateSQL, email, contactNo, window.Seconds()).
		Scan(&s.ID, &s.Name, &s.Email, &s.ContactNo, &s.Message, &s.SubmittedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Insert writes a new contact_submissions row. submitted_at comes from the
// column default; sub.ID and sub.SubmittedAt are read back via RETURNING.
func (r *PgSubmissionRepository) Insert(ctx context.Context, sub *model.Submission) error {
	return querier(ctx, r.db).QueryRow(ctx, insertSubmissionSQL,
		sub.Name, sub.Email, sub.ContactNo, sub.Message,
	).Scan(&sub.ID, &sub.SubmittedAt)
}
