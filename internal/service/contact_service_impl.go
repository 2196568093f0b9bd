package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/contactform/backend/internal/logging"
	"github.com/contactform/backend/internal/metrics"
	"github.com/contactform/backend/internal/model"
	"github.com/contactform/backend/internal/notify"
	"github.com/contactform/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo     repository.SubmissionRepository
	tx       repository.TxManager
	notifier notify.Notifier
	metrics  *metrics.Metrics
}

// Option configures the contact service.
type Option func(*contactServiceImpl)

// WithMetrics records notification latency into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *contactServiceImpl) { s.metrics = m }
}

// NewContactService creates a ContactService backed by the given repository,
// transaction manager and notifier.
func NewContactService(repo repository.SubmissionRepository, tx repository.TxManager, notifier notify.Notifier, opts ...Option) ContactService {
	s := &contactServiceImpl{
		repo:     repo,
		tx:       tx,
		notifier: notifier,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit rejects the submission when the email or contact number was seen in
// the last DuplicateWindow. Otherwise the row is inserted inside a
// transaction, the notification is sent, and only then is the transaction
// committed: a failed notification leaves nothing behind.
//
// The duplicate check and the insert are not atomic. Two concurrent
// requests for the same contact can both pass the check.
func (s *contactServiceImpl) Submit(ctx context.Context, sub *model.Submission) error {
	dup, err := s.repo.FindRecentDuplicate(ctx, sub.Email, sub.ContactNo, DuplicateWindow)
	if err != nil {
		return &PersistenceError{Op: "duplicate check", Err: err}
	}
	if dup != nil {
		slog.InfoContext(ctx, "duplicate submission rejected",
			"email", logging.MaskEmail(sub.Email),
			"contact_no", logging.MaskPhone(sub.ContactNo),
			"previous_id", dup.ID,
		)
		return ErrDuplicateSubmission
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Insert(ctx, sub); err != nil {
			if repository.IsConstraintViolation(err) {
				// e.g. a name longer than the column allows
				slog.WarnContext(ctx, "submission rejected by schema",
					"email", logging.MaskEmail(sub.Email),
					"error", err,
				)
			}
			return &PersistenceError{Op: "insert", Err: err}
		}
		start := time.Now()
		err := s.notifier.Notify(ctx, sub)
		s.metrics.Notification(time.Since(start), err)
		return err
	})
	if err != nil {
		var perr *PersistenceError
		var nerr *notify.Error
		if !errors.As(err, &perr) && !errors.As(err, &nerr) {
			err = &PersistenceError{Op: "transaction", Err: err}
		}
		return err
	}

	slog.InfoContext(ctx, "submission stored",
		"id", sub.ID,
		"email", logging.MaskEmail(sub.Email),
	)
	return nil
}
