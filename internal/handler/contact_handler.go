package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/contactform/backend/internal/metrics"
	"github.com/contactform/backend/internal/model"
	"github.com/contactform/backend/internal/service"
	"github.com/contactform/backend/internal/validation"
)

const maxBodyBytes = 64 << 10

// defaultSubmitTimeout bounds the store and mail work of one submission.
const defaultSubmitTimeout = 25 * time.Second

// Response messages for POST /contact.
const (
	msgSaved         = "Contact Form Saved Successfully"
	msgDuplicate     = "You can submit again after 10 minutes"
	msgInternalError = "Internal Server Error"
)

// ContactHandler handles contact form submission.
type ContactHandler struct {
	contactService service.ContactService
	metrics        *metrics.Metrics
	timeout        time.Duration
}

// NewContactHandler creates a ContactHandler with the given service.
// m may be nil. timeout bounds each submission; zero means 25s.
func NewContactHandler(contactService service.ContactService, m *metrics.Metrics, timeout time.Duration) *ContactHandler {
	if timeout <= 0 {
		timeout = defaultSubmitTimeout
	}
	return &ContactHandler{contactService: contactService, metrics: m, timeout: timeout}
}

// submitRequest is the expected JSON body for POST /contact.
type submitRequest struct {
	Name      string
	Email     string
	ContactNo string
	Message   string
}

// Submit handles POST /contact.
//
//	201 saved and notified
//	400 invalid JSON or the first failing field rule
//	429 same email or contact number within the last 10 minutes
//	500 storage or mail failure
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSubmitRequest(r)
	if !ok {
		h.metrics.Submission(metrics.OutcomeInvalid)
		writeError(w, http.StatusBadRequest, validation.ReasonInvalidJSON)
		return
	}

	in := validation.Prepare(validation.Input{
		Name:      req.Name,
		Email:     req.Email,
		ContactNo: req.ContactNo,
		Message:   req.Message,
	})
	if err := validation.Validate(in); err != nil {
		h.metrics.Submission(metrics.OutcomeInvalid)
		var verr *validation.Error
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Reason)
			return
		}
		slog.ErrorContext(r.Context(), "validator failure", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	sub := &model.Submission{
		Name:      in.Name,
		Email:     in.Email,
		ContactNo: in.ContactNo,
		Message:   in.Message,
	}

	// a client disconnect must not abort a half-sent notification
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.timeout)
	defer cancel()
	err := h.contactService.Submit(ctx, sub)
	switch {
	case err == nil:
		h.metrics.Submission(metrics.OutcomeCreated)
		writeJSON(w, http.StatusCreated, map[string]string{"message": msgSaved})
	case errors.Is(err, service.ErrDuplicateSubmission):
		h.metrics.Submission(metrics.OutcomeDuplicate)
		writeError(w, http.StatusTooManyRequests, msgDuplicate)
	default:
		h.metrics.Submission(metrics.OutcomeError)
		slog.ErrorContext(r.Context(), "contact submission failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
	}
}

// decodeSubmitRequest accepts only a non-empty JSON object sent as JSON.
// Anything else, including {} and non-string field values, is rejected.
func decodeSubmitRequest(r *http.Request) (submitRequest, bool) {
	var req submitRequest
	if !isJSONContentType(r.Header.Get("Content-Type")) {
		return req, false
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil || len(body) > maxBodyBytes {
		return req, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return req, false
	}

	// keys match exactly; a miscased key counts as absent
	for key, dst := range map[string]*string{
		"name":       &req.Name,
		"email":      &req.Email,
		"contact_no": &req.ContactNo,
		"message":    &req.Message,
	} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return req, false
		}
	}
	return req, true
}

func isJSONContentType(ct string) bool {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mt == "application/json" ||
		(strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json"))
}
