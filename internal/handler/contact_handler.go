package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

// maxBodyBytes caps the request body; individual fields are not length-checked.
const maxBodyBytes = 1 << 20

// ContactHandler handles contact form submission.
type ContactHandler struct {
	contactService service.ContactService
	metrics        *metrics.Metrics
}

// NewContactHandler creates a ContactHandler with the given service.
// m may be nil.
func NewContactHandler(contactService service.ContactService, m *metrics.Metrics) *ContactHandler {
	return &ContactHandler{contactService: contactService, metrics: m}
}

// submitRequest is the expected JSON body for POST /api/contact.
type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit handles POST /api/contact.
// All four fields are required. 200 only after both the write and the email
// succeed; any downstream failure is a generic 500.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	// An empty body decodes as {} and fails on the missing fields instead.
	var req submitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.metrics.Submission(metrics.OutcomeRejected, "")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	msg := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	err := h.contactService.Submit(r.Context(), msg)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrMissingField):
		h.metrics.Submission(metrics.OutcomeRejected, "")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "All fields are required"})
		return
	default:
		stage := ""
		var se *service.SubmitError
		if errors.As(err, &se) {
			stage = se.Stage
		}
		h.metrics.Submission(metrics.OutcomeFailed, stage)
		slog.ErrorContext(r.Context(), "contact submission failed",
			"request_id", RequestIDFromContext(r.Context()),
			"stage", stage,
			"saved", stage == service.StageNotify,
			"id", msg.ID,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Server error"})
		return
	}

	h.metrics.Submission(metrics.OutcomeAccepted, "")
	slog.InfoContext(r.Context(), "contact message received",
		"request_id", RequestIDFromContext(r.Context()),
		"id", msg.ID,
		"subject", msg.Subject,
	)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Message received!"})
}
