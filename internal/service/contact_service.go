package service

import (
	"context"
	"errors"

	"github.com/portfolio/backend/internal/model"
)

// ErrMissingField is returned by Submit when name, email, subject or message is empty.
var ErrMissingField = errors.New("missing required field")

// Stages of a submission, reported by SubmitError.
const (
	StagePersist = "persist"
	StageNotify  = "notify"
)

// SubmitError wraps a downstream failure with the stage it happened in.
// A StageNotify error means the record was already written.
type SubmitError struct {
	Stage string
	Err   error
}

func (e *SubmitError) Error() string { return e.Stage + ": " + e.Err.Error() }

func (e *SubmitError) Unwrap() error { return e.Err }

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates msg, stores it, then emails the site owner. Both steps
	// run in sequence and are attempted once. msg.ID and msg.CreatedAt are
	// populated on a successful write.
	Submit(ctx context.Context, msg *model.ContactMessage) error
}
