// Package form is the client-side contact form: field state, validation
// and a single-flight submit against a Submitter.
package form

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/portfolio/backend/internal/model"
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// Field names accepted by Set.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldMessage = "message"
)

var (
	ErrRequiredFields = errors.New("form: required field is empty")
	ErrInvalidEmail   = errors.New("form: invalid email address")
	ErrInvalidSubject = errors.New("form: unknown subject")
	ErrInFlight       = errors.New("form: submission already in progress")
	ErrUnknownField   = errors.New("form: unknown field")
)

// Notice texts shown to the visitor.
const (
	NoticeRequiredFields = "Please fill in all required fields before submitting."
	NoticeInvalidEmail   = "Please enter a valid email address."
	NoticeInvalidSubject = "Please choose one of the listed subjects."
	NoticeSuccess        = "Thank you! Your message has been sent successfully. I'll get back to you within 24 hours."
	noticeFailurePrefix  = "Oops! Something went wrong. Please try again or email me directly at "
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Fields struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// State is a snapshot of the form.
type State struct {
	Fields Fields
	Status Status
	Notice string
}

// Submitter delivers validated fields. Implementations make one attempt.
type Submitter interface {
	Submit(ctx context.Context, f Fields) error
}

// Validate checks fields the way the form does before any network call.
// Name, email and message are checked after trimming; the email pattern is
// matched against the raw value.
func Validate(f Fields) error {
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Email) == "" ||
		f.Subject == "" || strings.TrimSpace(f.Message) == "" {
		return ErrRequiredFields
	}
	if !emailPattern.MatchString(f.Email) {
		return ErrInvalidEmail
	}
	if !model.IsKnownSubject(f.Subject) {
		return ErrInvalidSubject
	}
	return nil
}

// FailureNotice is the notice shown when delivery fails.
func FailureNotice(fallbackEmail string) string {
	return noticeFailurePrefix + fallbackEmail
}

func validationNotice(err error) string {
	switch {
	case errors.Is(err, ErrInvalidEmail):
		return NoticeInvalidEmail
	case errors.Is(err, ErrInvalidSubject):
		return NoticeInvalidSubject
	default:
		return NoticeRequiredFields
	}
}

// Form is safe for concurrent use. At most one submission is in flight.
type Form struct {
	submitter     Submitter
	fallbackEmail string

	mu    sync.Mutex
	state State
}

func New(submitter Submitter, fallbackEmail string) *Form {
	return &Form{
		submitter:     submitter,
		fallbackEmail: fallbackEmail,
		state:         State{Status: StatusIdle},
	}
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Set updates one field. Editing after a success or error notice returns
// the form to idle. Fields are locked while a submission is in flight.
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state.Status == StatusSubmitting {
		return ErrInFlight
	}

	switch field {
	case FieldName:
		f.state.Fields.Name = value
	case FieldEmail:
		f.state.Fields.Email = value
	case FieldSubject:
		f.state.Fields.Subject = value
	case FieldMessage:
		f.state.Fields.Message = value
	default:
		return ErrUnknownField
	}

	if f.state.Status == StatusSuccess || f.state.Status == StatusError {
		f.state.Status = StatusIdle
		f.state.Notice = ""
	}
	return nil
}

// Submit validates the current fields and hands them to the Submitter.
// Validation failures and ErrInFlight never reach the Submitter. On success
// the fields are cleared.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state.Status == StatusSubmitting {
		f.mu.Unlock()
		return ErrInFlight
	}
	if err := Validate(f.state.Fields); err != nil {
		f.state.Status = StatusError
		f.state.Notice = validationNotice(err)
		f.mu.Unlock()
		return err
	}
	f.state.Status = StatusSubmitting
	f.state.Notice = ""
	fields := f.state.Fields
	f.mu.Unlock()

	err := f.submitter.Submit(ctx, fields)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state.Status = StatusError
		f.state.Notice = FailureNotice(f.fallbackEmail)
		return err
	}
	f.state = State{Status: StatusSuccess, Notice: NoticeSuccess}
	return nil
}
