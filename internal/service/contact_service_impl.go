package service

import (
	"context"
	"fmt"
	"time"

	"github.com/portfolio/backend/internal/mailer"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo   repository.ContactRepository
	sender mailer.Sender
	from   string
	to     string
	now    func() time.Time
}

// NewContactService creates a ContactService that persists through repo and
// notifies the fixed recipient to, sending as from.
func NewContactService(repo repository.ContactRepository, sender mailer.Sender, from, to string) ContactService {
	return &contactServiceImpl{
		repo:   repo,
		sender: sender,
		from:   from,
		to:     to,
		now:    time.Now,
	}
}

func (s *contactServiceImpl) Submit(ctx context.Context, msg *model.ContactMessage) error {
	if err := validate(msg); err != nil {
		return err
	}

	msg.CreatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, msg); err != nil {
		return &SubmitError{Stage: StagePersist, Err: err}
	}

	if err := s.sender.Send(ctx, mailer.ContactNotification(s.from, s.to, msg)); err != nil {
		return &SubmitError{Stage: StageNotify, Err: err}
	}
	return nil
}

// validate only checks presence; whitespace-only values and email shape are accepted.
func validate(msg *model.ContactMessage) error {
	switch {
	case msg.Name == "":
		return fmt.Errorf("%w: name", ErrMissingField)
	case msg.Email == "":
		return fmt.Errorf("%w: email", ErrMissingField)
	case msg.Subject == "":
		return fmt.Errorf("%w: subject", ErrMissingField)
	case msg.Message == "":
		return fmt.Errorf("%w: message", ErrMissingField)
	}
	return nil
}
