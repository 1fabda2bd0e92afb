package form

import (
	"context"

	"github.com/portfolio/backend/pkg/contactclient"
	"github.com/portfolio/backend/pkg/relay"
)

// APISubmitter posts to the self-hosted contact API.
type APISubmitter struct {
	Client *contactclient.Client
}

func (s APISubmitter) Submit(ctx context.Context, f Fields) error {
	_, err := s.Client.Submit(ctx, contactclient.Request{
		Name:    f.Name,
		Email:   f.Email,
		Subject: f.Subject,
		Message: f.Message,
	})
	return err
}

// RelaySubmitter posts to the hosted form relay.
type RelaySubmitter struct {
	Client *relay.Client
}

func (s RelaySubmitter) Submit(ctx context.Context, f Fields) error {
	return s.Client.Submit(ctx, relay.Submission{
		Name:    f.Name,
		Email:   f.Email,
		Subject: f.Subject,
		Message: f.Message,
	})
}
