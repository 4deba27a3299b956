package mailer

import (
	"context"

	"github.com/ignite/jobmailer/internal/domain"
)

// Transport delivers one rendered email.
type Transport interface {
	Send(ctx context.Context, email *domain.OutboundEmail) (*domain.SendOutcome, error)
}
