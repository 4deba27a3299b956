package mailer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/jobmailer/internal/domain"
	"github.com/ignite/jobmailer/internal/pkg/logger"
)

// SimulatedTransport pretends to deliver mail. Every send succeeds
// after a fixed delay. Useful for local runs and demos where no SES
// credentials exist.
type SimulatedTransport struct {
	delay time.Duration
}

// NewSimulatedTransport creates a transport that sleeps delay per send.
func NewSimulatedTransport(delay time.Duration) *SimulatedTransport {
	return &SimulatedTransport{delay: delay}
}

func (t *SimulatedTransport) Send(ctx context.Context, email *domain.OutboundEmail) (*domain.SendOutcome, error) {
	if t.delay > 0 {
		select {
		case <-time.After(t.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	messageID := "sim-" + uuid.New().String()
	logger.Info("simulated send", "to", email.Email, "subject", email.Subject, "message_id", messageID)

	return &domain.SendOutcome{
		Success:   true,
		MessageID: messageID,
		SentAt:    time.Now(),
	}, nil
}
