package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/ignite/jobmailer/internal/domain"
	"github.com/ignite/jobmailer/internal/pkg/logger"
)

// SESTransport sends mail through AWS SES v2. Messages without
// attachments use the simple content API; messages with attachments
// are assembled into raw MIME.
type SESTransport struct {
	client *sesv2.Client
	region string
}

// NewSESTransport creates an SES transport. With empty credentials the
// default AWS credential chain is used.
func NewSESTransport(accessKey, secretKey, region string) (*SESTransport, error) {
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &SESTransport{
		client: sesv2.NewFromConfig(cfg),
		region: region,
	}, nil
}

func (t *SESTransport) Send(ctx context.Context, email *domain.OutboundEmail) (*domain.SendOutcome, error) {
	if t.client == nil {
		return nil, fmt.Errorf("SES client not initialized - check credentials")
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", email.FromName, email.FromEmail)),
		Destination:      &types.Destination{ToAddresses: []string{email.Email}},
	}
	if email.ReplyTo != "" {
		input.ReplyToAddresses = []string{email.ReplyTo}
	}

	if len(email.Attachments) > 0 {
		raw, err := buildRawMessage(email)
		if err != nil {
			return nil, fmt.Errorf("building raw message: %w", err)
		}
		input.Content = &types.EmailContent{
			Raw: &types.RawMessage{Data: raw},
		}
	} else {
		input.Content = &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(email.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(email.Body), Charset: aws.String("UTF-8")},
				},
			},
		}
	}

	result, err := t.client.SendEmail(ctx, input)
	if err != nil {
		logger.Warn("ses send failed", "to", email.Email, "error", err)
		return &domain.SendOutcome{Success: false, Error: err.Error()}, nil
	}

	messageID := ""
	if result.MessageId != nil {
		messageID = *result.MessageId
	}

	logger.Info("ses send ok", "to", email.Email, "message_id", messageID)

	return &domain.SendOutcome{
		Success:   true,
		MessageID: messageID,
		SentAt:    time.Now(),
	}, nil
}
