package domain

import "time"

// OutboundEmail is the fully-resolved message handed to a mail transport.
// By the time a message reaches this struct, all placeholder substitution
// is complete and attachment content has been loaded from the blob store.
type OutboundEmail struct {
	ID          string           `json:"id"`
	RecipientID string           `json:"recipient_id"`
	Email       string           `json:"email"`
	ToName      string           `json:"to_name,omitempty"`
	FromName    string           `json:"from_name"`
	FromEmail   string           `json:"from_email"`
	ReplyTo     string           `json:"reply_to,omitempty"`
	Subject     string           `json:"subject"`
	Body        string           `json:"body"`
	Attachments []AttachmentPart `json:"attachments,omitempty"`
}

// AttachmentPart is one file carried by an outbound email.
type AttachmentPart struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"-"`
}

// SendOutcome is returned by a mail transport after attempting delivery.
type SendOutcome struct {
	Success   bool      `json:"success"`
	MessageID string    `json:"message_id,omitempty"`
	SentAt    time.Time `json:"sent_at"`
	Error     string    `json:"error,omitempty"`
}

// SenderDetails holds the applicant's own details merged into every
// outgoing email ({{your_name}}, {{your_phone}}, ...).
type SenderDetails struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}
