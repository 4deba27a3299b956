package domain

import "time"

// LogStatus enumerates the delivery lifecycle of one sent email.
type LogStatus string

const (
	LogPending LogStatus = "pending"
	LogSent    LogStatus = "sent"
	LogOpened  LogStatus = "opened"
	LogFailed  LogStatus = "failed"
)

// ValidLogStatus reports whether s is a known status.
func ValidLogStatus(s LogStatus) bool {
	switch s {
	case LogPending, LogSent, LogOpened, LogFailed:
		return true
	}
	return false
}

// logTransitions is the allowed status graph:
// pending → sent, pending → failed, sent → opened, sent → failed.
// "opened" only ever follows "sent"; jumps like pending → opened are
// rejected rather than silently accepted.
var logTransitions = map[LogStatus][]LogStatus{
	LogPending: {LogSent, LogFailed},
	LogSent:    {LogOpened, LogFailed},
}

// CanTransition reports whether a log may move from one status to another.
func CanTransition(from, to LogStatus) bool {
	for _, next := range logTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// EmailLog records the outcome of sending one email to one recipient.
//
// Recipient and template fields are a denormalized snapshot taken at send
// time so the entry survives later deletion of its source entities; they
// are immutable after creation, as are RecipientID and TemplateID.
// OpenedAt is stamped exactly on the transition into "opened" and is never
// cleared by later transitions.
type EmailLog struct {
	ID             string     `json:"id"`
	RecipientID    string     `json:"recipient_id"`
	RecipientEmail string     `json:"recipient_email"`
	RecipientName  string     `json:"recipient_name,omitempty"`
	Company        string     `json:"company,omitempty"`
	TemplateID     string     `json:"template_id"`
	TemplateName   string     `json:"template_name"`
	Status         LogStatus  `json:"status"`
	SentAt         time.Time  `json:"sent_at"`
	OpenedAt       *time.Time `json:"opened_at,omitempty"`
	Error          string     `json:"error,omitempty"`
}

// LogStats aggregates log counts by status.
type LogStats struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Sent    int `json:"sent"`
	Opened  int `json:"opened"`
	Failed  int `json:"failed"`
}
