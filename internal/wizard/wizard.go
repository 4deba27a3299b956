package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/ignite/jobmailer/internal/domain"
	"github.com/ignite/jobmailer/internal/mailer"
	"github.com/ignite/jobmailer/internal/service/attachments"
	"github.com/ignite/jobmailer/internal/service/maillog"
	"github.com/ignite/jobmailer/internal/service/recipients"
	"github.com/ignite/jobmailer/internal/service/templates"
)

// Stage identifies one step of the send flow.
type Stage int

const (
	StageSelectTemplate Stage = iota + 1
	StageSelectRecipients
	StageSelectAttachments
	StagePreview
	StageConfirm
)

func (s Stage) String() string {
	switch s {
	case StageSelectTemplate:
		return "select-template"
	case StageSelectRecipients:
		return "select-recipients"
	case StageSelectAttachments:
		return "select-attachments"
	case StagePreview:
		return "preview"
	case StageConfirm:
		return "confirm"
	}
	return "unknown"
}

// SendOptions bound the per-recipient dispatch.
type SendOptions struct {
	// Timeout applies to each delivery attempt.
	Timeout time.Duration
	// MaxRetries is the number of re-attempts after the first failure.
	MaxRetries int
	// Backoff is the wait before the first retry; it doubles per retry.
	Backoff time.Duration
}

// DefaultSendOptions is used when the caller passes zero options.
var DefaultSendOptions = SendOptions{
	Timeout:    30 * time.Second,
	MaxRetries: 2,
	Backoff:    500 * time.Millisecond,
}

// Controller holds the wizard state machine. All public methods are
// safe for concurrent use; only one batch send may run at a time.
type Controller struct {
	mu sync.Mutex

	stage         Stage
	templateID    string
	recipientIDs  []string
	attachmentIDs []string
	customVars    map[string]string
	sending       bool

	templates   *templates.Service
	recipients  *recipients.Service
	attachments *attachments.Service
	logs        *maillog.Service
	transport   mailer.Transport

	sender domain.SenderDetails
	opts   SendOptions
	now    func() time.Time
}

// NewController wires the wizard against the service layer.
func NewController(
	tpl *templates.Service,
	rcp *recipients.Service,
	att *attachments.Service,
	logs *maillog.Service,
	transport mailer.Transport,
	sender domain.SenderDetails,
	opts SendOptions,
) *Controller {
	if opts == (SendOptions{}) {
		opts = DefaultSendOptions
	}
	return &Controller{
		stage:       StageSelectTemplate,
		templates:   tpl,
		recipients:  rcp,
		attachments: att,
		logs:        logs,
		transport:   transport,
		sender:      sender,
		opts:        opts,
		now:         time.Now,
	}
}

// State is a snapshot of the wizard for the API layer.
type State struct {
	Stage         Stage             `json:"stage"`
	StageName     string            `json:"stage_name"`
	TemplateID    string            `json:"template_id,omitempty"`
	RecipientIDs  []string          `json:"recipient_ids"`
	AttachmentIDs []string          `json:"attachment_ids"`
	CustomVars    map[string]string `json:"custom_vars,omitempty"`
	CanAdvance    bool              `json:"can_advance"`
	Sending       bool              `json:"sending"`
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	rids := make([]string, len(c.recipientIDs))
	copy(rids, c.recipientIDs)
	aids := make([]string, len(c.attachmentIDs))
	copy(aids, c.attachmentIDs)
	return State{
		Stage:         c.stage,
		StageName:     c.stage.String(),
		TemplateID:    c.templateID,
		RecipientIDs:  rids,
		AttachmentIDs: aids,
		CustomVars:    c.customVars,
		CanAdvance:    c.canAdvanceLocked(),
		Sending:       c.sending,
	}
}

// SelectTemplate records the single template choice. The template must
// exist.
func (c *Controller) SelectTemplate(ctx context.Context, id string) error {
	if _, err := c.templates.Get(ctx, id); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templateID = id
	return nil
}

// SetRecipients records the recipient selection. Every ID must exist.
func (c *Controller) SetRecipients(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := c.recipients.Get(ctx, id); err != nil {
			return err
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recipientIDs = append([]string(nil), ids...)
	return nil
}

// SetAttachments records the attachment selection. Every ID must exist.
func (c *Controller) SetAttachments(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := c.attachments.Get(ctx, id); err != nil {
			return err
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attachmentIDs = append([]string(nil), ids...)
	return nil
}

// SetCustomVars records extra merge variables layered on top of the
// recipient and sender vocabulary.
func (c *Controller) SetCustomVars(vars map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customVars = vars
}

// canAdvanceLocked checks the current stage's gate.
func (c *Controller) canAdvanceLocked() bool {
	switch c.stage {
	case StageSelectTemplate:
		return c.templateID != ""
	case StageSelectRecipients:
		return len(c.recipientIDs) > 0
	case StageSelectAttachments, StagePreview:
		return true
	case StageConfirm:
		return false
	}
	return false
}

// Next advances one stage if the gate is satisfied.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stage == StageConfirm {
		return ErrGateNotSatisfied
	}
	if !c.canAdvanceLocked() {
		return ErrGateNotSatisfied
	}
	c.stage++
	return nil
}

// Back moves one stage toward the start. Selections are preserved.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stage == StageSelectTemplate {
		return ErrAtFirstStage
	}
	c.stage--
	return nil
}

// Reset returns to the first stage and clears all selections.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	c.stage = StageSelectTemplate
	c.templateID = ""
	c.recipientIDs = nil
	c.attachmentIDs = nil
	c.customVars = nil
}
