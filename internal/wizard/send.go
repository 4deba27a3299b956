package wizard

import (
	"context"
	"time"

	"github.com/ignite/jobmailer/internal/domain"
	"github.com/ignite/jobmailer/internal/merge"
	"github.com/ignite/jobmailer/internal/pkg/logger"
	"github.com/ignite/jobmailer/internal/service/maillog"
)

// Preview is the rendered email for the first selected recipient.
type Preview struct {
	RecipientID    string   `json:"recipient_id"`
	RecipientEmail string   `json:"recipient_email"`
	Subject        string   `json:"subject"`
	Body           string   `json:"body"`
	Attachments    []string `json:"attachments"`
	Unresolved     []string `json:"unresolved,omitempty"`
}

// BuildPreview merges the selected template against the first selected
// recipient. Unresolved lists placeholders that no variable matched.
func (c *Controller) BuildPreview(ctx context.Context) (*Preview, error) {
	c.mu.Lock()
	templateID := c.templateID
	recipientIDs := append([]string(nil), c.recipientIDs...)
	attachmentIDs := append([]string(nil), c.attachmentIDs...)
	custom := c.customVars
	c.mu.Unlock()

	if templateID == "" {
		return nil, ErrNoTemplate
	}
	if len(recipientIDs) == 0 {
		return nil, ErrNoRecipients
	}

	tpl, err := c.templates.Get(ctx, templateID)
	if err != nil {
		return nil, err
	}
	first, err := c.recipients.Get(ctx, recipientIDs[0])
	if err != nil {
		return nil, err
	}

	vars := merge.Combine(merge.SenderVars(c.sender), merge.RecipientVars(first, c.now()), custom)
	subject := merge.Merge(tpl.Subject, vars)
	body := merge.Merge(tpl.Body, vars)

	var filenames []string
	for _, id := range attachmentIDs {
		a, err := c.attachments.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		filenames = append(filenames, a.Filename)
	}

	unresolved := merge.Placeholders(subject + "\n" + body)

	return &Preview{
		RecipientID:    first.ID,
		RecipientEmail: first.Email,
		Subject:        subject,
		Body:           body,
		Attachments:    filenames,
		Unresolved:     unresolved,
	}, nil
}

// RecipientOutcome is one recipient's result within a batch.
type RecipientOutcome struct {
	RecipientID string `json:"recipient_id"`
	Email       string `json:"email"`
	LogID       string `json:"log_id"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

// SendReport summarizes a batch send.
type SendReport struct {
	Total     int                `json:"total"`
	Sent      int                `json:"sent"`
	Failed    int                `json:"failed"`
	Cancelled bool               `json:"cancelled"`
	Outcomes  []RecipientOutcome `json:"outcomes"`
}

// Send runs the batch at the confirm stage. Each recipient is handled
// independently: one log entry is written per attempted recipient, and
// a failure never aborts the rest. Cancelling ctx stops further sends;
// outcomes already recorded stand. The wizard resets only after every
// outcome for the (possibly truncated) batch is recorded.
func (c *Controller) Send(ctx context.Context) (*SendReport, error) {
	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		return nil, ErrSendInProgress
	}
	if c.stage != StageConfirm {
		c.mu.Unlock()
		return nil, ErrNotAtConfirm
	}
	if c.templateID == "" {
		c.mu.Unlock()
		return nil, ErrNoTemplate
	}
	if len(c.recipientIDs) == 0 {
		c.mu.Unlock()
		return nil, ErrNoRecipients
	}
	c.sending = true
	templateID := c.templateID
	recipientIDs := append([]string(nil), c.recipientIDs...)
	attachmentIDs := append([]string(nil), c.attachmentIDs...)
	custom := c.customVars
	c.mu.Unlock()

	// Selections survive a failed setup so the batch can be retried;
	// the wizard resets only once outcomes have been recorded.
	batchRan := false
	defer func() {
		c.mu.Lock()
		c.sending = false
		if batchRan {
			c.resetLocked()
		}
		c.mu.Unlock()
	}()

	tpl, err := c.templates.Get(ctx, templateID)
	if err != nil {
		return nil, err
	}

	parts, err := c.resolveAttachments(ctx, attachmentIDs)
	if err != nil {
		return nil, err
	}
	batchRan = true

	report := &SendReport{Total: len(recipientIDs)}
	senderVars := merge.SenderVars(c.sender)

	for _, rid := range recipientIDs {
		if ctx.Err() != nil {
			report.Cancelled = true
			break
		}

		recipient, err := c.recipients.Get(ctx, rid)
		if err != nil {
			// Deleted mid-flow; record the failure and move on.
			report.Outcomes = append(report.Outcomes, RecipientOutcome{
				RecipientID: rid, Success: false, Error: err.Error(),
			})
			report.Failed++
			continue
		}

		entry, err := c.logs.Add(ctx, maillog.AddInput{
			RecipientID:    recipient.ID,
			RecipientEmail: recipient.Email,
			RecipientName:  recipient.Name,
			Company:        recipient.Company,
			TemplateID:     tpl.ID,
			TemplateName:   tpl.Name,
			Status:         domain.LogPending,
		})
		if err != nil {
			return nil, err
		}

		vars := merge.Combine(senderVars, merge.RecipientVars(recipient, c.now()), custom)
		email := &domain.OutboundEmail{
			ID:          entry.ID,
			RecipientID: recipient.ID,
			Email:       recipient.Email,
			ToName:      recipient.Name,
			FromName:    c.sender.Name,
			FromEmail:   c.sender.Email,
			Subject:     merge.Merge(tpl.Subject, vars),
			Body:        merge.Merge(tpl.Body, vars),
			Attachments: parts,
		}

		outcome := c.dispatch(ctx, email)

		result := RecipientOutcome{
			RecipientID: recipient.ID,
			Email:       recipient.Email,
			LogID:       entry.ID,
		}
		if outcome.Success {
			if _, err := c.logs.UpdateStatus(ctx, entry.ID, domain.LogSent, ""); err != nil {
				logger.Warn("marking log sent failed", "log_id", entry.ID, "error", err)
			}
			result.Success = true
			report.Sent++
		} else {
			if _, err := c.logs.UpdateStatus(ctx, entry.ID, domain.LogFailed, outcome.Error); err != nil {
				logger.Warn("marking log failed failed", "log_id", entry.ID, "error", err)
			}
			result.Error = outcome.Error
			report.Failed++
		}
		report.Outcomes = append(report.Outcomes, result)
	}

	logger.Info("batch send finished",
		"total", report.Total, "sent", report.Sent,
		"failed", report.Failed, "cancelled", report.Cancelled)

	return report, nil
}

// dispatch delivers one email with per-attempt timeout and bounded
// exponential backoff. It always returns an outcome; transport-level
// errors exhaust the retry budget and come back as a failed outcome.
func (c *Controller) dispatch(ctx context.Context, email *domain.OutboundEmail) domain.SendOutcome {
	backoff := c.opts.Backoff
	var last domain.SendOutcome

	for attempt := 0; attempt <= c.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
				backoff *= 2
			case <-ctx.Done():
				last.Error = ctx.Err().Error()
				return last
			}
		}

		attemptCtx := ctx
		var cancel context.CancelFunc
		if c.opts.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		}
		outcome, err := c.transport.Send(attemptCtx, email)
		if cancel != nil {
			cancel()
		}

		switch {
		case err != nil:
			last = domain.SendOutcome{Success: false, Error: err.Error()}
		case outcome == nil:
			last = domain.SendOutcome{Success: false, Error: "transport returned no outcome"}
		default:
			last = *outcome
		}

		if last.Success || ctx.Err() != nil {
			return last
		}
	}
	return last
}

// resolveAttachments loads the selected attachments' bytes once for the
// whole batch.
func (c *Controller) resolveAttachments(ctx context.Context, ids []string) ([]domain.AttachmentPart, error) {
	var parts []domain.AttachmentPart
	for _, id := range ids {
		meta, content, err := c.attachments.Content(ctx, id)
		if err != nil {
			return nil, err
		}
		parts = append(parts, domain.AttachmentPart{
			Filename:    meta.Filename,
			ContentType: meta.ContentType,
			Content:     content,
		})
	}
	return parts, nil
}
