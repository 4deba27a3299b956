package api

import (
	"net/http"
	"time"

	"github.com/ignite/jobmailer/internal/pkg/httputil"
	"github.com/ignite/jobmailer/internal/service/attachments"
	"github.com/ignite/jobmailer/internal/service/maillog"
	"github.com/ignite/jobmailer/internal/service/recipients"
	"github.com/ignite/jobmailer/internal/service/templates"
	"github.com/ignite/jobmailer/internal/wizard"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	templates   *templates.Service
	recipients  *recipients.Service
	attachments *attachments.Service
	logs        *maillog.Service
	wizard      *wizard.Controller

	started time.Time
}

// NewHandlers creates a Handlers instance over the service layer.
func NewHandlers(
	tpl *templates.Service,
	rcp *recipients.Service,
	att *attachments.Service,
	logs *maillog.Service,
	wiz *wizard.Controller,
) *Handlers {
	return &Handlers{
		templates:   tpl,
		recipients:  rcp,
		attachments: att,
		logs:        logs,
		wizard:      wiz,
		started:     time.Now(),
	}
}

// HealthCheck reports liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]any{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}
