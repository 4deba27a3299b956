package api

import (
	"net/http"

	"github.com/ignite/jobmailer/internal/pkg/httputil"
	"github.com/ignite/jobmailer/internal/wizard"
)

func (h *Handlers) WizardState(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, h.wizard.State())
}

func (h *Handlers) WizardSelectTemplate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TemplateID string `json:"template_id"`
	}
	if !httputil.Decode(w, r, &body) {
		return
	}
	if err := h.wizard.SelectTemplate(r.Context(), body.TemplateID); err != nil {
		httputil.NotFound(w, err.Error())
		return
	}
	httputil.OK(w, h.wizard.State())
}

func (h *Handlers) WizardSetRecipients(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RecipientIDs []string `json:"recipient_ids"`
	}
	if !httputil.Decode(w, r, &body) {
		return
	}
	if err := h.wizard.SetRecipients(r.Context(), body.RecipientIDs); err != nil {
		httputil.NotFound(w, err.Error())
		return
	}
	httputil.OK(w, h.wizard.State())
}

func (h *Handlers) WizardSetAttachments(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AttachmentIDs []string `json:"attachment_ids"`
	}
	if !httputil.Decode(w, r, &body) {
		return
	}
	if err := h.wizard.SetAttachments(r.Context(), body.AttachmentIDs); err != nil {
		httputil.NotFound(w, err.Error())
		return
	}
	httputil.OK(w, h.wizard.State())
}

func (h *Handlers) WizardSetVars(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Vars map[string]string `json:"vars"`
	}
	if !httputil.Decode(w, r, &body) {
		return
	}
	h.wizard.SetCustomVars(body.Vars)
	httputil.OK(w, h.wizard.State())
}

func (h *Handlers) WizardNext(w http.ResponseWriter, r *http.Request) {
	if err := h.wizard.Next(); err != nil {
		httputil.UnprocessableEntity(w, err.Error())
		return
	}
	httputil.OK(w, h.wizard.State())
}

func (h *Handlers) WizardBack(w http.ResponseWriter, r *http.Request) {
	if err := h.wizard.Back(); err != nil {
		httputil.UnprocessableEntity(w, err.Error())
		return
	}
	httputil.OK(w, h.wizard.State())
}

func (h *Handlers) WizardPreview(w http.ResponseWriter, r *http.Request) {
	p, err := h.wizard.BuildPreview(r.Context())
	if err != nil {
		switch err {
		case wizard.ErrNoTemplate, wizard.ErrNoRecipients:
			httputil.UnprocessableEntity(w, err.Error())
		default:
			httputil.NotFound(w, err.Error())
		}
		return
	}
	httputil.OK(w, p)
}

func (h *Handlers) WizardSend(w http.ResponseWriter, r *http.Request) {
	report, err := h.wizard.Send(r.Context())
	if err != nil {
		switch err {
		case wizard.ErrNotAtConfirm, wizard.ErrNoTemplate, wizard.ErrNoRecipients:
			httputil.UnprocessableEntity(w, err.Error())
		case wizard.ErrSendInProgress:
			httputil.Conflict(w, err.Error())
		default:
			httputil.InternalError(w, err)
		}
		return
	}
	httputil.OK(w, report)
}

func (h *Handlers) WizardReset(w http.ResponseWriter, r *http.Request) {
	h.wizard.Reset()
	httputil.OK(w, h.wizard.State())
}
