package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/jobmailer/internal/domain"
	"github.com/ignite/jobmailer/internal/pkg/httputil"
	"github.com/ignite/jobmailer/internal/service/templates"
)

// ListTemplates returns the template library. An optional ?category=
// filter narrows the result.
func (h *Handlers) ListTemplates(w http.ResponseWriter, r *http.Request) {
	if cat := r.URL.Query().Get("category"); cat != "" {
		category := domain.TemplateCategory(cat)
		if !domain.ValidTemplateCategory(category) {
			httputil.BadRequest(w, "unknown category: "+cat)
			return
		}
		httputil.OK(w, h.templates.ByCategory(r.Context(), category))
		return
	}
	httputil.OK(w, h.templates.List(r.Context()))
}

func (h *Handlers) GetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := h.templates.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.NotFound(w, err.Error())
		return
	}
	httputil.OK(w, t)
}

func (h *Handlers) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var input templates.CreateInput
	if !httputil.Decode(w, r, &input) {
		return
	}

	t, err := h.templates.Create(r.Context(), input)
	if err != nil {
		switch err {
		case templates.ErrMissingName, templates.ErrMissingSubject,
			templates.ErrMissingBody, templates.ErrInvalidCategory:
			httputil.BadRequest(w, err.Error())
		default:
			httputil.InternalError(w, err)
		}
		return
	}
	httputil.Created(w, t)
}

func (h *Handlers) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var fields templates.UpdateFields
	if !httputil.Decode(w, r, &fields) {
		return
	}

	t, err := h.templates.Update(r.Context(), chi.URLParam(r, "id"), fields)
	if err != nil {
		switch err {
		case templates.ErrInvalidCategory:
			httputil.BadRequest(w, err.Error())
		default:
			httputil.InternalError(w, err)
		}
		return
	}
	if t == nil {
		// Unknown id, nothing to update.
		httputil.NoContent(w)
		return
	}
	httputil.OK(w, t)
}

func (h *Handlers) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.templates.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.NoContent(w)
}
