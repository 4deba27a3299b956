package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/jobmailer/internal/pkg/httputil"
	"github.com/ignite/jobmailer/internal/service/recipients"
)

// maxCSVBody caps the recipient import payload.
const maxCSVBody = 5 * 1024 * 1024

// ListRecipients returns the recipient list. Repeated ?tag= parameters
// filter to recipients carrying at least one of the tags.
func (h *Handlers) ListRecipients(w http.ResponseWriter, r *http.Request) {
	tags := r.URL.Query()["tag"]
	httputil.OK(w, h.recipients.ByTags(r.Context(), tags))
}

func (h *Handlers) GetRecipient(w http.ResponseWriter, r *http.Request) {
	rcp, err := h.recipients.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.NotFound(w, err.Error())
		return
	}
	httputil.OK(w, rcp)
}

func (h *Handlers) AddRecipient(w http.ResponseWriter, r *http.Request) {
	var input recipients.CreateInput
	if !httputil.Decode(w, r, &input) {
		return
	}

	rcp, err := h.recipients.Add(r.Context(), input)
	if err != nil {
		switch err {
		case recipients.ErrInvalidEmail:
			httputil.BadRequest(w, err.Error())
		case recipients.ErrDuplicateEmail:
			httputil.Conflict(w, err.Error())
		default:
			httputil.InternalError(w, err)
		}
		return
	}
	httputil.Created(w, rcp)
}

// ImportRecipients accepts a text/csv body and returns added and
// skipped counts.
func (h *Handlers) ImportRecipients(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "text/csv") && !strings.HasPrefix(ct, "text/plain") {
		httputil.UnsupportedMediaType(w, "expected text/csv body")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxCSVBody))
	if err != nil {
		httputil.BadRequest(w, "reading body: "+err.Error())
		return
	}

	result, err := h.recipients.ImportCSV(r.Context(), string(body))
	if err != nil {
		httputil.BadRequest(w, "parsing CSV: "+err.Error())
		return
	}
	httputil.OK(w, result)
}

func (h *Handlers) ListTags(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, h.recipients.AllTags(r.Context()))
}

func (h *Handlers) UpdateRecipient(w http.ResponseWriter, r *http.Request) {
	var fields recipients.UpdateFields
	if !httputil.Decode(w, r, &fields) {
		return
	}

	rcp, err := h.recipients.Update(r.Context(), chi.URLParam(r, "id"), fields)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if rcp == nil {
		// Unknown id, nothing to update.
		httputil.NoContent(w)
		return
	}
	httputil.OK(w, rcp)
}

func (h *Handlers) DeleteRecipient(w http.ResponseWriter, r *http.Request) {
	if err := h.recipients.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.NoContent(w)
}
