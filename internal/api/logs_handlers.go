package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/jobmailer/internal/domain"
	"github.com/ignite/jobmailer/internal/pkg/httputil"
	"github.com/ignite/jobmailer/internal/service/maillog"
)

// ListLogs returns the send log newest-first. An optional ?status=
// filter narrows the result.
func (h *Handlers) ListLogs(w http.ResponseWriter, r *http.Request) {
	if status := r.URL.Query().Get("status"); status != "" {
		logs, err := h.logs.ByStatus(r.Context(), domain.LogStatus(status))
		if err != nil {
			httputil.BadRequest(w, err.Error())
			return
		}
		httputil.OK(w, logs)
		return
	}
	httputil.OK(w, h.logs.List(r.Context()))
}

func (h *Handlers) LogStats(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, h.logs.Stats(r.Context()))
}

// UpdateLogStatus moves an entry through the delivery lifecycle, e.g.
// marking a sent application as opened.
func (h *Handlers) UpdateLogStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status domain.LogStatus `json:"status"`
		Error  string           `json:"error"`
	}
	if !httputil.Decode(w, r, &body) {
		return
	}

	entry, err := h.logs.UpdateStatus(r.Context(), chi.URLParam(r, "id"), body.Status, body.Error)
	if err != nil {
		switch err {
		case maillog.ErrInvalidStatus:
			httputil.BadRequest(w, err.Error())
		case maillog.ErrInvalidTransition:
			httputil.UnprocessableEntity(w, err.Error())
		default:
			httputil.InternalError(w, err)
		}
		return
	}
	if entry == nil {
		// Unknown id, nothing to update.
		httputil.NoContent(w)
		return
	}
	httputil.OK(w, entry)
}

func (h *Handlers) ClearLogs(w http.ResponseWriter, r *http.Request) {
	if err := h.logs.Clear(r.Context()); err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.NoContent(w)
}
