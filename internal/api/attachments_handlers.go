package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/jobmailer/internal/domain"
	"github.com/ignite/jobmailer/internal/pkg/httputil"
	"github.com/ignite/jobmailer/internal/service/attachments"
)

// ListAttachments returns attachment metadata. An optional ?category=
// filter narrows the result.
func (h *Handlers) ListAttachments(w http.ResponseWriter, r *http.Request) {
	if cat := r.URL.Query().Get("category"); cat != "" {
		category := domain.AttachmentCategory(cat)
		if !domain.ValidAttachmentCategory(category) {
			httputil.BadRequest(w, "unknown category: "+cat)
			return
		}
		httputil.OK(w, h.attachments.ByCategory(r.Context(), category))
		return
	}
	httputil.OK(w, h.attachments.List(r.Context()))
}

func (h *Handlers) GetAttachment(w http.ResponseWriter, r *http.Request) {
	a, err := h.attachments.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.NotFound(w, err.Error())
		return
	}
	httputil.OK(w, a)
}

// UploadAttachment accepts a multipart form with a "file" part and a
// "category" field.
func (h *Handlers) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	// A little headroom over the content limit for the form envelope.
	if err := r.ParseMultipartForm(domain.MaxAttachmentSize + 1024*1024); err != nil {
		httputil.BadRequest(w, "parsing multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.BadRequest(w, "missing file part")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	contentType := header.Header.Get("Content-Type")
	category := domain.AttachmentCategory(r.FormValue("category"))

	a, err := h.attachments.Upload(r.Context(), header.Filename, contentType, category, content)
	if err != nil {
		switch err {
		case attachments.ErrTooLarge:
			httputil.PayloadTooLarge(w, err.Error())
		case attachments.ErrInvalidType:
			httputil.UnsupportedMediaType(w, err.Error())
		case attachments.ErrInvalidCategory, attachments.ErrMissingFilename:
			httputil.BadRequest(w, err.Error())
		default:
			httputil.InternalError(w, err)
		}
		return
	}
	httputil.Created(w, a)
}

// DownloadAttachment streams the stored bytes back.
func (h *Handlers) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	a, content, err := h.attachments.Content(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch err {
		case attachments.ErrNotFound:
			httputil.NotFound(w, err.Error())
		default:
			httputil.InternalError(w, err)
		}
		return
	}

	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
	w.Write(content)
}

func (h *Handlers) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	if err := h.attachments.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.NoContent(w)
}
