package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures the router. allowedOrigins feeds the CORS
// policy for the browser frontend.
func SetupRoutes(h *Handlers, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", h.ListTemplates)
			r.Post("/", h.CreateTemplate)
			r.Get("/{id}", h.GetTemplate)
			r.Put("/{id}", h.UpdateTemplate)
			r.Delete("/{id}", h.DeleteTemplate)
		})

		r.Route("/recipients", func(r chi.Router) {
			r.Get("/", h.ListRecipients)
			r.Post("/", h.AddRecipient)
			r.Post("/import", h.ImportRecipients)
			r.Get("/tags", h.ListTags)
			r.Get("/{id}", h.GetRecipient)
			r.Put("/{id}", h.UpdateRecipient)
			r.Delete("/{id}", h.DeleteRecipient)
		})

		r.Route("/attachments", func(r chi.Router) {
			r.Get("/", h.ListAttachments)
			r.Post("/", h.UploadAttachment)
			r.Get("/{id}", h.GetAttachment)
			r.Get("/{id}/content", h.DownloadAttachment)
			r.Delete("/{id}", h.DeleteAttachment)
		})

		r.Route("/logs", func(r chi.Router) {
			r.Get("/", h.ListLogs)
			r.Get("/stats", h.LogStats)
			r.Put("/{id}/status", h.UpdateLogStatus)
			r.Delete("/", h.ClearLogs)
		})

		r.Route("/wizard", func(r chi.Router) {
			r.Get("/", h.WizardState)
			r.Post("/template", h.WizardSelectTemplate)
			r.Post("/recipients", h.WizardSetRecipients)
			r.Post("/attachments", h.WizardSetAttachments)
			r.Post("/vars", h.WizardSetVars)
			r.Post("/next", h.WizardNext)
			r.Post("/back", h.WizardBack)
			r.Get("/preview", h.WizardPreview)
			r.Post("/send", h.WizardSend)
			r.Post("/reset", h.WizardReset)
		})
	})

	return r
}
