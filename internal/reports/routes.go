package reports

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/summary", h.Summary)
	r.Get("/by-supplier", h.BySupplier)
	r.Get("/export", h.Export)
}
