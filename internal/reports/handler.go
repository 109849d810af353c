package reports

import (
	"log/slog"
	"net/http"

	"github.com/purchasebook/purchasebook/internal/shared"
)

// Handler exposes the reporting queries over HTTP.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func parseRange(r *http.Request) DateRange {
	q := r.URL.Query()
	var dr DateRange
	if v := q.Get("date_from"); v != "" {
		dr.From = &v
	}
	if v := q.Get("date_to"); v != "" {
		dr.To = &v
	}
	return dr
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), parseRange(r))
	if err != nil {
		h.logger.Error("report summary failed", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, summary)
}

func (h *Handler) BySupplier(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.BySupplier(r.Context(), parseRange(r))
	if err != nil {
		h.logger.Error("purchases by supplier failed", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, rows)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Export(r.Context(), parseRange(r))
	if err != nil {
		h.logger.Error("export purchases failed", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="purchases.csv"`)
		if err := WriteEntriesCSV(w, entries); err != nil {
			h.logger.Error("write csv failed", slog.Any("error", err))
		}
		return
	}
	shared.RespondJSON(w, http.StatusOK, entries)
}
