package purchases

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/purchasebook/purchasebook/internal/shared"
)

// Handler exposes purchase operations over HTTP.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// parseFilters reads the sparse filter set from the query string. An absent
// parameter leaves the corresponding predicate unset.
func parseFilters(r *http.Request) PurchaseFilters {
	q := r.URL.Query()
	var f PurchaseFilters

	if v := q.Get("supplier_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.SupplierID = &id
		}
	}
	if v := q.Get("date_from"); v != "" {
		f.DateFrom = &v
	}
	if v := q.Get("date_to"); v != "" {
		f.DateTo = &v
	}
	if v := q.Get("gst_rate"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			f.GSTRate = &rate
		}
	}
	if v := q.Get("invoice_no"); v != "" {
		f.InvoiceNo = &v
	}
	if v := q.Get("status"); v != "" {
		f.Status = &v
	}
	return f
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	pageSize, _ := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 64)

	result, err := h.service.List(r.Context(), parseFilters(r), page, pageSize)
	if err != nil {
		h.logger.Error("list purchases failed", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, shared.E(shared.KindValidation, "invalid purchase id"))
		return
	}
	entry, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, entry)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, shared.E(shared.KindValidation, "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, shared.Wrap(shared.KindValidation, err, "invalid purchase"))
		return
	}

	entry, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create purchase failed", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, entry)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, shared.E(shared.KindValidation, "invalid purchase id"))
		return
	}
	var req UpdatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, shared.E(shared.KindValidation, "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, shared.Wrap(shared.KindValidation, err, "invalid purchase"))
		return
	}

	entry, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update purchase failed", slog.Any("error", err), slog.Int64("id", id))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, entry)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, shared.E(shared.KindValidation, "invalid purchase id"))
		return
	}
	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("delete purchase failed", slog.Any("error", err), slog.Int64("id", id))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

func (h *Handler) Items(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, shared.E(shared.KindValidation, "invalid purchase id"))
		return
	}
	items, err := h.service.Items(r.Context(), id)
	if err != nil {
		h.logger.Error("list items failed", slog.Any("error", err), slog.Int64("id", id))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, shared.E(shared.KindValidation, "invalid purchase id"))
		return
	}
	var payload PurchaseItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		shared.RespondError(w, shared.E(shared.KindValidation, "invalid request body"))
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		shared.RespondError(w, shared.Wrap(shared.KindValidation, err, "invalid item"))
		return
	}

	item, err := h.service.AddItem(r.Context(), id, payload)
	if err != nil {
		h.logger.Error("add item failed", slog.Any("error", err), slog.Int64("purchase_id", id))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, item)
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		shared.RespondError(w, shared.E(shared.KindValidation, "invalid item id"))
		return
	}
	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, shared.E(shared.KindValidation, "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, shared.Wrap(shared.KindValidation, err, "invalid item"))
		return
	}

	if err := h.service.UpdateItem(r.Context(), id, req); err != nil {
		h.logger.Error("update item failed", slog.Any("error", err), slog.Int64("id", id))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, map[string]bool{"updated": true})
}
