package suppliers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/purchasebook/purchasebook/internal/shared"
)

// Handler exposes supplier operations over HTTP.
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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	pageSize, _ := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 64)

	result, err := h.service.List(r.Context(), ListFilters{
		Name:     r.URL.Query().Get("name"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.logger.Error("list suppliers failed", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, shared.E(shared.KindValidation, "invalid supplier id"))
		return
	}
	supplier, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, supplier)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, shared.E(shared.KindValidation, "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, shared.Wrap(shared.KindValidation, err, "invalid supplier"))
		return
	}

	supplier, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create supplier failed", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, supplier)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, shared.E(shared.KindValidation, "invalid supplier id"))
		return
	}
	var req UpdateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, shared.E(shared.KindValidation, "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, shared.Wrap(shared.KindValidation, err, "invalid supplier"))
		return
	}

	supplier, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update supplier failed", slog.Any("error", err), slog.Int64("id", id))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, supplier)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, shared.E(shared.KindValidation, "invalid supplier id"))
		return
	}
	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("delete supplier failed", slog.Any("error", err), slog.Int64("id", id))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

type importRequest struct {
	Path string `json:"path" validate:"required"`
}

type templateRequest struct {
	Path string `json:"path" validate:"required"`
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, shared.E(shared.KindValidation, "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, shared.E(shared.KindValidation, "path is required"))
		return
	}

	count, err := h.service.ImportFromWorkbook(r.Context(), req.Path)
	if err != nil {
		h.logger.Error("supplier import failed", slog.Any("error", err), slog.String("path", req.Path))
		shared.RespondError(w, err)
		return
	}
	h.logger.Info("suppliers imported", slog.Int("count", count), slog.String("path", req.Path))
	shared.RespondJSON(w, http.StatusOK, map[string]int{"imported": count})
}

func (h *Handler) Template(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondError(w, shared.E(shared.KindValidation, "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, shared.E(shared.KindValidation, "path is required"))
		return
	}

	if err := WriteTemplate(req.Path); err != nil {
		h.logger.Error("template write failed", slog.Any("error", err), slog.String("path", req.Path))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, map[string]string{"path": req.Path})
}
