package suppliers

import (
	"context"
	"fmt"
	"strings"

	"github.com/purchasebook/purchasebook/internal/shared"
)

// Service wraps supplier business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns one page of suppliers matching the optional name filter.
func (s *Service) List(ctx context.Context, filters ListFilters) (shared.Page[Supplier], error) {
	p := shared.NormalizePagination(filters.Page, filters.PageSize)
	data, total, err := s.repo.List(ctx, filters, p)
	if err != nil {
		return shared.Page[Supplier]{}, fmt.Errorf("list suppliers: %w", err)
	}
	return shared.NewPage(data, total, p), nil
}

// Get fetches a single supplier.
func (s *Service) Get(ctx context.Context, id int64) (Supplier, error) {
	if id <= 0 {
		return Supplier{}, shared.E(shared.KindValidation, "invalid supplier id")
	}
	return s.repo.Get(ctx, id)
}

// Create persists a new supplier and returns the stored row.
func (s *Service) Create(ctx context.Context, req CreateSupplierRequest) (Supplier, error) {
	if strings.TrimSpace(req.Name) == "" {
		return Supplier{}, shared.E(shared.KindValidation, "supplier name is required")
	}
	id, err := s.repo.Create(ctx, Supplier{
		Name:      req.Name,
		GSTNo:     req.GSTNo,
		StateCode: req.StateCode,
		TDSFlag:   req.TDSFlag,
		TDSRate:   req.TDSRate,
		Contact:   req.Contact,
		Email:     req.Email,
	})
	if err != nil {
		return Supplier{}, fmt.Errorf("create supplier: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Update merges the supplied fields into the stored row. Omitted fields keep
// their previous value.
func (s *Service) Update(ctx context.Context, id int64, req UpdateSupplierRequest) (Supplier, error) {
	if id <= 0 {
		return Supplier{}, shared.E(shared.KindValidation, "invalid supplier id")
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return Supplier{}, err
	}

	updates := make(map[string]any)
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return Supplier{}, shared.E(shared.KindValidation, "supplier name is required")
		}
		updates["name"] = *req.Name
	}
	if req.GSTNo != nil {
		updates["gst_no"] = *req.GSTNo
	}
	if req.StateCode != nil {
		updates["state_code"] = *req.StateCode
	}
	if req.TDSFlag != nil {
		flag := int64(0)
		if *req.TDSFlag {
			flag = 1
		}
		updates["tds_flag"] = flag
	}
	if req.TDSRate != nil {
		updates["tds_rate"] = *req.TDSRate
	}
	if req.Contact != nil {
		updates["contact"] = *req.Contact
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return Supplier{}, fmt.Errorf("update supplier: %w", err)
		}
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a supplier, reporting whether a row was actually removed.
// Deleting a supplier still referenced by purchase entries is a conflict.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, shared.E(shared.KindValidation, "invalid supplier id")
	}
	return s.repo.Delete(ctx, id)
}
