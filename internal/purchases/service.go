package purchases

import (
	"context"
	"fmt"

	"github.com/purchasebook/purchasebook/internal/shared"
)

// Service coordinates purchase entry writes and queries.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// resolveAmount derives a line amount when the caller did not supply one. A
// supplied amount is trusted verbatim; no rounding policy is applied.
func resolveAmount(amount *float64, qty, price float64) float64 {
	if amount != nil {
		return *amount
	}
	return qty * price
}

func buildItems(payloads []PurchaseItemPayload) []PurchaseItem {
	items := make([]PurchaseItem, 0, len(payloads))
	for _, p := range payloads {
		items = append(items, PurchaseItem{
			PartNo:      p.PartNo,
			Description: p.Description,
			Qty:         p.Qty,
			Unit:        p.Unit,
			Price:       p.Price,
			Amount:      resolveAmount(p.Amount, p.Qty, p.Price),
		})
	}
	return items
}

// List returns one page of entries matching the sparse filter set.
func (s *Service) List(ctx context.Context, filters PurchaseFilters, page, pageSize int64) (shared.Page[PurchaseEntry], error) {
	p := shared.NormalizePagination(page, pageSize)
	data, total, err := s.repo.List(ctx, filters, p)
	if err != nil {
		return shared.Page[PurchaseEntry]{}, fmt.Errorf("list purchases: %w", err)
	}
	return shared.NewPage(data, total, p), nil
}

// Get fetches a single entry.
func (s *Service) Get(ctx context.Context, id int64) (PurchaseEntry, error) {
	if id <= 0 {
		return PurchaseEntry{}, shared.E(shared.KindValidation, "invalid purchase id")
	}
	return s.repo.Get(ctx, id)
}

// Create persists the entry and its items atomically and returns the stored
// entry re-read after commit.
func (s *Service) Create(ctx context.Context, req CreatePurchaseRequest) (PurchaseEntry, error) {
	id, err := s.repo.Create(ctx, req, buildItems(req.Items))
	if err != nil {
		return PurchaseEntry{}, fmt.Errorf("create purchase: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Update merges the supplied fields into the stored entry. When the request
// carries an item list the persisted set is fully replaced; when it is
// omitted the existing items are untouched.
func (s *Service) Update(ctx context.Context, id int64, req UpdatePurchaseRequest) (PurchaseEntry, error) {
	if id <= 0 {
		return PurchaseEntry{}, shared.E(shared.KindValidation, "invalid purchase id")
	}

	updates := make(map[string]any)
	if req.SupplierID != nil {
		updates["supplier_id"] = *req.SupplierID
	}
	if req.InvoiceNo != nil {
		updates["invoice_no"] = *req.InvoiceNo
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.EntryDate != nil {
		updates["entry_date"] = *req.EntryDate
	}
	if req.GSTRate != nil {
		updates["gst_rate"] = *req.GSTRate
	}
	if req.BasicValue != nil {
		updates["basic_value"] = *req.BasicValue
	}
	if req.SGST != nil {
		updates["sgst"] = *req.SGST
	}
	if req.CGST != nil {
		updates["cgst"] = *req.CGST
	}
	if req.IGST != nil {
		updates["igst"] = *req.IGST
	}
	if req.InvoiceValue != nil {
		updates["invoice_value"] = *req.InvoiceValue
	}
	if req.TDSValue != nil {
		updates["tds_value"] = *req.TDSValue
	}
	if req.Narration != nil {
		updates["narration"] = *req.Narration
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	var items []PurchaseItem
	replaceItems := req.Items != nil
	if replaceItems {
		items = buildItems(*req.Items)
	}

	if err := s.repo.Update(ctx, id, updates, items, replaceItems); err != nil {
		if err == shared.ErrNotFound {
			return PurchaseEntry{}, shared.ErrNotFound
		}
		return PurchaseEntry{}, fmt.Errorf("update purchase: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Delete removes an entry, reporting whether a row was actually removed.
// Items follow via the ownership cascade.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, shared.E(shared.KindValidation, "invalid purchase id")
	}
	return s.repo.Delete(ctx, id)
}

// Items returns the line items of an entry ordered by id.
func (s *Service) Items(ctx context.Context, purchaseID int64) ([]PurchaseItem, error) {
	if purchaseID <= 0 {
		return nil, shared.E(shared.KindValidation, "invalid purchase id")
	}
	items, err := s.repo.ItemsByPurchase(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if items == nil {
		items = []PurchaseItem{}
	}
	return items, nil
}

// AddItem appends one line item to an existing entry, outside the entry-level
// transaction.
func (s *Service) AddItem(ctx context.Context, purchaseID int64, payload PurchaseItemPayload) (PurchaseItem, error) {
	if purchaseID <= 0 {
		return PurchaseItem{}, shared.E(shared.KindValidation, "invalid purchase id")
	}
	item := PurchaseItem{
		PurchaseID:  purchaseID,
		PartNo:      payload.PartNo,
		Description: payload.Description,
		Qty:         payload.Qty,
		Unit:        payload.Unit,
		Price:       payload.Price,
		Amount:      resolveAmount(payload.Amount, payload.Qty, payload.Price),
	}
	id, err := s.repo.AddItem(ctx, item)
	if err != nil {
		return PurchaseItem{}, fmt.Errorf("add item: %w", err)
	}
	item.ID = id
	return item, nil
}

// UpdateItem patches a single line item; omitted fields keep their stored
// value.
func (s *Service) UpdateItem(ctx context.Context, id int64, req UpdateItemRequest) error {
	if id <= 0 {
		return shared.E(shared.KindValidation, "invalid item id")
	}

	updates := make(map[string]any)
	if req.PartNo != nil {
		updates["part_no"] = *req.PartNo
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Qty != nil {
		updates["qty"] = *req.Qty
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if len(updates) == 0 {
		return nil
	}
	if err := s.repo.UpdateItem(ctx, id, updates); err != nil {
		if err == shared.ErrNotFound {
			return shared.ErrNotFound
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}
