package purchases

// PurchaseEntry is a supplier purchase invoice header. Date is the business
// date (YYYY-MM-DD); EntryDate is the timestamp the record was logged. The
// monetary fields are caller-supplied and not cross-validated here.
type PurchaseEntry struct {
	ID           int64   `json:"id"`
	SupplierID   int64   `json:"supplier_id"`
	InvoiceNo    string  `json:"invoice_no"`
	Date         string  `json:"date"`
	EntryDate    string  `json:"entry_date"`
	GSTRate      float64 `json:"gst_rate"`
	BasicValue   float64 `json:"basic_value"`
	SGST         float64 `json:"sgst"`
	CGST         float64 `json:"cgst"`
	IGST         float64 `json:"igst"`
	InvoiceValue float64 `json:"invoice_value"`
	TDSValue     float64 `json:"tds_value"`
	Narration    *string `json:"narration"`
	Status       string  `json:"status"`
}

// PurchaseItem is a single line within an entry. It cannot exist without its
// parent entry.
type PurchaseItem struct {
	ID          int64   `json:"id"`
	PurchaseID  int64   `json:"purchase_id"`
	PartNo      *string `json:"part_no"`
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	Unit        *string `json:"unit"`
	Price       float64 `json:"price"`
	Amount      float64 `json:"amount"`
}

// PurchaseItemPayload carries a line item on create or replace. When Amount
// is nil it is derived as Qty * Price; a supplied value is trusted verbatim.
type PurchaseItemPayload struct {
	PartNo      *string  `json:"part_no,omitempty" validate:"omitempty,max=100"`
	Description string   `json:"description" validate:"required,max=500"`
	Qty         float64  `json:"qty"`
	Unit        *string  `json:"unit,omitempty" validate:"omitempty,max=20"`
	Price       float64  `json:"price"`
	Amount      *float64 `json:"amount,omitempty"`
}

// CreatePurchaseRequest creates an entry together with its items as one
// atomic unit.
type CreatePurchaseRequest struct {
	SupplierID   int64                 `json:"supplier_id" validate:"required,gt=0"`
	InvoiceNo    string                `json:"invoice_no" validate:"required,max=100"`
	Date         string                `json:"date" validate:"required,datetime=2006-01-02"`
	EntryDate    *string               `json:"entry_date,omitempty"`
	GSTRate      float64               `json:"gst_rate"`
	BasicValue   float64               `json:"basic_value"`
	SGST         float64               `json:"sgst"`
	CGST         float64               `json:"cgst"`
	IGST         float64               `json:"igst"`
	InvoiceValue float64               `json:"invoice_value"`
	TDSValue     float64               `json:"tds_value"`
	Narration    *string               `json:"narration,omitempty"`
	Status       string                `json:"status"`
	Items        []PurchaseItemPayload `json:"items" validate:"dive"`
}

// UpdatePurchaseRequest patches an entry. Nil fields keep their stored value.
// Items follows replace semantics: nil leaves the item set untouched, a
// present list (even empty) fully supersedes the persisted set.
type UpdatePurchaseRequest struct {
	SupplierID   *int64                 `json:"supplier_id,omitempty" validate:"omitempty,gt=0"`
	InvoiceNo    *string                `json:"invoice_no,omitempty" validate:"omitempty,max=100"`
	Date         *string                `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EntryDate    *string                `json:"entry_date,omitempty"`
	GSTRate      *float64               `json:"gst_rate,omitempty"`
	BasicValue   *float64               `json:"basic_value,omitempty"`
	SGST         *float64               `json:"sgst,omitempty"`
	CGST         *float64               `json:"cgst,omitempty"`
	IGST         *float64               `json:"igst,omitempty"`
	InvoiceValue *float64               `json:"invoice_value,omitempty"`
	TDSValue     *float64               `json:"tds_value,omitempty"`
	Narration    *string                `json:"narration,omitempty"`
	Status       *string                `json:"status,omitempty"`
	Items        *[]PurchaseItemPayload `json:"items,omitempty" validate:"omitempty,dive"`
}

// UpdateItemRequest patches a single line item outside the entry-level
// transaction.
type UpdateItemRequest struct {
	PartNo      *string  `json:"part_no,omitempty" validate:"omitempty,max=100"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=500"`
	Qty         *float64 `json:"qty,omitempty"`
	Unit        *string  `json:"unit,omitempty" validate:"omitempty,max=20"`
	Price       *float64 `json:"price,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
}

// PurchaseFilters is a sparse predicate set: a nil field means no constraint
// on that column, never "match empty".
type PurchaseFilters struct {
	SupplierID *int64
	DateFrom   *string
	DateTo     *string
	GSTRate    *float64
	InvoiceNo  *string
	Status     *string
}
