package reports

// ReportSummary aggregates the ledger over an inclusive date window. It is
// derived on demand and never persisted.
type ReportSummary struct {
	TotalPurchases float64 `json:"total_purchases"`
	TotalGST       float64 `json:"total_gst"`
	TotalSuppliers int64   `json:"total_suppliers"`
	TotalItems     int64   `json:"total_items"`
}

// PurchasesBySupplier is one row of the per-supplier grouping, ordered by
// total descending with supplier name as the deterministic tiebreak.
type PurchasesBySupplier struct {
	SupplierName   string  `json:"supplier_name"`
	TotalPurchases float64 `json:"total_purchases"`
}

// DateRange bounds a report query. A nil endpoint leaves that side of the
// window open.
type DateRange struct {
	From *string
	To   *string
}
