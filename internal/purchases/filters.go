package purchases

import "strings"

// buildFilters translates the sparse filter set into parallel condition and
// argument lists. Both the COUNT and the SELECT consume the same output, so
// the total can never be computed against a different predicate than the
// page contents. Values are always bound, never interpolated.
func buildFilters(f PurchaseFilters) (conds []string, args []any) {
	if f.SupplierID != nil {
		conds = append(conds, "supplier_id = ?")
		args = append(args, *f.SupplierID)
	}
	if f.DateFrom != nil {
		conds = append(conds, "date >= ?")
		args = append(args, *f.DateFrom)
	}
	if f.DateTo != nil {
		conds = append(conds, "date <= ?")
		args = append(args, *f.DateTo)
	}
	if f.GSTRate != nil {
		conds = append(conds, "gst_rate = ?")
		args = append(args, *f.GSTRate)
	}
	if f.InvoiceNo != nil {
		conds = append(conds, "invoice_no LIKE ?")
		args = append(args, "%"+*f.InvoiceNo+"%")
	}
	if f.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, *f.Status)
	}
	return conds, args
}

// whereClause renders the condition list, empty when no filter is present.
func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}
