package purchases

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string   { return &s }
func i64Ptr(v int64) *int64     { return &v }
func f64Ptr(v float64) *float64 { return &v }

func TestBuildFiltersEmpty(t *testing.T) {
	conds, args := buildFilters(PurchaseFilters{})
	require.Empty(t, conds)
	require.Empty(t, args)
	require.Equal(t, "", whereClause(conds))
}

func TestBuildFiltersSingle(t *testing.T) {
	conds, args := buildFilters(PurchaseFilters{SupplierID: i64Ptr(7)})
	require.Equal(t, []string{"supplier_id = ?"}, conds)
	require.Equal(t, []any{int64(7)}, args)
	require.Equal(t, " WHERE supplier_id = ?", whereClause(conds))
}

func TestBuildFiltersAll(t *testing.T) {
	f := PurchaseFilters{
		SupplierID: i64Ptr(3),
		DateFrom:   strPtr("2024-01-01"),
		DateTo:     strPtr("2024-12-31"),
		GSTRate:    f64Ptr(18),
		InvoiceNo:  strPtr("INV"),
		Status:     strPtr("posted"),
	}
	conds, args := buildFilters(f)
	require.Len(t, conds, 6)
	require.Len(t, args, 6)
	require.Equal(t,
		" WHERE supplier_id = ? AND date >= ? AND date <= ? AND gst_rate = ? AND invoice_no LIKE ? AND status = ?",
		whereClause(conds))
	// substring match binds wildcards, never raw text in the SQL
	require.Equal(t, "%INV%", args[4])
}

func TestBuildFiltersAbsentMeansNoConstraint(t *testing.T) {
	// an empty-but-present status still constrains; an absent one does not
	conds, _ := buildFilters(PurchaseFilters{Status: strPtr("")})
	require.Equal(t, []string{"status = ?"}, conds)

	conds, _ = buildFilters(PurchaseFilters{})
	require.Empty(t, conds)
}
