package reports

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/purchasebook/purchasebook/internal/db"
	"github.com/purchasebook/purchasebook/internal/purchases"
)

func strPtr(s string) *string { return &s }

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	pool, err := db.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })
	require.NoError(t, db.Migrate(ctx, pool))
	return pool
}

func seedSupplier(t *testing.T, pool *sql.DB, name string) int64 {
	t.Helper()
	res, err := pool.ExecContext(context.Background(),
		`INSERT INTO suppliers (name) VALUES (?)`, name)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func seedEntry(t *testing.T, pool *sql.DB, supplierID int64, date string, invoiceValue, sgst, cgst, igst float64, itemCount int) int64 {
	t.Helper()
	ctx := context.Background()
	res, err := pool.ExecContext(ctx,
		`INSERT INTO purchase_entries (supplier_id, invoice_no, date, gst_rate, basic_value, sgst, cgst, igst, invoice_value, tds_value, status)
		 VALUES (?, ?, ?, 18, ?, ?, ?, ?, ?, 0, 'draft')`,
		supplierID, "INV-"+date, date, invoiceValue, sgst, cgst, igst, invoiceValue)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	for i := 0; i < itemCount; i++ {
		_, err := pool.ExecContext(ctx,
			`INSERT INTO purchase_items (purchase_id, description, qty, price, amount)
			 VALUES (?, 'part', 1, 1, 1)`, id)
		require.NoError(t, err)
	}
	return id
}

func TestSummaryEmptyWindowIsAllZeros(t *testing.T) {
	pool := newTestDB(t)
	svc := NewService(NewRepository(pool))

	summary, err := svc.Summary(context.Background(), DateRange{
		From: strPtr("2030-01-01"),
		To:   strPtr("2030-12-31"),
	})
	require.NoError(t, err)
	require.Equal(t, ReportSummary{}, summary)
}

func TestSummaryAggregates(t *testing.T) {
	pool := newTestDB(t)
	svc := NewService(NewRepository(pool))
	acme := seedSupplier(t, pool, "Acme")
	globex := seedSupplier(t, pool, "Globex")

	seedEntry(t, pool, acme, "2024-01-10", 118, 9, 9, 0, 2)
	seedEntry(t, pool, acme, "2024-02-10", 236, 18, 18, 0, 1)
	seedEntry(t, pool, globex, "2024-03-10", 59, 0, 0, 9, 3)
	// outside the window
	seedEntry(t, pool, globex, "2023-12-31", 1000, 90, 90, 0, 5)

	summary, err := svc.Summary(context.Background(), DateRange{
		From: strPtr("2024-01-01"),
		To:   strPtr("2024-12-31"),
	})
	require.NoError(t, err)
	require.Equal(t, 413.0, summary.TotalPurchases)
	require.Equal(t, 63.0, summary.TotalGST)
	require.Equal(t, int64(2), summary.TotalSuppliers)
	require.Equal(t, int64(6), summary.TotalItems)
}

func TestSummaryOpenEndedRange(t *testing.T) {
	pool := newTestDB(t)
	svc := NewService(NewRepository(pool))
	acme := seedSupplier(t, pool, "Acme")

	seedEntry(t, pool, acme, "2024-01-10", 100, 0, 0, 0, 0)
	seedEntry(t, pool, acme, "2024-06-10", 200, 0, 0, 0, 0)

	// absent endpoints mean an unconstrained side
	summary, err := svc.Summary(context.Background(), DateRange{From: strPtr("2024-03-01")})
	require.NoError(t, err)
	require.Equal(t, 200.0, summary.TotalPurchases)

	summary, err = svc.Summary(context.Background(), DateRange{})
	require.NoError(t, err)
	require.Equal(t, 300.0, summary.TotalPurchases)
}

func TestBySupplierOrderAndTiebreak(t *testing.T) {
	pool := newTestDB(t)
	svc := NewService(NewRepository(pool))
	zeta := seedSupplier(t, pool, "Zeta")
	acme := seedSupplier(t, pool, "Acme")
	globex := seedSupplier(t, pool, "Globex")

	seedEntry(t, pool, acme, "2024-01-10", 100, 0, 0, 0, 0)
	seedEntry(t, pool, zeta, "2024-01-11", 100, 0, 0, 0, 0)
	seedEntry(t, pool, globex, "2024-01-12", 500, 0, 0, 0, 0)

	rows, err := svc.BySupplier(context.Background(), DateRange{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Globex", rows[0].SupplierName)
	// equal totals fall back to name ascending
	require.Equal(t, "Acme", rows[1].SupplierName)
	require.Equal(t, "Zeta", rows[2].SupplierName)
}

func TestBySupplierEmptyIsNotNull(t *testing.T) {
	pool := newTestDB(t)
	svc := NewService(NewRepository(pool))

	rows, err := svc.BySupplier(context.Background(), DateRange{})
	require.NoError(t, err)
	require.NotNil(t, rows)
	require.Empty(t, rows)
}

func TestExportCSV(t *testing.T) {
	pool := newTestDB(t)
	svc := NewService(NewRepository(pool))
	acme := seedSupplier(t, pool, "Acme")

	seedEntry(t, pool, acme, "2024-01-10", 118, 9, 9, 0, 0)
	seedEntry(t, pool, acme, "2024-03-10", 59, 0, 0, 9, 0)

	entries, err := svc.Export(context.Background(), DateRange{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "2024-03-10", entries[0].Date)

	var buf bytes.Buffer
	require.NoError(t, WriteEntriesCSV(&buf, entries))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "ID,Supplier ID,Invoice No"))
	require.Contains(t, lines[1], "59.00")
	require.Contains(t, lines[2], "118.00")
}

func TestWriteEntriesCSVHandlesNilNarration(t *testing.T) {
	var buf bytes.Buffer
	err := WriteEntriesCSV(&buf, []purchases.PurchaseEntry{{
		ID: 1, SupplierID: 1, InvoiceNo: "INV-1", Date: "2024-01-01",
		EntryDate: "2024-01-01 09:00:00", Status: "draft",
	}})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "INV-1")
}
