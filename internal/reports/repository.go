package reports

import (
	"context"
	"database/sql"
	"strings"

	"github.com/purchasebook/purchasebook/internal/purchases"
)

// Repository runs the aggregate queries behind the dashboard reports.
type Repository interface {
	TotalInvoiceValue(ctx context.Context, r DateRange) (float64, error)
	TotalGST(ctx context.Context, r DateRange) (float64, error)
	DistinctSuppliers(ctx context.Context, r DateRange) (int64, error)
	ItemCount(ctx context.Context, r DateRange) (int64, error)
	BySupplier(ctx context.Context, r DateRange) ([]PurchasesBySupplier, error)
	EntriesInRange(ctx context.Context, r DateRange) ([]purchases.PurchaseEntry, error)
}

type repository struct {
	db *sql.DB
}

// NewRepository constructs a SQLite-backed repository.
func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// rangeClause renders the inclusive window against the given date column.
// Both endpoints are included; a nil endpoint emits no condition.
func rangeClause(column string, r DateRange) (string, []any) {
	var conds []string
	var args []any
	if r.From != nil {
		conds = append(conds, column+" >= ?")
		args = append(args, *r.From)
	}
	if r.To != nil {
		conds = append(conds, column+" <= ?")
		args = append(args, *r.To)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (repo *repository) TotalInvoiceValue(ctx context.Context, r DateRange) (float64, error) {
	where, args := rangeClause("date", r)
	var total float64
	err := repo.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(invoice_value), 0) FROM purchase_entries`+where, args...).Scan(&total)
	return total, err
}

func (repo *repository) TotalGST(ctx context.Context, r DateRange) (float64, error) {
	where, args := rangeClause("date", r)
	var total float64
	err := repo.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(sgst + cgst + igst), 0) FROM purchase_entries`+where, args...).Scan(&total)
	return total, err
}

func (repo *repository) DistinctSuppliers(ctx context.Context, r DateRange) (int64, error) {
	where, args := rangeClause("date", r)
	var count int64
	err := repo.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT supplier_id) FROM purchase_entries`+where, args...).Scan(&count)
	return count, err
}

// ItemCount counts items belonging to entries in range. Items carry no date
// of their own, so the window applies through the parent entry.
func (repo *repository) ItemCount(ctx context.Context, r DateRange) (int64, error) {
	where, args := rangeClause("date", r)
	var count int64
	err := repo.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM purchase_items
		 WHERE purchase_id IN (SELECT id FROM purchase_entries`+where+`)`, args...).Scan(&count)
	return count, err
}

func (repo *repository) BySupplier(ctx context.Context, r DateRange) ([]PurchasesBySupplier, error) {
	where, args := rangeClause("pe.date", r)
	rows, err := repo.db.QueryContext(ctx,
		`SELECT s.name AS supplier_name, SUM(pe.invoice_value) AS total_purchases
		 FROM purchase_entries pe
		 JOIN suppliers s ON pe.supplier_id = s.id`+where+`
		 GROUP BY s.name
		 ORDER BY total_purchases DESC, s.name ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PurchasesBySupplier
	for rows.Next() {
		var row PurchasesBySupplier
		if err := rows.Scan(&row.SupplierName, &row.TotalPurchases); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (repo *repository) EntriesInRange(ctx context.Context, r DateRange) ([]purchases.PurchaseEntry, error) {
	where, args := rangeClause("date", r)
	rows, err := repo.db.QueryContext(ctx,
		`SELECT id, supplier_id, invoice_no, date, entry_date, gst_rate, basic_value, sgst, cgst, igst, invoice_value, tds_value, narration, status
		 FROM purchase_entries`+where+` ORDER BY date DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []purchases.PurchaseEntry
	for rows.Next() {
		var e purchases.PurchaseEntry
		if err := rows.Scan(&e.ID, &e.SupplierID, &e.InvoiceNo, &e.Date, &e.EntryDate,
			&e.GSTRate, &e.BasicValue, &e.SGST, &e.CGST, &e.IGST,
			&e.InvoiceValue, &e.TDSValue, &e.Narration, &e.Status); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
