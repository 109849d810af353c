package purchases

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/purchasebook/purchasebook/internal/shared"
)

// Repository defines persistence operations for purchase entries and items.
type Repository interface {
	List(ctx context.Context, filters PurchaseFilters, p shared.Pagination) ([]PurchaseEntry, int64, error)
	Get(ctx context.Context, id int64) (PurchaseEntry, error)
	Create(ctx context.Context, req CreatePurchaseRequest, items []PurchaseItem) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]any, items []PurchaseItem, replaceItems bool) error
	Delete(ctx context.Context, id int64) (bool, error)
	ItemsByPurchase(ctx context.Context, purchaseID int64) ([]PurchaseItem, error)
	AddItem(ctx context.Context, item PurchaseItem) (int64, error)
	UpdateItem(ctx context.Context, id int64, updates map[string]any) error
}

type repository struct {
	db *sql.DB
}

// NewRepository constructs a SQLite-backed repository.
func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const entryColumns = `id, supplier_id, invoice_no, date, entry_date, gst_rate, basic_value, sgst, cgst, igst, invoice_value, tds_value, narration, status`

func scanEntry(row interface{ Scan(...any) error }) (PurchaseEntry, error) {
	var e PurchaseEntry
	err := row.Scan(&e.ID, &e.SupplierID, &e.InvoiceNo, &e.Date, &e.EntryDate,
		&e.GSTRate, &e.BasicValue, &e.SGST, &e.CGST, &e.IGST,
		&e.InvoiceValue, &e.TDSValue, &e.Narration, &e.Status)
	return e, err
}

// List returns one page of entries plus the total computed from the same
// predicate. Ordering is most-recent-first with id as the final tiebreak so
// pagination stays deterministic even when timestamps tie.
func (r *repository) List(ctx context.Context, filters PurchaseFilters, p shared.Pagination) ([]PurchaseEntry, int64, error) {
	conds, args := buildFilters(filters)
	where := whereClause(conds)

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM purchase_entries`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	selectSQL := `SELECT ` + entryColumns + ` FROM purchase_entries` + where +
		` ORDER BY entry_date DESC, date DESC, id DESC LIMIT ? OFFSET ?`
	selectArgs := append(append([]any{}, args...), p.PageSize, p.Offset())

	rows, err := r.db.QueryContext(ctx, selectSQL, selectArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []PurchaseEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (PurchaseEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM purchase_entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return PurchaseEntry{}, shared.ErrNotFound
	}
	return e, err
}

// Create inserts the entry and its items in one transaction. If any item
// insert fails the parent is rolled back too; a partial item set is never
// observable. Items must arrive with amounts already resolved.
func (r *repository) Create(ctx context.Context, req CreatePurchaseRequest, items []PurchaseItem) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO purchase_entries (supplier_id, invoice_no, date, entry_date, gst_rate, basic_value, sgst, cgst, igst, invoice_value, tds_value, narration, status)
		 VALUES (?, ?, ?, COALESCE(?, datetime('now')), ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.SupplierID, req.InvoiceNo, req.Date, req.EntryDate,
		req.GSTRate, req.BasicValue, req.SGST, req.CGST, req.IGST,
		req.InvoiceValue, req.TDSValue, req.Narration, req.Status)
	if err != nil {
		return 0, mapConstraint(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := insertItems(ctx, tx, id, items); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// Update applies a sparse column update and, when replaceItems is set,
// deletes the existing item set and inserts the supplied one — an empty list
// legitimately clears all items. Both happen in one transaction.
func (r *repository) Update(ctx context.Context, id int64, updates map[string]any, items []PurchaseItem, replaceItems bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if len(updates) > 0 {
		cols := make([]string, 0, len(updates))
		for col := range updates {
			cols = append(cols, col)
		}
		sort.Strings(cols)

		var set strings.Builder
		args := make([]any, 0, len(updates)+1)
		for i, col := range cols {
			if i > 0 {
				set.WriteString(", ")
			}
			set.WriteString(col + " = ?")
			args = append(args, updates[col])
		}
		args = append(args, id)

		res, err := tx.ExecContext(ctx,
			`UPDATE purchase_entries SET `+set.String()+` WHERE id = ?`, args...)
		if err != nil {
			return mapConstraint(err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return shared.ErrNotFound
		}
	} else {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM purchase_entries WHERE id = ?`, id).Scan(&exists)
		if err != nil {
			return err
		}
		if exists == 0 {
			return shared.ErrNotFound
		}
	}

	if replaceItems {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM purchase_items WHERE purchase_id = ?`, id); err != nil {
			return err
		}
		if err := insertItems(ctx, tx, id, items); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertItems(ctx context.Context, tx *sql.Tx, purchaseID int64, items []PurchaseItem) error {
	for _, it := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO purchase_items (purchase_id, part_no, description, qty, unit, price, amount)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			purchaseID, it.PartNo, it.Description, it.Qty, it.Unit, it.Price, it.Amount); err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM purchase_entries WHERE id = ?`, id)
	if err != nil {
		return false, mapConstraint(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) ItemsByPurchase(ctx context.Context, purchaseID int64) ([]PurchaseItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, purchase_id, part_no, description, qty, unit, price, amount
		 FROM purchase_items WHERE purchase_id = ? ORDER BY id ASC`, purchaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []PurchaseItem
	for rows.Next() {
		var it PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.PartNo, &it.Description,
			&it.Qty, &it.Unit, &it.Price, &it.Amount); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// AddItem inserts a single line item directly against the item table, outside
// any entry-level transaction.
func (r *repository) AddItem(ctx context.Context, item PurchaseItem) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO purchase_items (purchase_id, part_no, description, qty, unit, price, amount)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.PurchaseID, item.PartNo, item.Description, item.Qty, item.Unit, item.Price, item.Amount)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

// UpdateItem applies a sparse column update to one line item.
func (r *repository) UpdateItem(ctx context.Context, id int64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	cols := make([]string, 0, len(updates))
	for col := range updates {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	var set strings.Builder
	args := make([]any, 0, len(updates)+1)
	for i, col := range cols {
		if i > 0 {
			set.WriteString(", ")
		}
		set.WriteString(col + " = ?")
		args = append(args, updates[col])
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		`UPDATE purchase_items SET `+set.String()+` WHERE id = ?`, args...)
	if err != nil {
		return mapConstraint(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func mapConstraint(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		if sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
			return shared.Wrap(shared.KindConflict, err, "referenced record does not exist or is still in use")
		}
		return shared.Wrap(shared.KindConflict, err, "constraint violation")
	}
	return fmt.Errorf("purchases: %w", err)
}
