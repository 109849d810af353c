package suppliers

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

// Repository defines persistence operations for the suppliers module.
type Repository interface {
	List(ctx context.Context, filters ListFilters, p shared.Pagination) ([]Supplier, int64, error)
	Get(ctx context.Context, id int64) (Supplier, error)
	Create(ctx context.Context, s Supplier) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type repository struct {
	db *sql.DB
}

// NewRepository constructs a SQLite-backed repository.
func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const supplierColumns = `id, name, gst_no, state_code, tds_flag, tds_rate, contact, email`

func scanSupplier(row interface{ Scan(...any) error }) (Supplier, error) {
	var s Supplier
	var tdsFlag int64
	err := row.Scan(&s.ID, &s.Name, &s.GSTNo, &s.StateCode, &tdsFlag, &s.TDSRate, &s.Contact, &s.Email)
	if err != nil {
		return Supplier{}, err
	}
	s.TDSFlag = tdsFlag != 0
	return s, nil
}

// List returns one page of suppliers plus the total matching the same name
// predicate, ordered by name.
func (r *repository) List(ctx context.Context, filters ListFilters, p shared.Pagination) ([]Supplier, int64, error) {
	like := "%"
	if filters.Name != "" {
		like = "%" + filters.Name + "%"
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM suppliers WHERE name LIKE ?`, like).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE name LIKE ? ORDER BY name ASC LIMIT ? OFFSET ?`,
		like, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var suppliers []Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, 0, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Supplier, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE id = ?`, id)
	s, err := scanSupplier(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Supplier{}, shared.ErrNotFound
	}
	return s, err
}

func (r *repository) Create(ctx context.Context, s Supplier) (int64, error) {
	tdsFlag := int64(0)
	if s.TDSFlag {
		tdsFlag = 1
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO suppliers (name, gst_no, state_code, tds_flag, tds_rate, contact, email)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.Name, s.GSTNo, s.StateCode, tdsFlag, s.TDSRate, s.Contact, s.Email)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

// Update applies a sparse column update. Keys are iterated in sorted order so
// the generated SQL is deterministic.
func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
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
		`UPDATE suppliers SET `+set.String()+` WHERE id = ?`, args...)
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

func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = ?`, id)
	if err != nil {
		return false, mapConstraint(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// mapConstraint translates SQLite constraint violations into kinded errors so
// callers surface them as conflicts instead of opaque storage failures.
func mapConstraint(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintForeignKey:
			return shared.Wrap(shared.KindConflict, err, "record is referenced by other rows")
		case sqlite3.ErrConstraintUnique:
			return shared.Wrap(shared.KindConflict, err, "duplicate value")
		}
		return shared.Wrap(shared.KindConflict, err, "constraint violation")
	}
	return fmt.Errorf("suppliers: %w", err)
}
