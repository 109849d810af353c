package suppliers

import (
	"context"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/purchasebook/purchasebook/internal/shared"
)

const importSheet = "Sheet1"

// templateHeaders is the fixed column order used by both import and the
// generated template. Columns are mapped positionally, not by header name.
var templateHeaders = []string{"Name", "GST No", "State Code", "TDS Flag", "TDS Rate", "Contact", "Email"}

// ImportFromWorkbook reads supplier rows from the workbook at path. The first
// row is the header and is skipped; rows with an empty name cell are skipped
// without counting. Every surviving row goes through the same creation path
// as a manual add, so the first failing row aborts the import.
func (s *Service) ImportFromWorkbook(ctx context.Context, path string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, shared.Wrap(shared.KindIO, err, "open workbook")
	}
	defer f.Close()

	rows, err := f.GetRows(importSheet)
	if err != nil {
		return 0, shared.Wrap(shared.KindIO, err, importSheet+" not found")
	}

	count := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		name := cellAt(row, 0)
		if name == "" {
			continue
		}

		req := CreateSupplierRequest{
			Name:      name,
			GSTNo:     optionalCell(row, 1),
			StateCode: optionalCell(row, 2),
			TDSFlag:   parseBoolCell(cellAt(row, 3)),
			TDSRate:   parseFloatCell(cellAt(row, 4)),
			Contact:   optionalCell(row, 5),
			Email:     optionalCell(row, 6),
		}
		if _, err := s.Create(ctx, req); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// WriteTemplate writes a header-only workbook to path. It is a template
// generator, not a data export.
func WriteTemplate(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, header := range templateHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return shared.Wrap(shared.KindIO, err, "build template")
		}
		if err := f.SetCellValue(importSheet, cell, header); err != nil {
			return shared.Wrap(shared.KindIO, err, "build template")
		}
	}
	if err := f.SaveAs(path); err != nil {
		return shared.Wrap(shared.KindIO, err, "save template")
	}
	return nil
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func optionalCell(row []string, idx int) *string {
	v := cellAt(row, idx)
	if v == "" {
		return nil
	}
	return &v
}

func parseBoolCell(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}

func parseFloatCell(v string) *float64 {
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}
