package suppliers

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/purchasebook/purchasebook/internal/shared"
)

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(importSheet, cell, v))
		}
	}
	path := filepath.Join(t.TempDir(), "suppliers.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportFromWorkbook(t *testing.T) {
	svc := NewService(NewRepository(newTestDB(t)))
	ctx := context.Background()

	path := writeWorkbook(t, [][]any{
		{"Name", "GST No", "State Code", "TDS Flag", "TDS Rate", "Contact", "Email"},
		{"Acme", "GST-1", "29", "true", "2", "9999", "acme@example.com"},
		{"", "GST-2", "27"}, // blank name, skipped
		{"Globex"},
	})

	count, err := svc.ImportFromWorkbook(ctx, path)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	page, err := svc.List(ctx, ListFilters{})
	require.NoError(t, err)
	require.Equal(t, int64(2), page.Total)

	acme, err := svc.List(ctx, ListFilters{Name: "Acme"})
	require.NoError(t, err)
	require.Len(t, acme.Data, 1)
	require.True(t, acme.Data[0].TDSFlag)
	require.Equal(t, 2.0, *acme.Data[0].TDSRate)
	require.Equal(t, "acme@example.com", *acme.Data[0].Email)

	globex, err := svc.List(ctx, ListFilters{Name: "Globex"})
	require.NoError(t, err)
	require.Len(t, globex.Data, 1)
	require.False(t, globex.Data[0].TDSFlag)
	require.Nil(t, globex.Data[0].GSTNo)
}

// failAfterRepo delegates to a real repository but fails every create after
// the first, to observe where the import stops.
type failAfterRepo struct {
	Repository
	creates int
}

func (r *failAfterRepo) Create(ctx context.Context, s Supplier) (int64, error) {
	r.creates++
	if r.creates > 1 {
		return 0, shared.E(shared.KindStorage, "disk full")
	}
	return r.Repository.Create(ctx, s)
}

func TestImportAbortsOnFirstFailure(t *testing.T) {
	repo := &failAfterRepo{Repository: NewRepository(newTestDB(t))}
	svc := NewService(repo)
	ctx := context.Background()

	path := writeWorkbook(t, [][]any{
		{"Name"},
		{"Acme"},
		{"Globex"},
		{"Initech"},
	})

	count, err := svc.ImportFromWorkbook(ctx, path)
	require.Error(t, err)
	require.Equal(t, 1, count)
	// the third row is never attempted
	require.Equal(t, 2, repo.creates)
}

func TestImportMissingFileIsIOError(t *testing.T) {
	svc := NewService(NewRepository(newTestDB(t)))

	_, err := svc.ImportFromWorkbook(context.Background(), filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)
	require.Equal(t, shared.KindIO, shared.KindOf(err))
}

func TestWriteTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")
	require.NoError(t, WriteTemplate(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(importSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, templateHeaders, rows[0])
}

func TestParseBoolCell(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "1", "yes", "Y"} {
		require.True(t, parseBoolCell(v), v)
	}
	for _, v := range []string{"", "false", "0", "no", "maybe"} {
		require.False(t, parseBoolCell(v), v)
	}
}
