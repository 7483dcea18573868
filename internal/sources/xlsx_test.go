package sources_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tributary-data/tributary/internal/sources"
	pkgerrors "github.com/tributary-data/tributary/pkg/errors"
)

func writeTempXLSX(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}

	path := filepath.Join(t.TempDir(), "source.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestXLSXFetch(t *testing.T) {
	path := writeTempXLSX(t, [][]any{
		{"User_Id ", "NAME", "Gender", "DOB", "Email"},
		{"1", "Alice", "F", "2000-01-15", "a@x.com"},
		{"2", "Bob", "", "", "b@x.com"},
	})

	table, err := sources.NewXLSX("source-b", path).Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"User_Id ", "NAME", "Gender", "DOB", "Email"}, table.Columns())
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "Alice", table.Row(0).Get("NAME").Str())
	assert.True(t, table.Row(1).Get("Gender").IsNull())
}

func TestXLSXFetchNamedSheet(t *testing.T) {
	f := excelize.NewFile()
	_, err := f.NewSheet("Customers")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Customers", "A1", &[]any{"USER_ID", "NAME"}))
	require.NoError(t, f.SetSheetRow("Customers", "A2", &[]any{"1", "Alice"}))

	path := filepath.Join(t.TempDir(), "source.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := sources.NewXLSX("source-b", path).WithSheet("Customers").Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Alice", table.Row(0).Get("NAME").Str())
}

func TestXLSXFetchErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := sources.NewXLSX("source-b", filepath.Join(t.TempDir(), "missing.xlsx")).Fetch(context.Background())
		assert.True(t, pkgerrors.IsIngest(err))
	})

	t.Run("unknown sheet", func(t *testing.T) {
		path := writeTempXLSX(t, [][]any{{"USER_ID"}})
		_, err := sources.NewXLSX("source-b", path).WithSheet("Nope").Fetch(context.Background())
		assert.True(t, pkgerrors.IsIngest(err))
	})

	t.Run("empty sheet", func(t *testing.T) {
		path := writeTempXLSX(t, nil)
		_, err := sources.NewXLSX("source-b", path).Fetch(context.Background())
		assert.True(t, pkgerrors.IsIngest(err))
	})
}
