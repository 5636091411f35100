package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/orayew2002/loom-report/excel"
	"github.com/orayew2002/loom-report/marker"
)

func workbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	for row, v := range []string{"hit", "hit", "miss", "hit", "hit"} {
		require.NoError(t, f.SetCellStr("Sheet1", excel.CellName(row, 0), v))
		require.NoError(t, f.SetCellStr("Sheet1", excel.CellName(row, 1), v))
	}
	return f
}

func collect(t *testing.T, f *excelize.File, opts ...Option) []string {
	t.Helper()
	var cells []string
	r := marker.New()
	r.On(func(_ *excelize.File, _ string, row, col int, _ string) error {
		cells = append(cells, excel.CellName(row, col))
		return nil
	}, "hit")

	require.NoError(t, New(r, opts...).Process(f))
	return cells
}

func TestProcessWholeSheet(t *testing.T) {
	got := collect(t, workbook(t))
	assert.Equal(t, []string{"A1", "B1", "A2", "B2", "A4", "B4", "A5", "B5"}, got)
}

func TestProcessArea(t *testing.T) {
	got := collect(t, workbook(t), WithRows(2, 4), WithColumns("A", "A"))
	assert.Equal(t, []string{"A2", "A4"}, got)
}
