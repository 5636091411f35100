package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/orayew2002/loom-report/config"
	"github.com/orayew2002/loom-report/domain"
	"github.com/orayew2002/loom-report/formula"
)

const sheet = "รายงานรวม"

func newWriter(supplement bool) *Writer {
	cfg := config.Default()
	return New(Options{
		SheetName:     sheet,
		Layout:        cfg.Layout,
		Location:      cfg.Location(),
		RunTime:       time.Date(2025, time.February, 1, 3, 0, 0, 0, time.UTC),
		HasSupplement: supplement,
	})
}

func block(first int, machines ...string) domain.Block {
	var b domain.Block
	for i, m := range machines {
		r := domain.NewRow(m)
		r.Set(domain.ColSizeCode, domain.Text([]string{"1825800", "2325650"}[i%2]))
		r.Set(domain.ColCutLengthA, domain.Number(decimal.NewFromInt(int64(100+i))))
		r.Set(domain.ColSupplementA, domain.Number(decimal.NewFromInt(5)))
		b.Rows = append(b.Rows, r)
	}
	formula.Inject(&b, first)
	return b
}

func openReport(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, ref string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, ref)
	require.NoError(t, err)
	return v
}

func formulaAt(t *testing.T, f *excelize.File, ref string) string {
	t.Helper()
	v, err := f.GetCellFormula(sheet, ref)
	require.NoError(t, err)
	return v
}

func TestWriteRoundTrip(t *testing.T) {
	primary := block(2, "CL1", "CL2", "CL3")
	data, err := newWriter(false).Write(&primary, nil)
	require.NoError(t, err)

	f := openReport(t, data)
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)

	assert.Equal(t, domain.HeaderLabels(), rows[0])
	assert.Equal(t, "ความยาวตัดม้วน กะ A", rows[0][domain.ColCutLengthA])
	assert.Equal(t, "ความยาวตัดม้วน กะ A", rows[0][domain.ColSupplementA])
	assert.Equal(t, "ความยาวตัดม้วน กะ B", rows[0][domain.ColSupplementB])

	for i, m := range []string{"CL1", "CL2", "CL3"} {
		assert.Equal(t, m, rows[i+1][0])
	}
	assert.Equal(t, "101", cell(t, f, "Q3"))
	assert.True(t, strings.HasPrefix(formulaAt(t, f, "G2"), "MAX(0, IF(M2>N2"))
	assert.Contains(t, formulaAt(t, f, "AB4"), "*H4")
}

func TestWriteSummaryPanels(t *testing.T) {
	primary := block(2, "CL1")
	data, err := newWriter(false).Write(&primary, nil)
	require.NoError(t, err)

	f := openReport(t, data)
	assert.Equal(t, "สรุปยอดผลิตประจำวันที่ (01-02-2568)", cell(t, f, "A88"))
	assert.Equal(t, "ยอดทอกะ A ทั้งหมด", cell(t, f, "A91"))
	assert.Equal(t, "ยอดตัดม้วนกะ B ทั้งหมด", cell(t, f, "B97"))
	assert.Equal(t, "SUBTOTAL(109,G2:G83)", formulaAt(t, f, "A93"))
	assert.Equal(t, "SUBTOTAL(109,R2:R83)", formulaAt(t, f, "B99"))
	assert.Equal(t, "SUBTOTAL(109,Y2:Y83)", formulaAt(t, f, "A103"))
	assert.Equal(t, "A93+B93", formulaAt(t, f, "A94"))
	assert.Equal(t, "A103+B103", formulaAt(t, f, "A104"))

	merged, err := f.GetMergeCells(sheet)
	require.NoError(t, err)
	var refs []string
	for _, m := range merged {
		refs = append(refs, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	assert.Contains(t, refs, "A88:B88")
	assert.Contains(t, refs, "A94:B94")
	assert.Contains(t, refs, "A100:B100")

	assert.Empty(t, cell(t, f, "I91"), "no cut panels without an extra block")
}

func TestWriteExtraBlockPanels(t *testing.T) {
	primary := block(2, "CL1")
	extra := block(110, "CL1 ตัดม้วนครั้งที่ 2", "CL1 ตัดม้วนครั้งที่ 2", "CL4 ตัดม้วนครั้งที่ 2")
	data, err := newWriter(false).Write(&primary, &extra)
	require.NoError(t, err)

	f := openReport(t, data)
	assert.Equal(t, domain.ColMachine.DisplayLabel(), cell(t, f, "A109"))
	assert.Equal(t, "CL4 ตัดม้วนครั้งที่ 2", cell(t, f, "A112"))

	assert.Equal(t, "ยอดทอกะ A (ตัดครั้ง 2)", cell(t, f, "I91"))
	assert.Equal(t, "SUM(G110,G111,G112)", formulaAt(t, f, "I93"))
	assert.Equal(t, "SUM(R110,R111,R112)", formulaAt(t, f, "J99"))
	assert.Equal(t, "I93+J93", formulaAt(t, f, "I94"))

	assert.Equal(t, "ยอดทอกะ B (ตัดครั้ง 3)", cell(t, f, "M91"))
	assert.Equal(t, "0", cell(t, f, "L93"))
	assert.Empty(t, formulaAt(t, f, "L93"))
}

func TestWriteSizeCodeTable(t *testing.T) {
	primary := block(2, "CL1", "CL2", "CL3")
	data, err := newWriter(false).Write(&primary, nil)
	require.NoError(t, err)

	f := openReport(t, data)
	assert.Equal(t, "สรุปผลผลิตตามรหัสผ้า", cell(t, f, "A149"))
	assert.Equal(t, "1825800", cell(t, f, "A150"))
	assert.Equal(t, "2325650", cell(t, f, "A151"))
	assert.Empty(t, cell(t, f, "A152"))
	assert.Equal(t,
		"SUMIF($D$2:$D$4, $A$150, $G$2:$G$4) + SUMIF($D$2:$D$4, $A$150, $H$2:$H$4)",
		formulaAt(t, f, "B150"),
	)
	assert.Equal(t,
		"SUMIF($D$2:$D$4, $A$151, $Q$2:$Q$4) + SUMIF($D$2:$D$4, $A$151, $R$2:$R$4)",
		formulaAt(t, f, "C151"),
	)
}

func TestCodeTableClearsLongExtraBlock(t *testing.T) {
	w := newWriter(false)
	machines := len(config.Default().MachineOrder)
	assert.Equal(t, 150, w.codeTableStart(w.lastDataRow(machines, 0)))
	assert.Equal(t, 112, w.lastDataRow(machines, 3))
	assert.Equal(t, 150, w.codeTableStart(w.lastDataRow(machines, 3)))
	assert.Equal(t, 152, w.codeTableStart(w.lastDataRow(machines, 40)))
}

func TestWriteKeepsCodeTableWhenSummaryFails(t *testing.T) {
	cfg := config.Default()
	lay := cfg.Layout
	lay.SummaryTitleRow = excelize.TotalRows + 1

	w := New(Options{SheetName: sheet, Layout: lay, Location: cfg.Location(), RunTime: time.Now()})
	primary := block(2, "CL1", "CL2")
	data, err := w.Write(&primary, nil)

	var pe *PassError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "summary", pe.Pass)

	f := openReport(t, data)
	assert.Equal(t, "CL1", cell(t, f, "A2"))
	assert.Equal(t, "1825800", cell(t, f, "A150"))
	assert.Equal(t, "2325650", cell(t, f, "A151"))
}

func TestSupplementColumnsTinted(t *testing.T) {
	primary := block(2, "CL1")
	data, err := newWriter(true).Write(&primary, nil)
	require.NoError(t, err)

	f := openReport(t, data)
	for ref, color := range map[string]string{"Y2": fontBlue, "Z2": fontRed} {
		id, err := f.GetCellStyle(sheet, ref)
		require.NoError(t, err)
		st, err := f.GetStyle(id)
		require.NoError(t, err)
		require.NotNil(t, st.Font, ref)
		assert.Contains(t, strings.ToUpper(st.Font.Color), color, ref)
		assert.Len(t, st.Border, 4, ref)
	}
}

func TestColumnWidths(t *testing.T) {
	assert.InDelta(t, 2.0, DisplayWidth("ab"), 1e-9)
	assert.InDelta(t, 2.3, DisplayWidth("กข"), 1e-9)

	long := domain.NewRow(strings.Repeat("x", 100))
	b := domain.Block{Rows: []domain.Row{long}}
	formula.Inject(&b, 2)

	w := ColumnWidths(&b)
	assert.InDelta(t, maxWidth, w[domain.ColMachine], 1e-9)
	assert.InDelta(t, 12.0, w[domain.ColLotNo], 1e-9)
	assert.InDelta(t, 14.0, w[domain.ColOutputA], 1e-9)
}

func TestFileName(t *testing.T) {
	at := time.Date(2025, time.February, 1, 14, 5, 9, 0, time.UTC)
	assert.Equal(t, "รายงานสรุปผลผลิตรายเครื่อง_01-02-2568_140509.xlsx", FileName("รายงานสรุปผลผลิตรายเครื่อง", at))
}
