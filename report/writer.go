// Package report renders merged blocks into the styled daily production
// workbook.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/orayew2002/loom-report/config"
	"github.com/orayew2002/loom-report/domain"
	"github.com/orayew2002/loom-report/excel"
	"github.com/xuri/excelize/v2"
)

// Options controls one report.
type Options struct {
	SheetName     string
	Layout        config.Layout
	Location      *time.Location
	RunTime       time.Time
	HasSupplement bool
}

// PassError reports a failed post-processing pass. The bytes returned with
// it are the complete output of the passes before.
type PassError struct {
	Pass string
	Err  error
}

func (e *PassError) Error() string { return e.Pass + " pass: " + e.Err.Error() }

func (e *PassError) Unwrap() error { return e.Err }

// Writer builds report workbooks.
type Writer struct {
	opts Options
}

// New returns a Writer.
func New(opts Options) *Writer {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.SheetName == "" {
		opts.SheetName = "Sheet1"
	}
	return &Writer{opts: opts}
}

// Write renders primary and the optional extra block. Passes 2 and 3 fail
// independently: their errors come back as *PassError (joined when both
// fail) together with usable bytes. Any other error comes back with none.
func (w *Writer) Write(primary, extra *domain.Block) ([]byte, error) {
	// Pass 1: header, data rows, column formats.
	data, err := w.dataPass(primary, extra)
	if err != nil {
		return nil, fmt.Errorf("data pass: %w", err)
	}

	var errs []error

	// Pass 2: borders, stripes and summary panels.
	if next, err := w.summaryPass(data, extra.Len()); err != nil {
		errs = append(errs, &PassError{Pass: "summary", Err: err})
	} else {
		data = next
	}

	// Pass 3: per size code totals.
	if next, err := w.codePass(data, primary.Len(), extra.Len()); err != nil {
		errs = append(errs, &PassError{Pass: "size code", Err: err})
	} else {
		data = next
	}

	return data, errors.Join(errs...)
}

// FileName is the output name for a report generated at at.
func FileName(prefix string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s.xlsx", prefix, thaiDate(at), at.Format("150405"))
}

// thaiDate renders dd-mm-yyyy with a Buddhist-era year.
func thaiDate(t time.Time) string {
	return fmt.Sprintf("%02d-%02d-%d", t.Day(), int(t.Month()), t.Year()+543)
}

func (w *Writer) lastColumn() string {
	return excel.IndexToColumn(int(domain.ColumnCount) - 1)
}

// extraRange returns the first and last sheet rows of an extra block of n rows.
func (w *Writer) extraRange(n int) (int, int) {
	first := w.opts.Layout.ExtraDataStartRow
	return first, first + n - 1
}

func (w *Writer) dataPass(primary, extra *domain.Block) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := w.opts.SheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	sm := NewStyleManager(f)
	colStyles, err := w.columnStyles(sm)
	if err != nil {
		return nil, fmt.Errorf("column styles: %w", err)
	}

	if err := writeHeader(f, sm, sheet, 1); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := writeBlock(f, sheet, primary, 2, colStyles); err != nil {
		return nil, fmt.Errorf("write primary block: %w", err)
	}

	if !extra.Empty() {
		if err := writeHeader(f, sm, sheet, w.opts.Layout.ExtraHeaderRow); err != nil {
			return nil, fmt.Errorf("write extra header: %w", err)
		}
		if err := writeBlock(f, sheet, extra, w.opts.Layout.ExtraDataStartRow, colStyles); err != nil {
			return nil, fmt.Errorf("write extra block: %w", err)
		}
	}

	if err := setWidths(f, sheet, ColumnWidths(primary, extra)); err != nil {
		return nil, fmt.Errorf("set widths: %w", err)
	}

	filter := excel.Range("A1", excel.Ref(w.lastColumn(), w.opts.Layout.PrimaryLastRow))
	if err := f.AutoFilter(sheet, filter, nil); err != nil {
		return nil, fmt.Errorf("auto filter: %w", err)
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze panes: %w", err)
	}

	return toBytes(f)
}

// columnStyles picks the data style of every column.
func (w *Writer) columnStyles(sm *StyleManager) ([domain.ColumnCount]int, error) {
	var styles [domain.ColumnCount]int

	for c := range domain.ColumnCount {
		var (
			id  int
			err error
		)
		switch {
		case c == domain.ColSupplementA && w.opts.HasSupplement:
			id, err = sm.Number(fontBlue)
		case c == domain.ColSupplementB && w.opts.HasSupplement:
			id, err = sm.Number(fontRed)
		case c.Spec().Numeric:
			id, err = sm.Number("")
		default:
			id, err = sm.Text()
		}
		if err != nil {
			return styles, err
		}
		styles[c] = id
	}

	return styles, nil
}

func writeHeader(f *excelize.File, sm *StyleManager, sheet string, row int) error {
	style, err := sm.Header()
	if err != nil {
		return err
	}

	for col, label := range domain.HeaderLabels() {
		cell := excel.CellName(row-1, col)
		if err := f.SetCellStr(sheet, cell, label); err != nil {
			return err
		}
	}

	from, to := excel.CellName(row-1, 0), excel.CellName(row-1, int(domain.ColumnCount)-1)
	return f.SetCellStyle(sheet, from, to, style)
}

// writeBlock writes rows starting at sheet row first.
func writeBlock(f *excelize.File, sheet string, b *domain.Block, first int, styles [domain.ColumnCount]int) error {
	if b.Empty() {
		return nil
	}

	for i := range b.Rows {
		row := first + i
		for c := range domain.ColumnCount {
			cell := excel.CellName(row-1, int(c))
			if err := writeValue(f, sheet, cell, b.Rows[i].Get(c)); err != nil {
				return fmt.Errorf("%s %s: %w", b.Rows[i].Machine(), cell, err)
			}
		}
	}

	last := first + len(b.Rows) - 1
	for c := range domain.ColumnCount {
		from, to := excel.CellName(first-1, int(c)), excel.CellName(last-1, int(c))
		if err := f.SetCellStyle(sheet, from, to, styles[c]); err != nil {
			return fmt.Errorf("style %s:%s: %w", from, to, err)
		}
	}

	return nil
}

func writeValue(f *excelize.File, sheet, cell string, v domain.Value) error {
	switch v.Kind {
	case domain.KindText:
		return f.SetCellStr(sheet, cell, v.Text)
	case domain.KindNumber:
		return f.SetCellFloat(sheet, cell, v.Number.InexactFloat64(), -1, 64)
	case domain.KindFormula:
		return f.SetCellFormula(sheet, cell, v.Text)
	default:
		return nil
	}
}

func setWidths(f *excelize.File, sheet string, widths [domain.ColumnCount]float64) error {
	for c, w := range widths {
		name := excel.IndexToColumn(c)
		if err := f.SetColWidth(sheet, name, name, w); err != nil {
			return err
		}
	}
	return nil
}

func toBytes(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

func open(data []byte) (*excelize.File, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open from bytes: %w", err)
	}
	return f, nil
}
