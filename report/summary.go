package report

import (
	"fmt"
	"strings"

	"github.com/orayew2002/loom-report/domain"
	"github.com/orayew2002/loom-report/excel"
	"github.com/orayew2002/loom-report/marker"
	"github.com/orayew2002/loom-report/merge"
	"github.com/orayew2002/loom-report/processor"
	"github.com/xuri/excelize/v2"
)

// panel is a two-column summary box: captions, two values and their merged sum.
type panel struct {
	left, right string
	labelRow    int
	valueRow    int
	labels      [2]string
	values      [2]string
	color       [2]string
	sumColor    string
}

func (w *Writer) summaryPass(data []byte, extraLen int) ([]byte, error) {
	f, err := open(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := w.opts.SheetName
	sm := NewStyleManager(f)
	lay := w.opts.Layout

	if err := stripe(f, sm, sheet, 2, lay.PrimaryLastRow, w.lastColumn()); err != nil {
		return nil, fmt.Errorf("primary borders: %w", err)
	}

	if err := w.writeTitle(f, sm, sheet); err != nil {
		return nil, fmt.Errorf("summary title: %w", err)
	}

	for _, p := range w.totalPanels() {
		if err := writePanel(f, sm, sheet, p); err != nil {
			return nil, fmt.Errorf("panel %s%d: %w", p.left, p.labelRow, err)
		}
	}

	if extraLen > 0 {
		first, last := w.extraRange(extraLen)
		if err := stripe(f, sm, sheet, first, last, w.lastColumn()); err != nil {
			return nil, fmt.Errorf("extra borders: %w", err)
		}

		rows, err := scanCutRows(f, first, last)
		if err != nil {
			return nil, fmt.Errorf("scan cut rows: %w", err)
		}
		for _, p := range w.cutPanels(rows) {
			if err := writePanel(f, sm, sheet, p); err != nil {
				return nil, fmt.Errorf("panel %s%d: %w", p.left, p.labelRow, err)
			}
		}
	}

	return toBytes(f)
}

// stripe borders every cell in rows first..last and shades even rows.
func stripe(f *excelize.File, sm *StyleManager, sheet string, first, last int, lastCol string) error {
	cols := excel.ColumnToIndex(lastCol)
	for row := first; row <= last; row++ {
		for col := 0; col <= cols; col++ {
			cell := excel.CellName(row-1, col)
			base, err := f.GetCellStyle(sheet, cell)
			if err != nil {
				return fmt.Errorf("%s: %w", cell, err)
			}
			id, err := sm.Bordered(base, row%2 == 0)
			if err != nil {
				return fmt.Errorf("%s: %w", cell, err)
			}
			if err := f.SetCellStyle(sheet, cell, cell, id); err != nil {
				return fmt.Errorf("%s: %w", cell, err)
			}
		}
	}
	return nil
}

func (w *Writer) writeTitle(f *excelize.File, sm *StyleManager, sheet string) error {
	row := w.opts.Layout.SummaryTitleRow
	from, to := excel.Ref("A", row), excel.Ref("B", row)

	style, err := sm.Title()
	if err != nil {
		return err
	}
	if err := f.MergeCell(sheet, from, to); err != nil {
		return err
	}
	title := fmt.Sprintf("สรุปยอดผลิตประจำวันที่ (%s)", thaiDate(w.opts.RunTime.In(w.opts.Location)))
	if err := f.SetCellStr(sheet, from, title); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, from, to, style)
}

func subtotal(col string, last int) string {
	return fmt.Sprintf("SUBTOTAL(109,%s2:%s%d)", col, col, last)
}

// totalPanels are the shift, cut length and supplement totals over the
// primary block.
func (w *Writer) totalPanels() []panel {
	top := w.opts.Layout.SummaryTitleRow
	last := w.opts.Layout.PrimaryLastRow
	col := func(c domain.Column) string { return excel.IndexToColumn(int(c)) }

	supplement := [2]string{}
	if w.opts.HasSupplement {
		supplement = [2]string{fontBlue, fontRed}
	}

	return []panel{
		{
			left: "A", right: "B", labelRow: top + 3, valueRow: top + 5,
			labels: [2]string{"ยอดทอกะ A ทั้งหมด", "ยอดทอกะ B ทั้งหมด"},
			values: [2]string{subtotal(col(domain.ColOutputA), last), subtotal(col(domain.ColOutputB), last)},
		},
		{
			left: "A", right: "B", labelRow: top + 9, valueRow: top + 11,
			labels: [2]string{"ยอดตัดม้วนกะ A ทั้งหมด", "ยอดตัดม้วนกะ B ทั้งหมด"},
			values: [2]string{subtotal(col(domain.ColCutLengthA), last), subtotal(col(domain.ColCutLengthB), last)},
		},
		{
			left: "A", right: "B", valueRow: top + 15,
			values: [2]string{subtotal(col(domain.ColSupplementA), last), subtotal(col(domain.ColSupplementB), last)},
			color:  supplement,
		},
	}
}

// cutRows holds the extra-block sheet rows per cut iteration.
type cutRows map[int][]int

// scanCutRows finds the cut iteration of every machine cell in column A of the
// extra block, in either suffix wording.
func scanCutRows(f *excelize.File, first, last int) (cutRows, error) {
	found := cutRows{}
	reg := marker.New()
	for _, it := range merge.Iterations {
		reg.On(func(_ *excelize.File, _ string, row, _ int, _ string) error {
			found[it] = append(found[it], row+1)
			return nil
		}, fmt.Sprintf("%s %d", merge.CutSuffix, it), fmt.Sprintf("%s %d", merge.LegacySuffix, it))
	}

	p := processor.New(reg, processor.WithRows(first, last), processor.WithColumns("A", "A"))
	if err := p.Process(f); err != nil {
		return nil, err
	}
	return found, nil
}

func sumOf(col string, rows []int) string {
	if len(rows) == 0 {
		return "0"
	}
	refs := make([]string, len(rows))
	for i, r := range rows {
		refs[i] = excel.Ref(col, r)
	}
	return "SUM(" + strings.Join(refs, ",") + ")"
}

// cutPanels are the totals of the 2nd and 3rd cut rows of the extra block.
func (w *Writer) cutPanels(rows cutRows) []panel {
	top := w.opts.Layout.SummaryTitleRow
	cols := map[int][2]string{2: {"I", "J"}, 3: {"L", "M"}}
	col := func(c domain.Column) string { return excel.IndexToColumn(int(c)) }
	blue := [2]string{fontDarkBlue, fontDarkBlue}

	var out []panel
	for _, it := range merge.Iterations {
		lr, ok := cols[it]
		if !ok {
			continue
		}
		matched := rows[it]
		out = append(out,
			panel{
				left: lr[0], right: lr[1], labelRow: top + 3, valueRow: top + 5,
				labels:   [2]string{fmt.Sprintf("ยอดทอกะ A (ตัดครั้ง %d)", it), fmt.Sprintf("ยอดทอกะ B (ตัดครั้ง %d)", it)},
				values:   [2]string{sumOf(col(domain.ColOutputA), matched), sumOf(col(domain.ColOutputB), matched)},
				color:    blue,
				sumColor: fontDarkBlue,
			},
			panel{
				left: lr[0], right: lr[1], labelRow: top + 9, valueRow: top + 11,
				labels:   [2]string{fmt.Sprintf("ยอดตัดม้วนกะ A (ครั้ง %d)", it), fmt.Sprintf("ยอดตัดม้วนกะ B (ครั้ง %d)", it)},
				values:   [2]string{sumOf(col(domain.ColCutLengthA), matched), sumOf(col(domain.ColCutLengthB), matched)},
				color:    blue,
				sumColor: fontDarkBlue,
			},
		)
	}
	return out
}

// writePanel writes captions (when labelRow is set), the two values and their
// merged sum on the row below.
func writePanel(f *excelize.File, sm *StyleManager, sheet string, p panel) error {
	if p.labelRow > 0 {
		label, err := sm.Label()
		if err != nil {
			return err
		}
		for i, col := range []string{p.left, p.right} {
			cell := excel.Ref(col, p.labelRow)
			if err := f.SetCellStr(sheet, cell, p.labels[i]); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, label); err != nil {
				return err
			}
		}
	}

	for i, col := range []string{p.left, p.right} {
		cell := excel.Ref(col, p.valueRow)
		if err := setTotal(f, sheet, cell, p.values[i]); err != nil {
			return err
		}
		style, err := sm.Total(p.color[i])
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}

	sumRow := p.valueRow + 1
	from, to := excel.Ref(p.left, sumRow), excel.Ref(p.right, sumRow)
	if err := f.MergeCell(sheet, from, to); err != nil {
		return err
	}
	expr := excel.Ref(p.left, p.valueRow) + "+" + excel.Ref(p.right, p.valueRow)
	if err := f.SetCellFormula(sheet, from, expr); err != nil {
		return err
	}
	style, err := sm.Total(p.sumColor)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, from, to, style)
}

// setTotal writes a literal zero for "0" and a formula otherwise.
func setTotal(f *excelize.File, sheet, cell, expr string) error {
	if expr == "0" {
		return f.SetCellValue(sheet, cell, 0)
	}
	return f.SetCellFormula(sheet, cell, expr)
}
