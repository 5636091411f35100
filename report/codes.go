package report

import (
	"fmt"
	"strings"

	"github.com/orayew2002/loom-report/domain"
	"github.com/orayew2002/loom-report/excel"
	"github.com/xuri/excelize/v2"
)

var codeHeaders = [3]string{"สรุปผลผลิตตามรหัสผ้า", "สรุปยอดทอ", "สรุปยอดตัดม้วน"}

// lastDataRow is the bottom of the range the size-code totals read.
func (w *Writer) lastDataRow(primaryLen, extraLen int) int {
	if extraLen > 0 {
		_, last := w.extraRange(extraLen)
		return last
	}
	return min(w.opts.Layout.PrimaryLastRow, 1+primaryLen)
}

// codeTableStart is the first data row of the size-code table, kept clear of
// a long extra block.
func (w *Writer) codeTableStart(lastData int) int {
	return max(w.opts.Layout.CodeSummaryStartRow, lastData+3)
}

func (w *Writer) codePass(data []byte, primaryLen, extraLen int) ([]byte, error) {
	f, err := open(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := w.opts.SheetName
	last := w.lastDataRow(primaryLen, extraLen)

	found, err := w.distinctCodes(f, sheet, last)
	if err != nil {
		return nil, fmt.Errorf("collect codes: %w", err)
	}
	if len(found) == 0 {
		return data, nil
	}

	sm := NewStyleManager(f)
	start := w.codeTableStart(last)
	if err := writeCodeHeader(f, sm, sheet, start-1); err != nil {
		return nil, fmt.Errorf("code header: %w", err)
	}

	for i, code := range found {
		if err := writeCodeRow(f, sm, sheet, start+i, last, code); err != nil {
			return nil, fmt.Errorf("code %q: %w", code, err)
		}
	}

	return toBytes(f)
}

// distinctCodes lists the size codes of column D from row 2 to last in order of
// first appearance, skipping the extra header row.
func (w *Writer) distinctCodes(f *excelize.File, sheet string, last int) ([]string, error) {
	col := excel.IndexToColumn(int(domain.ColSizeCode))
	seen := map[string]struct{}{}
	var out []string

	for row := 2; row <= last; row++ {
		if row == w.opts.Layout.ExtraHeaderRow {
			continue
		}
		v, err := f.GetCellValue(sheet, excel.Ref(col, row))
		if err != nil {
			return nil, err
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

func writeCodeHeader(f *excelize.File, sm *StyleManager, sheet string, row int) error {
	style, err := sm.CodeHeader()
	if err != nil {
		return err
	}
	for i, h := range codeHeaders {
		if err := f.SetCellStr(sheet, excel.CellName(row-1, i), h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, excel.Ref("A", row), excel.Ref("C", row), style); err != nil {
		return err
	}

	// Sized for the English captions the table was designed around.
	if err := f.SetColWidth(sheet, "B", "B", DisplayWidth("Total produced")+4); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "C", "C", DisplayWidth("Total cut length")+4)
}

// sumIf totals the two shift columns of rows whose size code equals the code
// in column A of row.
func sumIf(row, last int, a, b domain.Column) string {
	d := excel.AbsRange(excel.IndexToColumn(int(domain.ColSizeCode)), 2, last)
	key := fmt.Sprintf("$A$%d", row)
	part := func(c domain.Column) string {
		return fmt.Sprintf("SUMIF(%s, %s, %s)", d, key, excel.AbsRange(excel.IndexToColumn(int(c)), 2, last))
	}
	return part(a) + " + " + part(b)
}

func writeCodeRow(f *excelize.File, sm *StyleManager, sheet string, row, last int, code string) error {
	name, err := sm.CodeName()
	if err != nil {
		return err
	}
	output, err := sm.CodeTotal(colorCodeOutput)
	if err != nil {
		return err
	}
	cut, err := sm.CodeTotal(colorCodeCut)
	if err != nil {
		return err
	}

	a, b, c := excel.Ref("A", row), excel.Ref("B", row), excel.Ref("C", row)
	if err := f.SetCellStr(sheet, a, code); err != nil {
		return err
	}
	if err := f.SetCellFormula(sheet, b, sumIf(row, last, domain.ColOutputA, domain.ColOutputB)); err != nil {
		return err
	}
	if err := f.SetCellFormula(sheet, c, sumIf(row, last, domain.ColCutLengthA, domain.ColCutLengthB)); err != nil {
		return err
	}

	for cell, style := range map[string]int{a: name, b: output, c: cut} {
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}
