package sample

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/orayew2002/loom-report/excel"
	excelize "github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// XLSX writes an export workbook. Title rows come first, like the form title
// the real exports carry above the header; header may be nil.
func XLSX(title []string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"

	row := 0
	if len(title) > 0 {
		if err := writeRow(f, sheet, row, title); err != nil {
			return nil, fmt.Errorf("write title: %w", err)
		}
		row++
	}

	if header != nil {
		if err := writeHeaders(f, sheet, row, header); err != nil {
			return nil, fmt.Errorf("write headers: %w", err)
		}
		row++
	}

	for i, r := range rows {
		if err := writeRow(f, sheet, row+i, r); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write to buffer: %w", err)
	}

	return buf.Bytes(), nil
}

func writeHeaders(f *excelize.File, sheet string, row int, header []string) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}

	if err := writeRow(f, sheet, row, header); err != nil {
		return err
	}
	from, to := excel.CellName(row, 0), excel.CellName(row, len(header)-1)
	return f.SetCellStyle(sheet, from, to, style)
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	for col, val := range values {
		if val == "" {
			continue
		}
		if err := f.SetCellStr(sheet, excel.CellName(row, col), val); err != nil {
			return fmt.Errorf("col %d: %w", col, err)
		}
	}
	return nil
}

// CSV writes delimited text in one of "utf-8", "utf-8-sig", "tis-620" or
// "cp874".
func CSV(header []string, rows [][]string, encoding string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if header != nil {
		if err := w.Write(header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write rows: %w", err)
	}

	switch encoding {
	case "", "utf-8":
		return buf.Bytes(), nil
	case "utf-8-sig":
		return append([]byte{0xEF, 0xBB, 0xBF}, buf.Bytes()...), nil
	case "tis-620", "cp874":
		out, err := charmap.Windows874.NewEncoder().Bytes(buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", encoding, err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}
