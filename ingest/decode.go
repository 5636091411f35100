package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/orayew2002/loom-report/excel"
)

type format int

const (
	formatUnknown format = iota
	formatSheet
	formatDelimited
)

func formatOf(filename string) format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return formatSheet
	case ".csv", ".tsv", ".txt":
		return formatDelimited
	default:
		return formatUnknown
	}
}

// load returns the raw cell grid of an upload.
func load(data []byte, filename string) ([][]string, error) {
	switch formatOf(filename) {
	case formatSheet:
		return loadSheet(data)
	case formatDelimited:
		return loadDelimited(data)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(filename))
	}
}

// loadSheet reads the first worksheet; no row is assumed to be the header.
// Cells are read raw, then date-formatted serials are rendered as ISO dates
// so they take part in the date column's format vote.
func loadSheet(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("no sheet found in the workbook")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows of %q: %w", sheets[0], err)
	}

	dc := dateCells{f: f, sheet: sheets[0], byStyle: map[int]bool{}}
	for r, row := range rows {
		for c, v := range row {
			iso, err := dc.render(r, c, v)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", excel.CellName(r, c), err)
			}
			row[c] = iso
		}
	}
	return rows, nil
}

// dateCells renders serial numbers in date-formatted cells, caching the
// verdict per style.
type dateCells struct {
	f       *excelize.File
	sheet   string
	byStyle map[int]bool
}

func (d dateCells) render(row, col int, v string) (string, error) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || serial < 1 {
		return v, nil
	}

	id, err := d.f.GetCellStyle(d.sheet, excel.CellName(row, col))
	if err != nil {
		return "", err
	}
	isDate, ok := d.byStyle[id]
	if !ok {
		// An unreadable style is treated as a plain number.
		if st, err := d.f.GetStyle(id); err == nil {
			isDate = isDateFormat(st)
		}
		d.byStyle[id] = isDate
	}
	if !isDate {
		return v, nil
	}

	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return v, nil
	}
	t = t.Round(time.Second)
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02"), nil
	}
	return t.Format("2006-01-02 15:04:05"), nil
}

// isDateFormat reports whether st displays numbers as calendar dates.
// Time-only formats are not dates.
func isDateFormat(st *excelize.Style) bool {
	if st == nil {
		return false
	}
	if st.CustomNumFmt != nil {
		return customDateFormat(*st.CustomNumFmt)
	}
	n := st.NumFmt
	return (n >= 14 && n <= 17) || n == 22 || (n >= 27 && n <= 36) || (n >= 50 && n <= 58)
}

// customDateFormat looks for day or year tokens outside quoted text and
// bracketed sections such as [Red] or [$-th-TH].
func customDateFormat(code string) bool {
	var quoted, bracket bool
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			bracket = true
		case r == ']':
			bracket = false
		case bracket:
		case r == 'd' || r == 'y':
			return true
		}
	}
	return false
}

// textEncoding decodes raw bytes, reporting false when the bytes are not valid
// in that encoding.
type textEncoding struct {
	name   string
	decode func([]byte) (string, bool)
}

// Encodings are tried in this order; the first that decodes and parses wins.
var encodings = []textEncoding{
	{name: "utf-8", decode: decodeUTF8},
	{name: "tis-620", decode: decodeTIS620},
	{name: "cp874", decode: decodeCharmap(charmap.Windows874)},
	{name: "latin1", decode: decodeCharmap(charmap.ISO8859_1)},
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func decodeUTF8(b []byte) (string, bool) {
	b = bytes.TrimPrefix(b, utf8BOM)
	if !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

// decodeTIS620 accepts only bytes defined by TIS-620, which is Windows-874
// without the C1 punctuation block.
func decodeTIS620(b []byte) (string, bool) {
	for _, c := range b {
		if (c >= 0x80 && c <= 0xA0) || (c >= 0xDB && c <= 0xDE) || c >= 0xFC {
			return "", false
		}
	}
	return decodeCharmap(charmap.Windows874)(b)
}

func decodeCharmap(cm *charmap.Charmap) func([]byte) (string, bool) {
	return func(b []byte) (string, bool) {
		out, err := cm.NewDecoder().Bytes(b)
		if err != nil || bytes.ContainsRune(out, utf8.RuneError) {
			return "", false
		}
		return string(out), true
	}
}

func loadDelimited(data []byte) ([][]string, error) {
	var errs []error
	for _, enc := range encodings {
		text, ok := enc.decode(data)
		if !ok {
			errs = append(errs, fmt.Errorf("%s: invalid bytes", enc.name))
			continue
		}
		rows, err := parseDelimited(text)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", enc.name, err))
			continue
		}
		return rows, nil
	}
	return nil, fmt.Errorf("no encoding could read the file: %w", errors.Join(errs...))
}

func parseDelimited(text string) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse delimited text: %w", err)
	}
	return rows, nil
}

// sniffDelimiter picks tab for tab-separated exports, comma otherwise.
func sniffDelimiter(text string) rune {
	line, _, _ := strings.Cut(text, "\n")
	if strings.Contains(line, "\t") && !strings.Contains(line, ",") {
		return '\t'
	}
	return ','
}
