package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Colors used by the report.
const (
	colorHeader     = "DDEBF7"
	colorTitle      = "D9D9D9"
	colorStripe     = "F3F3F3"
	colorCodeHeader = "FFD966"
	colorCodeName   = "FFF2CC"
	colorCodeOutput = "E2EFDA"
	colorCodeCut    = "D9E1F2"

	fontBlue     = "0000FF"
	fontRed      = "FF0000"
	fontDarkBlue = "00008B"
)

// numFmtThousands is the built-in "#,##0" format.
const numFmtThousands = 3

// StyleManager caches Excel styles so each style is created only once per file.
type StyleManager struct {
	file  *excelize.File
	cache map[string]int
}

// NewStyleManager creates a style manager bound to the given file.
func NewStyleManager(f *excelize.File) *StyleManager {
	return &StyleManager{file: f, cache: make(map[string]int)}
}

// Header is the column header style.
func (sm *StyleManager) Header() (int, error) {
	return sm.getOrCreate("header", &excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      solid(colorHeader),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    defaultBorder(),
	})
}

// Text is the left-aligned data style.
func (sm *StyleManager) Text() (int, error) {
	return sm.getOrCreate("text", &excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
}

// Number is the right-aligned "#,##0" data style; color "" means the default font.
func (sm *StyleManager) Number(color string) (int, error) {
	st := &excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		NumFmt:    numFmtThousands,
	}
	if color != "" {
		st.Font = &excelize.Font{Color: color}
	}
	return sm.getOrCreate("number:"+color, st)
}

// Title is the merged summary title.
func (sm *StyleManager) Title() (int, error) {
	return sm.getOrCreate("title", &excelize.Style{
		Fill:      solid(colorTitle),
		Alignment: center(),
		Border:    defaultBorder(),
	})
}

// Label is an underlined panel caption.
func (sm *StyleManager) Label() (int, error) {
	return sm.getOrCreate("label", &excelize.Style{
		Font:      &excelize.Font{Underline: "single"},
		Alignment: center(),
	})
}

// Total is a bordered, centered "#,##0" panel value.
func (sm *StyleManager) Total(color string) (int, error) {
	st := &excelize.Style{
		Alignment: center(),
		NumFmt:    numFmtThousands,
		Border:    defaultBorder(),
	}
	if color != "" {
		st.Font = &excelize.Font{Color: color}
	}
	return sm.getOrCreate("total:"+color, st)
}

// CodeHeader is the size-code table header.
func (sm *StyleManager) CodeHeader() (int, error) {
	return sm.getOrCreate("code-header", &excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      solid(colorCodeHeader),
		Alignment: center(),
		Border:    defaultBorder(),
	})
}

// CodeName is the code column of the size-code table.
func (sm *StyleManager) CodeName() (int, error) {
	return sm.getOrCreate("code-name", &excelize.Style{
		Fill:      solid(colorCodeName),
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Border:    defaultBorder(),
	})
}

// CodeTotal is a total column of the size-code table.
func (sm *StyleManager) CodeTotal(fill string) (int, error) {
	return sm.getOrCreate("code-total:"+fill, &excelize.Style{
		Fill:      solid(fill),
		Alignment: center(),
		NumFmt:    numFmtThousands,
		Border:    defaultBorder(),
	})
}

// Bordered derives a style from base with a thin border and, when striped,
// the row-stripe fill. Font and number format of base are kept.
func (sm *StyleManager) Bordered(base int, striped bool) (int, error) {
	key := fmt.Sprintf("bordered:%d:%t", base, striped)
	if id, ok := sm.cache[key]; ok {
		return id, nil
	}

	st, err := sm.file.GetStyle(base)
	if err != nil {
		return 0, fmt.Errorf("get style %d: %w", base, err)
	}
	st.Border = defaultBorder()
	if striped {
		st.Fill = solid(colorStripe)
	}

	return sm.getOrCreate(key, st)
}

func (sm *StyleManager) getOrCreate(key string, style *excelize.Style) (int, error) {
	if id, ok := sm.cache[key]; ok {
		return id, nil
	}

	id, err := sm.file.NewStyle(style)
	if err != nil {
		return 0, err
	}

	sm.cache[key] = id
	return id, nil
}

func solid(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
}

func center() *excelize.Alignment {
	return &excelize.Alignment{Horizontal: "center", Vertical: "center"}
}

func defaultBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}
