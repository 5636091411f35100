package processor

import (
	"fmt"

	"github.com/orayew2002/loom-report/excel"
	"github.com/orayew2002/loom-report/marker"
	"github.com/xuri/excelize/v2"
)

// Processor feeds the cells of a workbook to a marker registry.
type Processor struct {
	registry *marker.Registry
	area     area
}

// area bounds the scan, 0-based and inclusive; a negative end means unbounded.
type area struct {
	firstRow, lastRow int
	firstCol, lastCol int
}

// Option narrows the scanned area.
type Option func(*Processor)

// WithRows limits the scan to sheet rows first..last (1-based, inclusive).
func WithRows(first, last int) Option {
	return func(p *Processor) {
		p.area.firstRow, p.area.lastRow = first-1, last-1
	}
}

// WithColumns limits the scan to columns first..last ("A", "C").
func WithColumns(first, last string) Option {
	return func(p *Processor) {
		p.area.firstCol, p.area.lastCol = excel.ColumnToIndex(first), excel.ColumnToIndex(last)
	}
}

// New creates a Processor over the whole sheet unless options narrow it.
func New(registry *marker.Registry, opts ...Option) *Processor {
	p := &Processor{registry: registry, area: area{lastRow: -1, lastCol: -1}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process scans every sheet of an open workbook.
func (p *Processor) Process(f *excelize.File) error {
	for _, sheet := range f.GetSheetList() {
		if err := p.processSheet(f, sheet); err != nil {
			return fmt.Errorf("sheet %q: %w", sheet, err)
		}
	}

	return nil
}

func (p *Processor) processSheet(f *excelize.File, sheet string) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("get rows: %w", err)
	}

	for row := max(p.area.firstRow, 0); row < len(rows); row++ {
		if p.area.lastRow >= 0 && row > p.area.lastRow {
			break
		}
		for col := max(p.area.firstCol, 0); col < len(rows[row]); col++ {
			if p.area.lastCol >= 0 && col > p.area.lastCol {
				break
			}
			value := rows[row][col]
			if value == "" {
				continue
			}

			if _, err := p.registry.Dispatch(f, sheet, row, col, value); err != nil {
				return fmt.Errorf("cell %s: %w", excel.CellName(row, col), err)
			}
		}
	}

	return nil
}
