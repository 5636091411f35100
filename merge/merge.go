// Package merge combines per-shift tables into report blocks in the canonical
// machine order.
package merge

import (
	"cmp"
	"slices"

	"github.com/orayew2002/loom-report/domain"
)

// binding copies one raw field into one report column.
type binding struct {
	field domain.Field
	col   domain.Column
}

var shiftBindings = map[domain.Shift][]binding{
	domain.ShiftA: {
		{domain.FieldWorkerA, domain.ColWorkerA},
		{domain.FieldSpeedA, domain.ColSpeedA},
		{domain.FieldEfficiencyA, domain.ColEfficiencyA},
		{domain.FieldMeterStartA, domain.ColMeterStartA},
		{domain.FieldMeterEndA, domain.ColMeterEndA},
		{domain.FieldCutLengthA, domain.ColCutLengthA},
	},
	domain.ShiftB: {
		{domain.FieldWorkerB, domain.ColWorkerB},
		{domain.FieldSpeedB, domain.ColSpeedB},
		{domain.FieldEfficiencyB, domain.ColEfficiencyB},
		{domain.FieldMeterStartB, domain.ColMeterStartB},
		{domain.FieldMeterEndB, domain.ColMeterEndB},
		{domain.FieldCutLengthB, domain.ColCutLengthB},
	},
}

// orderBindings come from shift A only in the primary block.
var orderBindings = []binding{
	{domain.FieldLotNo, domain.ColLotNo},
	{domain.FieldOrderNo, domain.ColOrderNo},
}

var supplementBindings = []binding{
	{domain.FieldCutLengthA, domain.ColSupplementA},
	{domain.FieldCutLengthB, domain.ColSupplementB},
}

func apply(row *domain.Row, rec domain.RawRecord, bs []binding) {
	for _, b := range bs {
		raw := rec.Get(b.field)
		if b.col.Spec().Numeric {
			row.Set(b.col, domain.ParseNumber(raw))
		} else {
			row.Set(b.col, domain.Text(raw))
		}
	}
}

// Merger builds the primary and extra blocks.
type Merger struct {
	order *Order
}

// NewMerger returns a Merger over order.
func NewMerger(order *Order) *Merger {
	return &Merger{order: order}
}

// Primary returns one row per primary machine, in order, blank when no shift
// reported it. c may be nil.
func (m *Merger) Primary(a, b, c *domain.Table) domain.Block {
	byA := latest(a, nil, keepID)
	byB := latest(b, nil, keepID)
	byC := latest(c, nil, keepID)

	machines := m.order.Primary()
	block := domain.Block{Rows: make([]domain.Row, 0, len(machines))}

	for _, id := range machines {
		row := domain.NewRow(id)

		if rec, ok := byA[id]; ok {
			apply(&row, rec, shiftBindings[domain.ShiftA])
			apply(&row, rec, orderBindings)
			row.Set(domain.ColSizeCode, domain.Text(rec.Get(domain.FieldSizeCode)))
		}
		if rec, ok := byB[id]; ok {
			apply(&row, rec, shiftBindings[domain.ShiftB])
			if row.Get(domain.ColSizeCode).IsEmpty() {
				row.Set(domain.ColSizeCode, domain.Text(rec.Get(domain.FieldSizeCode)))
			}
		}
		if rec, ok := byC[id]; ok {
			apply(&row, rec, supplementBindings)
		}

		block.Rows = append(block.Rows, row)
	}

	return block
}

type extraRow struct {
	row       domain.Row
	number    int
	iteration int
	shift     domain.Shift
}

// Extra returns one row per shift occurrence of a repeated-cut machine. Only
// machines that reported data appear.
func (m *Merger) Extra(a, b *domain.Table) domain.Block {
	var rows []extraRow

	for _, src := range []struct {
		t     *domain.Table
		shift domain.Shift
	}{{a, domain.ShiftA}, {b, domain.ShiftB}} {
		recs := latest(src.t, m.order.IsCutVariant, CanonicalName)
		for name, rec := range recs {
			row := domain.NewRow(name)
			row.Set(domain.ColSizeCode, domain.Text(rec.Get(domain.FieldSizeCode)))
			apply(&row, rec, orderBindings)
			apply(&row, rec, shiftBindings[src.shift])

			rows = append(rows, extraRow{
				row:       row,
				number:    MachineNumber(name),
				iteration: CutIteration(name),
				shift:     src.shift,
			})
		}
	}

	slices.SortStableFunc(rows, func(x, y extraRow) int {
		return cmp.Or(
			cmp.Compare(x.number, y.number),
			cmp.Compare(x.iteration, y.iteration),
			cmp.Compare(x.shift, y.shift),
			cmp.Compare(x.row.Machine(), y.row.Machine()),
		)
	})

	block := domain.Block{Rows: make([]domain.Row, len(rows))}
	for i, r := range rows {
		block.Rows[i] = r.row
	}
	return block
}

func keepID(id string) string { return id }

// latest keeps the most recent record per machine key. On equal dates the
// record later in the file wins.
func latest(t *domain.Table, filter func(string) bool, key func(string) string) map[string]domain.RawRecord {
	out := map[string]domain.RawRecord{}
	if t.Empty() {
		return out
	}

	for _, rec := range t.Records {
		if filter != nil && !filter(rec.Machine) {
			continue
		}
		k := key(rec.Machine)
		if prev, ok := out[k]; ok && rec.Date.Before(prev.Date) {
			continue
		}
		out[k] = rec
	}
	return out
}
