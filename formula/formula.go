// Package formula builds the spreadsheet expressions written into the
// computed report columns. Expressions are evaluated by the spreadsheet on
// open; nothing here computes a value.
package formula

import (
	"fmt"
	"strings"

	"github.com/orayew2002/loom-report/domain"
	"github.com/orayew2002/loom-report/excel"
)

// FailureMarker is shown in a wage cell when its expression cannot be evaluated.
const FailureMarker = "คำนวณไม่สำเร็จ"

// Builder returns the expression for a 1-based sheet row.
type Builder func(row int) string

func col(c domain.Column) string { return excel.IndexToColumn(int(c)) }

// CutLength returns the produced-length expression of one shift: end minus
// start, or the recorded cut length less the meter gap when the meter was
// reset mid-shift. Never negative.
//
//	M, N → MAX(0, IF(M2>N2, IF(Q2<>"", Q2-ABS(N2-M2), R2-ABS(N2-M2)), N2-M2))
func CutLength(start, end domain.Column) Builder {
	s, e := col(start), col(end)
	q, r := col(domain.ColCutLengthA), col(domain.ColCutLengthB)
	return func(row int) string {
		S, E, Q, R := excel.Ref(s, row), excel.Ref(e, row), excel.Ref(q, row), excel.Ref(r, row)
		return fmt.Sprintf(
			`MAX(0, IF(%s>%s, IF(%s<>"", %s-ABS(%s-%s), %s-ABS(%s-%s)), %s-%s))`,
			S, E, Q, Q, E, S, R, E, S, E, S,
		)
	}
}

// SizeNumber extracts the width number from the size code in column D:
// characters 6-7 of FCL codes, 5-6 of TEST codes, otherwise the first two.
func SizeNumber(row int) string {
	d := excel.Ref(col(domain.ColSizeCode), row)
	return fmt.Sprintf(
		`IF(LEFT(UPPER(%s),3)="FCL", VALUE(MID(%s,6,2)), IF(LEFT(UPPER(%s),4)="TEST", VALUE(MID(%s,5,2)), VALUE(LEFT(%s,2))))`,
		d, d, d, d, d,
	)
}

// rateTiers maps width numbers to the piece rate per unit of length.
var rateTiers = []struct {
	from, to int
	rate     string
}{
	{12, 17, "0.13"},
	{18, 22, "0.14"},
	{23, 25, "0.15"},
	{26, 30, "0.18"},
}

// RateTier buckets a width-number expression into its piece rate. Widths
// outside every tier make the expression fail, which the wage cell catches.
func RateTier(num string) string {
	parts := make([]string, 0, len(rateTiers)*2)
	for _, t := range rateTiers {
		eqs := make([]string, 0, t.to-t.from+1)
		for n := t.from; n <= t.to; n++ {
			eqs = append(eqs, fmt.Sprintf("%s=%d", num, n))
		}
		parts = append(parts, "OR("+strings.Join(eqs, ",")+")", t.rate)
	}
	return "IFS(" + strings.Join(parts, ",") + ")"
}

// Wage returns the wage expression for the shift whose produced length is in
// column out, formatted to two decimals.
func Wage(out domain.Column) Builder {
	o := col(out)
	return func(row int) string {
		return fmt.Sprintf(`IFERROR(TEXT((%s)*%s,"0.00"),"%s")`, RateTier(SizeNumber(row)), excel.Ref(o, row), FailureMarker)
	}
}

// Injected lists the computed columns and their builders.
var Injected = []struct {
	Column  domain.Column
	Builder Builder
}{
	{domain.ColOutputA, CutLength(domain.ColMeterStartA, domain.ColMeterEndA)},
	{domain.ColOutputB, CutLength(domain.ColMeterStartB, domain.ColMeterEndB)},
	{domain.ColWageA, Wage(domain.ColOutputA)},
	{domain.ColWageB, Wage(domain.ColOutputB)},
}

// Inject writes the computed-column formulas of every row, numbering rows
// from firstRow.
func Inject(block *domain.Block, firstRow int) {
	if block == nil {
		return
	}
	for i := range block.Rows {
		row := firstRow + i
		for _, in := range Injected {
			block.Rows[i].Set(in.Column, domain.Formula(in.Builder(row)))
		}
	}
}
