// Package lot stamps production order codes and lot numbers on report rows.
package lot

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/orayew2002/loom-report/codes"
	"github.com/orayew2002/loom-report/domain"
	"github.com/orayew2002/loom-report/merge"
)

// ErrSequenceExceeded means more rows need a lot number than the sequence allows.
var ErrSequenceExceeded = errors.New("lot sequence exceeded")

// Options tunes an Assigner.
type Options struct {
	Location    *time.Location
	MaxSequence int
}

// Assigner computes codes for rows of one run.
type Assigner struct {
	mapper *codes.Mapper
	order  *merge.Order
	loc    *time.Location
	max    int
}

// New returns an Assigner. A nil location means UTC; a non-positive maximum
// means 999.
func New(mapper *codes.Mapper, order *merge.Order, opts Options) *Assigner {
	a := &Assigner{mapper: mapper, order: order, loc: opts.Location, max: opts.MaxSequence}
	if a.loc == nil {
		a.loc = time.UTC
	}
	if a.max <= 0 {
		a.max = 999
	}
	return a
}

// BuddhistYY is the last two digits of t's Buddhist-era year.
func BuddhistYY(t time.Time) string {
	return fmt.Sprintf("%02d", (t.Year()+543)%100)
}

// DatePrefix renders yyMMdd with a Buddhist-era year.
func DatePrefix(t time.Time) string {
	return fmt.Sprintf("%s%02d%02d", BuddhistYY(t), int(t.Month()), t.Day())
}

// AssignProductionCodes writes year+month+mapped size code into the order
// column of every row whose size code is known. Other rows keep their value.
func (a *Assigner) AssignProductionCodes(at time.Time, blocks ...*domain.Block) {
	at = at.In(a.loc)
	prefix := fmt.Sprintf("%s%02d", BuddhistYY(at), int(at.Month()))

	for _, b := range blocks {
		if b == nil {
			continue
		}
		for i := range b.Rows {
			row := &b.Rows[i]
			code, ok := a.mapper.Map(row.Get(domain.ColSizeCode).String())
			if !ok {
				continue
			}
			row.Set(domain.ColOrderNo, domain.Text(prefix+code))
		}
	}
}

type candidate struct {
	row   *domain.Row
	index int
	num   int
}

// AssignLotNumbers numbers every row with a positive cut length on
// either shift, across all blocks together, in machine order. Other rows get
// an empty lot number. On ErrSequenceExceeded no row is touched.
func (a *Assigner) AssignLotNumbers(runDate time.Time, blocks ...*domain.Block) error {
	var cands []candidate
	var rest []*domain.Row

	for _, b := range blocks {
		if b == nil {
			continue
		}
		for i := range b.Rows {
			row := &b.Rows[i]
			if !row.Get(domain.ColCutLengthA).Positive() && !row.Get(domain.ColCutLengthB).Positive() {
				rest = append(rest, row)
				continue
			}
			idx, ok := a.order.Index(row.Machine())
			if !ok {
				idx = math.MaxInt
			}
			cands = append(cands, candidate{row: row, index: idx, num: merge.MachineNumber(row.Machine())})
		}
	}

	if len(cands) > a.max {
		return fmt.Errorf("%w: %d rows need a lot number, max %d", ErrSequenceExceeded, len(cands), a.max)
	}

	for _, row := range rest {
		row.Set(domain.ColLotNo, domain.Empty)
	}

	slices.SortStableFunc(cands, func(x, y candidate) int {
		return cmp.Or(cmp.Compare(x.index, y.index), cmp.Compare(x.num, y.num))
	})

	prefix := DatePrefix(runDate.In(a.loc))
	for i, c := range cands {
		c.row.Set(domain.ColLotNo, domain.Text(fmt.Sprintf("%s%02d", prefix, i+1)))
	}

	return nil
}
