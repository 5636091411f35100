package lot

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orayew2002/loom-report/codes"
	"github.com/orayew2002/loom-report/config"
	"github.com/orayew2002/loom-report/domain"
	"github.com/orayew2002/loom-report/merge"
)

func newAssigner(t *testing.T, max int) *Assigner {
	t.Helper()
	cfg := config.Default()
	cfg.MaxLotSequence = max
	return New(
		codes.New(cfg.CodeMapping, cfg.CodeSynonyms),
		merge.NewOrder(cfg.MachineOrder),
		Options{Location: cfg.Location(), MaxSequence: cfg.MaxLotSequence},
	)
}

func row(machine string, cutA, cutB int64) domain.Row {
	r := domain.NewRow(machine)
	if cutA != 0 {
		r.Set(domain.ColCutLengthA, domain.Number(decimal.NewFromInt(cutA)))
	}
	if cutB != 0 {
		r.Set(domain.ColCutLengthB, domain.Number(decimal.NewFromInt(cutB)))
	}
	return r
}

func TestAssignProductionCodes(t *testing.T) {
	a := newAssigner(t, 999)

	mapped := domain.NewRow("CL1")
	mapped.Set(domain.ColSizeCode, domain.Text("fcl 022325650"))
	unmapped := domain.NewRow("CL2")
	unmapped.Set(domain.ColSizeCode, domain.Text("NOPE"))
	unmapped.Set(domain.ColOrderNo, domain.Text("PO-1"))
	block := domain.Block{Rows: []domain.Row{mapped, unmapped, domain.NewRow("CL3")}}

	// 20:00 UTC on the 28th is already March 1st in Bangkok.
	a.AssignProductionCodes(time.Date(2025, time.February, 28, 20, 0, 0, 0, time.UTC), &block)

	assert.Equal(t, "680342", block.Rows[0].Get(domain.ColOrderNo).Text)
	assert.Equal(t, "PO-1", block.Rows[1].Get(domain.ColOrderNo).Text)
	assert.True(t, block.Rows[2].Get(domain.ColOrderNo).IsEmpty())
}

func TestAssignLotNumbersAcrossBlocks(t *testing.T) {
	a := newAssigner(t, 999)

	stale := row("CL1", 0, 0)
	stale.Set(domain.ColLotNo, domain.Text("L1"))
	primary := domain.Block{Rows: []domain.Row{
		stale,
		row("CL3", 10, 0),
		row("CL2", 0, 5),
		row("XX", 1, 0),
	}}
	extra := domain.Block{Rows: []domain.Row{row("CL1 ตัดม้วนครั้งที่ 2", 7, 0)}}

	runDate := time.Date(2025, time.February, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, a.AssignLotNumbers(runDate, &primary, &extra))

	lot := func(b domain.Block, i int) string { return b.Rows[i].Get(domain.ColLotNo).Text }
	assert.Equal(t, "", lot(primary, 0))
	assert.Equal(t, "68020101", lot(primary, 2))
	assert.Equal(t, "68020102", lot(primary, 1))
	assert.Equal(t, "68020103", lot(extra, 0))
	assert.Equal(t, "68020104", lot(primary, 3))
}

func TestAssignLotNumbersStrictlyIncreasing(t *testing.T) {
	a := newAssigner(t, 999)
	cfg := config.Default()

	var block domain.Block
	for _, m := range cfg.MachineOrder {
		block.Rows = append(block.Rows, row(m, 1, 1))
	}
	require.NoError(t, a.AssignLotNumbers(time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC), &block))

	prev := ""
	for i, r := range block.Rows {
		got := r.Get(domain.ColLotNo).Text
		assert.Equal(t, fmt.Sprintf("680704%02d", i+1), got)
		assert.Greater(t, got, prev)
		prev = got
	}
}

func TestAssignLotNumbersSequenceLimit(t *testing.T) {
	a := newAssigner(t, 999)

	var block domain.Block
	for i := range 999 {
		block.Rows = append(block.Rows, row(fmt.Sprintf("M%d", i), 1, 0))
	}
	runDate := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, a.AssignLotNumbers(runDate, &block))
	assert.Equal(t, "680201999", block.Rows[998].Get(domain.ColLotNo).Text)

	block.Rows = append(block.Rows, row("M999", 1, 0))
	err := a.AssignLotNumbers(runDate, &block)
	require.ErrorIs(t, err, ErrSequenceExceeded)
}

func TestAssignLotNumbersOverLimitLeavesRowsAlone(t *testing.T) {
	a := newAssigner(t, 2)

	idle := row("CL3", 0, 0)
	idle.Set(domain.ColLotNo, domain.Text("L0042"))
	block := domain.Block{Rows: []domain.Row{row("CL1", 5, 0), row("CL2", 0, 5), idle, row("CL4", 5, 5)}}

	err := a.AssignLotNumbers(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), &block)
	require.ErrorIs(t, err, ErrSequenceExceeded)

	assert.Equal(t, "L0042", block.Rows[2].Get(domain.ColLotNo).Text)
	for _, i := range []int{0, 1, 3} {
		assert.True(t, block.Rows[i].Get(domain.ColLotNo).IsEmpty())
	}
}

func TestDatePrefix(t *testing.T) {
	assert.Equal(t, "681231", DatePrefix(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "00", BuddhistYY(time.Date(2057, time.January, 1, 0, 0, 0, 0, time.UTC)))
}
