package merge

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orayew2002/loom-report/config"
	"github.com/orayew2002/loom-report/domain"
)

func date(d int) time.Time {
	return time.Date(2025, time.February, d, 0, 0, 0, 0, time.UTC)
}

func record(machine string, d int, values map[domain.Field]string) domain.RawRecord {
	return domain.RawRecord{Machine: machine, Date: date(d), Values: values}
}

func table(recs ...domain.RawRecord) *domain.Table {
	return &domain.Table{Fields: domain.ShiftFields, Records: recs}
}

func num(t *testing.T, v domain.Value) decimal.Decimal {
	t.Helper()
	require.Equal(t, domain.KindNumber, v.Kind)
	return v.Number
}

func TestOrder(t *testing.T) {
	o := NewOrder([]string{"CL1", "CL2"})

	assert.Equal(t, 6, o.Len())
	assert.Equal(t, []string{"CL1", "CL2"}, o.Primary())

	i, ok := o.Index("CL2")
	require.True(t, ok)
	assert.Equal(t, 1, i)

	i, ok = o.Index("CL1 ตัดม้วนครั้งที่ 3")
	require.True(t, ok)
	assert.Equal(t, 4, i)

	i, ok = o.Index("CL2 ตัดม้วนที่ครั้ง 2")
	require.True(t, ok)
	assert.Equal(t, 3, i)

	_, ok = o.Index("CL99")
	assert.False(t, ok)

	assert.True(t, o.IsCutVariant("CL1 ตัดม้วนที่ครั้ง 2"))
	assert.False(t, o.IsCutVariant("CL1"))
	assert.False(t, o.IsCutVariant("CL7 ตัดม้วนครั้งที่ 2"))
}

func TestNameHelpers(t *testing.T) {
	assert.Equal(t, "CL5 ตัดม้วนครั้งที่ 2", CanonicalName(" CL5 ตัดม้วนที่ครั้ง 2 "))
	assert.Equal(t, 3, CutIteration("CL5 ตัดม้วนที่ครั้ง 3"))
	assert.Equal(t, 2, CutIteration(CutName("CL5", 2)))
	assert.Equal(t, 0, CutIteration("CL5"))
	assert.Equal(t, 0, CutIteration("CL5 ตัดม้วนครั้งที่ 4"))
	assert.Equal(t, 12, MachineNumber("cl12 ตัดม้วนครั้งที่ 2"))
	assert.Equal(t, math.MaxInt, MachineNumber("LOOM"))
}

func TestPrimaryScaffold(t *testing.T) {
	cfg := config.Default()
	m := NewMerger(NewOrder(cfg.MachineOrder))

	a := table(record("CL1", 1, map[domain.Field]string{
		domain.FieldCutLengthA: "120",
		domain.FieldSizeCode:   "1825800",
	}))
	b := table(record("CL1", 1, map[domain.Field]string{domain.FieldCutLengthB: "0"}))

	block := m.Primary(a, b, nil)
	require.Len(t, block.Rows, len(cfg.MachineOrder))
	for i, id := range cfg.MachineOrder {
		assert.Equal(t, id, block.Rows[i].Machine())
	}

	cl1 := block.Rows[0]
	assert.True(t, num(t, cl1.Get(domain.ColCutLengthA)).Equal(decimal.NewFromInt(120)))
	assert.Equal(t, "1825800", cl1.Get(domain.ColSizeCode).Text)

	blank := block.Rows[1]
	for c := domain.ColWorkerA; c < domain.ColumnCount; c++ {
		assert.True(t, blank.Get(c).IsEmpty(), c.DisplayLabel())
	}
}

func TestPrimaryMergesShifts(t *testing.T) {
	m := NewMerger(NewOrder([]string{"CL1", "CL2"}))

	a := table(
		record("CL1", 1, map[domain.Field]string{domain.FieldWorkerA: "old", domain.FieldLotNo: "L1"}),
		record("CL1", 3, map[domain.Field]string{domain.FieldWorkerA: "new", domain.FieldMeterStartA: "1,200"}),
		record("CL1", 2, map[domain.Field]string{domain.FieldWorkerA: "mid"}),
	)
	b := table(
		record("CL1", 1, map[domain.Field]string{domain.FieldWorkerB: "first"}),
		record("CL1", 1, map[domain.Field]string{domain.FieldWorkerB: "second", domain.FieldSizeCode: "2325650"}),
		record("CL2", 1, map[domain.Field]string{domain.FieldMeterEndB: "abc"}),
	)
	c := &domain.Table{Fields: domain.SupplementFields, Records: []domain.RawRecord{
		record("CL2", 1, map[domain.Field]string{domain.FieldCutLengthA: "40", domain.FieldCutLengthB: "55"}),
	}}

	block := m.Primary(a, b, c)
	require.Len(t, block.Rows, 2)

	cl1 := block.Rows[0]
	assert.Equal(t, "new", cl1.Get(domain.ColWorkerA).Text)
	assert.True(t, num(t, cl1.Get(domain.ColMeterStartA)).Equal(decimal.NewFromInt(1200)))
	assert.True(t, cl1.Get(domain.ColLotNo).IsEmpty())
	assert.Equal(t, "second", cl1.Get(domain.ColWorkerB).Text)
	assert.Equal(t, "2325650", cl1.Get(domain.ColSizeCode).Text, "falls back to shift B")

	cl2 := block.Rows[1]
	assert.True(t, cl2.Get(domain.ColMeterEndB).IsEmpty(), "unparseable number")
	assert.True(t, num(t, cl2.Get(domain.ColSupplementA)).Equal(decimal.NewFromInt(40)))
	assert.True(t, num(t, cl2.Get(domain.ColSupplementB)).Equal(decimal.NewFromInt(55)))
}

func TestExtraBlock(t *testing.T) {
	m := NewMerger(NewOrder([]string{"CL1", "CL2", "CL10"}))

	a := table(
		record("CL10 ตัดม้วนครั้งที่ 2", 1, map[domain.Field]string{domain.FieldMeterStartA: "5"}),
		record("CL1", 1, nil),
		record("CL2 ตัดม้วนที่ครั้ง 3", 1, map[domain.Field]string{domain.FieldWorkerA: "a", domain.FieldWorkerB: "ignored"}),
		record("CL2 ตัดม้วนครั้งที่ 2", 1, map[domain.Field]string{domain.FieldSizeCode: "1625800"}),
	)
	b := table(
		record("CL2 ตัดม้วนครั้งที่ 2", 1, map[domain.Field]string{domain.FieldWorkerB: "b1"}),
		record("CL2 ตัดม้วนที่ครั้ง 2", 2, map[domain.Field]string{domain.FieldWorkerB: "b2"}),
		record("CL9 ตัดม้วนครั้งที่ 2", 1, nil),
	)

	block := m.Extra(a, b)

	var names []string
	for _, r := range block.Rows {
		names = append(names, r.Machine())
	}
	assert.Equal(t, []string{
		"CL2 ตัดม้วนครั้งที่ 2",
		"CL2 ตัดม้วนครั้งที่ 2",
		"CL2 ตัดม้วนครั้งที่ 3",
		"CL10 ตัดม้วนครั้งที่ 2",
	}, names)

	assert.Equal(t, "1625800", block.Rows[0].Get(domain.ColSizeCode).Text)
	assert.True(t, block.Rows[0].Get(domain.ColWorkerB).IsEmpty(), "shift A row carries shift A fields only")
	assert.Equal(t, "b2", block.Rows[1].Get(domain.ColWorkerB).Text, "legacy wording deduped with canonical")
	assert.True(t, block.Rows[2].Get(domain.ColWorkerB).IsEmpty())
	assert.Equal(t, "a", block.Rows[2].Get(domain.ColWorkerA).Text)
}

func TestExtraBlockEmpty(t *testing.T) {
	m := NewMerger(NewOrder([]string{"CL1"}))
	block := m.Extra(table(record("CL1", 1, nil)), nil)
	assert.True(t, block.Empty())
}
