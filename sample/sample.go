// Package sample produces raw shift exports shaped like the ones the weaving
// floor uploads, for demos and tests.
package sample

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/orayew2002/loom-report/domain"
)

// SizeCodes are fabric codes known to the default code table.
var SizeCodes = []string{"1825800", "2025800SM", "2325650", "2625650", "1625800", "FCL022325650"}

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// BuddhistDate renders t as d/m/yyyy with a Buddhist-era year, the way the
// exports write dates.
func BuddhistDate(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%d", t.Day(), int(t.Month()), t.Year()+543)
}

// Header returns the canonical header cells for fields.
func Header(fields []domain.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}

// ShiftRows builds one 21-column row per machine for a shift export. Only the
// given shift's columns are filled.
func ShiftRows(machines []string, shift domain.Shift, date time.Time, rng *rand.Rand) [][]string {
	workers := domain.GenerateWorkers(len(machines), shift)
	day := BuddhistDate(date)

	rows := make([][]string, len(machines))
	for i, m := range machines {
		row := make([]string, len(domain.ShiftFields))
		set := func(f domain.Field, v string) { row[fieldIndex(domain.ShiftFields, f)] = v }

		set(domain.FieldRecordedAt, day+" "+fmt.Sprintf("%02d:%02d:00", 7+rng.IntN(12), rng.IntN(60)))
		set(domain.FieldSequence, strconv.Itoa(i+1))
		set(domain.FieldDate, day)
		set(domain.FieldMachine, m)
		set(domain.FieldSizeCode, SizeCodes[rng.IntN(len(SizeCodes))])
		set(domain.FieldLotNo, fmt.Sprintf("L%04d", rng.IntN(10000)))
		set(domain.FieldOrderNo, fmt.Sprintf("PO-%05d", rng.IntN(100000)))

		start := 1000 + rng.IntN(49000)
		end := start + 200 + rng.IntN(1300)
		cut := end - start
		if rng.IntN(5) == 0 {
			cut = 0
		}
		speed := 400 + rng.IntN(200)
		eff := 70 + rng.Float64()*28

		if shift == domain.ShiftA {
			set(domain.FieldWorkerA, workers[i].Label())
			set(domain.FieldSpeedA, strconv.Itoa(speed))
			set(domain.FieldEfficiencyA, strconv.FormatFloat(eff, 'f', 1, 64))
			set(domain.FieldMeterStartA, strconv.Itoa(start))
			set(domain.FieldMeterEndA, strconv.Itoa(end))
			set(domain.FieldCutLengthA, strconv.Itoa(cut))
		} else {
			set(domain.FieldWorkerB, workers[i].Label())
			set(domain.FieldSpeedB, strconv.Itoa(speed))
			set(domain.FieldEfficiencyB, strconv.FormatFloat(eff, 'f', 1, 64))
			set(domain.FieldMeterStartB, strconv.Itoa(start))
			set(domain.FieldMeterEndB, strconv.Itoa(end))
			set(domain.FieldCutLengthB, strconv.Itoa(cut))
		}
		rows[i] = row
	}
	return rows
}

// SupplementRows builds 8-column re-cut rows.
func SupplementRows(machines []string, date time.Time, rng *rand.Rand) [][]string {
	day := BuddhistDate(date)
	rows := make([][]string, len(machines))
	for i, m := range machines {
		rows[i] = []string{
			day + " 16:30:00",
			strconv.Itoa(i + 1),
			day,
			m,
			SizeCodes[rng.IntN(len(SizeCodes))],
			fmt.Sprintf("L%04d", rng.IntN(10000)),
			strconv.Itoa(50 + rng.IntN(400)),
			strconv.Itoa(50 + rng.IntN(400)),
		}
	}
	return rows
}

func fieldIndex(fields []domain.Field, f domain.Field) int {
	for i, x := range fields {
		if x == f {
			return i
		}
	}
	panic("sample: unknown field " + string(f))
}
