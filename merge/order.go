package merge

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Cut-iteration suffixes. Exports use both wordings; CutSuffix is the one
// written to reports.
const (
	CutSuffix    = "ตัดม้วนครั้งที่"
	LegacySuffix = "ตัดม้วนที่ครั้ง"
)

// Iterations are the repeated-cut passes that get their own machine ids.
var Iterations = []int{2, 3}

var (
	machineNumber = regexp.MustCompile(`CL(\d+)`)
	cutIteration  = regexp.MustCompile(`(?:` + CutSuffix + `|` + LegacySuffix + `)\s*(\d+)`)
)

// CanonicalName rewrites the legacy cut wording to CutSuffix.
func CanonicalName(id string) string {
	return strings.ReplaceAll(strings.TrimSpace(id), LegacySuffix, CutSuffix)
}

// CutName returns the machine id of a repeated cut of machine.
func CutName(machine string, iteration int) string {
	return machine + " " + CutSuffix + " " + strconv.Itoa(iteration)
}

// CutIteration returns 2 or 3 for a repeated-cut id in either wording, 0 otherwise.
func CutIteration(id string) int {
	m := cutIteration.FindStringSubmatch(id)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	for _, it := range Iterations {
		if n == it {
			return n
		}
	}
	return 0
}

// MachineNumber extracts the number after "CL", or math.MaxInt when there is none.
func MachineNumber(id string) int {
	m := machineNumber.FindStringSubmatch(strings.ToUpper(id))
	if m == nil {
		return math.MaxInt
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return math.MaxInt
	}
	return n
}

// Order is the canonical machine ordering: the primary machines, then their
// second cuts, then their third cuts.
type Order struct {
	primary []string
	index   map[string]int
}

// NewOrder builds the full order from the primary machine list.
func NewOrder(primary []string) *Order {
	o := &Order{
		primary: append([]string(nil), primary...),
		index:   make(map[string]int, len(primary)*(1+len(Iterations))),
	}

	pos := 0
	add := func(id string) {
		if _, ok := o.index[id]; !ok {
			o.index[id] = pos
		}
		pos++
	}
	for _, m := range primary {
		add(m)
	}
	for _, it := range Iterations {
		for _, m := range primary {
			add(CutName(m, it))
		}
	}

	return o
}

// Primary returns the scaffold machine list.
func (o *Order) Primary() []string {
	return append([]string(nil), o.primary...)
}

// Len is the size of the full order.
func (o *Order) Len() int { return len(o.index) }

// Index returns the position of id in the full order. Legacy cut wording is
// accepted.
func (o *Order) Index(id string) (int, bool) {
	i, ok := o.index[CanonicalName(id)]
	return i, ok
}

// IsCutVariant reports whether id is a known repeated-cut machine id.
func (o *Order) IsCutVariant(id string) bool {
	i, ok := o.Index(id)
	return ok && i >= len(o.primary)
}
