package domain

import (
	"fmt"

	"github.com/bxcodec/faker/v4"
)

// Shift is one of the two daily work shifts.
type Shift int

const (
	ShiftA Shift = iota
	ShiftB
)

func (s Shift) String() string {
	if s == ShiftB {
		return "B"
	}
	return "A"
}

// Worker is a loom operator as it appears in the worker columns of an export.
type Worker struct {
	ID       int
	FullName string
	Shift    Shift
}

// Label is the worker cell text ("A07 John Smith").
func (w Worker) Label() string {
	return fmt.Sprintf("%s%02d %s", w.Shift, w.ID, w.FullName)
}

// GenerateWorkers creates n operators with fake names for the given shift.
func GenerateWorkers(n int, shift Shift) []Worker {
	workers := make([]Worker, n)
	for i := range n {
		workers[i] = Worker{
			ID:       i + 1,
			FullName: faker.Name(),
			Shift:    shift,
		}
	}
	return workers
}
