// Package marker dispatches workbook cells to handlers by the sentinel text
// they contain.
package marker

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// HandlerFunc handles a cell whose value contains a registered sentinel.
// row and col are 0-based.
type HandlerFunc func(f *excelize.File, sheet string, row, col int, value string) error

// Registry maps sentinels to handlers.
type Registry struct {
	rules []rule
}

type rule struct {
	sentinel string
	handle   HandlerFunc
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{}
}

// On registers handler for every sentinel. Rules are checked in registration
// order; the first sentinel found in a cell wins.
func (r *Registry) On(handler HandlerFunc, sentinels ...string) {
	for _, s := range sentinels {
		if s == "" {
			continue
		}
		r.rules = append(r.rules, rule{sentinel: s, handle: handler})
	}
}

// Len returns the number of registered sentinels.
func (r *Registry) Len() int { return len(r.rules) }

// Dispatch runs the first matching handler and reports whether one ran.
func (r *Registry) Dispatch(f *excelize.File, sheet string, row, col int, value string) (bool, error) {
	for _, rl := range r.rules {
		if !strings.Contains(value, rl.sentinel) {
			continue
		}
		if err := rl.handle(f, sheet, row, col, value); err != nil {
			return false, err
		}
		return true, nil
	}

	return false, nil
}
