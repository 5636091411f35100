package ingest

import (
	"regexp"
	"strings"

	"github.com/orayew2002/loom-report/domain"
)

const (
	machineWord = "เครื่อง"
	sizeWord    = "ขนาด"
	clothWord   = "หน้าผ้า"
	codeWord    = "รหัส"
)

var spaces = regexp.MustCompile(`\s+`)

// isMachineLabel is the one place that decides whether a cell names the
// machine-number column.
func isMachineLabel(s string) bool {
	if strings.Contains(s, string(domain.FieldMachine)) {
		return true
	}
	return strings.Contains(s, machineWord) && strings.Contains(strings.ToUpper(s), "NO")
}

// NormalizeHeader maps a header cell to its canonical field name. Unknown
// headers come back with whitespace collapsed.
func NormalizeHeader(s string) string {
	txt := spaces.ReplaceAllString(strings.TrimSpace(s), " ")
	if txt == "" {
		return ""
	}
	if isMachineLabel(txt) {
		return string(domain.FieldMachine)
	}
	if strings.Contains(txt, sizeWord) && strings.Contains(txt, clothWord) {
		if strings.Contains(txt, codeWord) || strings.Contains(strings.ToUpper(txt), "CODE") {
			return string(domain.FieldSizeCodeQual)
		}
		return string(domain.FieldSizeCode)
	}
	return txt
}

// findHeader returns the index of the first row holding a machine-number
// label, or -1.
func findHeader(rows [][]string) int {
	for i, row := range rows {
		for _, cell := range row {
			if isMachineLabel(strings.TrimSpace(cell)) {
				return i
			}
		}
	}
	return -1
}

func sameField(a, b string) bool {
	fold := func(s string) string {
		if s == string(domain.FieldSizeCodeQual) {
			return string(domain.FieldSizeCode)
		}
		return s
	}
	return fold(a) == fold(b)
}

// headerMismatches lists positions where a header names a schema field other
// than the one the positional layout puts there.
func headerMismatches(header []string, fields []domain.Field) []string {
	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[string(f)] = struct{}{}
	}

	var out []string
	for i, f := range fields {
		if i >= len(header) {
			break
		}
		name := NormalizeHeader(header[i])
		if _, ok := known[name]; !ok {
			continue
		}
		if !sameField(name, string(f)) {
			out = append(out, name+"→"+string(f))
		}
	}
	return out
}
