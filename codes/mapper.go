// Package codes maps free-form fabric size codes to the two-digit codes used in
// production order numbers.
package codes

import "strings"

// Normalize prepares a raw code for lookup: trim, drop inner spaces, upper-case.
func Normalize(code string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(code), " ", ""))
}

// Mapper is an immutable code table keyed by normalized code.
type Mapper struct {
	table map[string]string
}

// New builds a Mapper. Synonyms always win over a mapping entry that
// normalizes to the same key.
func New(mapping, synonyms map[string]string) *Mapper {
	table := make(map[string]string, len(mapping)+len(synonyms))
	for k, v := range mapping {
		table[Normalize(k)] = v
	}
	for k, v := range synonyms {
		table[Normalize(k)] = v
	}

	return &Mapper{table: table}
}

// Map returns the two-digit code for raw. Keys ending in "SM" are retried with
// a trailing "0", a known spelling variant in the exports.
func (m *Mapper) Map(raw string) (string, bool) {
	key := Normalize(raw)
	if key == "" {
		return "", false
	}

	if v, ok := m.table[key]; ok {
		return v, true
	}

	if strings.HasSuffix(key, "SM") {
		if v, ok := m.table[key+"0"]; ok {
			return v, true
		}
	}

	return "", false
}

// Len returns the number of distinct normalized keys.
func (m *Mapper) Len() int {
	return len(m.table)
}
