// Package ingest turns an uploaded export into a domain.Table keyed by the
// canonical field names.
package ingest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/orayew2002/loom-report/dates"
	"github.com/orayew2002/loom-report/domain"
)

// ErrMachineIDMissing is returned when most rows of a file carry no machine id,
// which means the columns did not line up with the expected layout.
var ErrMachineIDMissing = errors.New("machine id missing in most rows")

// WarningKind classifies a degraded-but-usable ingest.
type WarningKind int

const (
	WarnUnreadable WarningKind = iota
	WarnDatesMissing
	WarnHeaderMismatch
)

func (k WarningKind) String() string {
	switch k {
	case WarnUnreadable:
		return "unreadable"
	case WarnDatesMissing:
		return "dates_missing"
	case WarnHeaderMismatch:
		return "header_mismatch"
	default:
		return "unknown"
	}
}

// Warning describes a problem the caller should surface but can continue past.
type Warning struct {
	Kind    WarningKind
	File    string
	Missing int
	Total   int
	Detail  string
}

func (w Warning) String() string {
	switch w.Kind {
	case WarnDatesMissing:
		return fmt.Sprintf("%s: date missing in %d/%d rows", w.File, w.Missing, w.Total)
	default:
		return fmt.Sprintf("%s: %s: %s", w.File, w.Kind, w.Detail)
	}
}

// Result is a table plus anything worth warning about.
type Result struct {
	Table    domain.Table
	Warnings []Warning
}

// Read parses one upload against schema, whose length is the expected column
// count. A file that cannot be read at all yields an empty table and a
// WarnUnreadable warning rather than an error.
func Read(data []byte, filename string, schema []domain.Field) (Result, error) {
	res := Result{Table: domain.Table{Source: filename}}

	rows, err := load(data, filename)
	if err != nil {
		res.Warnings = append(res.Warnings, Warning{Kind: WarnUnreadable, File: filename, Detail: err.Error()})
		return res, nil
	}

	var header []string
	if idx := findHeader(rows); idx >= 0 {
		header = rows[idx]
		rows = rows[idx+1:]
	}
	rows = dropBlank(rows)

	fields := reconcile(width(header, rows), schema)
	res.Table.Fields = fields
	res.Table.Headers = header

	if mm := headerMismatches(header, fields); len(mm) > 0 {
		res.Warnings = append(res.Warnings, Warning{
			Kind:   WarnHeaderMismatch,
			File:   filename,
			Detail: strings.Join(mm, ", "),
		})
	}

	if len(rows) == 0 {
		return res, nil
	}

	records := make([]domain.RawRecord, len(rows))
	rawDates := make([]string, len(rows))
	for i, row := range rows {
		values := make(map[domain.Field]string, len(fields))
		for j, f := range fields {
			if j < len(row) {
				values[f] = strings.TrimSpace(row[j])
			}
		}
		records[i] = domain.RawRecord{Machine: machineID(values[domain.FieldMachine]), Values: values}
		rawDates[i] = values[domain.FieldDate]
	}

	parsed := dates.Parse(rawDates)
	total := len(records)
	noMachine, noDate := 0, 0
	for i := range records {
		records[i].Date = parsed[i]
		if records[i].Machine == "" {
			noMachine++
		}
		if records[i].Date.IsZero() {
			noDate++
		}
	}

	if noMachine*2 > total {
		return res, fmt.Errorf("%s: %w (%d/%d rows)", filename, ErrMachineIDMissing, noMachine, total)
	}
	if noDate*2 > total {
		res.Warnings = append(res.Warnings, Warning{
			Kind:    WarnDatesMissing,
			File:    filename,
			Missing: noDate,
			Total:   total,
		})
	}

	kept := records[:0]
	for _, r := range records {
		if r.Machine != "" && !r.Date.IsZero() {
			kept = append(kept, r)
		}
	}
	res.Table.Records = kept

	return res, nil
}

// reconcile names n columns: fewer than expected take the schema prefix, more
// are truncated to the schema.
func reconcile(n int, schema []domain.Field) []domain.Field {
	if n < len(schema) {
		return append([]domain.Field(nil), schema[:n]...)
	}
	return append([]domain.Field(nil), schema...)
}

func width(header []string, rows [][]string) int {
	n := len(header)
	for _, r := range rows {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}

func dropBlank(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		for _, c := range r {
			if strings.TrimSpace(c) != "" {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func machineID(raw string) string {
	id := strings.TrimSpace(raw)
	switch strings.ToLower(id) {
	case "nan", "none", "null":
		return ""
	}
	return id
}
