// Package dates parses the date column of a raw export with one format chosen
// for the whole column, so day and month are never read differently row to row.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Pattern is one candidate date format.
type Pattern struct {
	Name   string
	re     *regexp.Regexp
	layout string
}

// Match reports whether a normalized value has the pattern's shape.
func (p Pattern) Match(v string) bool { return p.re.MatchString(v) }

// Patterns are tried in order; the earlier one wins a tie.
var Patterns = []Pattern{
	{Name: "d/m/Y", re: regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`), layout: "2/1/2006"},
	{Name: "d-m-Y", re: regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`), layout: "2-1-2006"},
	{Name: "Y-m-d", re: regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`), layout: "2006-1-2"},
	{Name: "Y/m/d", re: regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`), layout: "2006/1/2"},
	{Name: "d/m/y", re: regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2})$`), layout: "2/1/06"},
}

// dayFirst is the best-effort fallback when no pattern matches anything.
var dayFirst = []string{
	"2/1/2006", "2-1-2006", "2.1.2006", "2006-1-2", "2006/1/2", "2/1/06", "2-1-06",
	"2-Jan-2006", "2 Jan 2006", "2-Jan-06", "Jan 2, 2006", "2006-01-02T15:04:05", time.RFC3339,
}

const buddhistOffset = 543

var (
	fourDigits = regexp.MustCompile(`^\d{4}$`)
	dateSep    = regexp.MustCompile(`[-/]`)
)

// Normalize keeps the first whitespace token of raw and converts Buddhist-era
// years (any 4-digit token above 2400) to Gregorian.
func Normalize(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	v := fields[0]
	switch strings.ToLower(v) {
	case "none", "nat", "nan", "null":
		return ""
	}

	parts := dateSep.Split(v, -1)
	if len(parts) != 3 {
		return v
	}
	for i, p := range parts {
		if fourDigits.MatchString(p) {
			if yr, _ := strconv.Atoi(p); yr > 2400 {
				parts[i] = strconv.Itoa(yr - buddhistOffset)
			}
		}
	}

	sep := "/"
	if strings.Contains(v, "-") {
		sep = "-"
	}
	return strings.Join(parts, sep)
}

// Detect picks the pattern matching the most normalized values.
func Detect(normalized []string) (Pattern, int) {
	best, bestCount := -1, 0
	for i, p := range Patterns {
		n := 0
		for _, v := range normalized {
			if v != "" && p.Match(v) {
				n++
			}
		}
		if n > bestCount {
			best, bestCount = i, n
		}
	}
	if best < 0 {
		return Pattern{}, 0
	}
	return Patterns[best], bestCount
}

// Parse converts a raw date column. The zero time marks a value that could
// not be parsed.
func Parse(values []string) []time.Time {
	normalized := make([]string, len(values))
	for i, v := range values {
		normalized[i] = Normalize(v)
	}

	out := make([]time.Time, len(values))

	p, n := Detect(normalized)
	if n > 0 {
		for i, v := range normalized {
			if v == "" || !p.Match(v) {
				continue
			}
			if t, err := time.Parse(p.layout, v); err == nil {
				out[i] = t
			}
		}
		return out
	}

	for i, v := range normalized {
		out[i] = parseLoose(v)
	}
	return out
}

func parseLoose(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	for _, layout := range dayFirst {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	// Spreadsheet cells without a date format come through as serial numbers.
	if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 1 && f < 2958466 {
		if t, err := excelize.ExcelDateToTime(f, false); err == nil {
			return t
		}
	}
	return time.Time{}
}
