package excel

import (
	"fmt"
	"strings"
)

// CellName converts 0-based row and column indices to an Excel cell reference (e.g. 0,0 → "A1").
func CellName(row, col int) string {
	return fmt.Sprintf("%s%d", IndexToColumn(col), row+1)
}

// IndexToColumn converts a 0-based column index to Excel column letters (0→A, 25→Z, 26→AA).
func IndexToColumn(n int) string {
	result := ""
	for n >= 0 {
		result = string(rune('A'+(n%26))) + result
		n = n/26 - 1
	}
	return result
}

// ColumnToIndex is the inverse of IndexToColumn ("A"→0, "AB"→27).
// It returns -1 for anything that is not a column reference.
func ColumnToIndex(letters string) int {
	letters = strings.ToUpper(strings.TrimSpace(letters))
	if letters == "" {
		return -1
	}
	n := 0
	for _, r := range letters {
		if r < 'A' || r > 'Z' {
			return -1
		}
		n = n*26 + int(r-'A') + 1
	}
	return n - 1
}

// Ref builds a reference from a column letter and a 1-based sheet row ("G", 2 → "G2").
func Ref(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// Range builds "A1:B2" style ranges from two references.
func Range(from, to string) string {
	return from + ":" + to
}

// AbsRange builds an absolute single-column range such as $D$2:$D$83.
func AbsRange(col string, fromRow, toRow int) string {
	return fmt.Sprintf("$%s$%d:$%s$%d", col, fromRow, col, toRow)
}
