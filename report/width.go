package report

import "github.com/orayew2002/loom-report/domain"

const (
	minWidth        = 6.0
	maxWidth        = 48.0
	formulaMinWidth = 12.0
	widthPadding    = 2.0
	widthSampleRows = 500
	wideRuneWeight  = 1.15
)

// lotSample is the widest lot number the lot column is sized for.
const lotSample = "68091601"

// DisplayWidth estimates the rendered width of s. Runes outside Latin-1
// (Thai included) count as 1.15 characters.
func DisplayWidth(s string) float64 {
	var w float64
	for _, r := range s {
		if r > 255 {
			w += wideRuneWeight
		} else {
			w++
		}
	}
	return w
}

// ColumnWidths sizes every report column from its header label and the first
// rows of each block.
func ColumnWidths(blocks ...*domain.Block) [domain.ColumnCount]float64 {
	var widths [domain.ColumnCount]float64

	for c := range domain.ColumnCount {
		spec := c.Spec()
		w := DisplayWidth(c.DisplayLabel())

		for _, b := range blocks {
			if b.Empty() {
				continue
			}
			switch {
			case c == domain.ColLotNo:
				w = max(w, DisplayWidth(lotSample)+widthPadding)
			case spec.Formula:
				w = max(w, formulaMinWidth)
			default:
				for i := range min(len(b.Rows), widthSampleRows) {
					w = max(w, DisplayWidth(b.Rows[i].Get(c).String()))
				}
			}
		}

		widths[c] = min(maxWidth, max(minWidth, w+widthPadding))
	}

	return widths
}
