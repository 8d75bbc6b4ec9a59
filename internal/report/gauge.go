package report

import (
	"math"
	"strings"
)

// DefaultGaugeWidth is the number of cells in a report gauge.
const DefaultGaugeWidth = 12

const (
	gaugeFull  = '█'
	gaugeEmpty = '·'
)

// Eighth-block glyphs indexed by eighths filled (1..7).
var gaugePartials = [8]rune{gaugeEmpty, '▏', '▎', '▍', '▌', '▋', '▊', '▉'}

// Gauge renders percent as a bracketed fixed-width block gauge with
// sub-cell (eighths) resolution. Deterministic and total over [0, ∞);
// values above 100 render as full.
func Gauge(percent float64, width int) string {
	if width <= 0 {
		width = DefaultGaugeWidth
	}

	var b strings.Builder
	b.WriteByte('[')

	switch {
	case percent <= 0:
		for i := 0; i < width; i++ {
			b.WriteRune(gaugeEmpty)
		}
	case percent >= 100:
		for i := 0; i < width; i++ {
			b.WriteRune(gaugeFull)
		}
	default:
		filled := float64(width) * percent / 100
		fullCount := int(math.Floor(filled))
		for i := 0; i < fullCount; i++ {
			b.WriteRune(gaugeFull)
		}

		rest := width - fullCount
		if rest > 0 {
			idx := int(math.Floor((filled - float64(fullCount)) * 8))
			if idx == 0 && fullCount == 0 {
				// Any strictly positive percentage must be visually
				// distinguishable from zero.
				idx = 1
			}
			if idx > 0 {
				b.WriteRune(gaugePartials[idx])
				rest--
			}
			for i := 0; i < rest; i++ {
				b.WriteRune(gaugeEmpty)
			}
		}
	}

	b.WriteByte(']')
	return b.String()
}
