package widgets

import (
	"math"
	"strings"

	"github.com/HaPhanBaoMinh/segbar/internal/mathx"
)

var blocks = []rune("▁▂▃▄▅▆▇█")

// Spark8 renders the newest width samples (0..1) as block characters, one per
// sample, right aligned so the latest reading sits at the end.
func Spark8(vals []float64, width int) string {
	if len(vals) == 0 || width <= 0 {
		return ""
	}
	if len(vals) > width {
		vals = vals[len(vals)-width:]
	}
	top := float64(len(blocks) - 1)

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width-len(vals)))
	for _, v := range vals {
		if math.IsNaN(v) {
			v = 0
		}
		b.WriteRune(blocks[mathx.RoundHalfUp(mathx.Clamp(v, 0, 1)*top)])
	}
	return b.String()
}
