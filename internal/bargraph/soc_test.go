package bargraph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HaPhanBaoMinh/segbar/internal/domain"
)

func TestEstimateSoCClamps(t *testing.T) {
	for _, v := range []float64{4.20, 4.21, 4.5, 12} {
		assert.Equal(t, 1.0, EstimateSoC(v, 1, LiPoTable), "voltage %v", v)
	}
	for _, v := range []float64{3.40, 3.39, 2.5, 0, -1} {
		assert.Equal(t, 0.0, EstimateSoC(v, 1, LiPoTable), "voltage %v", v)
	}
}

func TestEstimateSoCBreakpoints(t *testing.T) {
	assert.Equal(t, 0.5, EstimateSoC(3.75, 1, LiPoTable))
	assert.InDelta(t, 0.55, EstimateSoC(3.775, 1, LiPoTable), 1e-9)
	assert.InDelta(t, 0.40, EstimateSoC(3.70, 1, LiPoTable), 1e-9)
	assert.InDelta(t, 0.875, EstimateSoC(4.05, 1, LiPoTable), 1e-9)
	assert.InDelta(t, 0.01, EstimateSoC(3.425, 1, LiPoTable), 1e-9)
}

func TestEstimateSoCCellCount(t *testing.T) {
	assert.Equal(t, EstimateSoC(3.7, 1, LiPoTable), EstimateSoC(7.4, 2, LiPoTable))
	assert.InDelta(t, EstimateSoC(3.9, 1, LiPoTable), EstimateSoC(11.7, 3, LiPoTable), 1e-12)

	// non-positive cell counts behave like a single cell
	assert.Equal(t, EstimateSoC(3.8, 1, LiPoTable), EstimateSoC(3.8, 0, LiPoTable))
	assert.Equal(t, EstimateSoC(3.8, 1, LiPoTable), EstimateSoC(3.8, -2, LiPoTable))
}

func TestEstimateSoCMonotonic(t *testing.T) {
	prev := EstimateSoC(3.3, 1, LiPoTable)
	for v := 3.3; v <= 4.3; v += 0.0005 {
		got := EstimateSoC(v, 1, LiPoTable)
		assert.GreaterOrEqual(t, got, prev, "voltage %v", v)
		assert.True(t, got >= 0 && got <= 1, "voltage %v gave %v", v, got)
		prev = got
	}
}

func TestEstimateSoCDegenerateTables(t *testing.T) {
	assert.Equal(t, 0.0, EstimateSoC(3.8, 1, nil))

	// NaN slips past both clamps and matches no band
	assert.Equal(t, 0.0, EstimateSoC(math.NaN(), 1, LiPoTable))

	// ascending tables saturate instead of interpolating
	ascending := domain.BreakpointTable{{Voltage: 3.0, Percent: 0}, {Voltage: 3.5, Percent: 50}, {Voltage: 4.0, Percent: 100}}
	assert.Equal(t, 1.0, EstimateSoC(3.6, 1, ascending))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 50.0, Percent(0.5))
	assert.Equal(t, 100.0, Percent(EstimateSoC(4.3, 1, LiPoTable)))
}

func TestLiPoTableIsValid(t *testing.T) {
	assert.NoError(t, LiPoTable.Validate())
	assert.Len(t, LiPoTable, 15)
}
