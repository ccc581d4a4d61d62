package bargraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaPhanBaoMinh/segbar/internal/domain"
)

func TestLevelSetValueEmitsClampedValue(t *testing.T) {
	w := NewLevel(DefaultOptions())

	r := w.Handle(domain.SetValue{Value: 1.7})
	assert.Equal(t, Result{Output: 1, Emit: true, Redraw: true}, r)
	assert.Equal(t, 10, w.Fill().Filled)

	r = w.Handle(domain.SetValue{Value: -0.2})
	assert.Equal(t, Result{Output: 0, Emit: true, Redraw: true}, r)
	assert.Equal(t, 0, w.Fill().Filled)

	r = w.Handle(domain.SetValue{Value: 0.42})
	assert.Equal(t, 0.42, r.Output)
	assert.Equal(t, 4, w.Layout().Filled)
	assert.InDelta(t, 0.42, w.Fill().SoC, 1e-12)
}

func TestLevelSetRangeKeepsStoredValue(t *testing.T) {
	w := NewLevel(DefaultOptions())
	w.Handle(domain.SetValue{Value: 0.8})

	r := w.Handle(domain.SetRange{Min: 0, Max: 0.5})
	assert.Equal(t, Result{Redraw: true}, r)
	assert.Equal(t, 0.8, w.State().Value)
	// fill still clamps against the new range
	assert.Equal(t, 10, w.Fill().Filled)

	r = w.Handle(domain.SetValue{Value: 0.8})
	assert.Equal(t, 0.5, r.Output)
}

func TestLevelDegenerateRange(t *testing.T) {
	w := NewLevel(DefaultOptions())
	w.Handle(domain.SetRange{Min: 2, Max: 2})
	r := w.Handle(domain.SetValue{Value: 5})
	assert.Equal(t, 2.0, r.Output)
	assert.Equal(t, domain.FillResult{}, w.Fill())
}

func TestCommonMessages(t *testing.T) {
	for _, w := range []Widget{NewLevel(DefaultOptions()), NewBattery(DefaultOptions())} {
		t.Run(w.Kind(), func(t *testing.T) {
			r := w.Handle(domain.SetSegments{Count: -3})
			assert.True(t, r.Redraw)
			assert.False(t, r.Emit)
			assert.Equal(t, 1, w.State().Segments)

			w.Handle(domain.SetSegments{Count: 24})
			assert.Equal(t, 24, w.Layout().Segments)

			w.Handle(domain.SetOrientation{Horizontal: true})
			assert.Equal(t, domain.Horizontal, w.Layout().Orientation)
			w.Handle(domain.SetOrientation{Horizontal: false})
			assert.Equal(t, domain.Vertical, w.Layout().Orientation)

			assert.Equal(t, Result{Redraw: true}, w.Handle(domain.Redraw{}))
		})
	}
}

func TestLevelIgnoresCells(t *testing.T) {
	w := NewLevel(DefaultOptions())
	assert.Equal(t, Result{}, w.Handle(domain.SetCells{Count: 4}))
	assert.Equal(t, 1, w.State().Cells)
}

func TestBatterySetValueEmitsSoC(t *testing.T) {
	w := NewBattery(DefaultOptions())

	r := w.Handle(domain.SetValue{Value: 3.75})
	assert.Equal(t, Result{Output: 0.5, Emit: true, Redraw: true}, r)
	assert.Equal(t, 5, w.Fill().Filled)
	assert.Equal(t, 3.75, w.State().Value)

	r = w.Handle(domain.SetValue{Value: 5})
	assert.Equal(t, 1.0, r.Output)
	assert.Equal(t, 10, w.Layout().Filled)
}

func TestBatteryCells(t *testing.T) {
	w := NewBattery(DefaultOptions())
	w.Handle(domain.SetValue{Value: 7.5})
	assert.Equal(t, 1.0, w.Fill().SoC)

	r := w.Handle(domain.SetCells{Count: 2})
	assert.Equal(t, Result{Redraw: true}, r)
	assert.Equal(t, 0.5, w.Fill().SoC)

	w.Handle(domain.SetCells{Count: 0})
	assert.Equal(t, 1, w.State().Cells)
}

func TestBatteryPercentOutput(t *testing.T) {
	o := DefaultOptions()
	o.PercentOutput = true
	o.Cells = 3
	w := NewBattery(o)

	r := w.Handle(domain.SetValue{Value: 11.25})
	assert.True(t, r.Emit)
	assert.InDelta(t, 50, r.Output, 1e-9)
}

func TestBatteryIgnoresRange(t *testing.T) {
	w := NewBattery(DefaultOptions())
	assert.Equal(t, Result{}, w.Handle(domain.SetRange{Min: 0, Max: 1}))
	assert.Equal(t, domain.Range{Min: 3.4, Max: 4.2}, w.State().Range)
}

func TestBatteryFallsBackToLiPoTable(t *testing.T) {
	o := DefaultOptions()
	o.Table = nil
	w := NewBattery(o)
	assert.Equal(t, LiPoTable, w.Table())
}

func TestParseArgs(t *testing.T) {
	o, err := ParseArgs(DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, 10, o.Segments)
	assert.Equal(t, domain.Vertical, o.Orientation)

	o, err = ParseArgs(DefaultOptions(), []string{"16", "1"})
	require.NoError(t, err)
	assert.Equal(t, 16, o.Segments)
	assert.Equal(t, domain.Horizontal, o.Orientation)

	o, err = ParseArgs(o, []string{"8", "false"})
	require.NoError(t, err)
	assert.Equal(t, domain.Vertical, o.Orientation)

	_, err = ParseArgs(DefaultOptions(), []string{"ten"})
	assert.Error(t, err)
	_, err = ParseArgs(DefaultOptions(), []string{"10", "sideways"})
	assert.Error(t, err)
	_, err = ParseArgs(DefaultOptions(), []string{"1", "2", "3"})
	assert.Error(t, err)
}
