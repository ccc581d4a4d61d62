package bargraph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaPhanBaoMinh/segbar/internal/domain"
)

func TestRenderHorizontal(t *testing.T) {
	c := newRecorder(100, 20)
	Render(ContextOf(c), c, Layout{Segments: 4, Filled: 2, Orientation: domain.Horizontal})

	require.Len(t, c.rects, 4)
	assert.Equal(t, domain.Rect{X: 0, Y: 0, W: 23, H: 20}, c.rects[0])
	assert.Equal(t, domain.Rect{X: 25, Y: 0, W: 23, H: 20}, c.rects[1])
	assert.Equal(t, domain.Rect{X: 75, Y: 0, W: 23, H: 20}, c.rects[3])

	assert.Equal(t, red, c.fills[0])
	assert.Equal(t, domain.RGB{R: 1, G: 0.5, B: 0}, c.fills[1])
	assert.Equal(t, Inactive, c.fills[2])
	assert.Equal(t, Inactive, c.fills[3])

	assert.Equal(t, fmt.Sprintf("clear %v", Background), c.calls[0])
	assert.Equal(t, "present", c.calls[len(c.calls)-1])
}

func TestRenderVerticalStacksFromBottom(t *testing.T) {
	c := newRecorder(10, 50)
	Render(ContextOf(c), c, Layout{Segments: 5, Filled: 1, Orientation: domain.Vertical})

	require.Len(t, c.rects, 5)
	assert.Equal(t, domain.Rect{X: 0, Y: 40, W: 10, H: 8}, c.rects[0])
	assert.Equal(t, domain.Rect{X: 0, Y: 0, W: 10, H: 8}, c.rects[4])
	assert.Equal(t, red, c.fills[0])
	assert.Equal(t, Inactive, c.fills[1])
}

func TestRenderSingleSegment(t *testing.T) {
	c := newRecorder(100, 40)
	Render(ContextOf(c), c, Layout{Segments: 1, Filled: 1, Orientation: domain.Horizontal})
	require.Len(t, c.rects, 1)
	assert.Equal(t, domain.Rect{X: 0, Y: 0, W: 98, H: 40}, c.rects[0])

	c = newRecorder(100, 40)
	Render(ContextOf(c), c, Layout{Segments: 1, Filled: 0, Orientation: domain.Vertical})
	require.Len(t, c.rects, 1)
	assert.Equal(t, domain.Rect{X: 0, Y: 0, W: 100, H: 38}, c.rects[0])
}

func TestRenderNonPositiveSegmentsDrawsOne(t *testing.T) {
	c := newRecorder(100, 40)
	Render(ContextOf(c), c, Layout{Segments: 0, Orientation: domain.Horizontal})
	assert.Len(t, c.rects, 1)
}

func TestRenderTwiceIsIdentical(t *testing.T) {
	w := NewBattery(DefaultOptions())
	w.Handle(domain.SetValue{Value: 3.82})
	c := newRecorder(60, 120)

	Render(ContextOf(c), c, w.Layout())
	first := append([]string(nil), c.calls...)
	c.calls = nil
	Render(ContextOf(c), c, w.Layout())

	assert.Equal(t, first, c.calls)
}
