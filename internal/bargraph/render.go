package bargraph

import "github.com/HaPhanBaoMinh/segbar/internal/domain"

// SegmentGap is subtracted from every segment along the layout axis.
const SegmentGap = 2.0

// RenderContext is the drawable area queried from the host for one pass.
type RenderContext struct {
	Width, Height float64
}

// ContextOf reads the current size of c.
func ContextOf(c domain.Canvas) RenderContext {
	w, h := c.Size()
	return RenderContext{Width: w, Height: h}
}

// Layout is everything a render pass needs from the widget.
type Layout struct {
	Segments    int
	Filled      int
	Orientation domain.Orientation
	Palette     Palette
}

// SegmentRect returns the rectangle of segment i. Horizontal bars run left to
// right, vertical bars stack bottom to top.
func SegmentRect(ctx RenderContext, l Layout, i int) domain.Rect {
	n := float64(ClampSegments(l.Segments))
	if l.Orientation == domain.Horizontal {
		size := ctx.Width / n
		return domain.Rect{X: float64(i) * size, Y: 0, W: size - SegmentGap, H: ctx.Height}
	}
	size := ctx.Height / n
	return domain.Rect{X: 0, Y: ctx.Height - float64(i+1)*size, W: ctx.Width, H: size - SegmentGap}
}

// Render draws one full frame of l onto c.
func Render(ctx RenderContext, c domain.Canvas, l Layout) {
	segments := ClampSegments(l.Segments)

	c.Clear(Background)
	for i := 0; i < segments; i++ {
		c.SetColor(l.Palette.Segment(i, segments, l.Filled))
		c.FillRect(SegmentRect(ctx, l, i))
	}
	c.Present()
}
