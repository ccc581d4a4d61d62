package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/HaPhanBaoMinh/segbar/internal/domain"
)

const (
	DefaultUnitX = 4.0
	DefaultUnitY = 4.0
)

var cellGlyph = "█"

// TermCanvas rasterizes rectangles onto terminal cells. Every cell spans
// UnitX × UnitY canvas units and takes the color of the last rectangle that
// covers its center.
type TermCanvas struct {
	cols, rows   int
	unitX, unitY float64

	cells  []domain.RGB
	cur    domain.RGB
	frame  string
	frames int
}

var _ domain.Canvas = (*TermCanvas)(nil)

func NewTermCanvas(cols, rows int) *TermCanvas {
	c := &TermCanvas{unitX: DefaultUnitX, unitY: DefaultUnitY}
	c.Resize(cols, rows)
	return c
}

// Resize changes the cell grid. Content is dropped until the next frame.
func (c *TermCanvas) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c.cols, c.rows = cols, rows
	c.cells = make([]domain.RGB, cols*rows)
}

func (c *TermCanvas) Cols() int { return c.cols }
func (c *TermCanvas) Rows() int { return c.rows }

func (c *TermCanvas) Size() (float64, float64) {
	return float64(c.cols) * c.unitX, float64(c.rows) * c.unitY
}

func (c *TermCanvas) Clear(col domain.RGB) {
	for i := range c.cells {
		c.cells[i] = col
	}
}

func (c *TermCanvas) SetColor(col domain.RGB) { c.cur = col }

func (c *TermCanvas) FillRect(r domain.Rect) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	x0, x1 := span(r.X, r.W, c.unitX, c.cols)
	y0, y1 := span(r.Y, r.H, c.unitY, c.rows)
	for y := y0; y < y1; y++ {
		row := c.cells[y*c.cols : (y+1)*c.cols]
		for x := x0; x < x1; x++ {
			row[x] = c.cur
		}
	}
}

// span returns the cells whose centers lie in [pos, pos+size).
func span(pos, size, unit float64, n int) (int, int) {
	lo := int(math.Ceil(pos/unit - 0.5))
	hi := int(math.Ceil((pos+size)/unit - 0.5))
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Present turns the cell grid into the string returned by View.
func (c *TermCanvas) Present() {
	var b strings.Builder
	for y := 0; y < c.rows; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := c.cells[y*c.cols : (y+1)*c.cols]
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x] == row[start] {
				continue
			}
			b.WriteString(paint(row[start], x-start))
			start = x
		}
	}
	c.frame = b.String()
	c.frames++
}

func paint(col domain.RGB, n int) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(col.Hex())).
		Render(strings.Repeat(cellGlyph, n))
}

// at returns the color of one cell of the working grid.
func (c *TermCanvas) at(col, row int) domain.RGB {
	return c.cells[row*c.cols+col]
}

// View returns the last presented frame.
func (c *TermCanvas) View() string { return c.frame }

// Frames counts Present calls.
func (c *TermCanvas) Frames() int { return c.frames }
