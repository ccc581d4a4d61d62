package bargraph

import (
	"fmt"

	"github.com/HaPhanBaoMinh/segbar/internal/domain"
)

// recorder is a domain.Canvas that logs every call.
type recorder struct {
	w, h  float64
	calls []string
	rects []domain.Rect
	fills []domain.RGB
	cur   domain.RGB
}

func newRecorder(w, h float64) *recorder { return &recorder{w: w, h: h} }

func (r *recorder) Size() (float64, float64) { return r.w, r.h }

func (r *recorder) Clear(c domain.RGB) {
	r.calls = append(r.calls, fmt.Sprintf("clear %v", c))
}

func (r *recorder) SetColor(c domain.RGB) {
	r.cur = c
	r.calls = append(r.calls, fmt.Sprintf("color %v", c))
}

func (r *recorder) FillRect(rect domain.Rect) {
	r.rects = append(r.rects, rect)
	r.fills = append(r.fills, r.cur)
	r.calls = append(r.calls, fmt.Sprintf("fill %v", rect))
}

func (r *recorder) Present() { r.calls = append(r.calls, "present") }
