package bargraph

import (
	"fmt"
	"strings"

	"github.com/HaPhanBaoMinh/segbar/internal/domain"
)

var (
	Background = domain.RGB{R: 0.2, G: 0.2, B: 0.2}
	Inactive   = domain.RGB{R: 0.5, G: 0.5, B: 0.5}

	blendInactive = domain.RGB{R: 0.3, G: 0.3, B: 0.3}
)

// ColorFor returns the band color of a lit segment at position in [0,1):
// red to yellow over the first half, yellow to green up to 0.75, then green.
func ColorFor(position float64) domain.RGB {
	switch {
	case position < 0.5:
		return domain.RGB{R: 1, G: position * 2, B: 0}
	case position < 0.75:
		return domain.RGB{R: 1 - (position-0.5)*2, G: 1, B: 0}
	default:
		return domain.RGB{R: 0, G: 1, B: 0}
	}
}

// BlendColorFor is the two-stop red to green blend used by the meter style.
func BlendColorFor(t float64) domain.RGB {
	g := t * 2
	if g > 1 {
		g = 1
	}
	return domain.RGB{R: 1 - g, G: g, B: 0}
}

type Palette int

const (
	PaletteBands Palette = iota
	PaletteBlend
)

func (p Palette) String() string {
	if p == PaletteBlend {
		return "blend"
	}
	return "bands"
}

func ParsePalette(s string) (Palette, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bands":
		return PaletteBands, nil
	case "blend":
		return PaletteBlend, nil
	}
	return PaletteBands, fmt.Errorf("unknown palette %q (want bands|blend)", s)
}

// Segment returns the color of segment i out of segments.
//
// The bands palette positions lit segments by i/segments, not by the lit
// count, so a bar that is only partly filled never reaches green.
func (p Palette) Segment(i, segments, filled int) domain.RGB {
	if p == PaletteBlend {
		if i >= filled {
			return blendInactive
		}
		if segments <= 1 {
			return BlendColorFor(0)
		}
		return BlendColorFor(float64(i) / float64(segments-1))
	}
	if i >= filled {
		return Inactive
	}
	return ColorFor(float64(i) / float64(segments))
}
