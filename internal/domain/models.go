package domain

import "fmt"

type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Orientation) UnmarshalText(b []byte) error {
	switch string(b) {
	case "horizontal":
		*o = Horizontal
	case "vertical":
		*o = Vertical
	default:
		return fmt.Errorf("unknown orientation %q", b)
	}
	return nil
}

// Range is the configured input span of a level widget. Min < Max is the
// caller's responsibility.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Breakpoint anchors one point of a discharge curve.
type Breakpoint struct {
	Voltage float64 // per cell, volts
	Percent float64 // 0..100
}

// BreakpointTable is ordered by strictly decreasing voltage: the first entry
// is "full", the last one is "empty".
type BreakpointTable []Breakpoint

// Validate reports whether t can be used for interpolation. It is meant for
// load time; the interpolator never checks it.
func (t BreakpointTable) Validate() error {
	if len(t) < 2 {
		return fmt.Errorf("breakpoint table needs at least 2 entries, got %d", len(t))
	}
	for i := 1; i < len(t); i++ {
		if t[i].Voltage >= t[i-1].Voltage {
			return fmt.Errorf("breakpoint %d (%.3fV) is not below breakpoint %d (%.3fV)",
				i, t[i].Voltage, i-1, t[i-1].Voltage)
		}
	}
	return nil
}

type WidgetState struct {
	Segments    int         `json:"segments"` // >= 1
	Orientation Orientation `json:"orientation"`
	Value       float64     `json:"value"` // last input: clamped level or raw pack voltage
	Range       Range       `json:"range"`
	Cells       int         `json:"cells"` // >= 1, battery only
}

// FillResult is derived on every input event.
type FillResult struct {
	Filled int     `json:"filled"`
	SoC    float64 `json:"soc"` // 0..1
}

// RGB components are in [0,1].
type RGB struct {
	R, G, B float64
}

// Hex formats c as #RRGGBB for terminal output.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return int(v*255 + 0.5)
}

type Rect struct {
	X, Y, W, H float64
}
