package bargraph

import (
	"fmt"
	"strconv"

	"github.com/HaPhanBaoMinh/segbar/internal/domain"
)

// Result tells the host what to do after a message was handled.
type Result struct {
	Output float64 // valid when Emit is set
	Emit   bool
	Redraw bool
}

// Widget is a bargraph driven by host messages. Implementations are not safe
// for concurrent use; the host delivers one message at a time.
type Widget interface {
	Kind() string
	Handle(m domain.Message) Result
	State() domain.WidgetState
	Fill() domain.FillResult
	Layout() Layout
}

type Options struct {
	Segments      int
	Orientation   domain.Orientation
	Range         domain.Range // level only
	Cells         int          // battery only
	Table         domain.BreakpointTable
	Palette       Palette
	PercentOutput bool // battery only: emit 0..100 instead of 0..1
}

func DefaultOptions() Options {
	return Options{
		Segments:    10,
		Orientation: domain.Vertical,
		Range:       domain.Range{Min: 0, Max: 1},
		Cells:       1,
		Table:       LiPoTable,
		Palette:     PaletteBands,
	}
}

// ParseArgs reads the positional startup arguments [segments] [horizontal]
// into o. Missing arguments keep the current values.
func ParseArgs(o Options, args []string) (Options, error) {
	if len(args) > 2 {
		return o, fmt.Errorf("expected at most 2 arguments, got %d", len(args))
	}
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return o, fmt.Errorf("invalid segment count: %v", err)
		}
		o.Segments = n
	}
	if len(args) > 1 {
		h, err := strconv.ParseBool(args[1])
		if err != nil {
			return o, fmt.Errorf("invalid orientation flag: %v", err)
		}
		o.Orientation = domain.Vertical
		if h {
			o.Orientation = domain.Horizontal
		}
	}
	return o, nil
}

// handleCommon covers the messages both widgets treat the same way.
func handleCommon(st *domain.WidgetState, m domain.Message) (Result, bool) {
	switch m := m.(type) {
	case domain.SetSegments:
		st.Segments = ClampSegments(m.Count)
		return Result{Redraw: true}, true
	case domain.SetOrientation:
		st.Orientation = domain.Vertical
		if m.Horizontal {
			st.Orientation = domain.Horizontal
		}
		return Result{Redraw: true}, true
	case domain.Redraw:
		return Result{Redraw: true}, true
	}
	return Result{}, false
}

// Level maps a value in a configurable range onto the bar and echoes the
// clamped value.
type Level struct {
	st      domain.WidgetState
	palette Palette
}

var _ Widget = (*Level)(nil)

func NewLevel(o Options) *Level {
	return &Level{
		st: domain.WidgetState{
			Segments:    ClampSegments(o.Segments),
			Orientation: o.Orientation,
			Range:       o.Range,
			Cells:       1,
		},
		palette: o.Palette,
	}
}

func (w *Level) Kind() string { return "level" }

func (w *Level) Handle(m domain.Message) Result {
	if r, ok := handleCommon(&w.st, m); ok {
		return r
	}
	switch m := m.(type) {
	case domain.SetValue:
		w.st.Value = Clamp(m.Value, w.st.Range)
		return Result{Output: w.st.Value, Emit: true, Redraw: true}
	case domain.SetRange:
		// the stored value is re-clamped only by the next SetValue
		w.st.Range = domain.Range{Min: m.Min, Max: m.Max}
		return Result{Redraw: true}
	}
	return Result{}
}

func (w *Level) State() domain.WidgetState { return w.st }

func (w *Level) Fill() domain.FillResult {
	filled := ComputeFill(w.st.Value, w.st.Range, w.st.Segments)
	var frac float64
	if span := w.st.Range.Max - w.st.Range.Min; span > 0 {
		frac = (Clamp(w.st.Value, w.st.Range) - w.st.Range.Min) / span
	}
	return domain.FillResult{Filled: filled, SoC: frac}
}

func (w *Level) Layout() Layout {
	return Layout{
		Segments:    w.st.Segments,
		Filled:      w.Fill().Filled,
		Orientation: w.st.Orientation,
		Palette:     w.palette,
	}
}

// Battery shows the state of charge of a series pack from its voltage.
type Battery struct {
	st      domain.WidgetState
	table   domain.BreakpointTable
	palette Palette
	percent bool
	soc     float64
}

var _ Widget = (*Battery)(nil)

var unitRange = domain.Range{Min: 0, Max: 1}

func NewBattery(o Options) *Battery {
	table := o.Table
	if len(table) == 0 {
		table = LiPoTable
	}
	return &Battery{
		st: domain.WidgetState{
			Segments:    ClampSegments(o.Segments),
			Orientation: o.Orientation,
			Range:       domain.Range{Min: table[len(table)-1].Voltage, Max: table[0].Voltage},
			Cells:       ClampCells(o.Cells),
		},
		table:   table,
		palette: o.Palette,
		percent: o.PercentOutput,
	}
}

func (w *Battery) Kind() string { return "battery" }

func (w *Battery) Handle(m domain.Message) Result {
	if r, ok := handleCommon(&w.st, m); ok {
		return r
	}
	switch m := m.(type) {
	case domain.SetValue:
		w.st.Value = m.Value
		w.soc = EstimateSoC(w.st.Value, w.st.Cells, w.table)
		return Result{Output: w.output(), Emit: true, Redraw: true}
	case domain.SetCells:
		w.st.Cells = ClampCells(m.Count)
		w.soc = EstimateSoC(w.st.Value, w.st.Cells, w.table)
		return Result{Redraw: true}
	}
	return Result{}
}

func (w *Battery) output() float64 {
	if w.percent {
		return Percent(w.soc)
	}
	return w.soc
}

func (w *Battery) State() domain.WidgetState { return w.st }

// Table returns the breakpoint table the widget interpolates with.
func (w *Battery) Table() domain.BreakpointTable { return w.table }

func (w *Battery) Fill() domain.FillResult {
	return domain.FillResult{
		Filled: ComputeFill(w.soc, unitRange, w.st.Segments),
		SoC:    w.soc,
	}
}

func (w *Battery) Layout() Layout {
	return Layout{
		Segments:    w.st.Segments,
		Filled:      w.Fill().Filled,
		Orientation: w.st.Orientation,
		Palette:     w.palette,
	}
}
