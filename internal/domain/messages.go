package domain

// Message is one input event delivered by the host. The set is closed:
// only the types in this file implement it.
type Message interface {
	message()
}

type SetValue struct{ Value float64 }
type SetRange struct{ Min, Max float64 }
type SetSegments struct{ Count int }
type SetOrientation struct{ Horizontal bool }
type SetCells struct{ Count int }
type Redraw struct{}

func (SetValue) message()       {}
func (SetRange) message()       {}
func (SetSegments) message()    {}
func (SetOrientation) message() {}
func (SetCells) message()       {}
func (Redraw) message()         {}
