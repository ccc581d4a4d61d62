package domain

import "context"

// Canvas is the drawing collaborator provided by the host. Origin is top-left,
// y grows downwards, units are device independent.
type Canvas interface {
	Size() (w, h float64)
	Clear(c RGB)
	SetColor(c RGB)
	FillRect(r Rect)
	Present()
}

// MessageSource feeds widget messages into the host loop. The returned channel
// is closed when ctx is cancelled or the source gives up.
type MessageSource interface {
	Stream(ctx context.Context) (<-chan Message, error)
}

// Snapshot is the externally visible state of a widget after one message.
type Snapshot struct {
	Kind   string      `json:"kind"`
	State  WidgetState `json:"state"`
	Fill   FillResult  `json:"fill"`
	Output float64     `json:"output"`
}

// SnapshotSink receives a Snapshot after every handled message.
type SnapshotSink interface {
	Publish(s Snapshot)
}
