package mock

import (
	"context"
	"math/rand"
	"time"

	"github.com/HaPhanBaoMinh/segbar/internal/domain"
	"github.com/HaPhanBaoMinh/segbar/internal/mathx"
)

type Mode int

const (
	// Level wobbles a fraction around a slowly moving base.
	Level Mode = iota
	// Discharge walks a pack voltage down from full charge and starts over
	// once it drops below empty.
	Discharge
)

// Source produces synthetic SetValue messages for demos and tests.
type Source struct {
	mode     Mode
	interval time.Duration
	cells    int
	rnd      *rand.Rand
	start    time.Time
}

func New(mode Mode, interval time.Duration, cells int) *Source {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	if cells < 1 {
		cells = 1
	}
	src := rand.NewSource(time.Now().UnixNano())
	return &Source{mode: mode, interval: interval, cells: cells, rnd: rand.New(src), start: time.Now()}
}

// WithSeed makes the generated sequence reproducible.
func (s *Source) WithSeed(seed int64) *Source {
	s.rnd = rand.New(rand.NewSource(seed))
	return s
}

func (s *Source) Stream(ctx context.Context) (<-chan domain.Message, error) {
	ch := make(chan domain.Message, 16)
	go func() {
		defer close(ch)
		tick := time.NewTicker(s.interval)
		defer tick.Stop()

		level := 0.5
		volts := 4.2
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
			}

			var v float64
			switch s.mode {
			case Discharge:
				volts = nextVoltage(volts, s.rnd)
				v = volts * float64(s.cells)
			default:
				level = nextLevel(level, s.rnd)
				v = level
			}

			select {
			case ch <- domain.SetValue{Value: v}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func nextLevel(v float64, r *rand.Rand) float64 {
	return mathx.Clamp(v+(r.Float64()-0.5)*0.1, 0, 1)
}

// nextVoltage drops 2-10mV per step with a little noise, then recharges.
func nextVoltage(v float64, r *rand.Rand) float64 {
	v -= 0.002 + 0.008*r.Float64()
	if v < 3.35 {
		return 4.2
	}
	return v
}
