package power

import (
	"context"
	"time"

	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/HaPhanBaoMinh/segbar/internal/domain"
)

var ErrNoBattery = pkgerrors.New("no batteries found")

// replaced in tests
var getAll = battery.GetAll

type Mode int

const (
	// Voltage reports the pack voltage, for the battery widget.
	Voltage Mode = iota
	// Charge reports current/full capacity as a fraction, for the level widget.
	Charge
)

// Source polls the batteries of the local machine.
type Source struct {
	mode     Mode
	index    int
	interval time.Duration
}

func New(mode Mode, index int, interval time.Duration) *Source {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Source{mode: mode, index: index, interval: interval}
}

// Probe reads the battery once, so a machine without one is reported before
// anything is started.
func (s *Source) Probe() error {
	_, err := s.read()
	return err
}

func (s *Source) Stream(ctx context.Context) (<-chan domain.Message, error) {
	first, err := s.read()
	if err != nil {
		return nil, err
	}

	ch := make(chan domain.Message, 4)
	go func() {
		defer close(ch)
		ch <- domain.SetValue{Value: first}

		tick := time.NewTicker(s.interval)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
			}

			v, err := s.read()
			if err != nil {
				logrus.WithError(err).Warn("failed to read battery")
				continue
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

func (s *Source) read() (float64, error) {
	batteries, err := getAll()
	if len(batteries) == 0 {
		if err != nil {
			return 0, pkgerrors.Wrap(err, "failed to list batteries")
		}
		return 0, ErrNoBattery
	}
	if s.index < 0 || s.index >= len(batteries) {
		return 0, pkgerrors.Errorf("battery %d not found, %d available", s.index, len(batteries))
	}

	bat := batteries[s.index]
	if bat == nil {
		if err != nil {
			return 0, pkgerrors.Wrapf(err, "battery %d unreadable", s.index)
		}
		return 0, pkgerrors.Errorf("battery %d unreadable", s.index)
	}
	if err != nil {
		// partial reads still carry the fields we need most of the time
		logrus.WithError(err).Debug("partial battery information")
	}

	switch s.mode {
	case Charge:
		if bat.Full <= 0 {
			return 0, pkgerrors.Errorf("battery %d reports no full capacity", s.index)
		}
		return bat.Current / bat.Full, nil
	default:
		if bat.Voltage <= 0 {
			return 0, pkgerrors.Errorf("battery %d reports no voltage", s.index)
		}
		return bat.Voltage, nil
	}
}
