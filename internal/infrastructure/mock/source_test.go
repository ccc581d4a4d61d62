package mock

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaPhanBaoMinh/segbar/internal/domain"
)

func collect(t *testing.T, ch <-chan domain.Message, n int) []float64 {
	t.Helper()
	out := make([]float64, 0, n)
	timeout := time.After(2 * time.Second)
	for len(out) < n {
		select {
		case msg, ok := <-ch:
			require.True(t, ok, "channel closed early")
			sv, ok := msg.(domain.SetValue)
			require.True(t, ok, "unexpected message %T", msg)
			out = append(out, sv.Value)
		case <-timeout:
			t.Fatalf("timed out after %d values", len(out))
		}
	}
	return out
}

func TestLevelStaysInUnitRange(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := New(Level, time.Millisecond, 1).WithSeed(1).Stream(ctx)
	require.NoError(t, err)
	for _, v := range collect(t, ch, 50) {
		assert.True(t, v >= 0 && v <= 1, "value %v", v)
	}
}

func TestDischargeScalesWithCells(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := New(Discharge, time.Millisecond, 3).WithSeed(7).Stream(ctx)
	require.NoError(t, err)
	for _, v := range collect(t, ch, 50) {
		assert.True(t, v > 3*3.3 && v <= 3*4.2, "value %v", v)
	}
}

func TestStreamClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := New(Level, time.Millisecond, 1).Stream(ctx)
	require.NoError(t, err)
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestNextVoltageRecharges(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	assert.Equal(t, 4.2, nextVoltage(3.351, r))
	v := nextVoltage(4.0, r)
	assert.True(t, v < 4.0 && v >= 3.99, "got %v", v)
}

func TestNextLevelClampsAtTheEdges(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		assert.InDelta(t, 0.5, nextLevel(1, r), 0.5)
		assert.InDelta(t, 0.5, nextLevel(0, r), 0.5)
	}
}
