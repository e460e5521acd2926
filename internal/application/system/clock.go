package system

import (
	"sort"

	"github.com/veilgate/duskrealm/internal/infrastructure/config"
)

// Clock smooths and bounds raw frame deltas before they scale any
// movement or timer decrement. Host frame scheduling is jittery; a
// single slow frame must not teleport entities or skip an attack
// window. The pipeline is: median of a short rolling window, then
// exponential smoothing, then a hard clamp. Deterministic for a given
// raw input sequence.
type Clock struct {
	window   []float64
	capacity int
	next     int
	filled   int

	smoothed float64
	primed   bool

	minDelta float64
	maxDelta float64
	alpha    float64
}

// NewClock creates a clock from config bounds
func NewClock(cfg config.ClockConfig) *Clock {
	capacity := cfg.MedianWindow
	if capacity < 1 {
		capacity = 1
	}
	return &Clock{
		window:   make([]float64, capacity),
		capacity: capacity,
		minDelta: cfg.MinDelta,
		maxDelta: cfg.MaxDelta,
		alpha:    cfg.Alpha,
	}
}

// Tick feeds one raw frame delta (seconds) and returns the smoothed,
// clamped delta to drive this frame's update.
func (c *Clock) Tick(raw float64) float64 {
	c.window[c.next] = raw
	c.next = (c.next + 1) % c.capacity
	if c.filled < c.capacity {
		c.filled++
	}

	m := c.median()
	if !c.primed {
		c.smoothed = m
		c.primed = true
	} else {
		c.smoothed += c.alpha * (m - c.smoothed)
	}

	dt := c.smoothed
	if dt < c.minDelta {
		dt = c.minDelta
	}
	if dt > c.maxDelta {
		dt = c.maxDelta
	}
	return dt
}

func (c *Clock) median() float64 {
	samples := make([]float64, c.filled)
	copy(samples, c.window[:c.filled])
	sort.Float64s(samples)
	mid := len(samples) / 2
	if len(samples)%2 == 1 {
		return samples[mid]
	}
	return (samples[mid-1] + samples[mid]) / 2
}
