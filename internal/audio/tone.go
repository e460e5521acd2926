package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// tone generates a fixed-length wave with a linear decay envelope so
// short cues end without a click
type tone struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	volume   float64
}

// NewTone creates a finite streamer playing a single decaying note
func NewTone(freq float64, duration time.Duration, wave WaveType, volume float64, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		volume:   volume,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.duration {
			return i, false
		}

		var val float64
		switch t.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			if t.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (t.phase - 0.5)
		}

		decay := 1.0 - float64(t.position)/float64(t.duration)
		val *= t.volume * decay

		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase = t.phase - math.Floor(t.phase) // Keep in [0, 1)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// sweep is a tone whose frequency glides from start to end over its
// length. Used for the realm shift cue.
type sweep struct {
	from     float64
	to       float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
	volume   float64
}

// NewSweep creates a finite sine streamer gliding between two
// frequencies
func NewSweep(from, to float64, duration time.Duration, volume float64, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		from:     from,
		to:       to,
		duration: rate.N(duration),
		rate:     rate,
		volume:   volume,
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, false
		}

		progress := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*progress
		val := math.Sin(2*math.Pi*s.phase) * s.volume * (1.0 - progress*0.5)

		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase = s.phase - math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }
