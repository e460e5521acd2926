// Package audio plays short generated cues for gameplay events. All
// tones are synthesized; there are no asset files.
package audio

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/veilgate/duskrealm/internal/event"
)

const sampleRate = beep.SampleRate(48000)

// Sink subscribes to the event bus and maps each event kind to a tone.
// If the speaker cannot be initialized (no audio device, headless CI)
// the sink stays silent and gameplay is unaffected.
type Sink struct {
	mixer       *beep.Mixer
	initialized bool
}

// NewSink creates a silent sink; call Init to start the speaker
func NewSink() *Sink {
	return &Sink{mixer: &beep.Mixer{}}
}

// Init starts the speaker and attaches the mixer. Errors are logged
// and leave the sink disabled rather than failing the game.
func (s *Sink) Init() {
	if s.initialized {
		return
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		log.Warn("audio unavailable, continuing silent", "err", err)
		return
	}
	speaker.Play(s.mixer)
	s.initialized = true
}

// Attach subscribes the sink to the bus
func (s *Sink) Attach(bus *event.Bus) {
	bus.Subscribe(s.handle)
}

func (s *Sink) handle(ev event.Event) {
	if !s.initialized {
		return
	}

	var streamer beep.Streamer
	switch ev.Kind {
	case event.AttackStarted:
		streamer = NewTone(660, 60*time.Millisecond, WaveSquare, 0.15, sampleRate)
	case event.HitLanded:
		streamer = NewTone(220, 90*time.Millisecond, WaveSaw, 0.25, sampleRate)
	case event.EnemyDied:
		streamer = NewSweep(440, 110, 250*time.Millisecond, 0.25, sampleRate)
	case event.PlayerDied:
		streamer = NewSweep(330, 55, 900*time.Millisecond, 0.3, sampleRate)
	case event.RealmToggled:
		streamer = NewSweep(220, 880, 400*time.Millisecond, 0.2, sampleRate)
	default:
		return
	}

	// The mixer is streamed from the speaker goroutine; mutations must
	// hold the speaker lock.
	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

// Close silences the sink
func (s *Sink) Close() {
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}
