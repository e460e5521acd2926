// Package replay records per-frame input snapshots and plays them back
// through the simulation. Together with the persisted world seed this
// reproduces a session deterministically.
package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/veilgate/duskrealm/internal/application/system"
)

// Recorder accumulates input frames for later playback
type Recorder struct {
	data      Data
	recording bool
	frame     int
}

// NewRecorder creates a recorder bound to a world seed
func NewRecorder(seed int64, world string) *Recorder {
	return &Recorder{
		data: Data{
			Version:   "1.0",
			Seed:      seed,
			World:     world,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600), // ~1 minute at 60fps
		},
		recording: true,
	}
}

// RecordFrame appends one frame's input snapshot together with the raw
// delta the simulation was stepped with
func (r *Recorder) RecordFrame(in system.InputState, rawDelta float64) {
	if !r.recording {
		return
	}
	r.data.Frames = append(r.data.Frames, FrameInput{
		F:  r.frame,
		Dt: rawDelta,
		U:  in.Up,
		D:  in.Down,
		L:  in.Left,
		R:  in.Right,
		A:  in.Attack,
		T:  in.ToggleRealm,
	})
	r.frame++
}

// Save writes the recording to a JSON file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return fmt.Errorf("replay: no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("replay: failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("replay: failed to encode: %w", err)
	}
	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// GetData returns the accumulated data (for tests)
func (r *Recorder) GetData() Data {
	return r.data
}

// GenerateFilename creates a timestamped replay filename
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
