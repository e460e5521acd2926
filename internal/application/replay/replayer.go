package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/veilgate/duskrealm/internal/application/system"
)

// Load reads a recording from a JSON file
func Load(filename string) (*Data, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("replay: failed to read %s: %w", filename, err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("replay: failed to parse %s: %w", filename, err)
	}
	if len(data.Frames) == 0 {
		return nil, fmt.Errorf("replay: %s contains no frames", filename)
	}
	return &data, nil
}

// Replayer feeds recorded input snapshots back to the simulation, one
// per frame
type Replayer struct {
	data *Data
	idx  int
}

// NewReplayer creates a replayer over loaded data
func NewReplayer(data *Data) *Replayer {
	return &Replayer{data: data}
}

// Seed returns the world seed the recording was made with
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// Next returns the next frame's input and the raw delta it was
// recorded with. ok is false once the recording is exhausted.
func (r *Replayer) Next() (in system.InputState, rawDelta float64, ok bool) {
	if r.idx >= len(r.data.Frames) {
		return system.InputState{}, 0, false
	}
	f := r.data.Frames[r.idx]
	r.idx++
	return system.InputState{
		Up:          f.U,
		Down:        f.D,
		Left:        f.L,
		Right:       f.R,
		Attack:      f.A,
		ToggleRealm: f.T,
	}, f.Dt, true
}

// Rewind restarts playback from the first frame
func (r *Replayer) Rewind() {
	r.idx = 0
}

// Done reports whether all frames have been consumed
func (r *Replayer) Done() bool {
	return r.idx >= len(r.data.Frames)
}
