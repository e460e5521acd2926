package replay

// FrameInput records the input snapshot and the measured raw frame
// delta for a single frame. Playback feeds the recorded delta back so
// the smoothed timestep sequence matches the original session exactly.
type FrameInput struct {
	F  int     `json:"f"`           // Frame number
	Dt float64 `json:"dt"`          // Raw wall-clock delta, seconds
	U  bool    `json:"u,omitempty"` // Up held
	D  bool    `json:"d,omitempty"` // Down held
	L  bool    `json:"l,omitempty"` // Left held
	R  bool    `json:"r,omitempty"` // Right held
	A  bool    `json:"a,omitempty"` // Attack pressed
	T  bool    `json:"t,omitempty"` // Realm toggle pressed
}

// Data contains everything needed to replay a session: the recorded
// input stream plus the world seed that reproduces the generated grids
// (the eclipse layout included).
type Data struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	World     string       `json:"world"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
