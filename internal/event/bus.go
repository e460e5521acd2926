// Package event carries discrete named game events from the core
// simulation to external listeners (audio, logging). Publishing is
// synchronous and never blocks: handlers must return promptly and the
// core never waits on a listener completing its side effect.
package event

// Kind identifies a game event
type Kind int

const (
	AttackStarted Kind = iota
	HitLanded
	EnemyDied
	PlayerDied
	RealmToggled
)

// String returns the event name
func (k Kind) String() string {
	switch k {
	case AttackStarted:
		return "attack-started"
	case HitLanded:
		return "hit-landed"
	case EnemyDied:
		return "enemy-died"
	case PlayerDied:
		return "player-died"
	case RealmToggled:
		return "realm-toggled"
	default:
		return "unknown"
	}
}

// Event is a single occurrence. X, Y locate it in world pixels where
// that makes sense; Value carries a kind-specific payload (damage
// dealt, gold awarded).
type Event struct {
	Kind  Kind
	X, Y  float64
	Value int
}

// Handler receives published events
type Handler func(Event)

// Bus is a minimal synchronous publish/subscribe hub. It is used from
// the single-threaded frame loop only and needs no locking.
type Bus struct {
	handlers []Handler
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for all events
func (b *Bus) Subscribe(h Handler) {
	b.handlers = append(b.handlers, h)
}

// Publish delivers the event to every subscriber in order
func (b *Bus) Publish(e Event) {
	for _, h := range b.handlers {
		h(e)
	}
}
