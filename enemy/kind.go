package enemy

import "github.com/milk9111/warden/fsm"

// Kind identifies a behaviour state variant.
type Kind int

const (
	KindIdle Kind = iota
	KindWander
	KindChase
	KindPatrol
	KindStun
	KindGameOver
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindWander:
		return "wander"
	case KindChase:
		return "chase"
	case KindPatrol:
		return "patrol"
	case KindStun:
		return "stun"
	case KindGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// State is the closed set of enemy behaviours.
type State interface {
	fsm.State
	Kind() Kind
}

// behaviour carries the non-owning back-reference every state holds.
type behaviour struct {
	agent *Agent
}
