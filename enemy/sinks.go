package enemy

import "github.com/milk9111/warden/common"

// Animation parameter names written to the Animator.
const (
	ParamMoving  = "isMoving"
	ParamChasing = "isChasing"
)

// PositionSource exposes a read-only world position.
type PositionSource interface {
	Position() common.Vec3
}

// Mobility is the locomotion capability the agent commands. The agent's own
// position is read from it.
type Mobility interface {
	PositionSource
	SetDestination(p common.Vec3)
	// Destination reports where the provider actually walks to, which may
	// differ from the requested point when that point is unreachable.
	Destination() (common.Vec3, bool)
	SetStopped(stopped bool)
	Stopped() bool
	SetSpeed(speed float64)
	Speed() float64
	StoppingDistance() float64
}

// Animator receives animation intent.
type Animator interface {
	SetBool(name string, value bool)
}

// AudioSink plays one-shot cues by clip name.
type AudioSink interface {
	PlayOneShot(clip string)
}

// Notifier is a zero-argument broadcast the agent subscribes to once.
type Notifier interface {
	Subscribe(fn func()) (unsubscribe func())
}
