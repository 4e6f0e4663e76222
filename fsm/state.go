package fsm

import (
	"image/color"

	"github.com/milk9111/warden/common"
)

// State is a behaviour that owns control while it is the machine's current
// state. None of the hooks may fail.
type State interface {
	Name() string
	OnStateEnter()
	OnStateExit()
	OnStateUpdate(dt float64)
}

// GizmoDrawer is implemented by states that want to add their own debug
// visualisation. It must not mutate the state.
type GizmoDrawer interface {
	DrawStateGizmos(g Gizmos)
}

// Gizmos is the debug-draw surface. Implementations decide how world space
// maps to the screen.
type Gizmos interface {
	WireSphere(center common.Vec3, radius float64, clr color.Color)
	WireCube(center, size common.Vec3, clr color.Color)
}
