package enemy

import (
	"github.com/milk9111/warden/common"
	"github.com/milk9111/warden/fsm"
	"golang.org/x/image/colornames"
)

const wanderGizmoRadius = 0.5

// WanderState walks to a random point sampled in the agent's bounds.
type WanderState struct {
	behaviour
	speed float64
	clip  string

	target common.Vec3
}

func newWanderState(a *Agent, tmpl WanderTemplate) *WanderState {
	return &WanderState{
		behaviour: behaviour{agent: a},
		speed:     tmpl.Speed,
		clip:      tmpl.Clip,
	}
}

func (s *WanderState) Name() string { return KindWander.String() }

func (s *WanderState) Kind() Kind { return KindWander }

func (s *WanderState) Target() common.Vec3 { return s.target }

func (s *WanderState) OnStateEnter() {
	a := s.agent
	a.mobility.SetSpeed(s.speed)
	a.mobility.SetStopped(false)

	// Sampled in bounds-local space: the bounds center is not added.
	ext := a.bounds.Extents()
	s.target = common.Vec3{
		X: common.RandomRange(a.rng, -ext.X, ext.X),
		Y: ext.Y,
		Z: common.RandomRange(a.rng, -ext.Z, ext.Z),
	}
	a.mobility.SetDestination(s.target)
	if dest, ok := a.mobility.Destination(); ok {
		s.target = dest
	}
	a.animator.SetBool(ParamMoving, true)
	a.animator.SetBool(ParamChasing, false)
	a.audio.PlayOneShot(s.clip)
	a.logger.Debug("wander target", "agent", a.name, "x", s.target.X, "z", s.target.Z)
}

func (s *WanderState) OnStateExit() {}

func (s *WanderState) OnStateUpdate(float64) {
	a := s.agent
	if a.arrived(s.target) {
		a.SetState(a.idle)
	}
}

func (s *WanderState) DrawStateGizmos(g fsm.Gizmos) {
	g.WireSphere(s.target, wanderGizmoRadius, colornames.Magenta)
}
