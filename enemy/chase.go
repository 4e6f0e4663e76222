package enemy

import "github.com/milk9111/warden/common"

// ChaseState follows the player. It gives up and wanders once the player
// leaves the view radius, unless the force-chase override is set.
type ChaseState struct {
	behaviour
	speed float64
	clip  string

	target    common.Vec3
	hasTarget bool
}

func newChaseState(a *Agent, tmpl ChaseTemplate) *ChaseState {
	return &ChaseState{
		behaviour: behaviour{agent: a},
		speed:     tmpl.Speed,
		clip:      tmpl.Clip,
	}
}

func (s *ChaseState) Name() string { return KindChase.String() }

func (s *ChaseState) Kind() Kind { return KindChase }

func (s *ChaseState) Target() common.Vec3 { return s.target }

func (s *ChaseState) OnStateEnter() {
	a := s.agent
	a.mobility.SetStopped(false)
	a.mobility.SetSpeed(s.speed)
	a.animator.SetBool(ParamMoving, false)
	a.animator.SetBool(ParamChasing, true)
	a.audio.PlayOneShot(s.clip)
	if !s.hasTarget {
		s.track(a.player.Position())
	}
	a.mobility.SetDestination(s.target)
}

func (s *ChaseState) OnStateExit() {}

func (s *ChaseState) OnStateUpdate(float64) {
	a := s.agent
	if !a.PlayerInRange() && !a.forceChasePlayer {
		a.SetState(a.wander)
		return
	}
	s.track(a.player.Position())
	a.mobility.SetDestination(s.target)
}

func (s *ChaseState) track(p common.Vec3) {
	s.target = p
	s.hasTarget = true
}
