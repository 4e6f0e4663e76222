package enemy

import (
	"fmt"

	"github.com/milk9111/warden/common"
	"github.com/milk9111/warden/fsm"
	"golang.org/x/image/colornames"
)

const patrolGizmoRadius = 0.3

// PatrolState walks an ordered, wrapping waypoint route. The index advances
// on entry when the agent already stands on the current waypoint.
type PatrolState struct {
	behaviour
	enabled   bool
	speed     float64
	waypoints []common.Vec3

	index int
}

func newPatrolState(a *Agent, tmpl PatrolTemplate) *PatrolState {
	return &PatrolState{
		behaviour: behaviour{agent: a},
		enabled:   tmpl.Enabled,
		speed:     tmpl.Speed,
		waypoints: append([]common.Vec3(nil), tmpl.Waypoints...),
	}
}

func (s *PatrolState) Name() string { return KindPatrol.String() }

func (s *PatrolState) Kind() Kind { return KindPatrol }

func (s *PatrolState) Enabled() bool { return s.enabled }

func (s *PatrolState) Index() int { return s.index }

// Waypoint returns the waypoint currently targeted.
func (s *PatrolState) Waypoint() common.Vec3 {
	s.mustHaveRoute()
	return s.waypoints[s.index]
}

func (s *PatrolState) OnStateEnter() {
	s.mustHaveRoute()
	a := s.agent
	if a.arrived(s.waypoints[s.index]) {
		s.index = (s.index + 1) % len(s.waypoints)
	}
	a.mobility.SetStopped(false)
	if s.speed > 0 {
		a.mobility.SetSpeed(s.speed)
	}
	a.mobility.SetDestination(s.waypoints[s.index])
	a.animator.SetBool(ParamMoving, true)
	a.animator.SetBool(ParamChasing, false)
}

func (s *PatrolState) OnStateExit() {}

func (s *PatrolState) OnStateUpdate(float64) {
	a := s.agent
	if a.arrived(s.waypoints[s.index]) {
		a.SetState(a.idle)
	}
}

func (s *PatrolState) DrawStateGizmos(g fsm.Gizmos) {
	for i, wp := range s.waypoints {
		clr := colornames.Yellow
		if i == s.index {
			clr = colornames.Orange
		}
		g.WireSphere(wp, patrolGizmoRadius, clr)
	}
}

func (s *PatrolState) mustHaveRoute() {
	if len(s.waypoints) == 0 {
		panic(fmt.Sprintf("enemy %s: patrol has no waypoints", s.agent.name))
	}
}
