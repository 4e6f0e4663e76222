package enemy

import "github.com/milk9111/warden/common"

// IdleState stands still for a random duration, then hands over to Patrol
// when patrolling is enabled, otherwise to Wander.
type IdleState struct {
	behaviour
	timeRange common.Range

	timer    float64
	idleTime float64
}

func newIdleState(a *Agent, tmpl IdleTemplate) *IdleState {
	return &IdleState{
		behaviour: behaviour{agent: a},
		timeRange: tmpl.TimeRange,
		timer:     -1,
	}
}

func (s *IdleState) Name() string { return KindIdle.String() }

func (s *IdleState) Kind() Kind { return KindIdle }

// IdleTime is the duration sampled on the last entry.
func (s *IdleState) IdleTime() float64 { return s.idleTime }

// Timer is the time spent in the state, or -1 while inactive.
func (s *IdleState) Timer() float64 { return s.timer }

func (s *IdleState) OnStateEnter() {
	a := s.agent
	a.mobility.SetStopped(true)
	s.idleTime = s.timeRange.Sample(a.rng)
	s.timer = 0
	a.animator.SetBool(ParamMoving, false)
}

func (s *IdleState) OnStateExit() {
	s.timer = -1
}

func (s *IdleState) OnStateUpdate(dt float64) {
	a := s.agent
	// The agent-level perception check covers this as well and runs after
	// the state update, so it decides the tick's final state.
	if a.PlayerInRange() {
		a.SetState(a.idle)
	}

	if s.timer < 0 {
		return
	}
	s.timer += dt
	if s.timer < s.idleTime {
		return
	}
	a.logger.Debug("idle finished", "agent", a.name, "idle_time", s.idleTime)
	if a.patrol.Enabled() {
		a.SetState(a.patrol)
	} else {
		a.SetState(a.wander)
	}
}
