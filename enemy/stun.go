package enemy

// StunState freezes the agent for a fixed time. The cooldown that follows
// is owned by the agent, not by this state.
type StunState struct {
	behaviour
	stunTime float64

	timer float64
}

func newStunState(a *Agent, tmpl StunTemplate) *StunState {
	return &StunState{
		behaviour: behaviour{agent: a},
		stunTime:  tmpl.Time,
		timer:     -1,
	}
}

func (s *StunState) Name() string { return KindStun.String() }

func (s *StunState) Kind() Kind { return KindStun }

func (s *StunState) StunTime() float64 { return s.stunTime }

func (s *StunState) Timer() float64 { return s.timer }

func (s *StunState) OnStateEnter() {
	s.agent.mobility.SetStopped(true)
	s.timer = 0
}

func (s *StunState) OnStateExit() {}

func (s *StunState) OnStateUpdate(dt float64) {
	if s.timer < 0 {
		return
	}
	s.timer += dt
	if s.timer < s.stunTime {
		return
	}
	s.timer = -1

	a := s.agent
	switch {
	case a.forceChasePlayer:
		a.SetState(a.chase)
	case a.patrol.Enabled():
		a.SetState(a.patrol)
	default:
		a.SetState(a.wander)
	}
}
