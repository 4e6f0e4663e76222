package enemy

// GameOverState is terminal. It is only reached through Agent.Halt.
type GameOverState struct {
	behaviour
}

func (s *GameOverState) Name() string { return KindGameOver.String() }

func (s *GameOverState) Kind() Kind { return KindGameOver }

func (s *GameOverState) OnStateEnter() {
	a := s.agent
	a.mobility.SetStopped(true)
	a.animator.SetBool(ParamMoving, false)
	a.animator.SetBool(ParamChasing, false)
}

func (s *GameOverState) OnStateExit() {}

func (s *GameOverState) OnStateUpdate(float64) {}
