package session

import "log/slog"

type Option func(*Session)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session scopes the game's broadcast signals and marshals externally raised
// events onto the simulation tick.
type Session struct {
	objective Signal
	victory   Signal
	events    eventQueue

	objectiveActive bool
	won             bool

	logger *slog.Logger
}

func New(opts ...Option) *Session {
	s := &Session{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Objective fires once, when the objective item is activated.
func (s *Session) Objective() *Signal { return &s.objective }

// Victory fires once, when the player reaches the armed end trigger.
func (s *Session) Victory() *Signal { return &s.victory }

// Post queues evt for the next Dispatch. Safe to call from any goroutine.
func (s *Session) Post(evt Event) {
	s.events.push(evt)
}

// Pending reports how many events wait for Dispatch.
func (s *Session) Pending() int {
	return s.events.len()
}

// Dispatch applies queued events in order and returns how many ran. It must
// be called from the tick thread.
func (s *Session) Dispatch() int {
	events := s.events.drain()
	for _, evt := range events {
		switch evt.Type {
		case EventObjective:
			s.ActivateObjective()
		case EventVictory:
			s.DeclareVictory()
		case EventActivate:
			target, ok := evt.Data.(Activator)
			if !ok || target == nil {
				s.logger.Warn("activate event without target", "data", evt.Data)
				continue
			}
			target.Activate()
		default:
			s.logger.Warn("unknown session event", "type", string(evt.Type))
		}
	}
	return len(events)
}

// ActivateObjective fires the objective signal the first time it is called.
func (s *Session) ActivateObjective() bool {
	if s.objectiveActive {
		return false
	}
	s.objectiveActive = true
	s.logger.Info("objective activated")
	s.objective.Emit()
	return true
}

// DeclareVictory fires the victory signal the first time it is called.
func (s *Session) DeclareVictory() bool {
	if s.won {
		return false
	}
	s.won = true
	s.logger.Info("victory")
	s.victory.Emit()
	return true
}

func (s *Session) ObjectiveActive() bool { return s.objectiveActive }

func (s *Session) Won() bool { return s.won }
