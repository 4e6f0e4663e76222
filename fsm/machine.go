package fsm

import (
	"fmt"
	"log/slog"
	"reflect"
)

// TransitionFunc observes a completed transition. from is nil for the
// initial enter performed by Start.
type TransitionFunc[S State] func(from, to S)

// Machine is the state host. It holds exactly one current state once started
// and runs the outgoing OnStateExit strictly before the incoming
// OnStateEnter, including when a state re-enters itself.
type Machine[S State] struct {
	entry   S
	current S
	started bool

	logger       *slog.Logger
	name         string
	onTransition TransitionFunc[S]
}

type Option[S State] func(*Machine[S])

// WithLogger sets the logger used for transition traces.
func WithLogger[S State](logger *slog.Logger) Option[S] {
	return func(m *Machine[S]) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithName tags transition traces with the owning agent's name.
func WithName[S State](name string) Option[S] {
	return func(m *Machine[S]) {
		m.name = name
	}
}

// OnTransition registers a hook that runs after every completed transition.
func OnTransition[S State](fn TransitionFunc[S]) Option[S] {
	return func(m *Machine[S]) {
		m.onTransition = fn
	}
}

// NewMachine returns a machine that will enter entry on Start. A missing
// entry state is a programming error.
func NewMachine[S State](entry S, opts ...Option[S]) *Machine[S] {
	if isNil(entry) {
		panic("fsm: machine requires an entry state")
	}
	m := &Machine[S]{
		entry:  entry,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start makes the entry state current and enters it. Calling Start twice
// is a no-op.
func (m *Machine[S]) Start() {
	if m.started {
		return
	}
	m.started = true
	m.current = m.entry
	m.logger.Debug("fsm start", "agent", m.name, "state", m.current.Name())
	m.current.OnStateEnter()
	if m.onTransition != nil {
		var none S
		m.onTransition(none, m.current)
	}
}

// SetState exits the current state and enters next. It is safe to call from
// inside OnStateUpdate; the transition happens immediately, so when a tick
// requests several transitions the last one wins.
func (m *Machine[S]) SetState(next S) {
	if isNil(next) {
		panic("fsm: transition to nil state")
	}
	if !m.started {
		panic(fmt.Sprintf("fsm: transition to %s before Start", next.Name()))
	}

	prev := m.current
	prev.OnStateExit()
	m.current = next
	m.logger.Debug("fsm transition", "agent", m.name, "from", prev.Name(), "to", next.Name())
	next.OnStateEnter()
	if m.onTransition != nil {
		m.onTransition(prev, next)
	}
}

// Update forwards one tick to the current state.
func (m *Machine[S]) Update(dt float64) {
	if !m.started {
		return
	}
	m.current.OnStateUpdate(dt)
}

// Current returns the active state. Before Start it returns the zero value.
func (m *Machine[S]) Current() S {
	return m.current
}

func (m *Machine[S]) Started() bool {
	return m.started
}

// DrawGizmos lets the current state draw itself if it supports it.
func (m *Machine[S]) DrawGizmos(g Gizmos) {
	if !m.started || g == nil {
		return
	}
	if d, ok := any(m.current).(GizmoDrawer); ok {
		d.DrawStateGizmos(g)
	}
}

func isNil(s State) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return v.IsNil()
	}
	return false
}
