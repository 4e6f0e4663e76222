package fsm

import (
	"image/color"
	"reflect"
	"testing"

	"github.com/milk9111/warden/common"
)

type traceState struct {
	name    string
	log     *[]string
	updates int
	onTick  func()
}

func (s *traceState) Name() string { return s.name }

func (s *traceState) OnStateEnter() { *s.log = append(*s.log, "enter:"+s.name) }

func (s *traceState) OnStateExit() { *s.log = append(*s.log, "exit:"+s.name) }

func (s *traceState) OnStateUpdate(dt float64) {
	s.updates++
	if s.onTick != nil {
		s.onTick()
	}
}

type gizmoState struct {
	traceState
	drawn int
}

func (s *gizmoState) DrawStateGizmos(g Gizmos) {
	s.drawn++
	g.WireSphere(common.Vec3{}, 1, color.White)
}

type countingGizmos struct {
	spheres int
	cubes   int
}

func (g *countingGizmos) WireSphere(common.Vec3, float64, color.Color) { g.spheres++ }

func (g *countingGizmos) WireCube(common.Vec3, common.Vec3, color.Color) { g.cubes++ }

func TestMachineTransitionOrdering(t *testing.T) {
	cases := []struct {
		name   string
		target func(a, b *traceState) *traceState
		want   []string
	}{
		{
			name:   "a_to_b",
			target: func(a, b *traceState) *traceState { return b },
			want:   []string{"enter:a", "exit:a", "enter:b"},
		},
		{
			name:   "self_transition",
			target: func(a, b *traceState) *traceState { return a },
			want:   []string{"enter:a", "exit:a", "enter:a"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var log []string
			a := &traceState{name: "a", log: &log}
			b := &traceState{name: "b", log: &log}

			m := NewMachine[*traceState](a)
			m.Start()
			m.SetState(c.target(a, b))

			if !reflect.DeepEqual(log, c.want) {
				t.Fatalf("got %v, want %v", log, c.want)
			}
			if m.Current() != c.target(a, b) {
				t.Fatalf("current = %s, want %s", m.Current().Name(), c.target(a, b).Name())
			}
		})
	}
}

func TestMachineStartIsIdempotent(t *testing.T) {
	var log []string
	a := &traceState{name: "a", log: &log}
	m := NewMachine[*traceState](a)

	if m.Current() != nil {
		t.Fatalf("expected no current state before Start")
	}
	m.Update(0.1)
	if a.updates != 0 {
		t.Fatalf("update before Start should not reach the state")
	}

	m.Start()
	m.Start()
	if len(log) != 1 {
		t.Fatalf("expected a single enter, got %v", log)
	}
}

func TestMachineTransitionFromInsideUpdateIsLastWriteWins(t *testing.T) {
	var log []string
	a := &traceState{name: "a", log: &log}
	b := &traceState{name: "b", log: &log}
	c := &traceState{name: "c", log: &log}

	var m *Machine[*traceState]
	a.onTick = func() {
		m.SetState(b)
		m.SetState(c)
	}

	var seen [][2]string
	m = NewMachine(a, OnTransition[*traceState](func(from, to *traceState) {
		fromName := ""
		if from != nil {
			fromName = from.Name()
		}
		seen = append(seen, [2]string{fromName, to.Name()})
	}))
	m.Start()
	m.Update(0.016)

	if m.Current() != c {
		t.Fatalf("current = %s, want c", m.Current().Name())
	}
	want := []string{"enter:a", "exit:a", "enter:b", "exit:b", "enter:c"}
	if !reflect.DeepEqual(log, want) {
		t.Fatalf("got %v, want %v", log, want)
	}
	wantSeen := [][2]string{{"", "a"}, {"a", "b"}, {"b", "c"}}
	if !reflect.DeepEqual(seen, wantSeen) {
		t.Fatalf("transition hook saw %v, want %v", seen, wantSeen)
	}
}

func TestMachineRejectsNilStates(t *testing.T) {
	expectPanic := func(t *testing.T, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic")
			}
		}()
		fn()
	}

	t.Run("nil_entry", func(t *testing.T) {
		expectPanic(t, func() { NewMachine[*traceState](nil) })
	})

	t.Run("nil_target", func(t *testing.T) {
		var log []string
		m := NewMachine(&traceState{name: "a", log: &log})
		m.Start()
		expectPanic(t, func() { m.SetState(nil) })
	})

	t.Run("before_start", func(t *testing.T) {
		var log []string
		m := NewMachine(&traceState{name: "a", log: &log})
		expectPanic(t, func() { m.SetState(&traceState{name: "b", log: &log}) })
	})
}

func TestMachineDrawGizmosDelegatesToState(t *testing.T) {
	var log []string
	plain := &traceState{name: "plain", log: &log}
	fancy := &gizmoState{traceState: traceState{name: "fancy", log: &log}}

	m := NewMachine[State](plain)
	g := &countingGizmos{}

	m.DrawGizmos(g)
	if g.spheres != 0 {
		t.Fatalf("nothing should draw before Start")
	}

	m.Start()
	m.DrawGizmos(g)
	if g.spheres != 0 {
		t.Fatalf("plain state has no gizmos")
	}

	m.SetState(fancy)
	m.DrawGizmos(g)
	if fancy.drawn != 1 || g.spheres != 1 {
		t.Fatalf("expected fancy state to draw once, drawn=%d spheres=%d", fancy.drawn, g.spheres)
	}
}
