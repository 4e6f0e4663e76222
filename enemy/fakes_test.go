package enemy

import (
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/milk9111/warden/common"
)

type fakeMobility struct {
	pos      common.Vec3
	dest     common.Vec3
	stopped  bool
	speed    float64
	stopDist float64
	dests    int
	// project, when set, stands in for the provider moving an unreachable
	// destination.
	project func(common.Vec3) common.Vec3
}

func (m *fakeMobility) Position() common.Vec3 { return m.pos }

func (m *fakeMobility) SetDestination(p common.Vec3) {
	if m.project != nil {
		p = m.project(p)
	}
	m.dest = p
	m.dests++
}

func (m *fakeMobility) Destination() (common.Vec3, bool) { return m.dest, m.dests > 0 }

func (m *fakeMobility) SetStopped(stopped bool) { m.stopped = stopped }

func (m *fakeMobility) Stopped() bool { return m.stopped }

func (m *fakeMobility) SetSpeed(speed float64) { m.speed = speed }

func (m *fakeMobility) Speed() float64 { return m.speed }

func (m *fakeMobility) StoppingDistance() float64 { return m.stopDist }

type fakePlayer struct {
	pos common.Vec3
}

func (p *fakePlayer) Position() common.Vec3 { return p.pos }

type fakeAnimator struct {
	params map[string]bool
}

func (a *fakeAnimator) SetBool(name string, value bool) {
	if a.params == nil {
		a.params = map[string]bool{}
	}
	a.params[name] = value
}

type fakeAudio struct {
	clips []string
}

func (a *fakeAudio) PlayOneShot(clip string) { a.clips = append(a.clips, clip) }

type fakeSignal struct {
	subs         map[int]func()
	next         int
	unsubscribed int
}

func (s *fakeSignal) Subscribe(fn func()) func() {
	if s.subs == nil {
		s.subs = map[int]func(){}
	}
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			s.unsubscribed++
		}
	}
}

func (s *fakeSignal) Emit() {
	for _, fn := range s.subs {
		fn()
	}
}

type recordingGizmos struct {
	spheres []color.Color
	cubes   []color.Color
}

func (g *recordingGizmos) WireSphere(_ common.Vec3, _ float64, clr color.Color) {
	g.spheres = append(g.spheres, clr)
}

func (g *recordingGizmos) WireCube(_, _ common.Vec3, clr color.Color) {
	g.cubes = append(g.cubes, clr)
}

// rig is an agent wired to fakes. The player starts far outside the view
// radius.
type rig struct {
	agent       *Agent
	mobility    *fakeMobility
	player      *fakePlayer
	animator    *fakeAnimator
	audio       *fakeAudio
	objective   *fakeSignal
	transitions []string
}

func newRig(t *testing.T, cfg Config) *rig {
	t.Helper()
	r := &rig{
		mobility:  &fakeMobility{stopDist: 0.1},
		player:    &fakePlayer{pos: common.Vec3{X: 100}},
		animator:  &fakeAnimator{},
		audio:     &fakeAudio{},
		objective: &fakeSignal{},
	}
	a, err := New(cfg, Deps{
		Mobility:  r.mobility,
		Animator:  r.animator,
		Audio:     r.audio,
		Player:    r.player,
		Objective: r.objective,
	},
		WithRand(rand.New(rand.NewPCG(7, 11))),
		WithTransitionHook(func(from, to State) {
			name := "start"
			if from != nil {
				name = from.Name()
			}
			r.transitions = append(r.transitions, name+">"+to.Name())
		}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.agent = a
	return r
}

func (r *rig) tick(n int, dt float64) {
	for i := 0; i < n; i++ {
		r.agent.Update(dt)
	}
}

func (r *rig) expectKind(t *testing.T, want Kind) {
	t.Helper()
	if got := r.agent.Kind(); got != want {
		t.Fatalf("expected state %s, got %s (transitions %v)", want, got, r.transitions)
	}
}
