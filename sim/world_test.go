package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/milk9111/warden/common"
	"github.com/milk9111/warden/enemy"
	"github.com/milk9111/warden/levels"
	"github.com/milk9111/warden/prefabs"
	"github.com/milk9111/warden/scenario"
)

const testDT = 1.0 / 60

func corridor(guard common.Vec3) *levels.Level {
	return &levels.Level{
		Name:     "corridor",
		TileSize: 1,
		Bounds:   common.Bounds{Size: common.Vec3{X: 20, Y: 2, Z: 10}},
		Routes:   map[string][]common.Vec3{},
		EnemySpawns: []levels.EnemySpawn{
			{Name: "guard", Prefab: "enemy", Position: guard},
		},
		PlayerSpawn:  common.Vec3{X: -5},
		Objective:    common.Vec3{X: -3},
		HasObjective: true,
		Exit: common.Bounds{
			Center: common.Vec3{X: 6},
			Size:   common.Vec3{X: 2, Y: 2, Z: 2},
		},
		HasExit: true,
	}
}

func newTestWorld(t *testing.T, level *levels.Level, opts ...Option) *World {
	t.Helper()
	enemySpec, err := prefabs.LoadEnemySpec()
	if err != nil {
		t.Fatalf("LoadEnemySpec: %v", err)
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	opts = append([]Option{WithSeed(3)}, opts...)
	w, err := NewWorld(Config{Level: level, Enemy: enemySpec, Player: playerSpec}, opts...)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	t.Cleanup(w.Close)
	return w
}

func TestLoadConfigArena(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	w, err := NewWorld(cfg, WithSeed(1))
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	defer w.Close()
	w.Start()

	if len(w.Guards()) != 2 {
		t.Fatalf("expected 2 guards, got %d", len(w.Guards()))
	}
	for _, g := range w.Guards() {
		if g.Agent.Kind() != enemy.KindIdle {
			t.Fatalf("expected %s idle, got %s", g.Agent.Name(), g.Agent.Kind())
		}
	}
	east := w.Guards()[1]
	if east.Spawn.Route != "east" || !east.Agent.Patrol().Enabled() {
		t.Fatalf("expected east guard to patrol, got %+v", east.Spawn)
	}
	if got := w.Tracker().Text(); got != cfg.Hud.ObjectiveA {
		t.Fatalf("expected tracker text %q, got %q", cfg.Hud.ObjectiveA, got)
	}
}

func TestArenaWanderAlwaysArrives(t *testing.T) {
	const (
		seconds   = 300
		maxWander = 120.0
	)
	for _, seed := range []uint64{1, 5, 7, 10, 13} {
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		entered := map[string]int{}
		longest := 0
		w, err := NewWorld(cfg, WithSeed(seed), OnTransition(func(tr Transition) {
			if start, ok := entered[tr.Agent]; ok && tr.From == enemy.KindWander {
				longest = max(longest, tr.Tick-start)
				delete(entered, tr.Agent)
			}
			if tr.To == enemy.KindWander {
				entered[tr.Agent] = tr.Tick
			}
		}))
		if err != nil {
			t.Fatalf("NewWorld: %v", err)
		}
		w.Start()
		w.Run(seconds*60, testDT)
		for _, start := range entered {
			longest = max(longest, w.Tick()-start)
		}
		w.Close()

		if got := float64(longest) * testDT; got > maxWander {
			t.Fatalf("seed %d: a guard wandered for %.1fs without arriving", seed, got)
		}
	}
}

func TestNewWorldRequiresSpecs(t *testing.T) {
	if _, err := NewWorld(Config{}); err == nil {
		t.Fatalf("expected error for empty config")
	}
}

func TestScriptedEscape(t *testing.T) {
	rt, err := scenario.Load("objective_run", nil)
	if err != nil {
		t.Fatalf("scenario.Load: %v", err)
	}
	var transitions []Transition
	w := newTestWorld(t, corridor(common.Vec3{X: 8, Z: 4}),
		WithScript(rt),
		OnTransition(func(tr Transition) { transitions = append(transitions, tr) }),
	)
	w.Start()

	ran := w.Run(3000, testDT)
	if !w.Won() {
		t.Fatalf("expected victory after %d ticks, player at %+v", ran, w.PlayerPosition())
	}

	g := w.Guards()[0].Agent
	if !g.ForceChasePlayer() {
		t.Fatalf("expected objective to force the chase")
	}
	if g.Kind() != enemy.KindGameOver || !g.Halted() {
		t.Fatalf("expected guard halted in game over, got %s", g.Kind())
	}
	if last := transitions[len(transitions)-1]; last.To != enemy.KindGameOver {
		t.Fatalf("expected final transition into game over, got %+v", last)
	}

	j := w.Journal()
	if j.Count(cueObjective) != 1 || j.Count(cueVictory) != 1 {
		t.Fatalf("expected one objective and one victory cue, got %v", j.Cues())
	}
	if !w.Tracker().PromptVisible() {
		t.Fatalf("expected end prompt after victory")
	}
}

func TestStrikeStunsGuard(t *testing.T) {
	var transitions []Transition
	w := newTestWorld(t, corridor(common.Vec3{X: 8, Z: 4}),
		OnTransition(func(tr Transition) { transitions = append(transitions, tr) }),
	)
	w.Start()

	if !w.Strike(0) || w.Strike(1) {
		t.Fatalf("unexpected Strike results")
	}
	if w.AgentState(0) != "idle" {
		t.Fatalf("strike must wait for the next tick")
	}

	w.Step(testDT)
	if got := w.AgentState(0); got != "stun" {
		t.Fatalf("expected stun after dispatch, got %s", got)
	}
	if w.Journal().Count("stun") != 1 {
		t.Fatalf("expected a stun cue, got %v", w.Journal().Cues())
	}
	last := transitions[len(transitions)-1]
	if last.From != enemy.KindIdle || last.To != enemy.KindStun || last.Tick != 0 {
		t.Fatalf("unexpected transition %+v", last)
	}

	// Three seconds of stun, then the guard wanders off.
	w.Run(int(3/testDT)+2, testDT)
	if got := w.AgentState(0); got != "wander" {
		t.Fatalf("expected wander after stun, got %s", got)
	}
}

func TestStrikeInViewSnapsBackToChase(t *testing.T) {
	var transitions []Transition
	w := newTestWorld(t, corridor(common.Vec3{X: -3, Z: 1}),
		OnTransition(func(tr Transition) { transitions = append(transitions, tr) }),
	)
	w.Start()
	if got := w.AgentState(0); got != "chase" {
		t.Fatalf("expected guard to spot the player at start, got %s", got)
	}

	w.Strike(0)
	w.Step(testDT)

	// Perception runs after the stun is entered and wins within the tick.
	n := len(transitions)
	if n < 2 {
		t.Fatalf("expected stun and chase transitions, got %+v", transitions)
	}
	if transitions[n-2].To != enemy.KindStun || transitions[n-1].To != enemy.KindChase {
		t.Fatalf("unexpected transitions %+v", transitions[n-2:])
	}
	if w.Guards()[0].Agent.CooldownTimer() != -1 {
		t.Fatalf("stun sequence should still be pending")
	}
	w.Strike(0)
	w.Step(testDT)
	if got := w.Journal().Count("stun"); got != 1 {
		t.Fatalf("expected the second strike ignored, got %d stun cues", got)
	}
}

func TestPlayerUseActivatesObjective(t *testing.T) {
	w := newTestWorld(t, corridor(common.Vec3{X: 8, Z: 4}))
	w.Start()

	w.Use()
	w.Step(testDT)
	if w.ObjectiveActive() {
		t.Fatalf("objective is out of reach")
	}

	w.MovePlayer(common.Vec3{X: 1})
	for i := 0; i < 60 && !w.ObjectiveActive(); i++ {
		w.Use()
		w.Step(testDT)
	}
	if !w.ObjectiveActive() {
		t.Fatalf("expected objective after walking to it, player at %+v", w.PlayerPosition())
	}
	if w.Guards()[0].Agent.Kind() != enemy.KindChase {
		t.Fatalf("expected forced chase, got %s", w.Guards()[0].Agent.Kind())
	}
}

func TestSchedulerOrder(t *testing.T) {
	var order []string
	mark := func(name string) System {
		return SystemFunc(func(*World, float64) { order = append(order, name) })
	}
	s := NewScheduler(mark("a"), mark("b"))
	s.Add(nil)
	s.Add(mark("c"))
	s.Update(nil, 0)

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Fatalf("unexpected order %v", order)
	}
	if len(s.Systems()) != 3 {
		t.Fatalf("expected 3 systems, got %d", len(s.Systems()))
	}
}

func TestGameLoop(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		w := newTestWorld(t, corridor(common.Vec3{X: 8, Z: 4}))
		w.Start()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()
		err := NewGameLoop(w, 120).Run(ctx)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline, got %v", err)
		}
	})

	t.Run("finished", func(t *testing.T) {
		w := newTestWorld(t, corridor(common.Vec3{X: 8, Z: 4}))
		w.Start()
		w.Session().DeclareVictory()
		if err := NewGameLoop(w, 120).Run(context.Background()); err != nil {
			t.Fatalf("Run: %v", err)
		}
		if w.Tick() != 1 {
			t.Fatalf("expected loop to stop after one tick, got %d", w.Tick())
		}
	})

	t.Run("stopped", func(t *testing.T) {
		w := newTestWorld(t, corridor(common.Vec3{X: 8, Z: 4}))
		loop := NewGameLoop(w, 120)
		loop.Stop()
		if err := loop.Run(context.Background()); err != nil {
			t.Fatalf("Run: %v", err)
		}
	})
}
