// Package sim assembles agents, the player and the session into a world
// and steps it at a fixed rate.
package sim

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/milk9111/warden/anim"
	"github.com/milk9111/warden/audio"
	"github.com/milk9111/warden/common"
	"github.com/milk9111/warden/enemy"
	"github.com/milk9111/warden/fsm"
	"github.com/milk9111/warden/interact"
	"github.com/milk9111/warden/levels"
	"github.com/milk9111/warden/nav"
	"github.com/milk9111/warden/scenario"
	"github.com/milk9111/warden/session"
	"golang.org/x/image/colornames"
)

const (
	cueObjective = "objective"
	cueVictory   = "victory"

	defaultObjectiveA = "Find the relic"
	defaultObjectiveB = "Get to the exit"
)

// Transition is one state change of one guard.
type Transition struct {
	Tick  int
	Agent string
	From  enemy.Kind
	To    enemy.Kind
}

type Option func(*World)

func WithLogger(logger *slog.Logger) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithSeed makes guard randomness reproducible.
func WithSeed(seed uint64) Option {
	return func(w *World) {
		w.seed = seed
		w.seeded = true
	}
}

// WithAudio adds a sink that hears every cue besides the world's journal.
func WithAudio(sink audio.Sink) Option {
	return func(w *World) {
		if sink != nil {
			w.extraAudio = sink
		}
	}
}

// WithScript lets a scenario drive the player.
func WithScript(rt *scenario.Runtime) Option {
	return func(w *World) {
		w.script = rt
	}
}

// OnTransition observes every guard state change.
func OnTransition(fn func(Transition)) Option {
	return func(w *World) {
		w.onTransition = fn
	}
}

// Guard is one enemy with the collaborators the world made for it.
type Guard struct {
	Agent    *enemy.Agent
	Body     *nav.Body
	Animator *anim.Animator
	Spawn    levels.EnemySpawn
}

type World struct {
	cfg       Config
	logger    *slog.Logger
	scheduler *Scheduler

	session *session.Session
	space   *nav.Space
	player  *nav.Body
	probe   *interact.Probe
	item    *session.TargetItem
	trigger *session.EndTrigger
	tracker *session.ObjectiveTracker
	guards  []*Guard

	journal    *audio.Journal
	extraAudio audio.Sink
	audio      audio.Sink

	script       *scenario.Runtime
	onTransition func(Transition)
	seed         uint64
	seeded       bool

	tick    int
	elapsed float64
	intent  common.Vec3
	use     bool
	closers []func()
	closed  bool
}

// NewWorld builds the world described by cfg. Nothing moves until Step.
func NewWorld(cfg Config, opts ...Option) (*World, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	w := &World{
		cfg:     cfg,
		logger:  slog.Default(),
		journal: &audio.Journal{},
	}
	for _, opt := range opts {
		opt(w)
	}
	w.audio = w.journal
	if w.extraAudio != nil {
		w.audio = audio.Tee{w.journal, w.extraAudio}
	}

	level := cfg.Level
	w.session = session.New(session.WithLogger(w.logger))
	w.space = nav.NewSpace(level.Bounds, nav.WithRouting(0))
	for _, wall := range level.Walls {
		w.space.AddWall(wall)
	}

	ps := cfg.Player
	w.player = w.space.AddBody(
		common.Vec3{X: level.PlayerSpawn.X, Y: ps.EyeHeight, Z: level.PlayerSpawn.Z},
		nav.BodyConfig{Radius: ps.Radius, Speed: ps.Speed, Player: true},
	)
	w.probe = interact.NewProbe(ps.Reach, w.logger)

	if level.HasObjective {
		w.item = session.NewTargetItem(w.session, level.Objective)
		w.probe.Add(w.item)
	}
	if level.HasExit {
		w.trigger = session.NewEndTrigger(w.session, level.Bounds, level.Exit, ps.Radius*2)
		w.closers = append(w.closers, w.trigger.Close)
	}

	objA, objB := defaultObjectiveA, defaultObjectiveB
	if cfg.Hud != nil {
		if cfg.Hud.ObjectiveA != "" {
			objA = cfg.Hud.ObjectiveA
		}
		if cfg.Hud.ObjectiveB != "" {
			objB = cfg.Hud.ObjectiveB
		}
	}
	w.tracker = session.NewObjectiveTracker(w.session, objA, objB)
	w.closers = append(w.closers, w.tracker.Close)

	w.closers = append(w.closers,
		w.session.Objective().Subscribe(func() { w.audio.PlayOneShot(cueObjective) }),
		w.session.Victory().Subscribe(w.haltGuards),
	)

	for i, spawn := range level.EnemySpawns {
		guard, err := w.spawnGuard(i, spawn)
		if err != nil {
			w.Close()
			return nil, err
		}
		w.guards = append(w.guards, guard)
		w.probe.Add(guard.Agent)
	}

	w.scheduler = NewScheduler(
		SystemFunc(dispatchSystem),
		SystemFunc(scriptSystem),
		SystemFunc(playerSystem),
		SystemFunc(interactSystem),
		SystemFunc(agentSystem),
		SystemFunc(physicsSystem),
		SystemFunc(triggerSystem),
	)
	return w, nil
}

func (w *World) spawnGuard(i int, spawn levels.EnemySpawn) (*Guard, error) {
	spec := w.cfg.Enemy
	cfg, err := spec.Config(w.cfg.Level.Routes)
	if err != nil {
		return nil, err
	}
	if spawn.Name != "" {
		cfg.Name = spawn.Name
	} else {
		cfg.Name = fmt.Sprintf("%s_%d", cfg.Name, i)
	}
	// Wander targets stay far enough from the arena edge to be reachable.
	margin := 2 * (spec.Radius + spec.StoppingDistance)
	cfg.Bounds = w.cfg.Level.Bounds
	cfg.Bounds.Size.X = math.Max(0, cfg.Bounds.Size.X-margin)
	cfg.Bounds.Size.Z = math.Max(0, cfg.Bounds.Size.Z-margin)
	if spawn.Route != "" {
		cfg.Patrol.Enabled = true
		cfg.Patrol.Waypoints = append([]common.Vec3(nil), w.cfg.Level.Routes[spawn.Route]...)
		if cfg.Patrol.Speed <= 0 {
			cfg.Patrol.Speed = cfg.Wander.Speed
		}
	}

	body := w.space.AddBody(spawn.Position, nav.BodyConfig{
		Radius:           spec.Radius,
		StoppingDistance: spec.StoppingDistance,
	})
	clips := make(map[string]anim.Clip, len(spec.Clips))
	for name, c := range spec.Clips {
		clips[name] = anim.Clip{Frames: c.Frames, FPS: c.FPS, Loop: c.Loop}
	}
	animator := anim.NewAnimator(clips)

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	if w.seeded {
		rng = rand.New(rand.NewPCG(w.seed, uint64(i)))
	}

	name := cfg.Name
	agent, err := enemy.New(cfg, enemy.Deps{
		Mobility:  body,
		Animator:  animator,
		Audio:     w.audio,
		Player:    w.player,
		Objective: w.session.Objective(),
	},
		enemy.WithLogger(w.logger),
		enemy.WithRand(rng),
		enemy.WithTransitionHook(func(from, to enemy.State) {
			w.observeTransition(name, from, to)
		}),
	)
	if err != nil {
		w.space.RemoveBody(body)
		return nil, fmt.Errorf("sim: guard %s: %w", name, err)
	}
	return &Guard{Agent: agent, Body: body, Animator: animator, Spawn: spawn}, nil
}

func (w *World) observeTransition(name string, from, to enemy.State) {
	t := Transition{Tick: w.tick, Agent: name, From: enemy.KindIdle, To: to.Kind()}
	if from != nil {
		t.From = from.Kind()
	}
	if to.Kind() == enemy.KindStun && w.cfg.Enemy.Stun.Clip != "" {
		w.audio.PlayOneShot(w.cfg.Enemy.Stun.Clip)
	}
	if w.onTransition != nil {
		w.onTransition(t)
	}
}

func (w *World) haltGuards() {
	w.audio.PlayOneShot(cueVictory)
	for _, g := range w.guards {
		g.Agent.Halt()
	}
}

// Start enters every guard's first state.
func (w *World) Start() {
	for _, g := range w.guards {
		g.Agent.Start()
	}
}

// Step advances the world by dt.
func (w *World) Step(dt float64) {
	if w.closed {
		return
	}
	w.scheduler.Update(w, dt)
	w.tick++
	w.elapsed += dt
}

// Run steps up to n ticks of dt, stopping early once Finished, and returns
// how many ticks ran.
func (w *World) Run(n int, dt float64) int {
	ran := 0
	for ; ran < n && !w.Finished(); ran++ {
		w.Step(dt)
	}
	return ran
}

// Finished reports victory, or a scripted run whose script has ended.
func (w *World) Finished() bool {
	if w.session.Won() {
		return true
	}
	return w.script != nil && w.script.Done()
}

// Close stops every guard and releases subscriptions.
func (w *World) Close() {
	if w.closed {
		return
	}
	w.closed = true
	for _, g := range w.guards {
		g.Agent.Close()
	}
	for _, c := range w.closers {
		c()
	}
	w.closers = nil
}

// MovePlayer sets the player's walking direction for the following ticks.
func (w *World) MovePlayer(dir common.Vec3) { w.intent = dir }

// Use asks the player to interact with the nearest thing on the next tick.
func (w *World) Use() { w.use = true }

// DrawGizmos draws the objective, the exit and every guard.
func (w *World) DrawGizmos(g fsm.Gizmos) {
	if g == nil {
		return
	}
	for _, wall := range w.cfg.Level.Walls {
		g.WireCube(wall.Center, wall.Size, colornames.Gray)
	}
	if w.item != nil && !w.item.Used() {
		g.WireSphere(w.item.Position(), 0.3, colornames.Gold)
	}
	if w.trigger != nil {
		clr := colornames.Darkgreen
		if w.trigger.Armed() {
			clr = colornames.Lime
		}
		g.WireCube(w.cfg.Level.Exit.Center, w.cfg.Level.Exit.Size, clr)
	}
	g.WireSphere(w.player.Position(), w.player.Radius(), colornames.White)
	for _, guard := range w.guards {
		guard.Agent.DrawGizmos(g)
	}
}

func (w *World) Tick() int                          { return w.tick }
func (w *World) Time() float64                      { return w.elapsed }
func (w *World) Session() *session.Session          { return w.session }
func (w *World) Tracker() *session.ObjectiveTracker { return w.tracker }
func (w *World) Journal() *audio.Journal            { return w.journal }
func (w *World) Level() *levels.Level               { return w.cfg.Level }
func (w *World) Player() *nav.Body                  { return w.player }
func (w *World) Guards() []*Guard                   { return w.guards }
func (w *World) Script() *scenario.Runtime          { return w.script }
