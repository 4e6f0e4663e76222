package enemy

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/milk9111/warden/common"
	"github.com/milk9111/warden/fsm"
	"golang.org/x/image/colornames"
)

// Deps are the non-owning collaborators an agent drives.
type Deps struct {
	Mobility Mobility
	Animator Animator
	Audio    AudioSink
	Player   PositionSource
	// Objective, when set, is subscribed to once; its first delivery
	// permanently forces the agent to chase.
	Objective Notifier
}

type Option func(*Agent)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithRand injects the random source used for idle durations and wander
// targets.
func WithRand(rng *rand.Rand) Option {
	return func(a *Agent) {
		if rng != nil {
			a.rng = rng
		}
	}
}

// WithTransitionHook observes every state change, including the initial
// enter (from is nil).
func WithTransitionHook(fn func(from, to State)) Option {
	return func(a *Agent) {
		a.onTransition = fn
	}
}

// Agent is the enemy: a state machine host with perception, a stun entry
// point and a one-way force-chase override.
type Agent struct {
	name           string
	viewRadius     float64
	bounds         common.Bounds
	stunCooldown   float64
	cooldownPolicy CooldownPolicy
	chaseTemplate  ChaseTemplate

	mobility Mobility
	animator Animator
	audio    AudioSink
	player   PositionSource

	machine *fsm.Machine[State]

	idle     *IdleState
	wander   *WanderState
	chase    *ChaseState
	patrol   *PatrolState
	stun     *StunState
	gameOver *GameOverState

	// cooldownTimer is -1 while Activate is armed; otherwise the time since
	// the last stun ended.
	cooldownTimer float64
	// stunElapsed runs while a stun sequence is pending its cooldown reset;
	// -1 when no sequence is pending.
	stunElapsed      float64
	forceChasePlayer bool
	halted           bool
	closed           bool

	unsubscribe  func()
	onTransition func(from, to State)
	logger       *slog.Logger
	rng          *rand.Rand
}

// New builds an agent from cfg and wires it to its collaborators. The agent
// is not running until Start is called.
func New(cfg Config, deps Deps, opts ...Option) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Player == nil {
		return nil, ErrNoPlayer
	}
	if deps.Mobility == nil {
		return nil, ErrNoMobility
	}

	policy := cfg.CooldownPolicy
	if policy == "" {
		policy = CooldownCountUp
	}
	name := cfg.Name
	if name == "" {
		name = "enemy"
	}

	a := &Agent{
		name:           name,
		viewRadius:     cfg.ViewRadius,
		bounds:         cfg.Bounds,
		stunCooldown:   cfg.StunCooldown,
		cooldownPolicy: policy,
		chaseTemplate:  cfg.Chase,
		mobility:       deps.Mobility,
		animator:       deps.Animator,
		audio:          deps.Audio,
		player:         deps.Player,
		cooldownTimer:  -1,
		stunElapsed:    -1,
		logger:         slog.Default(),
		rng:            rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	if a.animator == nil {
		a.animator = nopAnimator{}
	}
	if a.audio == nil {
		a.audio = nopAudio{}
	}
	for _, opt := range opts {
		opt(a)
	}

	a.idle = newIdleState(a, cfg.Idle)
	a.wander = newWanderState(a, cfg.Wander)
	a.chase = newChaseState(a, cfg.Chase)
	a.patrol = newPatrolState(a, cfg.Patrol)
	a.stun = newStunState(a, cfg.Stun)
	a.gameOver = &GameOverState{behaviour: behaviour{agent: a}}

	machineOpts := []fsm.Option[State]{
		fsm.WithLogger[State](a.logger),
		fsm.WithName[State](a.name),
	}
	if a.onTransition != nil {
		machineOpts = append(machineOpts, fsm.OnTransition[State](a.onTransition))
	}
	a.machine = fsm.NewMachine[State](a.idle, machineOpts...)

	if deps.Objective != nil {
		a.unsubscribe = deps.Objective.Subscribe(a.triggerForceChase)
	}
	return a, nil
}

func (a *Agent) Name() string { return a.name }

// Start enters Idle and runs the first perception check. An objective
// signal that arrived before Start sends the agent straight into Chase.
func (a *Agent) Start() {
	if a.closed || a.machine.Started() {
		return
	}
	a.machine.Start()
	if a.forceChasePlayer {
		a.SetState(a.chase)
		return
	}
	if a.PlayerInRange() {
		a.enterChaseIfNeeded()
	}
}

// Update advances one tick: the active state first, then the stun
// sequence and cooldown bookkeeping, then the perception override.
func (a *Agent) Update(dt float64) {
	if a.closed || !a.machine.Started() {
		return
	}
	a.machine.Update(dt)
	a.advanceStun(dt)
	if a.halted {
		return
	}
	if a.PlayerInRange() {
		a.enterChaseIfNeeded()
	}
}

// SetState transitions the agent's machine. Exposed for states and tests.
func (a *Agent) SetState(next State) {
	a.machine.SetState(next)
}

// State returns the active behaviour.
func (a *Agent) State() State {
	return a.machine.Current()
}

// Kind returns the active behaviour's variant. Before Start it reports Idle.
func (a *Agent) Kind() Kind {
	cur := a.machine.Current()
	if cur == nil {
		return KindIdle
	}
	return cur.Kind()
}

func (a *Agent) Position() common.Vec3 {
	return a.mobility.Position()
}

func (a *Agent) ViewRadius() float64 { return a.viewRadius }

func (a *Agent) Bounds() common.Bounds { return a.bounds }

func (a *Agent) ForceChasePlayer() bool { return a.forceChasePlayer }

// CooldownTimer is -1 while the stun can be triggered.
func (a *Agent) CooldownTimer() float64 { return a.cooldownTimer }

func (a *Agent) Halted() bool { return a.halted }

// The persistent state instances.
func (a *Agent) Idle() *IdleState         { return a.idle }
func (a *Agent) Wander() *WanderState     { return a.wander }
func (a *Agent) Chase() *ChaseState       { return a.chase }
func (a *Agent) Patrol() *PatrolState     { return a.patrol }
func (a *Agent) Stun() *StunState         { return a.stun }
func (a *Agent) GameOver() *GameOverState { return a.gameOver }

// PlayerInRange is the perception check.
func (a *Agent) PlayerInRange() bool {
	return common.Distance(a.mobility.Position(), a.player.Position()) <= a.viewRadius
}

// Activate is the external interaction entry point (being struck). It starts
// a stun sequence unless one is running, the agent is cooling down, or the
// agent has been halted or closed. Ignored calls are not errors.
func (a *Agent) Activate() {
	if a.closed || a.halted || !a.machine.Started() {
		return
	}
	if a.cooldownTimer >= 0 || a.stunElapsed >= 0 || a.Kind() == KindStun {
		a.logger.Debug("activate ignored", "agent", a.name, "cooldown", a.cooldownTimer, "state", a.Kind().String())
		return
	}
	a.logger.Debug("stunned", "agent", a.name, "stun_time", a.stun.stunTime)
	a.stunElapsed = 0
	a.SetState(a.stun)
}

// Halt moves the agent into the terminal GameOver state and disables the
// perception override.
func (a *Agent) Halt() {
	if a.closed || a.halted || !a.machine.Started() {
		return
	}
	a.halted = true
	a.stunElapsed = -1
	a.SetState(a.gameOver)
}

// Close detaches the agent from the objective signal and cancels any
// pending stun sequence. A closed agent ignores every further call.
func (a *Agent) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.stunElapsed = -1
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// DrawGizmos draws the wander bounds and view radius, then the active
// state's own gizmos.
func (a *Agent) DrawGizmos(g fsm.Gizmos) {
	if g == nil {
		return
	}
	g.WireCube(a.bounds.Center, a.bounds.Size, colornames.Red)
	g.WireSphere(a.mobility.Position(), a.viewRadius, colornames.Blue)
	a.machine.DrawGizmos(g)
}

func (a *Agent) String() string {
	return fmt.Sprintf("%s(%s)", a.name, a.Kind())
}

// enterChaseIfNeeded swaps in a freshly built Chase, dropping whatever
// context a previous chase carried.
func (a *Agent) enterChaseIfNeeded() {
	if a.Kind() == KindChase {
		return
	}
	a.logger.Debug("player in range", "agent", a.name)
	a.SetState(newChaseState(a, a.chaseTemplate))
}

func (a *Agent) triggerForceChase() {
	if a.closed || a.halted || a.forceChasePlayer {
		return
	}
	a.forceChasePlayer = true
	a.logger.Debug("force chase", "agent", a.name)
	if a.machine.Started() {
		a.SetState(a.chase)
	}
}

func (a *Agent) advanceStun(dt float64) {
	if a.stunElapsed >= 0 {
		a.stunElapsed += dt
		if a.stunElapsed < a.stun.stunTime {
			return
		}
		a.stunElapsed = -1
		a.cooldownTimer = 0
		a.logger.Debug("stun cooldown started", "agent", a.name, "policy", string(a.cooldownPolicy))
		a.expireCooldown()
		return
	}
	if a.cooldownTimer < 0 || a.cooldownPolicy != CooldownCountUp {
		return
	}
	a.cooldownTimer += dt
	a.expireCooldown()
}

func (a *Agent) expireCooldown() {
	if a.cooldownPolicy == CooldownCountUp && a.cooldownTimer >= a.stunCooldown {
		a.cooldownTimer = -1
	}
}

// arrived compares on the ground plane against the mobility tolerance.
func (a *Agent) arrived(p common.Vec3) bool {
	return common.PlanarDistance(a.mobility.Position(), p) <= a.mobility.StoppingDistance()
}

type nopAnimator struct{}

func (nopAnimator) SetBool(string, bool) {}

type nopAudio struct{}

func (nopAudio) PlayOneShot(string) {}
