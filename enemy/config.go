package enemy

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/warden/common"
)

var (
	ErrNoPlayer     = errors.New("enemy: player position source is required")
	ErrNoMobility   = errors.New("enemy: mobility provider is required")
	ErrNoWaypoints  = errors.New("enemy: patrol enabled without waypoints")
	ErrInvalidRange = errors.New("enemy: invalid range")
)

// CooldownPolicy decides what happens to the stun cooldown once a stun ends.
type CooldownPolicy string

const (
	// CooldownCountUp counts the cooldown timer up from zero every tick and
	// re-arms Activate once it reaches the configured cooldown.
	CooldownCountUp CooldownPolicy = "count_up"
	// CooldownLatched leaves the timer at zero forever, so an agent can only
	// ever be stunned once.
	CooldownLatched CooldownPolicy = "latched"
)

type IdleTemplate struct {
	TimeRange common.Range
}

type WanderTemplate struct {
	Speed float64
	Clip  string
}

type ChaseTemplate struct {
	Speed float64
	Clip  string
}

type PatrolTemplate struct {
	Enabled bool
	// Speed is applied on entry when positive; otherwise the current
	// locomotion speed is kept.
	Speed     float64
	Waypoints []common.Vec3
}

type StunTemplate struct {
	Time float64
}

// Config holds the author-time tunables. States copy their template on
// construction; later edits to a Config do not affect a built agent.
type Config struct {
	Name           string
	ViewRadius     float64
	Bounds         common.Bounds
	StunCooldown   float64
	CooldownPolicy CooldownPolicy

	Idle   IdleTemplate
	Wander WanderTemplate
	Chase  ChaseTemplate
	Patrol PatrolTemplate
	Stun   StunTemplate
}

// DefaultConfig mirrors the stock guard tuning.
func DefaultConfig() Config {
	return Config{
		Name:           "enemy",
		ViewRadius:     5,
		Bounds:         common.Bounds{Size: common.Vec3{X: 20, Y: 2, Z: 20}},
		StunCooldown:   3,
		CooldownPolicy: CooldownCountUp,
		Idle:           IdleTemplate{TimeRange: common.Range{Min: 3, Max: 10}},
		Wander:         WanderTemplate{Speed: 0.5, Clip: "wander"},
		Chase:          ChaseTemplate{Speed: 5, Clip: "chase"},
		Stun:           StunTemplate{Time: 3},
	}
}

func (c Config) Validate() error {
	if c.ViewRadius < 0 || math.IsNaN(c.ViewRadius) {
		return fmt.Errorf("enemy: view radius %v must be non-negative", c.ViewRadius)
	}
	if !c.Idle.TimeRange.Valid() {
		return fmt.Errorf("%w: idle time range %v > %v", ErrInvalidRange, c.Idle.TimeRange.Min, c.Idle.TimeRange.Max)
	}
	if c.StunCooldown < 0 {
		return fmt.Errorf("enemy: stun cooldown %v must be non-negative", c.StunCooldown)
	}
	if c.Stun.Time < 0 {
		return fmt.Errorf("enemy: stun time %v must be non-negative", c.Stun.Time)
	}
	switch c.CooldownPolicy {
	case "", CooldownCountUp, CooldownLatched:
	default:
		return fmt.Errorf("enemy: unknown cooldown policy %q", c.CooldownPolicy)
	}
	if c.Patrol.Enabled && len(c.Patrol.Waypoints) == 0 {
		return ErrNoWaypoints
	}
	return nil
}
