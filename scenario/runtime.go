// Package scenario drives the player from a tengo script, one call per tick.
package scenario

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/warden/common"
	"github.com/milk9111/warden/prefabs"
)

// Host is the world a script observes and acts on.
type Host interface {
	Tick() int
	Time() float64
	PlayerPosition() common.Vec3
	MovePlayer(dir common.Vec3)
	Reach() float64
	// Use asks the player to interact with whatever is nearest.
	Use()
	ObjectivePosition() (common.Vec3, bool)
	ExitPosition() (common.Vec3, bool)
	ObjectiveActive() bool
	Won() bool
	AgentCount() int
	AgentState(i int) string
	AgentPosition(i int) common.Vec3
	// Strike activates agent i directly, regardless of reach.
	Strike(i int) bool
}

const dispatchScript = `
update(__engine, __state)
`

type Runtime struct {
	name      string
	compiled  *tengo.Compiled
	stateData *tengo.Map
	done      bool
	logger    *slog.Logger
}

// Load compiles a script from the prefab scripts directory.
func Load(name string, logger *slog.Logger) (*Runtime, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("scenario: load %s: %w", name, err)
	}
	return Compile(name, src, logger)
}

// Compile builds a runtime from script source. The script must define
// update := func(engine, state).
func Compile(name string, src []byte, logger *slog.Logger) (*Runtime, error) {
	if logger == nil {
		logger = slog.Default()
	}
	full := string(src) + "\n" + dispatchScript
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scenario: compile %s: %w", name, err)
	}
	return &Runtime{
		name:      name,
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
		logger:    logger,
	}, nil
}

func (r *Runtime) Name() string { return r.name }

// Done reports whether the script called engine.done().
func (r *Runtime) Done() bool { return r.done }

// State returns a copy of the script's persistent state map.
func (r *Runtime) State() map[string]any {
	out, _ := objectToAny(r.stateData).(map[string]any)
	return out
}

// Step runs the script's update once against h.
func (r *Runtime) Step(h Host) error {
	if r.done {
		return nil
	}
	if err := r.compiled.Set("__engine", r.buildEngine(h)); err != nil {
		return err
	}
	if err := r.compiled.Set("__state", r.stateData); err != nil {
		return err
	}
	if err := r.compiled.Run(); err != nil {
		return fmt.Errorf("scenario: %s tick %d: %w", r.name, h.Tick(), err)
	}
	return nil
}

func (r *Runtime) buildEngine(h Host) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	fn := func(name string, f func(args ...tengo.Object) (tengo.Object, error)) {
		values[name] = &tengo.UserFunction{Name: name, Value: f}
	}

	fn("tick", func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(h.Tick())}, nil
	})
	fn("time", func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: h.Time()}, nil
	})
	fn("reach", func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: h.Reach()}, nil
	})
	fn("player_position", func(args ...tengo.Object) (tengo.Object, error) {
		return vecObject(h.PlayerPosition()), nil
	})
	fn("move", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, _ := tengo.ToFloat64(args[0])
		z, _ := tengo.ToFloat64(args[1])
		h.MovePlayer(common.Vec3{X: x, Z: z})
		return tengo.TrueValue, nil
	})
	fn("stop", func(args ...tengo.Object) (tengo.Object, error) {
		h.MovePlayer(common.Vec3{})
		return tengo.TrueValue, nil
	})
	// move_toward steers the player at a point and returns the remaining
	// ground distance.
	fn("move_toward", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.UndefinedValue, nil
		}
		x, _ := tengo.ToFloat64(args[0])
		z, _ := tengo.ToFloat64(args[1])
		pos := h.PlayerPosition()
		target := common.Vec3{X: x, Y: pos.Y, Z: z}
		d := common.PlanarDistance(pos, target)
		if d < 1e-3 {
			h.MovePlayer(common.Vec3{})
		} else {
			dir := target.Sub(pos)
			dir.Y = 0
			h.MovePlayer(dir.Scale(1 / d))
		}
		return &tengo.Float{Value: d}, nil
	})
	fn("use", func(args ...tengo.Object) (tengo.Object, error) {
		h.Use()
		return tengo.TrueValue, nil
	})
	fn("objective_position", func(args ...tengo.Object) (tengo.Object, error) {
		p, ok := h.ObjectivePosition()
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return vecObject(p), nil
	})
	fn("exit_position", func(args ...tengo.Object) (tengo.Object, error) {
		p, ok := h.ExitPosition()
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return vecObject(p), nil
	})
	fn("objective_active", func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(h.ObjectiveActive()), nil
	})
	fn("won", func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(h.Won()), nil
	})
	fn("agent_count", func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(h.AgentCount())}, nil
	})
	fn("agent_state", func(args ...tengo.Object) (tengo.Object, error) {
		i, ok := agentIndex(h, args)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.String{Value: h.AgentState(i)}, nil
	})
	fn("agent_position", func(args ...tengo.Object) (tengo.Object, error) {
		i, ok := agentIndex(h, args)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return vecObject(h.AgentPosition(i)), nil
	})
	fn("agent_distance", func(args ...tengo.Object) (tengo.Object, error) {
		i, ok := agentIndex(h, args)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Float{Value: common.PlanarDistance(h.PlayerPosition(), h.AgentPosition(i))}, nil
	})
	fn("strike", func(args ...tengo.Object) (tengo.Object, error) {
		i, ok := agentIndex(h, args)
		if !ok {
			return tengo.FalseValue, nil
		}
		return boolObject(h.Strike(i)), nil
	})
	fn("log", func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		r.logger.Info(strings.Join(parts, " "), "script", r.name, "tick", h.Tick())
		return tengo.UndefinedValue, nil
	})
	fn("done", func(args ...tengo.Object) (tengo.Object, error) {
		r.done = true
		h.MovePlayer(common.Vec3{})
		return tengo.TrueValue, nil
	})

	return &tengo.ImmutableMap{Value: values}
}

func agentIndex(h Host, args []tengo.Object) (int, bool) {
	if len(args) < 1 {
		return 0, false
	}
	i, ok := tengo.ToInt(args[0])
	if !ok || i < 0 || i >= h.AgentCount() {
		return 0, false
	}
	return i, true
}

func vecObject(v common.Vec3) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"x": &tengo.Float{Value: v.X},
		"y": &tengo.Float{Value: v.Y},
		"z": &tengo.Float{Value: v.Z},
	}}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
