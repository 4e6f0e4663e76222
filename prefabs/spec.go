package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/warden/common"
	"github.com/milk9111/warden/enemy"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type EnemySpec struct {
	Name             string              `yaml:"name"`
	ViewRadius       float64             `yaml:"view_radius"`
	StunCooldown     float64             `yaml:"stun_cooldown"`
	CooldownPolicy   string              `yaml:"cooldown_policy"`
	StoppingDistance float64             `yaml:"stopping_distance"`
	Radius           float64             `yaml:"radius"`
	Bounds           common.Bounds       `yaml:"bounds"`
	Idle             IdleSpec            `yaml:"idle"`
	Wander           MoveSpec            `yaml:"wander"`
	Chase            MoveSpec            `yaml:"chase"`
	Patrol           PatrolSpec          `yaml:"patrol"`
	Stun             StunSpec            `yaml:"stun"`
	Clips            map[string]ClipSpec `yaml:"clips"`
}

type IdleSpec struct {
	TimeRange common.Range `yaml:"time_range"`
}

type MoveSpec struct {
	Speed float64 `yaml:"speed"`
	Clip  string  `yaml:"clip"`
}

type PatrolSpec struct {
	Enabled bool    `yaml:"enabled"`
	Speed   float64 `yaml:"speed"`
	// Route names a patrol path in the level; it wins over Waypoints.
	Route     string        `yaml:"route"`
	Waypoints []common.Vec3 `yaml:"waypoints"`
}

type StunSpec struct {
	Time float64 `yaml:"time"`
	Clip string  `yaml:"clip"`
}

type ClipSpec struct {
	Frames int     `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
	Loop   bool    `yaml:"loop"`
}

func LoadEnemySpec() (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec]("enemy.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Config turns the prefab into agent tunables. routes holds the level's named
// patrol paths.
func (s *EnemySpec) Config(routes map[string][]common.Vec3) (enemy.Config, error) {
	cfg := enemy.Config{
		Name:           s.Name,
		ViewRadius:     s.ViewRadius,
		Bounds:         s.Bounds,
		StunCooldown:   s.StunCooldown,
		CooldownPolicy: enemy.CooldownPolicy(s.CooldownPolicy),
		Idle:           enemy.IdleTemplate{TimeRange: s.Idle.TimeRange},
		Wander:         enemy.WanderTemplate{Speed: s.Wander.Speed, Clip: s.Wander.Clip},
		Chase:          enemy.ChaseTemplate{Speed: s.Chase.Speed, Clip: s.Chase.Clip},
		Patrol: enemy.PatrolTemplate{
			Enabled:   s.Patrol.Enabled,
			Speed:     s.Patrol.Speed,
			Waypoints: append([]common.Vec3(nil), s.Patrol.Waypoints...),
		},
		Stun: enemy.StunTemplate{Time: s.Stun.Time},
	}
	if s.Patrol.Route != "" {
		route, ok := routes[s.Patrol.Route]
		if !ok {
			return enemy.Config{}, fmt.Errorf("prefabs: enemy %s: unknown patrol route %q", s.Name, s.Patrol.Route)
		}
		cfg.Patrol.Waypoints = append([]common.Vec3(nil), route...)
	}
	if err := cfg.Validate(); err != nil {
		return enemy.Config{}, fmt.Errorf("prefabs: enemy %s: %w", s.Name, err)
	}
	return cfg, nil
}

type PlayerSpec struct {
	Name   string  `yaml:"name"`
	Speed  float64 `yaml:"speed"`
	Radius float64 `yaml:"radius"`
	// Reach is how far the player can use things from.
	Reach float64 `yaml:"reach"`
	// EyeHeight is the player's height above the ground.
	EyeHeight float64 `yaml:"eye_height"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type HudSpec struct {
	ObjectiveA string    `yaml:"objective_a"`
	ObjectiveB string    `yaml:"objective_b"`
	EndPrompt  string    `yaml:"end_prompt"`
	TextColor  YAMLColor `yaml:"text_color"`
	PanelColor YAMLColor `yaml:"panel_color"`
	Padding    int       `yaml:"padding"`
}

func LoadHudSpec() (*HudSpec, error) {
	spec, err := LoadSpec[HudSpec]("hud.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the parsed color, or fallback when none was set.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}
