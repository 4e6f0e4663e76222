package sim

import (
	"fmt"

	"github.com/milk9111/warden/levels"
	"github.com/milk9111/warden/prefabs"
)

// DefaultLevel is the arena bundled with the binary.
const DefaultLevel = "arena"

// Config is everything a World is assembled from.
type Config struct {
	Level  *levels.Level
	Enemy  *prefabs.EnemySpec
	Player *prefabs.PlayerSpec
	Hud    *prefabs.HudSpec
}

// LoadConfig reads the prefab specs and the named level.
func LoadConfig(level string) (Config, error) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := levels.Open(level)
	if err != nil {
		return Config{}, err
	}
	enemySpec, err := prefabs.LoadEnemySpec()
	if err != nil {
		return Config{}, err
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return Config{}, err
	}
	hudSpec, err := prefabs.LoadHudSpec()
	if err != nil {
		return Config{}, err
	}
	return Config{Level: lvl, Enemy: enemySpec, Player: playerSpec, Hud: hudSpec}, nil
}

func (c Config) validate() error {
	switch {
	case c.Level == nil:
		return fmt.Errorf("sim: level is required")
	case c.Enemy == nil:
		return fmt.Errorf("sim: enemy spec is required")
	case c.Player == nil:
		return fmt.Errorf("sim: player spec is required")
	}
	return nil
}
