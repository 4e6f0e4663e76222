// Package levels reads arena layouts authored in Tiled.
//
// Pixel coordinates are converted to world units by dividing by the tile
// size, with the map centered on the origin. Tiled's y axis becomes world Z.
package levels

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/lafriks/go-tiled"
	"github.com/milk9111/warden/common"
)

// WallHeight is the Y extent given to every wall and volume.
const WallHeight = 2.0

type EnemySpawn struct {
	Name     string
	Prefab   string
	Position common.Vec3
	// Route names a patrol path; empty means the guard wanders.
	Route string
}

type Level struct {
	Name     string
	TileSize float64
	Bounds   common.Bounds
	Walls    []common.Bounds
	Routes   map[string][]common.Vec3

	EnemySpawns []EnemySpawn
	PlayerSpawn common.Vec3

	Objective    common.Vec3
	HasObjective bool
	Exit         common.Bounds
	HasExit      bool
}

// Load parses a TMX file from fsys.
func Load(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth <= 0 || levelMap.TileWidth != levelMap.TileHeight {
		return nil, fmt.Errorf("levels: %s: tiles must be square, got %dx%d", tmxPath, levelMap.TileWidth, levelMap.TileHeight)
	}

	tile := float64(levelMap.TileWidth)
	conv := converter{
		tile:    tile,
		originX: float64(levelMap.Width) * tile / 2,
		originY: float64(levelMap.Height) * tile / 2,
	}

	level := &Level{
		Name:     tmxPath,
		TileSize: tile,
		Bounds: common.Bounds{
			Size: common.Vec3{X: float64(levelMap.Width), Y: WallHeight, Z: float64(levelMap.Height)},
		},
		Routes: make(map[string][]common.Vec3),
	}

	playerSpawns := 0
	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case "Walls":
			for _, o := range og.Objects {
				if o.Width <= 0 || o.Height <= 0 {
					continue
				}
				level.Walls = append(level.Walls, conv.rect(o.X, o.Y, o.Width, o.Height))
			}
		case "PatrolPaths":
			for _, o := range og.Objects {
				if len(o.PolyLines) == 0 || o.PolyLines[0].Points == nil {
					continue
				}
				polyline := o.PolyLines[0]
				points := make([]common.Vec3, 0, len(*polyline.Points))
				for _, point := range *polyline.Points {
					points = append(points, conv.point(o.X+point.X, o.Y+point.Y))
				}
				if len(points) == 0 {
					continue
				}
				level.Routes[o.Name] = points
			}
		case "EnemySpawn":
			for _, o := range og.Objects {
				prefab := o.Properties.GetString("prefab")
				if prefab == "" {
					prefab = "enemy"
				}
				level.EnemySpawns = append(level.EnemySpawns, EnemySpawn{
					Name:     o.Name,
					Prefab:   prefab,
					Position: conv.point(o.X, o.Y),
					Route:    o.Properties.GetString("pathName"),
				})
			}
		case "PlayerSpawn":
			for _, o := range og.Objects {
				if playerSpawns == 0 {
					level.PlayerSpawn = conv.point(o.X, o.Y)
				}
				playerSpawns++
			}
		case "Objective":
			if len(og.Objects) > 0 && !level.HasObjective {
				o := og.Objects[0]
				level.Objective = conv.point(o.X, o.Y)
				level.HasObjective = true
			}
		case "EndTrigger":
			for _, o := range og.Objects {
				if level.HasExit || o.Width <= 0 || o.Height <= 0 {
					continue
				}
				level.Exit = conv.rect(o.X, o.Y, o.Width, o.Height)
				level.HasExit = true
			}
		}
	}

	if playerSpawns == 0 {
		return nil, fmt.Errorf("levels: %s: no PlayerSpawn object", tmxPath)
	}
	for _, spawn := range level.EnemySpawns {
		if spawn.Route == "" {
			continue
		}
		if _, ok := level.Routes[spawn.Route]; !ok {
			return nil, fmt.Errorf("levels: %s: enemy %q references unknown path %q", tmxPath, spawn.Name, spawn.Route)
		}
	}

	// Tiled does not guarantee object order; keep spawns stable left to right.
	sort.SliceStable(level.EnemySpawns, func(i, j int) bool {
		return level.EnemySpawns[i].Position.X < level.EnemySpawns[j].Position.X
	})

	return level, nil
}

// RouteNames returns the patrol path names, sorted.
func (l *Level) RouteNames() []string {
	names := make([]string, 0, len(l.Routes))
	for name := range l.Routes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type converter struct {
	tile    float64
	originX float64
	originY float64
}

func (c converter) point(px, py float64) common.Vec3 {
	return common.Vec3{
		X: (px - c.originX) / c.tile,
		Z: (py - c.originY) / c.tile,
	}
}

func (c converter) rect(px, py, w, h float64) common.Bounds {
	return common.Bounds{
		Center: c.point(px+w/2, py+h/2),
		Size:   common.Vec3{X: w / c.tile, Y: WallHeight, Z: h / c.tile},
	}
}
