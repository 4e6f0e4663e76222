package nav

import (
	"math"

	"github.com/milk9111/warden/common"
)

// Grid rasterises the arena's ground plane for routing. A cell is blocked
// when its center lies inside a wall grown by the clearance, or closer to
// the arena edge than the clearance.
type Grid struct {
	bounds  common.Bounds
	origin  common.Vec3
	cell    float64
	width   int
	height  int
	blocked []bool

	walls     []common.Bounds
	clearance float64
}

func NewGrid(bounds common.Bounds, cell float64, walls []common.Bounds, clearance float64) *Grid {
	if cell <= 0 {
		cell = 1
	}
	g := &Grid{
		bounds: bounds,
		origin: bounds.Min(),
		cell:   cell,
		width:  int(math.Ceil(bounds.Size.X / cell)),
		height: int(math.Ceil(bounds.Size.Z / cell)),

		walls:     walls,
		clearance: clearance,
	}
	if g.width < 1 {
		g.width = 1
	}
	if g.height < 1 {
		g.height = 1
	}
	g.blocked = make([]bool, g.width*g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			g.blocked[y*g.width+x] = !g.standable(g.Center(x, y))
		}
	}
	return g
}

// standable reports whether a body of the clearance radius fits at p.
func (g *Grid) standable(p common.Vec3) bool {
	lo, hi := g.bounds.Min(), g.bounds.Max()
	if p.X < lo.X+g.clearance || p.X > hi.X-g.clearance ||
		p.Z < lo.Z+g.clearance || p.Z > hi.Z-g.clearance {
		return false
	}
	return !g.insideWall(p)
}

func (g *Grid) insideWall(p common.Vec3) bool {
	for _, w := range g.walls {
		lo, hi := w.Min(), w.Max()
		if p.X >= lo.X-g.clearance && p.X <= hi.X+g.clearance &&
			p.Z >= lo.Z-g.clearance && p.Z <= hi.Z+g.clearance {
			return true
		}
	}
	return false
}

// Project returns p when a body can stand there, otherwise the center of
// the nearest free cell. The height of p is kept.
func (g *Grid) Project(p common.Vec3) common.Vec3 {
	px, py := g.Cell(p)
	if !g.Blocked(px, py) && g.standable(p) {
		return p
	}
	best, found := common.Vec3{}, false
	bestDist := math.Inf(1)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.blocked[y*g.width+x] {
				continue
			}
			c := g.Center(x, y)
			if d := common.PlanarDistance(c, p); d < bestDist {
				best, bestDist, found = c, d, true
			}
		}
	}
	if !found {
		return p
	}
	best.Y = p.Y
	return best
}

func (g *Grid) Size() (int, int) { return g.width, g.height }

// Cell returns the cell containing p, clamped to the grid.
func (g *Grid) Cell(p common.Vec3) (int, int) {
	x := int(math.Floor((p.X - g.origin.X) / g.cell))
	y := int(math.Floor((p.Z - g.origin.Z) / g.cell))
	return clampIndex(x, g.width), clampIndex(y, g.height)
}

// Center returns the ground-plane center of a cell.
func (g *Grid) Center(x, y int) common.Vec3 {
	return common.Vec3{
		X: g.origin.X + (float64(x)+0.5)*g.cell,
		Z: g.origin.Z + (float64(y)+0.5)*g.cell,
	}
}

func (g *Grid) Blocked(x, y int) bool {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return true
	}
	return g.blocked[y*g.width+x]
}

// Route returns ground-plane waypoints from from to to, ending exactly at
// to. It returns nil when the goal cannot be reached.
func (g *Grid) Route(from, to common.Vec3, maxNodes int) []common.Vec3 {
	sx, sy := g.Cell(from)
	gx, gy := g.Cell(to)
	nodes := AStar(sx, sy, gx, gy, g.width, g.height, g.Blocked, maxNodes)
	if len(nodes) == 0 {
		return nil
	}
	out := make([]common.Vec3, 0, len(nodes))
	// The start cell is where the body already is.
	for _, n := range nodes[1:] {
		out = append(out, g.Center(n.X, n.Y))
	}
	if len(out) > 0 {
		out = out[:len(out)-1]
	}
	return append(out, common.Vec3{X: to.X, Z: to.Z})
}

func clampIndex(idx, max int) int {
	if idx < 0 {
		return 0
	}
	if idx >= max {
		return max - 1
	}
	return idx
}
