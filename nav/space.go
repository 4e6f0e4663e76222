// Package nav moves bodies across the arena's ground plane on a chipmunk
// space. World X maps to the physics X axis and world Z to the physics Y
// axis; height is carried per body and never simulated.
package nav

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/warden/common"
)

const (
	categoryWall uint = 1 << iota
	categoryAgent
	categoryPlayer
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeBody
)

const (
	defaultCellSize = 0.5
	defaultMaxNodes = 4000
	boundaryRadius  = 0.05
)

type SpaceOption func(*Space)

// WithRouting enables grid A* routing around walls with the given cell size.
func WithRouting(cellSize float64) SpaceOption {
	return func(s *Space) {
		s.routing = true
		if cellSize > 0 {
			s.cellSize = cellSize
		}
	}
}

// Space owns the physics simulation every Body lives in.
type Space struct {
	space  *cp.Space
	bounds common.Bounds
	walls  []common.Bounds
	bodies []*Body

	routing  bool
	cellSize float64
	grid     *Grid
	// clearance is the largest body radius seen, used to grow walls when
	// building the routing grid.
	clearance float64
}

// NewSpace creates a gravity-free space enclosed by the bounds' ground
// rectangle.
func NewSpace(bounds common.Bounds, opts ...SpaceOption) *Space {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	s := &Space{
		space:    space,
		bounds:   bounds,
		cellSize: defaultCellSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	lo, hi := bounds.Min(), bounds.Max()
	corners := []cp.Vector{
		{X: lo.X, Y: lo.Z},
		{X: hi.X, Y: lo.Z},
		{X: hi.X, Y: hi.Z},
		{X: lo.X, Y: hi.Z},
	}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		shape := cp.NewSegment(space.StaticBody, a, b, boundaryRadius)
		s.addStatic(shape)
	}
	return s
}

func (s *Space) Bounds() common.Bounds { return s.bounds }

// AddWall adds a solid box. Only its ground-plane footprint matters.
func (s *Space) AddWall(w common.Bounds) {
	lo, hi := w.Min(), w.Max()
	bb := cp.BB{L: lo.X, B: lo.Z, R: hi.X, T: hi.Z}
	s.addStatic(cp.NewBox2(s.space.StaticBody, bb, 0))
	s.walls = append(s.walls, w)
	s.grid = nil
}

func (s *Space) Walls() []common.Bounds {
	return append([]common.Bounds(nil), s.walls...)
}

// BodyConfig describes a new body.
type BodyConfig struct {
	Radius           float64
	Speed            float64
	StoppingDistance float64
	// Player bodies are driven by velocity and never path-follow.
	Player bool
}

// AddBody places a round body at pos. Agents and the player only collide
// with walls, never with each other.
func (s *Space) AddBody(pos common.Vec3, cfg BodyConfig) *Body {
	radius := cfg.Radius
	if radius <= 0 {
		radius = 0.5
	}
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Z})
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
	})
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeBody)
	category := categoryAgent
	if cfg.Player {
		category = categoryPlayer
	}
	shape.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP, Categories: category, Mask: categoryWall})

	s.space.AddBody(body)
	s.space.AddShape(shape)

	b := &Body{
		space:            s,
		body:             body,
		shape:            shape,
		height:           pos.Y,
		radius:           radius,
		speed:            cfg.Speed,
		stoppingDistance: cfg.StoppingDistance,
		player:           cfg.Player,
		stopped:          true,
	}
	s.bodies = append(s.bodies, b)
	if radius > s.clearance {
		s.clearance = radius
		s.grid = nil
	}
	return b
}

// RemoveBody takes b out of the simulation.
func (s *Space) RemoveBody(b *Body) {
	for i, other := range s.bodies {
		if other == b {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			s.space.RemoveShape(b.shape)
			s.space.RemoveBody(b.body)
			return
		}
	}
}

// Step steers every body toward its destination and integrates the space.
func (s *Space) Step(dt float64) {
	if dt <= 0 {
		return
	}
	for _, b := range s.bodies {
		b.steer(dt)
	}
	s.space.Step(dt)
}

// Grid returns the routing grid, rebuilding it after walls or bodies change.
func (s *Space) Grid() *Grid {
	if s.grid == nil {
		s.grid = NewGrid(s.bounds, s.cellSize, s.walls, s.clearance)
	}
	return s.grid
}

func (s *Space) route(from, to common.Vec3) []common.Vec3 {
	if !s.routing || len(s.walls) == 0 {
		return nil
	}
	return s.Grid().Route(from, to, defaultMaxNodes)
}

func (s *Space) addStatic(shape *cp.Shape) {
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP, Categories: categoryWall, Mask: categoryAgent | categoryPlayer})
	s.space.AddShape(shape)
}
