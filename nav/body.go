package nav

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/warden/common"
)

// Body is a steered physics body. For agents it is the mobility provider:
// it walks toward its destination at its speed and halts within the
// stopping distance.
type Body struct {
	space  *Space
	body   *cp.Body
	shape  *cp.Shape
	height float64
	radius float64
	player bool

	speed            float64
	stoppingDistance float64
	stopped          bool

	dest      common.Vec3
	hasDest   bool
	path      []common.Vec3
	pathIndex int
	goalCell  [2]int

	// intent is the requested player velocity on the ground plane.
	intent common.Vec3
}

func (b *Body) Position() common.Vec3 {
	p := b.body.Position()
	return common.Vec3{X: p.X, Y: b.height, Z: p.Y}
}

// Teleport moves the body without simulating the motion.
func (b *Body) Teleport(p common.Vec3) {
	b.body.SetPosition(cp.Vector{X: p.X, Y: p.Z})
	b.body.SetVelocity(0, 0)
	b.height = p.Y
	b.path = nil
}

func (b *Body) Radius() float64 { return b.radius }

// SetDestination commands the body toward p. With routing enabled a point
// inside a wall is moved to the nearest reachable cell, and the body
// follows a grid path that is replanned only when the goal cell changes.
func (b *Body) SetDestination(p common.Vec3) {
	b.hasDest = true

	if !b.space.routing || len(b.space.walls) == 0 {
		b.dest = p
		b.path = nil
		return
	}
	grid := b.space.Grid()
	p = grid.Project(p)
	b.dest = p
	gx, gy := grid.Cell(p)
	cell := [2]int{gx, gy}
	if b.path != nil && cell == b.goalCell && b.pathIndex < len(b.path) {
		b.path[len(b.path)-1] = common.Vec3{X: p.X, Z: p.Z}
		return
	}
	b.goalCell = cell
	b.path = b.space.route(b.Position(), p)
	b.pathIndex = 0
}

// Destination returns the point the body is walking to, after any
// projection out of walls.
func (b *Body) Destination() (common.Vec3, bool) { return b.dest, b.hasDest }

// Path returns the remaining routed waypoints, if any.
func (b *Body) Path() []common.Vec3 {
	if b.pathIndex >= len(b.path) {
		return nil
	}
	return append([]common.Vec3(nil), b.path[b.pathIndex:]...)
}

func (b *Body) SetStopped(stopped bool) {
	b.stopped = stopped
	if stopped {
		b.body.SetVelocity(0, 0)
	}
}

func (b *Body) Stopped() bool { return b.stopped }

func (b *Body) SetSpeed(speed float64) { b.speed = speed }

func (b *Body) Speed() float64 { return b.speed }

func (b *Body) StoppingDistance() float64 { return b.stoppingDistance }

// Move sets a player body's ground-plane direction. Its length is clamped
// to 1 and scaled by the body's speed.
func (b *Body) Move(dir common.Vec3) {
	dir.Y = 0
	if l := dir.Len(); l > 1 {
		dir = dir.Scale(1 / l)
	}
	b.intent = dir
}

func (b *Body) Velocity() common.Vec3 {
	v := b.body.Velocity()
	return common.Vec3{X: v.X, Z: v.Y}
}

func (b *Body) steer(dt float64) {
	if b.player {
		v := b.intent.Scale(b.speed)
		b.body.SetVelocity(v.X, v.Z)
		return
	}
	if b.stopped || !b.hasDest || b.speed <= 0 {
		b.body.SetVelocity(0, 0)
		return
	}

	pos := b.Position()
	remaining := common.PlanarDistance(pos, b.dest)
	if remaining <= b.stoppingDistance {
		b.body.SetVelocity(0, 0)
		return
	}

	target := b.dest
	if b.pathIndex < len(b.path) {
		// Advance past waypoints already reached, keeping the final one.
		for b.pathIndex < len(b.path)-1 && common.PlanarDistance(pos, b.path[b.pathIndex]) <= b.space.cellSize*0.5 {
			b.pathIndex++
		}
		target = b.path[b.pathIndex]
	}

	dx, dz := target.X-pos.X, target.Z-pos.Z
	dist := math.Hypot(dx, dz)
	if dist == 0 {
		b.body.SetVelocity(0, 0)
		return
	}
	speed := math.Min(b.speed, dist/dt)
	b.body.SetVelocity(dx/dist*speed, dz/dist*speed)
}
