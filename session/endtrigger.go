package session

import (
	"math"

	"github.com/milk9111/warden/common"
	"github.com/solarlune/resolv"
)

const (
	// triggerScale converts world units into collision space units.
	triggerScale = 16
	triggerCell  = 16

	tagPlayer  = "player"
	tagVictory = "victory"
)

// EndTrigger is the exit volume. It is armed by the objective and declares
// victory whenever the player steps into it while armed.
type EndTrigger struct {
	session *Session
	space   *resolv.Space
	volume  *resolv.Object
	player  *resolv.Object
	origin  common.Vec3
	half    float64

	armed       bool
	inside      bool
	unsubscribe func()
}

// NewEndTrigger places the trigger volume inside arena. playerSize is the
// side of the player's square footprint on the ground plane.
func NewEndTrigger(s *Session, arena, volume common.Bounds, playerSize float64) *EndTrigger {
	lo := arena.Min()
	w := int(math.Ceil(arena.Size.X*triggerScale)) + triggerCell
	h := int(math.Ceil(arena.Size.Z*triggerScale)) + triggerCell

	t := &EndTrigger{
		session: s,
		space:   resolv.NewSpace(w, h, triggerCell, triggerCell),
		origin:  lo,
		half:    playerSize / 2,
		armed:   s.ObjectiveActive(),
	}

	vmin := volume.Min()
	vx, vy := t.toSpace(vmin)
	vw, vh := volume.Size.X*triggerScale, volume.Size.Z*triggerScale
	t.volume = resolv.NewObject(vx, vy, vw, vh, tagVictory)
	t.volume.SetShape(resolv.NewRectangle(0, 0, vw, vh))
	t.space.Add(t.volume)

	side := playerSize * triggerScale
	t.player = resolv.NewObject(0, 0, side, side, tagPlayer)
	t.player.SetShape(resolv.NewRectangle(0, 0, side, side))
	t.space.Add(t.player)

	t.unsubscribe = s.Objective().Subscribe(func() { t.armed = true })
	return t
}

// Update moves the player's footprint to pos and reports whether this call
// declared victory.
func (t *EndTrigger) Update(pos common.Vec3) bool {
	x, y := t.toSpace(common.Vec3{X: pos.X - t.half, Z: pos.Z - t.half})
	t.player.X, t.player.Y = x, y
	t.player.Update()

	inside := t.overlaps()
	entered := inside && !t.inside
	t.inside = inside
	if !entered || !t.armed {
		return false
	}
	t.session.logger.Debug("end trigger entered")
	return t.session.DeclareVictory()
}

func (t *EndTrigger) Armed() bool { return t.armed }

// Inside reports whether the player overlapped the volume on the last Update.
func (t *EndTrigger) Inside() bool { return t.inside }

func (t *EndTrigger) Close() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
}

func (t *EndTrigger) overlaps() bool {
	check := t.player.Check(0, 0, tagVictory)
	if check == nil {
		return false
	}
	for _, obj := range check.Objects {
		if obj == t.volume && t.player.Shape.Intersection(0, 0, obj.Shape) != nil {
			return true
		}
	}
	return false
}

func (t *EndTrigger) toSpace(p common.Vec3) (float64, float64) {
	return (p.X - t.origin.X) * triggerScale, (p.Z - t.origin.Z) * triggerScale
}
