package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/warden/common"
)

const gizmoStroke = 1.5

// Gizmos draws debug wireframes onto an image. Spheres become circles and
// cubes their ground footprint.
type Gizmos struct {
	dst *ebiten.Image
	cam Camera
}

func NewGizmos(dst *ebiten.Image, cam Camera) *Gizmos {
	return &Gizmos{dst: dst, cam: cam}
}

func (g *Gizmos) WireSphere(center common.Vec3, radius float64, clr color.Color) {
	x, y := g.cam.ToScreen(center)
	vector.StrokeCircle(g.dst, x, y, g.cam.Length(radius), gizmoStroke, clr, true)
}

func (g *Gizmos) WireCube(center, size common.Vec3, clr color.Color) {
	x, y, w, h := g.cam.rect(center, size)
	vector.StrokeRect(g.dst, x, y, w, h, gizmoStroke, clr, false)
}

func (c Camera) rect(center, size common.Vec3) (x, y, w, h float32) {
	x, y = c.ToScreen(common.Vec3{X: center.X - size.X/2, Z: center.Z - size.Z/2})
	return x, y, c.Length(size.X), c.Length(size.Z)
}
