// Package render draws the world top-down with ebiten.
package render

import "github.com/milk9111/warden/common"

// Camera maps the ground plane to the screen: world X goes right, world Z
// goes down.
type Camera struct {
	Center common.Vec3
	// Scale is pixels per world unit.
	Scale  float64
	Width  int
	Height int
}

// FitCamera centers bounds on a width x height screen with a margin in
// pixels on every side.
func FitCamera(bounds common.Bounds, width, height, margin int) Camera {
	cam := Camera{Center: bounds.Center, Width: width, Height: height, Scale: 1}
	usableW := float64(width - 2*margin)
	usableH := float64(height - 2*margin)
	if bounds.Size.X > 0 && bounds.Size.Z > 0 && usableW > 0 && usableH > 0 {
		cam.Scale = min(usableW/bounds.Size.X, usableH/bounds.Size.Z)
	}
	return cam
}

func (c Camera) ToScreen(p common.Vec3) (float32, float32) {
	x := (p.X-c.Center.X)*c.Scale + float64(c.Width)/2
	y := (p.Z-c.Center.Z)*c.Scale + float64(c.Height)/2
	return float32(x), float32(y)
}

// ToWorld is the inverse of ToScreen on the ground plane.
func (c Camera) ToWorld(x, y float64) common.Vec3 {
	return common.Vec3{
		X: (x-float64(c.Width)/2)/c.Scale + c.Center.X,
		Z: (y-float64(c.Height)/2)/c.Scale + c.Center.Z,
	}
}

func (c Camera) Length(d float64) float32 {
	return float32(d * c.Scale)
}
