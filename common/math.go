package common

import (
	"math"
	"math/rand/v2"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Vec3 is a world-space position. Locomotion happens on the X/Z ground plane;
// Y is height.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance is the full 3D euclidean distance.
func Distance(a, b Vec3) float64 {
	return a.Sub(b).Len()
}

// PlanarDistance ignores height and measures along the ground plane.
func PlanarDistance(a, b Vec3) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}

// Bounds is an axis-aligned box described by its center and full size.
type Bounds struct {
	Center Vec3 `yaml:"center"`
	Size   Vec3 `yaml:"size"`
}

// Extents returns half the size.
func (b Bounds) Extents() Vec3 {
	return b.Size.Scale(0.5)
}

func (b Bounds) Min() Vec3 {
	return b.Center.Sub(b.Extents())
}

func (b Bounds) Max() Vec3 {
	return b.Center.Add(b.Extents())
}

// Contains reports whether p lies inside the box, edges included.
func (b Bounds) Contains(p Vec3) bool {
	lo, hi := b.Min(), b.Max()
	return p.X >= lo.X && p.X <= hi.X &&
		p.Y >= lo.Y && p.Y <= hi.Y &&
		p.Z >= lo.Z && p.Z <= hi.Z
}

// ClampPlanar clamps X and Z into the box and leaves Y untouched.
func (b Bounds) ClampPlanar(p Vec3) Vec3 {
	lo, hi := b.Min(), b.Max()
	p.X = math.Max(lo.X, math.Min(hi.X, p.X))
	p.Z = math.Max(lo.Z, math.Min(hi.Z, p.Z))
	return p
}

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) Valid() bool {
	return r.Min <= r.Max
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Sample draws uniformly from the range.
func (r Range) Sample(rng *rand.Rand) float64 {
	return RandomRange(rng, r.Min, r.Max)
}

// RandomRange draws uniformly from [lo, hi].
func RandomRange(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
