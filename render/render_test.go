package render

import (
	"math"
	"testing"

	"github.com/milk9111/warden/common"
	"github.com/milk9111/warden/enemy"
	"github.com/milk9111/warden/fsm"
)

var _ fsm.Gizmos = (*Gizmos)(nil)

func TestFitCamera(t *testing.T) {
	bounds := common.Bounds{Size: common.Vec3{X: 20, Y: 2, Z: 16}}
	cam := FitCamera(bounds, 640, 480, 16)

	if want := (480.0 - 32) / 16; cam.Scale != want {
		t.Fatalf("expected scale %v, got %v", want, cam.Scale)
	}

	tests := []struct {
		name  string
		world common.Vec3
		x, y  float32
	}{
		{name: "center", world: common.Vec3{}, x: 320, y: 240},
		{name: "top left", world: common.Vec3{X: -10, Z: -8}, x: 320 - 280, y: 16},
		{name: "height ignored", world: common.Vec3{X: 1, Y: 50}, x: 320 + 28, y: 240},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := cam.ToScreen(tt.world)
			if math.Abs(float64(x-tt.x)) > 1e-3 || math.Abs(float64(y-tt.y)) > 1e-3 {
				t.Fatalf("expected (%v,%v), got (%v,%v)", tt.x, tt.y, x, y)
			}
			back := cam.ToWorld(float64(x), float64(y))
			if math.Abs(back.X-tt.world.X) > 1e-3 || math.Abs(back.Z-tt.world.Z) > 1e-3 {
				t.Fatalf("round trip drifted: %+v", back)
			}
		})
	}
}

func TestStateColorsDistinct(t *testing.T) {
	seen := map[any]enemy.Kind{}
	for k := enemy.KindIdle; k <= enemy.KindGameOver; k++ {
		c := StateColor(k)
		if prev, ok := seen[c]; ok {
			t.Fatalf("%s and %s share a colour", prev, k)
		}
		seen[c] = k
	}
}
