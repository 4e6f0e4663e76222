package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/warden/common"
	"github.com/milk9111/warden/enemy"
	"github.com/milk9111/warden/sim"
	"golang.org/x/image/colornames"
)

var (
	floorColor = color.RGBA{R: 24, G: 28, B: 36, A: 255}
	wallColor  = color.RGBA{R: 70, G: 76, B: 90, A: 255}
	exitColor  = color.RGBA{R: 40, G: 160, B: 80, A: 96}
	pathColor  = color.RGBA{R: 255, G: 255, B: 255, A: 64}
)

// StateColor is the body colour for a guard in state k.
func StateColor(k enemy.Kind) color.Color {
	switch k {
	case enemy.KindWander:
		return colornames.Skyblue
	case enemy.KindChase:
		return colornames.Orangered
	case enemy.KindPatrol:
		return colornames.Mediumpurple
	case enemy.KindStun:
		return colornames.Yellow
	case enemy.KindGameOver:
		return colornames.Dimgray
	default:
		return colornames.Lightsteelblue
	}
}

// DrawWorld paints the arena, the player and every guard. With debug set
// it adds each guard's gizmos, route and state label.
func DrawWorld(dst *ebiten.Image, w *sim.World, cam Camera, debug bool) {
	level := w.Level()
	x, y, bw, bh := cam.rect(level.Bounds.Center, level.Bounds.Size)
	vector.FillRect(dst, x, y, bw, bh, floorColor, false)
	for _, wall := range level.Walls {
		x, y, ww, wh := cam.rect(wall.Center, wall.Size)
		vector.FillRect(dst, x, y, ww, wh, wallColor, false)
	}
	if level.HasExit {
		x, y, ew, eh := cam.rect(level.Exit.Center, level.Exit.Size)
		vector.FillRect(dst, x, y, ew, eh, exitColor, false)
	}
	if pos, ok := w.ObjectivePosition(); ok && !w.ObjectiveActive() {
		ox, oy := cam.ToScreen(pos)
		vector.FillCircle(dst, ox, oy, cam.Length(0.3), colornames.Gold, true)
	}

	player := w.Player()
	px, py := cam.ToScreen(player.Position())
	vector.FillCircle(dst, px, py, cam.Length(player.Radius()), colornames.White, true)

	for _, g := range w.Guards() {
		gx, gy := cam.ToScreen(g.Body.Position())
		vector.FillCircle(dst, gx, gy, cam.Length(g.Body.Radius()), StateColor(g.Agent.Kind()), true)
		if !debug {
			continue
		}
		drawPath(dst, cam, g.Body.Position(), g.Body.Path())
		label := fmt.Sprintf("%s %s/%d", g.Agent, g.Animator.Clip(), g.Animator.Frame())
		ebitenutil.DebugPrintAt(dst, label, int(gx)+8, int(gy)-16)
	}

	if debug {
		w.DrawGizmos(NewGizmos(dst, cam))
	}
}

func drawPath(dst *ebiten.Image, cam Camera, from common.Vec3, path []common.Vec3) {
	prevX, prevY := cam.ToScreen(from)
	for _, p := range path {
		x, y := cam.ToScreen(p)
		vector.StrokeLine(dst, prevX, prevY, x, y, 1, pathColor, true)
		prevX, prevY = x, y
	}
}
