package main

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/warden/assets"
	"github.com/milk9111/warden/audio/mixer"
	"github.com/milk9111/warden/common"
	"github.com/milk9111/warden/prefabs"
	"github.com/milk9111/warden/render"
	"github.com/milk9111/warden/sim"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	sampleRate = 44100
	hudMargin  = 48
	volumeStep = 0.1
)

type Game struct {
	frames    int
	levelName string
	logger    *slog.Logger

	world *sim.World
	cam   render.Camera
	hud   *HUD
	mixer *mixer.Mixer

	watcher  *prefabs.Watcher
	settings Settings
	store    *SettingsStore
}

func NewGame(levelName string, debug, watch bool, logger *slog.Logger) (*Game, error) {
	g := &Game{
		levelName: levelName,
		logger:    logger,
		store:     OpenSettings(logger),
	}
	g.settings = g.store.Load()
	if debug {
		g.settings.Debug = true
	}

	m, err := mixer.NewMixer(audio.NewContext(sampleRate), assets.FS(), assets.SFX(), logger)
	if err != nil {
		return nil, err
	}
	m.SetVolume(g.settings.SFXVolume)
	g.mixer = m

	if err := g.rebuild(); err != nil {
		return nil, err
	}

	if watch {
		w, err := prefabs.NewWatcher(prefabs.Dirs()...)
		if err != nil {
			logger.Warn("prefab watcher unavailable", "err", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// rebuild loads fresh prefabs and level data and swaps in a new world. The
// old world keeps running if anything fails to load.
func (g *Game) rebuild() error {
	cfg, err := sim.LoadConfig(g.levelName)
	if err != nil {
		return err
	}
	world, err := sim.NewWorld(cfg,
		sim.WithLogger(g.logger),
		sim.WithAudio(g.mixer),
		sim.OnTransition(func(t sim.Transition) {
			g.logger.Debug("transition", "agent", t.Agent, "from", t.From.String(), "to", t.To.String(), "tick", t.Tick)
		}),
	)
	if err != nil {
		return err
	}
	world.Start()

	if g.world != nil {
		g.world.Close()
	}
	g.world = world
	g.cam = render.FitCamera(cfg.Level.Bounds, baseWidth, baseHeight, hudMargin)
	g.hud = NewHUD(cfg.Hud)
	return nil
}

func (g *Game) Update() error {
	g.frames++
	g.pollReload()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.settings.Debug = !g.settings.Debug
		g.store.Save(g.settings)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.setVolume(g.settings.SFXVolume - volumeStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.setVolume(g.settings.SFXVolume + volumeStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.rebuild(); err != nil {
			g.logger.Warn("restart failed", "err", err)
		}
	}

	g.world.MovePlayer(readMove())
	if inpututil.IsKeyJustPressed(ebiten.KeyE) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.world.Use()
	}

	g.world.Step(1 / float64(ebiten.TPS()))
	g.mixer.Flush()
	g.hud.Update(g.world)
	return nil
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	select {
	case change := <-g.watcher.Events:
		if err := g.rebuild(); err != nil {
			g.logger.Warn("prefab reload failed", "path", change.Path, "err", err)
			return
		}
		g.logger.Info("prefab reloaded", "path", change.Path)
	case err := <-g.watcher.Errors:
		g.logger.Warn("prefab watcher error", "err", err)
	default:
	}
}

func (g *Game) setVolume(v float64) {
	g.mixer.SetVolume(v)
	g.settings.SFXVolume = g.mixer.Volume()
	g.store.Save(g.settings)
}

func readMove() common.Vec3 {
	var dir common.Vec3
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dir.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dir.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dir.Z--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dir.Z++
	}
	return dir
}

func (g *Game) Draw(screen *ebiten.Image) {
	render.DrawWorld(screen, g.world, g.cam, g.settings.Debug)
	g.hud.Draw(screen)
	if g.settings.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    SFX: %.0f%%", g.frames, ebiten.ActualFPS(), g.settings.SFXVolume*100), 8, baseHeight-20)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.world != nil {
		g.world.Close()
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
