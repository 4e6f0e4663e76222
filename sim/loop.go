package sim

import (
	"context"
	"time"
)

// GameLoop steps a world in real time at a fixed tick rate.
type GameLoop struct {
	world    *World
	tickRate int
	stopChan chan struct{}
}

func NewGameLoop(world *World, tickRate int) *GameLoop {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &GameLoop{
		world:    world,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
	}
}

// Run ticks until ctx is cancelled, Stop is called or the world finishes.
func (g *GameLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	dt := 1 / float64(g.tickRate)
	g.world.logger.Info("game loop started", "tps", g.tickRate)

	for {
		select {
		case <-ctx.Done():
			g.world.logger.Info("game loop stopped", "tick", g.world.Tick())
			return ctx.Err()
		case <-g.stopChan:
			g.world.logger.Info("game loop stopped", "tick", g.world.Tick())
			return nil
		case <-ticker.C:
			g.world.Step(dt)
			if g.world.Finished() {
				g.world.logger.Info("game loop finished", "tick", g.world.Tick(), "won", g.world.Won())
				return nil
			}
		}
	}
}

// Stop ends Run. It must be called at most once.
func (g *GameLoop) Stop() {
	close(g.stopChan)
}
