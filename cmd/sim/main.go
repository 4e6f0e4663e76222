// Command sim runs the arena headless with a scenario script driving the
// player, logging every guard transition.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/milk9111/warden/scenario"
	"github.com/milk9111/warden/sim"
)

func main() {
	os.Exit(run())
}

func run() int {
	script := flag.String("script", "objective_run", "scenario script in prefabs/scripts (basename, .tengo optional)")
	levelName := flag.String("level", "", "level name in levels/ or a path to a .tmx file")
	ticks := flag.Int("ticks", 3600, "maximum ticks to simulate")
	tps := flag.Int("tps", defaultTPS, "ticks per second")
	realtime := flag.Bool("realtime", false, "tick on a wall clock instead of as fast as possible")
	seed := flag.Uint64("seed", 1, "random seed for guard behaviour")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()
	*tps = tickRate(*tps)

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := sim.LoadConfig(*levelName)
	if err != nil {
		log.Fatal(err)
	}
	rt, err := scenario.Load(*script, logger)
	if err != nil {
		log.Fatal(err)
	}

	world, err := sim.NewWorld(cfg,
		sim.WithLogger(logger),
		sim.WithSeed(*seed),
		sim.WithScript(rt),
		sim.OnTransition(func(t sim.Transition) {
			logger.Info("transition", "tick", t.Tick, "agent", t.Agent, "from", t.From.String(), "to", t.To.String())
		}),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer world.Close()
	world.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := simulate(ctx, world, *ticks, *tps, *realtime); err != nil {
		logger.Error("simulation failed", "err", err)
		return 1
	}

	fmt.Println(summary(world))
	if !world.Won() {
		return 1
	}
	return 0
}

// simulate advances the world up to ticks at tps, either as fast as
// possible or on a wall clock.
func simulate(ctx context.Context, world *sim.World, ticks, tps int, realtime bool) error {
	tps = tickRate(tps)
	if !realtime {
		world.Run(ticks, 1/float64(tps))
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, tickBudget(ticks, tps))
	defer cancel()
	if err := sim.NewGameLoop(world, tps).Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func summary(w *sim.World) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ticks=%d time=%.2fs won=%v objective=%v\n", w.Tick(), w.Time(), w.Won(), w.ObjectiveActive())
	for _, g := range w.Guards() {
		fmt.Fprintf(&b, "  %s state=%s alerted=%v cooldown=%.2f\n", g.Agent.Name(), g.Agent.Kind(), g.Agent.ForceChasePlayer(), g.Agent.CooldownTimer())
	}
	fmt.Fprintf(&b, "  cues=%s", strings.Join(w.Journal().Cues(), ","))
	if st := w.Script(); st != nil {
		fmt.Fprintf(&b, "\n  script=%s state=%v", st.Name(), st.State())
	}
	return b.String()
}
