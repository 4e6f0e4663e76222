package main

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/warden/scenario"
	"github.com/milk9111/warden/sim"
)

func TestTickBudget(t *testing.T) {
	tests := []struct {
		ticks, tps int
		want       time.Duration
	}{
		{ticks: 60, tps: 60, want: time.Second},
		{ticks: 30, tps: 60, want: 500 * time.Millisecond},
		{ticks: 120, tps: 0, want: 2 * time.Second},
	}
	for _, tt := range tests {
		if got := tickBudget(tt.ticks, tt.tps); got != tt.want {
			t.Fatalf("tickBudget(%d, %d) = %v, want %v", tt.ticks, tt.tps, got, tt.want)
		}
	}
}

func TestSimulateClampsRate(t *testing.T) {
	cfg, err := sim.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	for _, tps := range []int{0, -5} {
		w, err := sim.NewWorld(cfg, sim.WithSeed(2))
		if err != nil {
			t.Fatalf("NewWorld: %v", err)
		}
		w.Start()
		if err := simulate(context.Background(), w, 30, tps, false); err != nil {
			t.Fatalf("simulate: %v", err)
		}
		got := w.Time()
		w.Close()
		if math.IsInf(got, 0) || math.Abs(got-0.5) > 1e-9 {
			t.Fatalf("tps %d: expected 0.5s simulated at the default rate, got %v", tps, got)
		}
	}
	if tickRate(0) != defaultTPS || tickRate(30) != 30 {
		t.Fatalf("unexpected tickRate clamping")
	}
}

func TestSummary(t *testing.T) {
	cfg, err := sim.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	rt, err := scenario.Load("idle", nil)
	if err != nil {
		t.Fatalf("scenario.Load: %v", err)
	}
	w, err := sim.NewWorld(cfg, sim.WithSeed(5), sim.WithScript(rt))
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	defer w.Close()
	w.Start()
	w.Run(10, 1.0/60)

	out := summary(w)
	for _, want := range []string{"ticks=10", "won=false", "guard_west", "guard_east", "script=idle"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}
