package prefabs

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/warden/common"
	"github.com/milk9111/warden/enemy"
	"gopkg.in/yaml.v3"
)

func TestLoadEnemySpec(t *testing.T) {
	spec, err := LoadEnemySpec()
	if err != nil {
		t.Fatalf("LoadEnemySpec: %v", err)
	}
	cfg, err := spec.Config(nil)
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	def := enemy.DefaultConfig()
	if cfg.ViewRadius != def.ViewRadius || cfg.StunCooldown != def.StunCooldown {
		t.Fatalf("stock guard drifted from defaults: %+v", cfg)
	}
	if cfg.Idle.TimeRange != def.Idle.TimeRange {
		t.Fatalf("expected idle range %v, got %v", def.Idle.TimeRange, cfg.Idle.TimeRange)
	}
	if cfg.Wander.Clip != "wander" || cfg.Chase.Clip != "chase" {
		t.Fatalf("unexpected clips %q %q", cfg.Wander.Clip, cfg.Chase.Clip)
	}
	if spec.StoppingDistance <= 0 || spec.Radius <= 0 {
		t.Fatalf("expected positive stopping distance and radius")
	}
}

func TestEnemySpecRoutes(t *testing.T) {
	route := []common.Vec3{{X: 1}, {X: 2}}
	cases := []struct {
		name    string
		patrol  PatrolSpec
		routes  map[string][]common.Vec3
		want    int
		wantErr error
		anyErr  bool
	}{
		{"inline", PatrolSpec{Enabled: true, Waypoints: []common.Vec3{{Z: 1}}}, nil, 1, nil, false},
		{"named_route_wins", PatrolSpec{Enabled: true, Route: "r", Waypoints: []common.Vec3{{Z: 1}}}, map[string][]common.Vec3{"r": route}, 2, nil, false},
		{"unknown_route", PatrolSpec{Enabled: true, Route: "missing"}, nil, 0, nil, true},
		{"enabled_without_waypoints", PatrolSpec{Enabled: true}, nil, 0, enemy.ErrNoWaypoints, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec := EnemySpec{
				Name:       "g",
				ViewRadius: 5,
				Idle:       IdleSpec{TimeRange: common.Range{Min: 1, Max: 2}},
				Patrol:     c.patrol,
			}
			cfg, err := spec.Config(c.routes)
			if c.anyErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if c.wantErr != nil && !errors.Is(err, c.wantErr) {
					t.Fatalf("expected %v, got %v", c.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Config: %v", err)
			}
			if len(cfg.Patrol.Waypoints) != c.want {
				t.Fatalf("expected %d waypoints, got %d", c.want, len(cfg.Patrol.Waypoints))
			}
		})
	}
}

func TestLoadPlayerAndHud(t *testing.T) {
	player, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	if player.Speed <= 0 || player.Reach <= 0 {
		t.Fatalf("unexpected player spec %+v", player)
	}
	hud, err := LoadHudSpec()
	if err != nil {
		t.Fatalf("LoadHudSpec: %v", err)
	}
	if hud.ObjectiveA == "" || hud.ObjectiveB == "" {
		t.Fatalf("hud objectives missing")
	}
	if hud.PanelColor.Color == nil {
		t.Fatalf("panel color not parsed")
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{`"#ff8000"`, color.NRGBA{R: 255, G: 128, A: 255}, false},
		{`"10203040"`, color.NRGBA{R: 16, G: 32, B: 48, A: 64}, false},
		{`"#abc"`, nil, true},
		{`[1, 2]`, nil, true},
	}
	for _, c := range cases {
		var got YAMLColor
		err := yaml.Unmarshal([]byte(c.in), &got)
		if c.wantErr {
			if err == nil {
				t.Errorf("%s: expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", c.in, err)
			continue
		}
		if got.Color != c.want {
			t.Errorf("%s: expected %v, got %v", c.in, c.want, got.Color)
		}
	}

	var unset YAMLColor
	if unset.Or(color.White) != color.White {
		t.Fatalf("Or should fall back when unset")
	}
}

func TestCleanPaths(t *testing.T) {
	if got := cleanPrefabPath("prefabs/enemy.yaml"); got != "enemy.yaml" {
		t.Errorf("cleanPrefabPath = %q", got)
	}
	cases := map[string]string{
		"objective_run":                "scripts/objective_run.tengo",
		"scripts/objective_run.tengo":  "scripts/objective_run.tengo",
		"prefabs/scripts/patrol.tengo": "scripts/patrol.tengo",
		"":                             "",
	}
	for in, want := range cases {
		if got := cleanScriptPath(in); got != want {
			t.Errorf("cleanScriptPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadScripts(t *testing.T) {
	for _, name := range []string{"objective_run", "stun_and_run", "idle"} {
		data, err := LoadScript(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("%s: empty script", name)
		}
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "enemy.yaml"), []byte("name: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ch := <-w.Events:
		if filepath.Base(ch.Path) != "enemy.yaml" || ch.Kind != ChangeSpec {
			t.Fatalf("unexpected change %+v", ch)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for change")
	}
}

func TestReloadFilter(t *testing.T) {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	stamps := map[string]time.Time{}
	f := newReloadFilter(func(path string) (time.Time, bool) {
		mt, ok := stamps[path]
		return mt, ok
	})

	steps := []struct {
		name  string
		mtime time.Time // zero means the file is gone
		at    time.Duration
		want  bool
	}{
		{"first_write", base, 0, true},
		{"burst", base.Add(time.Second), 50 * time.Millisecond, false},
		{"after_burst", base.Add(time.Second), time.Second, true},
		{"unchanged", base.Add(time.Second), 2 * time.Second, false},
		{"edited", base.Add(5 * time.Second), 3 * time.Second, true},
		{"removed", time.Time{}, 4 * time.Second, true},
		{"recreated", base.Add(5 * time.Second), 5 * time.Second, true},
	}
	for _, s := range steps {
		if s.mtime.IsZero() {
			delete(stamps, "enemy.yaml")
		} else {
			stamps["enemy.yaml"] = s.mtime
		}
		if got := f.accept("enemy.yaml", base.Add(s.at)); got != s.want {
			t.Fatalf("%s: accept = %v, want %v", s.name, got, s.want)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{"a/enemy.yaml", ChangeSpec, true},
		{"a/b.YML", ChangeSpec, true},
		{"s/run.tengo", ChangeScript, true},
		{"s/run.lua", 0, false},
	}
	for _, c := range cases {
		kind, ok := classify(c.path)
		if ok != c.ok || kind != c.kind {
			t.Errorf("classify(%q) = %v %v", c.path, kind, ok)
		}
	}
}
