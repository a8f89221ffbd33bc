package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"grove/internal/input"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grove.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadAndOverrides(t *testing.T) {
	path := writeFile(t, `
variant: garden-gesture
map: assets/collisions.txt
world:
  scale: 2
  viewportWidth: 800
player:
  speed: 4
growth:
  baseSpeed: 0.1
  fertilizeMultiplier: 3
  pinTerminal: false
interaction:
  radius: 0
input:
  source: gesture
  handStream: /tmp/hands.fifo
gesture:
  debounceFrames: 12
  pressDurationMs: 80
window:
  tps: 30
`)
	f, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if f.Variant != "garden-gesture" || f.Input.Source != InputGesture {
		t.Fatalf("unexpected file %+v", f)
	}
	got := f.Overrides()
	want := map[string]string{
		"map":                  "assets/collisions.txt",
		"scale":                "2",
		"viewport_w":           "800",
		"player_speed":         "4",
		"growth_speed":         "0.1",
		"fertilize_multiplier": "3",
		"pin_terminal_growth":  "false",
		"interaction_radius":   "0",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d overrides, got %v", len(want), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("override %q: expected %q, got %q", k, v, got[k])
		}
	}

	g := f.GestureConfig(input.DefaultGestureConfig())
	if g.DebounceFrames != 12 || g.PressDuration != 80*time.Millisecond || g.OpenThreshold != 150 {
		t.Fatalf("unexpected gesture config %+v", g)
	}
	if f.TerminalHold() != input.DefaultTerminalHold {
		t.Fatalf("expected default terminal hold")
	}
}

func TestValidateCollectsProblems(t *testing.T) {
	path := writeFile(t, `
player:
  speed: -1
input:
  source: joystick
gesture:
  openThreshold: 90
  closedThreshold: 120
sprites:
  tree: tree.png
`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation to fail")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Problems) != 5 {
		t.Fatalf("expected 5 problems, got %d: %v", len(verr.Problems), verr.Problems)
	}
	if !strings.Contains(err.Error(), "sprites.playerWalk") {
		t.Fatalf("expected missing walk sheet to be reported: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}
	if _, err := Load(writeFile(t, "world: [1, 2")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestEmptyFileIsValid(t *testing.T) {
	f, err := Load(writeFile(t, ""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(f.Overrides()) != 0 {
		t.Fatalf("empty file must not override anything, got %v", f.Overrides())
	}
	if f.Sprites.Configured() {
		t.Fatalf("expected no sprites")
	}
}

func TestBundledGameFileLoads(t *testing.T) {
	f, err := Load(filepath.Join("..", "..", "assets", "grove.yaml"))
	if err != nil {
		t.Fatalf("load bundled game file: %v", err)
	}
	if f.Variant != "garden" || f.Input.Source != InputKeyboard {
		t.Fatalf("unexpected bundled settings: variant=%q input=%q", f.Variant, f.Input.Source)
	}
	if f.Growth.PinTerminal == nil || !*f.Growth.PinTerminal {
		t.Fatalf("expected the bundled file to pin terminal growth")
	}
}
