package garden

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"grove/internal/core"
	"grove/internal/events"
	"grove/internal/input"
	"grove/internal/tilemap"
)

// open4x4 is a fully walkable 1536x1536 world at the default scale.
const open4x4 = "0 0 0 0\n0 0 0 0\n0 0 0 0\n0 0 0 0\n"

// twoTrees places trees at tile centers (576,576) and (1344,576).
const twoTrees = "0 0 0 0\n0 2 0 2\n0 0 0 0\n0 0 0 0\n"

func newWorld(t *testing.T, text string, cfg Config) *World {
	t.Helper()
	m, err := tilemap.Parse(text, cfg.Map)
	if err != nil {
		t.Fatalf("parse map: %v", err)
	}
	w, err := New(m, cfg)
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return w
}

func placeCenter(w *World, c core.Vec) {
	probe := w.engine.Probe()
	w.state.Player.X = c.X - probe.W/2
	w.state.Player.Y = c.Y - probe.H/2
}

var idle = input.Snapshot{}

func TestSpawnPosition(t *testing.T) {
	w := newWorld(t, open4x4, DefaultConfig())
	p := w.State().Player
	if p.X != 768-95 || p.Y != 768-20 {
		t.Fatalf("expected spawn at (673,748), got (%v,%v)", p.X, p.Y)
	}
	if p.Facing != 1 || p.State != Idle {
		t.Fatalf("unexpected spawn facing=%d state=%v", p.Facing, p.State)
	}
	if w.Size().W != 1536 || w.Size().H != 1536 {
		t.Fatalf("unexpected world size %+v", w.Size())
	}
}

func TestHoldRightAdvancesUntilPinned(t *testing.T) {
	w := newWorld(t, open4x4, DefaultConfig())
	right := input.SnapshotOf([]input.Key{input.KeyRight}, nil)
	start := w.State().Player.X
	limit := w.Size().W - 64
	for n := 1; n <= 200; n++ {
		w.Step(right)
		want := start + 5*float64(n)
		if want > limit {
			want = limit
		}
		if got := w.State().Player.X; got != want {
			t.Fatalf("tick %d: expected x=%v, got %v", n, want, got)
		}
	}
	if w.State().Player.State != Walking {
		t.Fatalf("expected walking while a direction is held")
	}
	w.Step(idle)
	if w.State().Player.State != Idle {
		t.Fatalf("expected idle without input")
	}
}

func TestDiagonalSlidesAlongWall(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Map.Scale = 1
	cfg.Map.ReferenceSize = 320
	// 10 columns of 32 units; a wall column at x=[192,224).
	text := strings.Repeat("0 0 0 0 0 0 1 0 0 0\n", 10)
	w := newWorld(t, text, cfg)
	w.state.Player.X = 192 - 64 - 2
	w.state.Player.Y = 100

	both := input.SnapshotOf([]input.Key{input.KeyRight, input.KeyDown}, nil)
	w.Step(both)
	p := w.State().Player
	if p.X != 126 {
		t.Fatalf("expected x blocked at 126, got %v", p.X)
	}
	if p.Y != 105 {
		t.Fatalf("expected y to keep sliding to 105, got %v", p.Y)
	}
	if p.State != Walking {
		t.Fatalf("blocked movement still counts as walking")
	}
}

func TestFacingAndFrames(t *testing.T) {
	w := newWorld(t, open4x4, DefaultConfig())
	w.Step(input.SnapshotOf([]input.Key{input.KeyLeft}, nil))
	p := w.State().Player
	if p.Facing != -1 || p.FrameY != RowSideways {
		t.Fatalf("expected facing left on the sideways row, got facing=%d row=%d", p.Facing, p.FrameY)
	}
	w.Step(input.SnapshotOf([]input.Key{input.KeyUp}, nil))
	p = w.State().Player
	if p.Facing != -1 || p.FrameY != RowUp {
		t.Fatalf("vertical movement must keep facing, got facing=%d row=%d", p.Facing, p.FrameY)
	}
	for i := 0; i < 8; i++ {
		w.Step(idle)
	}
	if w.State().Player.FrameX != 1 {
		t.Fatalf("expected one frame advance after 10 ticks, got %d", w.State().Player.FrameX)
	}
	for i := 0; i < 20; i++ {
		w.Step(idle)
	}
	if w.State().Player.FrameX != 0 {
		t.Fatalf("expected frame to wrap after 30 ticks, got %d", w.State().Player.FrameX)
	}
}

func TestFollowCamera(t *testing.T) {
	world := core.Size{W: 1536, H: 1536}
	view := core.Size{W: 600, H: 300}
	off := core.Vec{X: 32, Y: 32}

	cam := FollowCamera(Player{X: 673, Y: 748}, world, view, off)
	if cam.X != 405 || cam.Y != 630 {
		t.Fatalf("expected camera (405,630), got %+v", cam)
	}
	cam = FollowCamera(Player{X: 0, Y: 0}, world, view, off)
	if cam.X != 0 || cam.Y != 0 {
		t.Fatalf("expected camera clamped to origin, got %+v", cam)
	}
	cam = FollowCamera(Player{X: 1472, Y: 1472}, world, view, off)
	if cam.X != 936 || cam.Y != 1236 {
		t.Fatalf("expected camera clamped to (936,1236), got %+v", cam)
	}
	cam = FollowCamera(Player{X: 50, Y: 50}, core.Size{W: 100, H: 100}, view, off)
	if cam.X != 0 || cam.Y != 0 {
		t.Fatalf("small worlds must pin the camera at 0, got %+v", cam)
	}
}

func TestGrowthStagesAndPin(t *testing.T) {
	p := DefaultConfig().Params
	tree := Tree{GrowthSpeed: 1}
	prev := tree.Growth
	for tick := 1; tick <= 99; tick++ {
		if Grow(&tree, p) {
			t.Fatalf("advanced early at tick %d", tick)
		}
		if tree.Growth <= prev {
			t.Fatalf("growth must strictly increase below the final stage")
		}
		prev = tree.Growth
	}
	if !Grow(&tree, p) || tree.Stage != 1 || tree.Growth != 0 {
		t.Fatalf("expected stage 1 with growth reset at tick 100, got stage=%d growth=%v", tree.Stage, tree.Growth)
	}

	tree = Tree{Stage: 2, Growth: 99.5, GrowthSpeed: 1, Watered: true, Fertilized: true}
	if !Grow(&tree, p) {
		t.Fatalf("expected advance to the final stage")
	}
	if tree.Stage != MaxStage || tree.Growth != GrowthTarget {
		t.Fatalf("expected pinned growth at the final stage, got stage=%d growth=%v", tree.Stage, tree.Growth)
	}
	if tree.Watered || tree.Fertilized {
		t.Fatalf("flags must clear on stage advance")
	}
	if Grow(&tree, p) || tree.Growth != GrowthTarget || tree.Stage != MaxStage {
		t.Fatalf("mature trees must not change")
	}

	p.PinTerminalGrowth = false
	tree = Tree{Stage: 2, Growth: 99.5, GrowthSpeed: 1}
	Grow(&tree, p)
	if tree.Stage != MaxStage || tree.Growth != 0 {
		t.Fatalf("legacy mode leaves growth at 0, got %v", tree.Growth)
	}
}

func TestGrowthMultipliers(t *testing.T) {
	p := DefaultConfig().Params
	tree := Tree{GrowthSpeed: 2, Watered: true}
	Grow(&tree, p)
	if tree.Growth != 3 {
		t.Fatalf("expected watered growth 3, got %v", tree.Growth)
	}
	tree = Tree{GrowthSpeed: 0.5, Watered: true, Fertilized: true}
	p.FertilizeMultiplier = 4
	Grow(&tree, p)
	if tree.Growth != 3 {
		t.Fatalf("expected multipliers to compound to 3, got %v", tree.Growth)
	}
}

func TestTicksToStage(t *testing.T) {
	p := GestureConfig().Params
	p.GrowthSpeed = 1
	if got := TicksToStage(p, 1, false, false, 1000); got != 100 {
		t.Fatalf("expected 100 ticks to stage 1, got %d", got)
	}
	if got := TicksToStage(p, MaxStage, true, false, 1000); got != 150 {
		t.Fatalf("expected 150 watered ticks to maturity, got %d", got)
	}
	if got := TicksToStage(p, MaxStage, false, false, 10); got != -1 {
		t.Fatalf("expected -1 past the limit, got %d", got)
	}
}

func TestWaterConsumesEligibility(t *testing.T) {
	w := newWorld(t, twoTrees, DefaultConfig())
	tree := w.State().Trees[0].Center()
	if tree.X != 576 || tree.Y != 576 {
		t.Fatalf("unexpected tree center %+v", tree)
	}
	placeCenter(w, core.Vec{X: tree.X, Y: tree.Y + 50})
	w.Step(idle)
	if w.State().Nearby != 0 || !w.State().ShowInteraction {
		t.Fatalf("expected tree 0 eligible, got nearby=%d show=%v", w.State().Nearby, w.State().ShowInteraction)
	}

	if !w.ApplyAction(input.ActionWater) {
		t.Fatalf("expected water to apply")
	}
	if !w.State().Trees[0].Watered || w.State().ShowInteraction {
		t.Fatalf("expected watered tree and hidden affordance")
	}
	if w.ApplyAction(input.ActionFertilize) {
		t.Fatalf("second action before re-entering range must be a no-op")
	}
	if w.State().Trees[0].Fertilized {
		t.Fatalf("no-op action must not change the tree")
	}
	w.Step(idle)
	if w.State().ShowInteraction {
		t.Fatalf("window must stay spent while the player remains in range")
	}

	placeCenter(w, core.Vec{X: 900, Y: 1200})
	w.Step(idle)
	if w.State().Nearby != -1 || w.State().ShowInteraction {
		t.Fatalf("expected nothing in range")
	}
	placeCenter(w, core.Vec{X: tree.X + 30, Y: tree.Y})
	w.Step(idle)
	if !w.State().ShowInteraction {
		t.Fatalf("re-entering range must re-open the window")
	}
}

func TestActionWithoutTreeIsNoop(t *testing.T) {
	w := newWorld(t, twoTrees, DefaultConfig())
	placeCenter(w, core.Vec{X: 900, Y: 1200})
	w.Step(input.SnapshotOf(nil, []input.Key{input.KeyWater}))
	for _, tree := range w.State().Trees {
		if tree.Watered {
			t.Fatalf("water must not land without a tree in range")
		}
	}
	if w.ApplyAction(input.ActionWater) {
		t.Fatalf("expected no-op")
	}
}

func TestStepAppliesPressedActions(t *testing.T) {
	w := newWorld(t, twoTrees, DefaultConfig())
	tree := w.State().Trees[1].Center()
	placeCenter(w, core.Vec{X: tree.X - 40, Y: tree.Y + 40})
	w.Step(input.SnapshotOf(nil, []input.Key{input.KeyFertilize}))
	got := w.State().Trees[1]
	if !got.Fertilized {
		t.Fatalf("expected fertilize on the same tick the tree came into range")
	}
	if math.Abs(got.Growth-5) > 1e-9 {
		t.Fatalf("expected fertilized growth 5 on the same tick, got %v", got.Growth)
	}

	w2 := newWorld(t, twoTrees, DefaultConfig())
	placeCenter(w2, core.Vec{X: tree.X, Y: tree.Y + 40})
	w2.Step(input.SnapshotOf(nil, []input.Key{input.KeyWater, input.KeyFertilize}))
	if !w2.State().Trees[1].Watered || w2.State().Trees[1].Fertilized {
		t.Fatalf("water wins when both keys are pressed on one tick")
	}
	w2.Step(input.SnapshotOf([]input.Key{input.KeyFertilize}, nil))
	if w2.State().Trees[1].Fertilized {
		t.Fatalf("a held key must not act again")
	}
}

func TestNearbyIsFirstInStorageOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Map.Scale = 1
	cfg.Map.ReferenceSize = 128
	w := newWorld(t, "2 2 0 0\n0 0 0 0\n0 0 0 0\n0 0 0 0\n", cfg)
	trees := w.State().Trees
	if c := trees[1].Center(); c.X != 48 || c.Y != 16 {
		t.Fatalf("unexpected tree center %+v", c)
	}

	placeCenter(w, core.Vec{X: 40, Y: 32})
	w.Step(idle)
	if w.State().Nearby != 0 {
		t.Fatalf("expected the first tree in range, not the closest, got %d", w.State().Nearby)
	}
	w.ApplyAction(input.ActionWater)

	placeCenter(w, core.Vec{X: 80, Y: 32})
	w.Step(idle)
	if w.State().Nearby != 1 || !w.State().ShowInteraction {
		t.Fatalf("switching trees must re-open the window, got nearby=%d show=%v", w.State().Nearby, w.State().ShowInteraction)
	}
}

func TestBoundsHoldUnderRandomInput(t *testing.T) {
	rng := core.NewRNG(42)
	var b strings.Builder
	const n = 12
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			code := "1"
			if r > 0 && c > 0 && r < n-1 && c < n-1 {
				code = [...]string{"0", "1", "2"}[rng.Weighted(0.85, 0.1, 0.05)]
			}
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(code)
		}
		b.WriteByte('\n')
	}
	cfg := DefaultConfig()
	w := newWorld(t, b.String(), cfg)
	size := w.Size()
	startFree := !w.engine.WouldCollide(w.State().Player.X, w.State().Player.Y)

	keys := []input.Key{input.KeyUp, input.KeyDown, input.KeyLeft, input.KeyRight, input.KeyWater, input.KeyFertilize}
	buf := input.NewBuffer()
	for tick := 0; tick < 5000; tick++ {
		for _, k := range keys {
			buf.Set(k, rng.Chance(0.4))
		}
		w.Step(buf.Sample())
		s := w.State()
		if s.Player.X < 0 || s.Player.X > size.W-64 || s.Player.Y < 0 || s.Player.Y > size.H-64 {
			t.Fatalf("tick %d: player out of bounds at (%v,%v)", tick, s.Player.X, s.Player.Y)
		}
		if s.Camera.X < 0 || s.Camera.X > max(0, size.W-600) || s.Camera.Y < 0 || s.Camera.Y > max(0, size.H-300) {
			t.Fatalf("tick %d: camera out of bounds at %+v", tick, s.Camera)
		}
		if startFree && w.engine.WouldCollide(s.Player.X, s.Player.Y) {
			t.Fatalf("tick %d: player entered an obstacle at (%v,%v)", tick, s.Player.X, s.Player.Y)
		}
		for i, tree := range s.Trees {
			if tree.Stage < 0 || tree.Stage > MaxStage {
				t.Fatalf("tree %d has invalid stage %d", i, tree.Stage)
			}
		}
		if s.ShowInteraction && s.Nearby < 0 {
			t.Fatalf("affordance shown without a nearby tree")
		}
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	w := newWorld(t, twoTrees, DefaultConfig())
	before := w.State().Clone()
	for i := 0; i < 50; i++ {
		w.Step(input.SnapshotOf([]input.Key{input.KeyDown, input.KeyRight}, nil))
	}
	w.Reset(7)
	after := w.State()
	if after.Tick != 0 || after.Player != before.Player || after.Camera != before.Camera {
		t.Fatalf("expected reset to restore the spawn state")
	}
	for i := range after.Trees {
		if after.Trees[i] != before.Trees[i] {
			t.Fatalf("tree %d not restored", i)
		}
	}
	if w.Config().Seed != 7 {
		t.Fatalf("expected seed to be recorded")
	}
}

func TestStepPublishesEvents(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.GrowthSpeed = 50
	w := newWorld(t, twoTrees, cfg)
	bus := events.NewBus()
	w.SetEventBus(bus)

	var stages []events.StageAdvanced
	var eligible []events.EligibilityChanged
	var actions []events.ActionApplied
	bus.OnStageAdvanced(func(e events.StageAdvanced) { stages = append(stages, e) })
	bus.OnEligibilityChanged(func(e events.EligibilityChanged) { eligible = append(eligible, e) })
	bus.OnActionApplied(func(e events.ActionApplied) { actions = append(actions, e) })

	tree := w.State().Trees[0].Center()
	placeCenter(w, core.Vec{X: tree.X, Y: tree.Y + 40})
	w.Step(input.SnapshotOf(nil, []input.Key{input.KeyWater}))
	if len(actions) != 1 || actions[0].Tree != 0 || actions[0].Action != input.ActionWater {
		t.Fatalf("unexpected action events %+v", actions)
	}
	if len(eligible) != 2 || !eligible[0].Eligible || eligible[1].Eligible {
		t.Fatalf("expected eligibility to open then close, got %+v", eligible)
	}
	w.Step(idle)
	if len(stages) != 2 {
		t.Fatalf("expected both trees to reach stage 1 on tick 2, got %+v", stages)
	}
	if stages[0].Tree != 0 || stages[0].Stage != 1 || stages[0].Tick != 2 {
		t.Fatalf("unexpected stage event %+v", stages[0])
	}
}

func TestRegistryPresets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.txt")
	if err := os.WriteFile(path, []byte(twoTrees), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	factory, ok := core.Sims()[NameGesture]
	if !ok {
		t.Fatalf("expected %q to be registered", NameGesture)
	}
	sim, err := factory(map[string]string{"map": path, "player_speed": "7"})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	w := sim.(*World)
	if w.Name() != NameGesture {
		t.Fatalf("expected name %q, got %q", NameGesture, w.Name())
	}
	p := w.Config().Params
	if p.WaterMultiplier != 2 || p.FertilizeMultiplier != 2 || p.PlayerSpeed != 7 {
		t.Fatalf("unexpected gesture params %+v", p)
	}
	if _, err := core.Sims()[NameKeyboard](map[string]string{"map": filepath.Join(dir, "nope.txt")}); err == nil {
		t.Fatalf("expected missing map to fail")
	}
}

func TestFromMapIgnoresInvalidValues(t *testing.T) {
	c := FromMap(map[string]string{
		"growth_speed":        "-1",
		"water_multiplier":    "3",
		"pin_terminal_growth": "false",
		"animation_period":    "x",
		"viewport_w":          "800",
	})
	if c.Params.GrowthSpeed != 0.05 {
		t.Fatalf("negative growth speed must be ignored, got %v", c.Params.GrowthSpeed)
	}
	if c.Params.WaterMultiplier != 3 || c.Params.PinTerminalGrowth || c.Viewport.W != 800 {
		t.Fatalf("unexpected overrides %+v", c)
	}
	if c.Params.AnimationPeriod != 10 {
		t.Fatalf("unparseable values must be ignored")
	}
}

func TestValidateRejectsBrokenParams(t *testing.T) {
	c := DefaultConfig()
	c.Params.GrowthSpeed = 0
	if err := c.Validate(); err == nil {
		t.Fatalf("expected zero growth speed to be rejected")
	}
	m, _ := tilemap.Parse(open4x4, c.Map)
	if _, err := New(m, c); err == nil {
		t.Fatalf("expected New to validate the config")
	}
}

func TestParameterSetters(t *testing.T) {
	w := newWorld(t, twoTrees, DefaultConfig())
	if !w.SetFloatParameter("growth_speed", 50) {
		t.Fatalf("expected growth speed to be adjustable")
	}
	if got := w.State().Trees[0].GrowthSpeed; got != 5 {
		t.Fatalf("expected growth speed clamped to 5 on every tree, got %v", got)
	}
	if !w.SetFloatParameter("player_speed", 8) || w.State().Player.Speed != 8 {
		t.Fatalf("expected player speed 8")
	}
	if w.SetFloatParameter("animation_period", 3) {
		t.Fatalf("int parameters must reject float setters")
	}
	if !w.SetIntParameter("animation_period", 0) || w.Config().Params.AnimationPeriod != 1 {
		t.Fatalf("expected animation period clamped to 1")
	}
	if !w.SetBoolParameter("pin_terminal_growth", false) || w.Config().Params.PinTerminalGrowth {
		t.Fatalf("expected pin to toggle off")
	}
	param, ok := w.Parameters().Find("water_multiplier")
	if !ok || param.Value != "1.5" {
		t.Fatalf("unexpected snapshot value %+v", param)
	}
	w.Reset(1)
	if w.State().Trees[0].GrowthSpeed != 5 {
		t.Fatalf("growth speed must survive a reset")
	}
}

func TestBundledMapSpawnIsClear(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MapPath = filepath.Join("..", "..", "..", "assets", "collisions.txt")
	w, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("load bundled map: %v", err)
	}
	p := w.State().Player
	if w.Collider().WouldCollide(p.X, p.Y) {
		t.Fatalf("spawn at (%v,%v) overlaps an obstacle", p.X, p.Y)
	}
	if len(w.State().Trees) != 8 {
		t.Fatalf("expected 8 trees, got %d", len(w.State().Trees))
	}
}
