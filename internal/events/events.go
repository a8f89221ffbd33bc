package events

import (
	"github.com/yohamta/donburi"
	devents "github.com/yohamta/donburi/features/events"

	"grove/internal/input"
)

// StageAdvanced fires when a tree moves to its next growth stage.
type StageAdvanced struct {
	Tick  uint64
	Tree  int
	Stage int
}

// ActionApplied fires when a water or fertilize action lands on a tree.
type ActionApplied struct {
	Tick   uint64
	Tree   int
	Action input.Action
}

// EligibilityChanged fires when the interaction affordance appears or hides.
// Tree is -1 when no tree is in range.
type EligibilityChanged struct {
	Tick     uint64
	Tree     int
	Eligible bool
}

var (
	stageAdvanced      = devents.NewEventType[StageAdvanced]()
	actionApplied      = devents.NewEventType[ActionApplied]()
	eligibilityChanged = devents.NewEventType[EligibilityChanged]()
)

// Bus queues simulation events and delivers them to subscribers on Flush. A
// nil *Bus drops everything, so the simulation runs without one.
type Bus struct {
	world donburi.World
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{world: donburi.NewWorld()}
}

func (b *Bus) OnStageAdvanced(fn func(StageAdvanced)) {
	stageAdvanced.Subscribe(b.world, func(_ donburi.World, e StageAdvanced) { fn(e) })
}

func (b *Bus) OnActionApplied(fn func(ActionApplied)) {
	actionApplied.Subscribe(b.world, func(_ donburi.World, e ActionApplied) { fn(e) })
}

func (b *Bus) OnEligibilityChanged(fn func(EligibilityChanged)) {
	eligibilityChanged.Subscribe(b.world, func(_ donburi.World, e EligibilityChanged) { fn(e) })
}

func (b *Bus) PublishStageAdvanced(e StageAdvanced) {
	if b == nil {
		return
	}
	stageAdvanced.Publish(b.world, e)
}

func (b *Bus) PublishActionApplied(e ActionApplied) {
	if b == nil {
		return
	}
	actionApplied.Publish(b.world, e)
}

func (b *Bus) PublishEligibilityChanged(e EligibilityChanged) {
	if b == nil {
		return
	}
	eligibilityChanged.Publish(b.world, e)
}

// Flush delivers queued events in publication order per type.
func (b *Bus) Flush() {
	if b == nil {
		return
	}
	eligibilityChanged.ProcessEvents(b.world)
	actionApplied.ProcessEvents(b.world)
	stageAdvanced.ProcessEvents(b.world)
}
