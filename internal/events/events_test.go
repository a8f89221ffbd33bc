package events

import (
	"testing"

	"grove/internal/input"
)

func TestFlushDeliversQueuedEvents(t *testing.T) {
	bus := NewBus()
	var stages []StageAdvanced
	var actions []ActionApplied
	bus.OnStageAdvanced(func(e StageAdvanced) { stages = append(stages, e) })
	bus.OnActionApplied(func(e ActionApplied) { actions = append(actions, e) })

	bus.PublishStageAdvanced(StageAdvanced{Tick: 1, Tree: 0, Stage: 1})
	bus.PublishStageAdvanced(StageAdvanced{Tick: 1, Tree: 2, Stage: 3})
	bus.PublishActionApplied(ActionApplied{Tick: 1, Tree: 2, Action: input.ActionWater})
	if len(stages) != 0 {
		t.Fatalf("events must wait for Flush")
	}
	bus.Flush()
	if len(stages) != 2 || stages[1].Stage != 3 {
		t.Fatalf("unexpected stage events %+v", stages)
	}
	if len(actions) != 1 || actions[0].Action != input.ActionWater {
		t.Fatalf("unexpected action events %+v", actions)
	}
	bus.Flush()
	if len(stages) != 2 {
		t.Fatalf("flush must not redeliver events")
	}
}

func TestNilBusIsInert(t *testing.T) {
	var bus *Bus
	bus.PublishEligibilityChanged(EligibilityChanged{Tree: -1})
	bus.Flush()
}
