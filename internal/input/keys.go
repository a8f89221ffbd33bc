package input

// Key identifies an abstract input the simulation understands. Physical
// bindings live with each producer.
type Key uint8

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyWater
	KeyFertilize
	keyCount
)

var keyNames = [keyCount]string{"up", "down", "left", "right", "water", "fertilize"}

func (k Key) String() string {
	if k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// Action is a discrete tree interaction.
type Action uint8

const (
	ActionNone Action = iota
	ActionWater
	ActionFertilize
)

func (a Action) String() string {
	switch a {
	case ActionWater:
		return "water"
	case ActionFertilize:
		return "fertilize"
	default:
		return "none"
	}
}

// Key returns the interaction key that triggers the action.
func (a Action) Key() (Key, bool) {
	switch a {
	case ActionWater:
		return KeyWater, true
	case ActionFertilize:
		return KeyFertilize, true
	}
	return 0, false
}
