package digitalio

// State is the logical state of a line. It is logical, not electrical:
// a concrete driver maps Active/Inactive to physical high/low per its
// own polarity convention (active-low wiring included).
type State uint8

const (
	Inactive State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// InterruptTrigger selects the condition that fires a registered
// interrupt handler. Exactly one trigger is selected per
// SetInterruptHandler call; triggers are not combinable.
type InterruptTrigger uint8

const (
	// TriggerRisingEdge fires on an inactive to active transition.
	TriggerRisingEdge InterruptTrigger = iota
	// TriggerFallingEdge fires on an active to inactive transition.
	TriggerFallingEdge
	// TriggerBothEdges fires on any transition.
	TriggerBothEdges
	// TriggerLevelHigh fires while the line is active. Edge-only
	// drivers reject it from SetInterruptHandler.
	TriggerLevelHigh
	// TriggerLevelLow fires while the line is inactive.
	TriggerLevelLow
)

func (t InterruptTrigger) String() string {
	switch t {
	case TriggerRisingEdge:
		return "rising"
	case TriggerFallingEdge:
		return "falling"
	case TriggerBothEdges:
		return "both"
	case TriggerLevelHigh:
		return "level-high"
	case TriggerLevelLow:
		return "level-low"
	}
	return "invalid"
}

// Valid reports whether t is one of the defined trigger conditions.
func (t InterruptTrigger) Valid() bool {
	return t <= TriggerLevelLow
}

// Matches reports whether an observed state satisfies the trigger.
// Drivers whose event source reports every transition use this to
// filter deliveries down to the registered condition.
func (t InterruptTrigger) Matches(s State) bool {
	switch t {
	case TriggerRisingEdge, TriggerLevelHigh:
		return s == Active
	case TriggerFallingEdge, TriggerLevelLow:
		return s == Inactive
	case TriggerBothEdges:
		return true
	}
	return false
}

// InterruptHandler is invoked with the state observed at the trigger.
//
// The handler runs in an asynchronous context outside the owner's
// control flow (a hardware ISR, or a driver's event goroutine) and may
// run concurrently with the owner's other calls on the same line. It
// must not block and must not perform unbounded work. After
// EnableInterruptHandler returns the handler may begin firing; after
// DisableInterruptHandler or ClearInterruptHandler returns no new
// invocation starts, though one already in flight may complete.
type InterruptHandler func(State)
