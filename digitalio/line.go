package digitalio

// Line is the base interface every digital line implements. It exposes
// only the operations common to all capability sets, plus the three
// capability queries. The queries are constants of the concrete type,
// fixed at construction, so generic code holding a Line can branch on
// capability before narrowing.
//
// Enable transitions the line into an active, usable state; Disable
// releases it. Both are idempotent at this level: enabling an enabled
// line or disabling a disabled (or never-enabled) line succeeds, and a
// caller never needs to track enablement itself for subsequent calls to
// be well defined. Failures are returned, never retried internally.
//
// A Line value is an ordinary Go interface value: two words, cheap to
// hold and pass by value in bulk.
type Line interface {
	Enable() error
	Disable() error

	ProvidesInput() bool
	ProvidesOutput() bool
	ProvidesInterrupt() bool
}

// InputLine is a line with state readback.
type InputLine interface {
	Line

	// GetState returns the line's logical state at call time, as
	// interpreted by the driver's polarity mapping. No debouncing or
	// filtering happens at this layer. No side effects.
	GetState() (State, error)
}

// OutputLine is a line with state assignment.
type OutputLine interface {
	Line

	// SetState sets the line's logical state. On a line that also
	// provides input, a subsequent GetState returns the value most
	// recently set, for drivers that support readback and absent
	// external override of the pin.
	SetState(State) error
}

// InterruptLine is a line with interrupt delivery.
//
// Registration is a single slot: each line holds at most one
// handler/trigger pair and a new registration overwrites the previous
// one. The slot moves through three states: no handler (initial),
// handler set (after SetInterruptHandler), and handler active (after
// EnableInterruptHandler). Configuration calls are single-writer (see
// package doc); only the handler's invocation is inherently concurrent
// with the owner.
type InterruptLine interface {
	Line

	// SetInterruptHandler registers handler to be invoked when trigger
	// is observed. It overwrites any previous registration and does not
	// by itself enable delivery.
	SetInterruptHandler(trigger InterruptTrigger, handler InterruptHandler) error

	// EnableInterruptHandler arms delivery. Arming an armed line is a
	// no-op success.
	EnableInterruptHandler() error

	// DisableInterruptHandler disarms delivery without discarding the
	// registered handler and trigger. Safe when already disarmed.
	DisableInterruptHandler() error

	// ClearInterruptHandler discards the registered handler and
	// trigger, disarming delivery first if armed. Legal in any state.
	ClearInterruptHandler() error
}

// The composite variants. Each names a capability set and is satisfied
// by exactly the lines that implement every capability in the set; a
// composite widens to a narrower capability interface if and only if
// that capability is part of the composite, enforced by the compiler.
// Together with InputLine, OutputLine and InterruptLine themselves these
// are the seven supported combinations.

type InputInterruptLine interface {
	InputLine
	InterruptLine
}

type OutputInterruptLine interface {
	OutputLine
	InterruptLine
}

type InputOutputLine interface {
	InputLine
	OutputLine
}

type InputOutputInterruptLine interface {
	InputLine
	OutputLine
	InterruptLine
}
