package digitalio

// The backend interfaces are the driver side of the abstraction. A
// concrete driver implements the Do hooks for the capabilities its
// hardware supports and wraps them with the matching New*Line
// constructor. The wrappers call the hooks after the bookkeeping they
// own (argument validation, interrupt lifecycle); every error a hook
// returns reaches the caller verbatim.
//
// Hooks are called from the owner's single configuration context, never
// from the handler context, so a backend only needs internal locking
// for state its own event source also touches.

// Backend carries the one hook every line needs.
type Backend interface {
	// DoEnable(true) acquires and initialises the underlying hardware
	// resources; DoEnable(false) releases them. The wrapper forwards
	// Enable/Disable unconditionally, so a backend must tolerate
	// redundant calls in either direction.
	DoEnable(enable bool) error
}

// InputBackend adds state readback.
type InputBackend interface {
	Backend

	// DoGetState samples the line and applies the driver's polarity
	// mapping.
	DoGetState() (State, error)
}

// OutputBackend adds state assignment.
type OutputBackend interface {
	Backend

	DoSetState(State) error
}

// InterruptBackend adds interrupt plumbing.
type InterruptBackend interface {
	Backend

	// DoSetInterruptHandler installs the handler/trigger pair. The
	// wrapper has already validated both; a nil handler means the
	// registration is being cleared and the backend may release any
	// per-registration resources. Returning an error (for example no
	// free interrupt slot, or an unsupported trigger) aborts the
	// registration.
	DoSetInterruptHandler(InterruptTrigger, InterruptHandler) error

	// DoEnableInterruptHandler arms (true) or disarms (false)
	// delivery. The wrapper filters redundant arm calls, so the
	// backend only sees real transitions.
	DoEnableInterruptHandler(enable bool) error
}

// Composite backends, one per composite variant.

type InputInterruptBackend interface {
	InputBackend
	InterruptBackend
}

type OutputInterruptBackend interface {
	OutputBackend
	InterruptBackend
}

type InputOutputBackend interface {
	InputBackend
	OutputBackend
}

type InputOutputInterruptBackend interface {
	InputBackend
	OutputBackend
	InterruptBackend
}
