package digitalio

import "digitalio-go/errcode"

// Seven concrete wrappers, one per composite variant. Each holds its
// backend and answers the capability queries as per-type constants, so
// a wrapper's dynamic type carries exactly the capability set of its
// constructor and nothing more.

// irqCore owns the interrupt registration lifecycle shared by the four
// interrupt-bearing variants: at most one handler/trigger slot, armed
// flag, idempotent arming, clear-from-any-state. It is not internally
// locked; configuration calls are single-writer per the package doc.
type irqCore struct {
	b          InterruptBackend
	trigger    InterruptTrigger
	registered bool
	armed      bool
}

func (c *irqCore) Enable() error  { return c.b.DoEnable(true) }
func (c *irqCore) Disable() error { return c.b.DoEnable(false) }

func (c *irqCore) SetInterruptHandler(trigger InterruptTrigger, handler InterruptHandler) error {
	if handler == nil {
		return errcode.InvalidHandler
	}
	if !trigger.Valid() {
		return errcode.InvalidTrigger
	}
	if err := c.b.DoSetInterruptHandler(trigger, handler); err != nil {
		return err
	}
	c.trigger = trigger
	c.registered = true
	return nil
}

func (c *irqCore) EnableInterruptHandler() error {
	if c.armed {
		return nil
	}
	if !c.registered {
		return errcode.NoHandler
	}
	if err := c.b.DoEnableInterruptHandler(true); err != nil {
		return err
	}
	c.armed = true
	return nil
}

func (c *irqCore) DisableInterruptHandler() error {
	if !c.armed {
		return nil
	}
	if err := c.b.DoEnableInterruptHandler(false); err != nil {
		return err
	}
	c.armed = false
	return nil
}

func (c *irqCore) ClearInterruptHandler() error {
	if c.armed {
		if err := c.b.DoEnableInterruptHandler(false); err != nil {
			return err
		}
		c.armed = false
	}
	if !c.registered {
		return nil
	}
	// Nil handler tells the backend to drop the registration.
	if err := c.b.DoSetInterruptHandler(c.trigger, nil); err != nil {
		return err
	}
	c.registered = false
	return nil
}

// ---- Input ----

type inputLine struct {
	b InputBackend
}

// NewInputLine wraps an input-capable backend as a pure input line.
func NewInputLine(b InputBackend) InputLine { return &inputLine{b: b} }

func (l *inputLine) Enable() error            { return l.b.DoEnable(true) }
func (l *inputLine) Disable() error           { return l.b.DoEnable(false) }
func (l *inputLine) ProvidesInput() bool      { return true }
func (l *inputLine) ProvidesOutput() bool     { return false }
func (l *inputLine) ProvidesInterrupt() bool  { return false }
func (l *inputLine) GetState() (State, error) { return l.b.DoGetState() }

// ---- Output ----

type outputLine struct {
	b OutputBackend
}

// NewOutputLine wraps an output-capable backend as a pure output line.
func NewOutputLine(b OutputBackend) OutputLine { return &outputLine{b: b} }

func (l *outputLine) Enable() error           { return l.b.DoEnable(true) }
func (l *outputLine) Disable() error          { return l.b.DoEnable(false) }
func (l *outputLine) ProvidesInput() bool     { return false }
func (l *outputLine) ProvidesOutput() bool    { return true }
func (l *outputLine) ProvidesInterrupt() bool { return false }
func (l *outputLine) SetState(s State) error  { return l.b.DoSetState(s) }

// ---- Interrupt ----

type interruptLine struct {
	irqCore
}

// NewInterruptLine wraps an interrupt-capable backend as an
// interrupt-only line.
func NewInterruptLine(b InterruptBackend) InterruptLine {
	return &interruptLine{irqCore{b: b}}
}

func (l *interruptLine) ProvidesInput() bool     { return false }
func (l *interruptLine) ProvidesOutput() bool    { return false }
func (l *interruptLine) ProvidesInterrupt() bool { return true }

// ---- Input + Interrupt ----

type inputInterruptLine struct {
	irqCore
	in InputBackend
}

// NewInputInterruptLine wraps a backend providing input and interrupt.
func NewInputInterruptLine(b InputInterruptBackend) InputInterruptLine {
	return &inputInterruptLine{irqCore: irqCore{b: b}, in: b}
}

func (l *inputInterruptLine) ProvidesInput() bool      { return true }
func (l *inputInterruptLine) ProvidesOutput() bool     { return false }
func (l *inputInterruptLine) ProvidesInterrupt() bool  { return true }
func (l *inputInterruptLine) GetState() (State, error) { return l.in.DoGetState() }

// ---- Output + Interrupt ----

type outputInterruptLine struct {
	irqCore
	out OutputBackend
}

// NewOutputInterruptLine wraps a backend providing output and interrupt.
func NewOutputInterruptLine(b OutputInterruptBackend) OutputInterruptLine {
	return &outputInterruptLine{irqCore: irqCore{b: b}, out: b}
}

func (l *outputInterruptLine) ProvidesInput() bool     { return false }
func (l *outputInterruptLine) ProvidesOutput() bool    { return true }
func (l *outputInterruptLine) ProvidesInterrupt() bool { return true }
func (l *outputInterruptLine) SetState(s State) error  { return l.out.DoSetState(s) }

// ---- Input + Output ----

type inputOutputLine struct {
	b InputOutputBackend
}

// NewInputOutputLine wraps a backend providing input and output.
func NewInputOutputLine(b InputOutputBackend) InputOutputLine {
	return &inputOutputLine{b: b}
}

func (l *inputOutputLine) Enable() error            { return l.b.DoEnable(true) }
func (l *inputOutputLine) Disable() error           { return l.b.DoEnable(false) }
func (l *inputOutputLine) ProvidesInput() bool      { return true }
func (l *inputOutputLine) ProvidesOutput() bool     { return true }
func (l *inputOutputLine) ProvidesInterrupt() bool  { return false }
func (l *inputOutputLine) GetState() (State, error) { return l.b.DoGetState() }
func (l *inputOutputLine) SetState(s State) error   { return l.b.DoSetState(s) }

// ---- Input + Output + Interrupt ----

type inputOutputInterruptLine struct {
	irqCore
	io InputOutputBackend
}

// NewInputOutputInterruptLine wraps a backend providing all three
// capabilities.
func NewInputOutputInterruptLine(b InputOutputInterruptBackend) InputOutputInterruptLine {
	return &inputOutputInterruptLine{irqCore: irqCore{b: b}, io: b}
}

func (l *inputOutputInterruptLine) ProvidesInput() bool      { return true }
func (l *inputOutputInterruptLine) ProvidesOutput() bool     { return true }
func (l *inputOutputInterruptLine) ProvidesInterrupt() bool  { return true }
func (l *inputOutputInterruptLine) GetState() (State, error) { return l.io.DoGetState() }
func (l *inputOutputInterruptLine) SetState(s State) error   { return l.io.DoSetState(s) }
