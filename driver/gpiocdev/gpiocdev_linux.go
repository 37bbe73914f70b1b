package gpiocdev

import (
	"sync"

	"github.com/warthog618/gpiod"

	"digitalio-go/digitalio"
	"digitalio-go/errcode"
)

// Chip represents one GPIO character device ("gpiochip0", ...). Lines
// built from it request their kernel line lazily on Enable, so holding
// a Chip and a set of unenabled lines consumes no kernel resources.
type Chip struct {
	name string
	chip *gpiod.Chip
}

// Open opens a GPIO character device by name.
func Open(name string) (*Chip, error) {
	c, err := gpiod.NewChip(name)
	if err != nil {
		return nil, &errcode.E{C: errcode.UnknownChip, Op: "open", Msg: name, Err: err}
	}
	return &Chip{name: name, chip: c}, nil
}

// Close releases the chip. It does not release requested lines; they
// are released by their own Disable.
func (c *Chip) Close() error {
	return c.chip.Close()
}

// Option adjusts how a line's backend drives the kernel line.
type Option func(*backend)

// ActiveLow inverts the polarity mapping in the kernel: Active means
// electrically low.
func ActiveLow() Option {
	return func(b *backend) { b.activeLow = true }
}

// backend implements the digitalio Do hooks against one kernel line.
type backend struct {
	chip      *Chip
	offset    int
	output    bool
	watched   bool
	initial   digitalio.State
	activeLow bool

	// mu guards the fields the gpiod event goroutine also reads.
	mu      sync.Mutex
	line    *gpiod.Line
	handler digitalio.InterruptHandler
	trigger digitalio.InterruptTrigger
	armed   bool
}

func (c *Chip) newBackend(offset int, output, watched bool, initial digitalio.State, opts []Option) *backend {
	b := &backend{chip: c, offset: offset, output: output, watched: watched, initial: initial}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Input returns a pure input line on the given offset.
func (c *Chip) Input(offset int, opts ...Option) digitalio.InputLine {
	return digitalio.NewInputLine(c.newBackend(offset, false, false, digitalio.Inactive, opts))
}

// Output returns a pure output line, driven to initial on Enable.
func (c *Chip) Output(offset int, initial digitalio.State, opts ...Option) digitalio.OutputLine {
	return digitalio.NewOutputLine(c.newBackend(offset, true, false, initial, opts))
}

// Interrupt returns an interrupt-only line.
func (c *Chip) Interrupt(offset int, opts ...Option) digitalio.InterruptLine {
	return digitalio.NewInterruptLine(c.newBackend(offset, false, true, digitalio.Inactive, opts))
}

// InputInterrupt returns a line with readback and interrupts.
func (c *Chip) InputInterrupt(offset int, opts ...Option) digitalio.InputInterruptLine {
	return digitalio.NewInputInterruptLine(c.newBackend(offset, false, true, digitalio.Inactive, opts))
}

// InputOutput returns a line with readback and assignment. The kernel
// keeps the line an output; reads return the driven value.
func (c *Chip) InputOutput(offset int, initial digitalio.State, opts ...Option) digitalio.InputOutputLine {
	return digitalio.NewInputOutputLine(c.newBackend(offset, true, false, initial, opts))
}

func (b *backend) DoEnable(enable bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !enable {
		if b.line == nil {
			return nil
		}
		err := b.line.Close()
		b.line = nil
		return err
	}
	if b.line != nil {
		return nil
	}

	opts := []gpiod.LineReqOption{}
	if b.activeLow {
		opts = append(opts, gpiod.AsActiveLow)
	}
	if b.output {
		opts = append(opts, gpiod.AsOutput(stateValue(b.initial)))
	} else {
		opts = append(opts, gpiod.AsInput)
	}
	if b.watched {
		// Request both edges once; onEvent filters by the registered
		// trigger and armed flag.
		opts = append(opts, gpiod.WithEventHandler(b.onEvent), gpiod.WithBothEdges)
	}

	line, err := b.chip.chip.RequestLine(b.offset, opts...)
	if err != nil {
		return &errcode.E{C: errcode.LineBusy, Op: "enable", Msg: b.chip.name, Err: err}
	}
	b.line = line
	return nil
}

func (b *backend) DoGetState() (digitalio.State, error) {
	b.mu.Lock()
	line := b.line
	b.mu.Unlock()
	if line == nil {
		return digitalio.Inactive, &errcode.E{C: errcode.Unavailable, Op: "get", Msg: "line not enabled"}
	}
	v, err := line.Value()
	if err != nil {
		return digitalio.Inactive, err
	}
	if v != 0 {
		return digitalio.Active, nil
	}
	return digitalio.Inactive, nil
}

func (b *backend) DoSetState(s digitalio.State) error {
	b.mu.Lock()
	line := b.line
	b.mu.Unlock()
	if line == nil {
		return &errcode.E{C: errcode.Unavailable, Op: "set", Msg: "line not enabled"}
	}
	return line.SetValue(stateValue(s))
}

func (b *backend) DoSetInterruptHandler(t digitalio.InterruptTrigger, h digitalio.InterruptHandler) error {
	if h != nil && (t == digitalio.TriggerLevelHigh || t == digitalio.TriggerLevelLow) {
		return errcode.InvalidTrigger
	}
	b.mu.Lock()
	b.trigger = t
	b.handler = h
	b.mu.Unlock()
	return nil
}

func (b *backend) DoEnableInterruptHandler(enable bool) error {
	b.mu.Lock()
	b.armed = enable
	b.mu.Unlock()
	return nil
}

// onEvent runs on the gpiod event goroutine.
func (b *backend) onEvent(evt gpiod.LineEvent) {
	b.mu.Lock()
	h, t, armed := b.handler, b.trigger, b.armed
	b.mu.Unlock()
	if !armed || h == nil {
		return
	}
	var s digitalio.State
	switch evt.Type {
	case gpiod.LineEventRisingEdge:
		s = digitalio.Active
	case gpiod.LineEventFallingEdge:
		s = digitalio.Inactive
	default:
		return
	}
	if !t.Matches(s) {
		return
	}
	h(s)
}

func stateValue(s digitalio.State) int {
	if s == digitalio.Active {
		return 1
	}
	return 0
}
