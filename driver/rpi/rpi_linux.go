package rpi

import (
	"sync"

	"github.com/warthog618/gpio"

	"digitalio-go/digitalio"
	"digitalio-go/errcode"
)

// The gpio package maps /dev/gpiomem once per process; refcount opens
// so independent lines can come and go.
var (
	muOpen sync.Mutex
	opens  int
)

func openRef() error {
	muOpen.Lock()
	defer muOpen.Unlock()
	if opens == 0 {
		if err := gpio.Open(); err != nil {
			return &errcode.E{C: errcode.Unavailable, Op: "open", Msg: "mapping gpio registers", Err: err}
		}
	}
	opens++
	return nil
}

func closeRef() {
	muOpen.Lock()
	defer muOpen.Unlock()
	if opens == 0 {
		return
	}
	opens--
	if opens == 0 {
		_ = gpio.Close()
	}
}

// Option adjusts a pin backend.
type Option func(*pinBackend)

// ActiveLow inverts the polarity mapping: Active means electrically
// low. The inversion is applied by this driver on every read and write.
func ActiveLow() Option {
	return func(b *pinBackend) { b.activeLow = true }
}

// pinBackend implements the digitalio Do hooks on one BCM GPIO number.
type pinBackend struct {
	bcm       int
	output    bool
	initial   digitalio.State
	activeLow bool

	// mu guards the fields the watch goroutine also reads.
	mu       sync.Mutex
	pin      *gpio.Pin
	watching bool
	handler  digitalio.InterruptHandler
	trigger  digitalio.InterruptTrigger
	armed    bool
}

func newBackend(bcm int, output bool, initial digitalio.State, opts []Option) *pinBackend {
	b := &pinBackend{bcm: bcm, output: output, initial: initial}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Input returns a pure input line on the given BCM GPIO number.
func Input(bcm int, opts ...Option) digitalio.InputLine {
	return digitalio.NewInputLine(newBackend(bcm, false, digitalio.Inactive, opts))
}

// Output returns a pure output line, driven to initial on Enable.
func Output(bcm int, initial digitalio.State, opts ...Option) digitalio.OutputLine {
	return digitalio.NewOutputLine(newBackend(bcm, true, initial, opts))
}

// Interrupt returns an interrupt-only line.
func Interrupt(bcm int, opts ...Option) digitalio.InterruptLine {
	return digitalio.NewInterruptLine(newBackend(bcm, false, digitalio.Inactive, opts))
}

// InputInterrupt returns a line with readback and interrupts.
func InputInterrupt(bcm int, opts ...Option) digitalio.InputInterruptLine {
	return digitalio.NewInputInterruptLine(newBackend(bcm, false, digitalio.Inactive, opts))
}

// InputOutput returns a line with readback and assignment.
func InputOutput(bcm int, initial digitalio.State, opts ...Option) digitalio.InputOutputLine {
	return digitalio.NewInputOutputLine(newBackend(bcm, true, initial, opts))
}

func (b *pinBackend) DoEnable(enable bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !enable {
		if b.pin == nil {
			return nil
		}
		if b.watching {
			b.pin.Unwatch()
			b.watching = false
		}
		b.pin = nil
		closeRef()
		return nil
	}
	if b.pin != nil {
		return nil
	}
	if err := openRef(); err != nil {
		return err
	}
	pin := gpio.NewPin(b.bcm)
	if b.output {
		pin.Output()
		pin.Write(b.level(b.initial))
	} else {
		pin.Input()
	}
	b.pin = pin
	return nil
}

func (b *pinBackend) DoGetState() (digitalio.State, error) {
	b.mu.Lock()
	pin := b.pin
	b.mu.Unlock()
	if pin == nil {
		return digitalio.Inactive, &errcode.E{C: errcode.Unavailable, Op: "get", Msg: "pin not enabled"}
	}
	return b.state(pin.Read()), nil
}

func (b *pinBackend) DoSetState(s digitalio.State) error {
	b.mu.Lock()
	pin := b.pin
	b.mu.Unlock()
	if pin == nil {
		return &errcode.E{C: errcode.Unavailable, Op: "set", Msg: "pin not enabled"}
	}
	pin.Write(b.level(s))
	return nil
}

func (b *pinBackend) DoSetInterruptHandler(t digitalio.InterruptTrigger, h digitalio.InterruptHandler) error {
	if h != nil && (t == digitalio.TriggerLevelHigh || t == digitalio.TriggerLevelLow) {
		return errcode.InvalidTrigger
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trigger = t
	b.handler = h
	if h == nil && b.watching {
		b.pin.Unwatch()
		b.watching = false
	}
	return nil
}

func (b *pinBackend) DoEnableInterruptHandler(enable bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !enable {
		// Keep the watch; the armed flag gates delivery so the
		// registration survives a disarm.
		b.armed = false
		return nil
	}
	if b.pin == nil {
		return &errcode.E{C: errcode.Unavailable, Op: "arm", Msg: "pin not enabled"}
	}
	if !b.watching {
		if err := b.pin.Watch(gpio.EdgeBoth, b.onEvent); err != nil {
			return &errcode.E{C: errcode.Unavailable, Op: "arm", Msg: "watch", Err: err}
		}
		b.watching = true
	}
	b.armed = true
	return nil
}

// onEvent runs on the gpio package's watch goroutine.
func (b *pinBackend) onEvent(pin *gpio.Pin) {
	s := b.state(pin.Read())
	b.mu.Lock()
	h, t, armed := b.handler, b.trigger, b.armed
	b.mu.Unlock()
	if !armed || h == nil || !t.Matches(s) {
		return
	}
	h(s)
}

func (b *pinBackend) level(s digitalio.State) gpio.Level {
	active := s == digitalio.Active
	if b.activeLow {
		active = !active
	}
	return gpio.Level(active)
}

func (b *pinBackend) state(l gpio.Level) digitalio.State {
	active := bool(l)
	if b.activeLow {
		active = !active
	}
	if active {
		return digitalio.Active
	}
	return digitalio.Inactive
}
