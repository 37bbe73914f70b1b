// Package iotest provides an in-memory line backend for testing code
// that produces or consumes digitalio lines. A single *Line implements
// every backend hook, so it can sit behind any of the seven wrapper
// constructors; the wrapper decides which capabilities are visible.
package iotest

import (
	"sync"

	"digitalio-go/digitalio"
)

// Line is a stub backend. The zero value is usable: disabled, inactive,
// no handler. All methods are safe for concurrent use so tests may
// Fire from other goroutines.
type Line struct {
	// Injectable hook errors. When non-nil the corresponding hook
	// fails without touching state.
	EnableErr    error
	GetErr       error
	SetErr       error
	SetIRQErr    error
	EnableIRQErr error

	mu       sync.Mutex
	state    digitalio.State
	enabled  bool
	enables  int
	disables int
	trigger  digitalio.InterruptTrigger
	handler  digitalio.InterruptHandler
	armed    bool
	fired    int
}

// NewLine returns a stub whose simulated electrical state starts at s.
func NewLine(s digitalio.State) *Line {
	return &Line{state: s}
}

func (l *Line) DoEnable(enable bool) error {
	if l.EnableErr != nil {
		return l.EnableErr
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if enable {
		l.enables++
	} else {
		l.disables++
	}
	l.enabled = enable
	return nil
}

func (l *Line) DoGetState() (digitalio.State, error) {
	if l.GetErr != nil {
		return digitalio.Inactive, l.GetErr
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state, nil
}

func (l *Line) DoSetState(s digitalio.State) error {
	if l.SetErr != nil {
		return l.SetErr
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = s
	return nil
}

func (l *Line) DoSetInterruptHandler(t digitalio.InterruptTrigger, h digitalio.InterruptHandler) error {
	if l.SetIRQErr != nil {
		return l.SetIRQErr
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.trigger = t
	l.handler = h
	return nil
}

func (l *Line) DoEnableInterruptHandler(enable bool) error {
	if l.EnableIRQErr != nil {
		return l.EnableIRQErr
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.armed = enable
	return nil
}

// Fire simulates the hardware observing state s: the simulated level is
// updated and, if delivery is armed and the registered trigger matches,
// the handler is invoked synchronously on the calling goroutine. Tests
// that want true asynchrony call Fire from their own goroutine.
// It reports whether a handler was invoked.
func (l *Line) Fire(s digitalio.State) bool {
	l.mu.Lock()
	l.state = s
	h := l.handler
	deliver := l.armed && h != nil && l.trigger.Matches(s)
	if deliver {
		l.fired++
	}
	l.mu.Unlock()
	if deliver {
		h(s)
	}
	return deliver
}

// SetInput drives the simulated electrical level without firing.
func (l *Line) SetInput(s digitalio.State) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
}

// Enabled reports whether the last DoEnable call enabled the line.
func (l *Line) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

// Counts returns how many times the line was enabled and disabled.
func (l *Line) Counts() (enables, disables int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enables, l.disables
}

// Armed reports whether interrupt delivery is currently armed.
func (l *Line) Armed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.armed
}

// HasHandler reports whether a handler is currently registered.
func (l *Line) HasHandler() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.handler != nil
}

// Trigger returns the most recently registered trigger.
func (l *Line) Trigger() digitalio.InterruptTrigger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.trigger
}

// Fired returns how many handler invocations Fire has performed.
func (l *Line) Fired() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fired
}

var _ digitalio.InputOutputInterruptBackend = (*Line)(nil)
