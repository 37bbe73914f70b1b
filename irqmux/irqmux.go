// Package irqmux fans interrupt handler invocations from any number of
// watched lines into a single event channel that ordinary goroutines
// can consume. The handler side never blocks: when the intake queue is
// full the event is dropped and counted, protecting the interrupt
// context from a slow consumer.
package irqmux

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"digitalio-go/digitalio"
	"digitalio-go/errcode"
)

// Event is delivered from the mux to the consumer.
type Event struct {
	Name  string
	State digitalio.State
	TS    time.Time
}

type handlerEvent struct {
	name  string
	state digitalio.State
}

type watch struct {
	name      string
	line      digitalio.InterruptLine
	debounce  time.Duration
	lastEvent time.Time
	cancelled bool
}

// Mux multiplexes line interrupts onto one channel.
type Mux struct {
	// Written from handler context; sends MUST NOT block.
	inQ chan handlerEvent

	// Consumed by the application.
	outQ chan Event

	stopped chan struct{}

	mu      sync.RWMutex
	watches map[string]*watch

	drops uint32 // handler-side drop counter
}

// New returns a mux with the given queue depths. Non-positive depths
// fall back to safe defaults.
func New(inBuf, outBuf int) *Mux {
	if inBuf <= 0 {
		inBuf = 64
	}
	if outBuf <= 0 {
		outBuf = 64
	}
	return &Mux{
		inQ:     make(chan handlerEvent, inBuf),
		outQ:    make(chan Event, outBuf),
		stopped: make(chan struct{}),
		watches: map[string]*watch{},
	}
}

// Start runs the forwarding loop until ctx is cancelled.
func (m *Mux) Start(ctx context.Context) {
	go func() {
		defer close(m.stopped)
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-m.inQ:
				m.forward(ev)
			}
		}
	}()
}

// Events returns the consumer channel.
func (m *Mux) Events() <-chan Event { return m.outQ }

// Watch registers a handler on line for trigger and arms delivery.
// Events arrive on Events() tagged with name; events closer together
// than debounce are discarded. The returned cancel function disarms
// and clears the registration. Names must be unique per mux.
func (m *Mux) Watch(name string, line digitalio.InterruptLine, trigger digitalio.InterruptTrigger, debounce time.Duration) (func(), error) {
	m.mu.Lock()
	if _, exists := m.watches[name]; exists {
		m.mu.Unlock()
		return nil, &errcode.E{C: errcode.LineBusy, Op: "watch", Msg: "name already watched: " + name}
	}
	w := &watch{name: name, line: line, debounce: debounce}
	m.watches[name] = w
	m.mu.Unlock()

	// Handler context: capture and hand off, nothing else.
	handler := func(s digitalio.State) {
		select {
		case m.inQ <- handlerEvent{name: name, state: s}:
		default:
			atomic.AddUint32(&m.drops, 1)
		}
	}
	if err := line.SetInterruptHandler(trigger, handler); err != nil {
		m.unregister(name)
		return nil, err
	}
	if err := line.EnableInterruptHandler(); err != nil {
		_ = line.ClearInterruptHandler()
		m.unregister(name)
		return nil, err
	}

	return func() {
		m.mu.Lock()
		cur, ok := m.watches[name]
		if ok && cur == w && !cur.cancelled {
			cur.cancelled = true
			delete(m.watches, name)
		} else {
			ok = false
		}
		m.mu.Unlock()
		if ok {
			_ = line.DisableInterruptHandler()
			_ = line.ClearInterruptHandler()
		}
	}, nil
}

// Drops returns the number of events discarded on the handler side.
func (m *Mux) Drops() uint32 { return atomic.LoadUint32(&m.drops) }

func (m *Mux) unregister(name string) {
	m.mu.Lock()
	delete(m.watches, name)
	m.mu.Unlock()
}

func (m *Mux) forward(ev handlerEvent) {
	m.mu.RLock()
	w := m.watches[ev.name]
	m.mu.RUnlock()
	if w == nil {
		return
	}
	now := time.Now()

	if !w.lastEvent.IsZero() && now.Sub(w.lastEvent) < w.debounce {
		return
	}
	w.lastEvent = now

	select {
	case m.outQ <- Event{Name: ev.name, State: ev.state, TS: now}:
	default:
		// drop to protect the loop if the consumer is slow
	}
}
