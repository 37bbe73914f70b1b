package irqmux

import (
	"context"
	"errors"
	"testing"
	"time"

	"digitalio-go/digitalio"
	"digitalio-go/digitalio/iotest"
)

func recvEvent(t *testing.T, ch <-chan Event, d time.Duration) (Event, bool) {
	t.Helper()
	select {
	case ev := <-ch:
		return ev, true
	case <-time.After(d):
		return Event{}, false
	}
}

func TestWatch_RisingEdge_EventDelivered(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stub := iotest.NewLine(digitalio.Inactive)
	line := digitalio.NewInterruptLine(stub)
	m := New(16, 16)
	m.Start(ctx)

	cancelWatch, err := m.Watch("button", line, digitalio.TriggerRisingEdge, 0)
	if err != nil {
		t.Fatalf("Watch error: %v", err)
	}
	defer cancelWatch()

	stub.Fire(digitalio.Active)

	ev, ok := recvEvent(t, m.Events(), 50*time.Millisecond)
	if !ok {
		t.Fatal("expected event, got timeout")
	}
	if ev.Name != "button" || ev.State != digitalio.Active {
		t.Fatalf("unexpected event: %+v", ev)
	}

	// Falling transition is filtered out by the trigger.
	stub.Fire(digitalio.Inactive)
	if _, ok := recvEvent(t, m.Events(), 10*time.Millisecond); ok {
		t.Fatal("did not expect an event for a falling edge")
	}
}

func TestWatch_Debounce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stub := iotest.NewLine(digitalio.Inactive)
	line := digitalio.NewInterruptLine(stub)
	m := New(16, 16)
	m.Start(ctx)

	cancelWatch, err := m.Watch("in", line, digitalio.TriggerBothEdges, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Watch error: %v", err)
	}
	defer cancelWatch()

	stub.Fire(digitalio.Active)
	if _, ok := recvEvent(t, m.Events(), 50*time.Millisecond); !ok {
		t.Fatal("expected first event")
	}

	// A bounce inside the window is discarded.
	stub.Fire(digitalio.Inactive)
	if _, ok := recvEvent(t, m.Events(), 5*time.Millisecond); ok {
		t.Fatal("unexpected event within debounce window")
	}

	time.Sleep(12 * time.Millisecond)
	stub.Fire(digitalio.Inactive)
	if _, ok := recvEvent(t, m.Events(), 50*time.Millisecond); !ok {
		t.Fatal("expected event after debounce window")
	}
}

func TestWatch_CancelStopsEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stub := iotest.NewLine(digitalio.Inactive)
	line := digitalio.NewInterruptLine(stub)
	m := New(16, 16)
	m.Start(ctx)

	stop, err := m.Watch("x", line, digitalio.TriggerBothEdges, 0)
	if err != nil {
		t.Fatalf("Watch error: %v", err)
	}
	stop()

	if stub.Armed() {
		t.Fatal("line still armed after cancel")
	}
	if stub.HasHandler() {
		t.Fatal("line still has a handler after cancel")
	}
	if stub.Fire(digitalio.Active) {
		t.Fatal("handler invoked after cancel")
	}
}

func TestWatch_DuplicateName(t *testing.T) {
	stub := iotest.NewLine(digitalio.Inactive)
	line := digitalio.NewInterruptLine(stub)
	m := New(16, 16)

	if _, err := m.Watch("dup", line, digitalio.TriggerBothEdges, 0); err != nil {
		t.Fatalf("first Watch: %v", err)
	}
	if _, err := m.Watch("dup", line, digitalio.TriggerBothEdges, 0); err == nil {
		t.Fatal("expected error for duplicate watch name")
	}
}

func TestWatch_RegistrationFailureUnwinds(t *testing.T) {
	stub := iotest.NewLine(digitalio.Inactive)
	stub.SetIRQErr = errors.New("no free irq slot")
	line := digitalio.NewInterruptLine(stub)
	m := New(16, 16)

	if _, err := m.Watch("bad", line, digitalio.TriggerBothEdges, 0); err == nil {
		t.Fatal("expected registration error")
	}
	// The name must be reusable after the failed watch.
	stub.SetIRQErr = nil
	if _, err := m.Watch("bad", line, digitalio.TriggerBothEdges, 0); err != nil {
		t.Fatalf("rewatch after failure: %v", err)
	}
}

func TestHandlerDropCounter(t *testing.T) {
	// Intentionally do not Start the mux so inQ stays unconsumed.
	stub := iotest.NewLine(digitalio.Inactive)
	line := digitalio.NewInterruptLine(stub)
	m := New(1 /*inBuf*/, 0 /*outBuf*/)

	if _, err := m.Watch("y", line, digitalio.TriggerBothEdges, 0); err != nil {
		t.Fatalf("Watch error: %v", err)
	}

	// First delivery fills the buffer; second must be dropped, not block.
	stub.Fire(digitalio.Active)
	stub.Fire(digitalio.Inactive)

	if got := m.Drops(); got == 0 {
		t.Fatalf("expected at least 1 drop, got %d", got)
	}
}
