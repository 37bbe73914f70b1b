package digitalio

import "digitalio-go/errcode"

// Checked narrowing from the base type to a capability interface. The
// compiler already guarantees the widening direction; these helpers are
// for code that holds a plain Line and has branched (or wants to
// branch) on the Provides* queries. On a line without the capability
// they return errcode.Unsupported.

// AsInput narrows l to its input view.
func AsInput(l Line) (InputLine, error) {
	if in, ok := l.(InputLine); ok {
		return in, nil
	}
	return nil, errcode.Unsupported
}

// AsOutput narrows l to its output view.
func AsOutput(l Line) (OutputLine, error) {
	if out, ok := l.(OutputLine); ok {
		return out, nil
	}
	return nil, errcode.Unsupported
}

// AsInterrupt narrows l to its interrupt view.
func AsInterrupt(l Line) (InterruptLine, error) {
	if irq, ok := l.(InterruptLine); ok {
		return irq, nil
	}
	return nil, errcode.Unsupported
}
