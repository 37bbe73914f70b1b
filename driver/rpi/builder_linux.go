package rpi

import (
	"digitalio-go/digitalio"
	"digitalio-go/errcode"
	"digitalio-go/registry"
)

type builder struct{}

func init() {
	registry.Register("rpi", builder{})
}

func (builder) Build(in registry.BuildInput) (digitalio.Line, error) {
	if in.Caps.Output() && in.Caps.Interrupt() {
		return nil, &errcode.E{C: errcode.Unsupported, Op: "build",
			Msg: "cannot watch edges on an output pin: " + in.Name}
	}

	var opts []Option
	if in.ActiveLow {
		opts = append(opts, ActiveLow())
	}

	switch {
	case in.Caps.Input() && in.Caps.Interrupt():
		return InputInterrupt(in.Offset, opts...), nil
	case in.Caps.Input() && in.Caps.Output():
		return InputOutput(in.Offset, in.Initial, opts...), nil
	case in.Caps.Input():
		return Input(in.Offset, opts...), nil
	case in.Caps.Output():
		return Output(in.Offset, in.Initial, opts...), nil
	default:
		return Interrupt(in.Offset, opts...), nil
	}
}
