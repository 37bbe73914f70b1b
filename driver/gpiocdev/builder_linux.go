package gpiocdev

import (
	"sync"

	"digitalio-go/digitalio"
	"digitalio-go/errcode"
	"digitalio-go/registry"
)

// builder satisfies the registry and caches one Chip per chip name for
// the life of the process.
type builder struct {
	mu    sync.Mutex
	chips map[string]*Chip
}

func init() {
	registry.Register("gpiocdev", &builder{chips: map[string]*Chip{}})
}

func (bd *builder) chip(name string) (*Chip, error) {
	bd.mu.Lock()
	defer bd.mu.Unlock()
	if c, ok := bd.chips[name]; ok {
		return c, nil
	}
	c, err := Open(name)
	if err != nil {
		return nil, err
	}
	bd.chips[name] = c
	return c, nil
}

func (bd *builder) Build(in registry.BuildInput) (digitalio.Line, error) {
	if in.Caps.Output() && in.Caps.Interrupt() {
		return nil, &errcode.E{C: errcode.Unsupported, Op: "build",
			Msg: "character device cannot watch edges on an output line: " + in.Name}
	}

	c, err := bd.chip(in.Chip)
	if err != nil {
		return nil, err
	}

	var opts []Option
	if in.ActiveLow {
		opts = append(opts, ActiveLow())
	}

	switch {
	case in.Caps.Input() && in.Caps.Interrupt():
		return c.InputInterrupt(in.Offset, opts...), nil
	case in.Caps.Input() && in.Caps.Output():
		return c.InputOutput(in.Offset, in.Initial, opts...), nil
	case in.Caps.Input():
		return c.Input(in.Offset, opts...), nil
	case in.Caps.Output():
		return c.Output(in.Offset, in.Initial, opts...), nil
	default:
		return c.Interrupt(in.Offset, opts...), nil
	}
}
