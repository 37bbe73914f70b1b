// Package registry maps driver names to line builders so that config
// can describe a line ("driver gpiocdev, chip gpiochip0, offset 17,
// input+interrupt") without importing a driver package directly.
// Driver packages register themselves from init on the platforms they
// build for.
package registry

import (
	"sync"
	"time"

	"digitalio-go/digitalio"
	"digitalio-go/errcode"
)

// Caps is the requested capability set for a line.
type Caps uint8

const (
	CapInput Caps = 1 << iota
	CapOutput
	CapInterrupt
)

func (c Caps) Input() bool     { return c&CapInput != 0 }
func (c Caps) Output() bool    { return c&CapOutput != 0 }
func (c Caps) Interrupt() bool { return c&CapInterrupt != 0 }

// BuildInput is provided to a driver builder to construct a line.
type BuildInput struct {
	Name   string
	Driver string
	Chip   string
	Offset int
	Caps   Caps

	// Initial logical state for output-capable lines.
	Initial digitalio.State
	// ActiveLow asks the driver to invert its polarity mapping.
	ActiveLow bool
	// Trigger and Debounce pre-configure interrupt-capable lines for
	// consumers that watch them; builders may ignore both.
	Trigger  digitalio.InterruptTrigger
	Debounce time.Duration
}

// Builder constructs a line from config. The dynamic type of the
// returned Line must carry exactly the requested capability set.
type Builder interface {
	Build(in BuildInput) (digitalio.Line, error)
}

var (
	muBuilders sync.RWMutex
	builders   = map[string]Builder{}
)

// Register installs a builder for a given driver name.
// It panics on duplicate registration to catch mistakes at start-up.
func Register(driver string, b Builder) {
	muBuilders.Lock()
	defer muBuilders.Unlock()
	if driver == "" {
		panic("registry: empty driver name")
	}
	if _, exists := builders[driver]; exists {
		panic("registry: builder already registered for driver " + driver)
	}
	builders[driver] = b
}

// Find looks up a registered builder by driver name.
func Find(driver string) (Builder, bool) {
	muBuilders.RLock()
	defer muBuilders.RUnlock()
	b, ok := builders[driver]
	return b, ok
}

// Drivers returns the registered driver names, unordered.
func Drivers() []string {
	muBuilders.RLock()
	defer muBuilders.RUnlock()
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	return names
}

// Build dispatches to the builder named by in.Driver.
func Build(in BuildInput) (digitalio.Line, error) {
	if in.Caps == 0 {
		return nil, &errcode.E{C: errcode.InvalidConfig, Op: "build", Msg: "line needs at least one capability: " + in.Name}
	}
	b, ok := Find(in.Driver)
	if !ok {
		return nil, &errcode.E{C: errcode.UnknownDriver, Op: "build", Msg: in.Driver}
	}
	return b.Build(in)
}
