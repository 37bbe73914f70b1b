// Package config loads the line configuration file. The file names a
// driver and chip once and then lists the lines the application wants,
// each with its capability set. Electrical configuration (pull
// resistors, drive strength, muxing) is deliberately not expressible
// here; it belongs to the platform, not to this layer.
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/womat/debug"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v2"

	"digitalio-go/digitalio"
	"digitalio-go/errcode"
	"digitalio-go/registry"
)

// Config defines the struct of the global config and of the
// configuration file.
type Config struct {
	Driver string       `yaml:"driver"`
	Chip   string       `yaml:"chip"`
	Debug  DebugConfig  `yaml:"debug"`
	Lines  []LineConfig `yaml:"lines"`
	Flag   FlagConfig   `yaml:"-"`
}

// FlagConfig holds the configured command line flags.
type FlagConfig struct {
	ConfigFile string
	LogLevel   string
}

// DebugConfig defines the debug section of the configuration file.
type DebugConfig struct {
	File       io.WriteCloser `yaml:"-"`
	Flag       int            `yaml:"-"`
	FlagString string         `yaml:"flag"`
	FileString string         `yaml:"file"`
}

// LineConfig describes one line.
type LineConfig struct {
	Name        string        `yaml:"name"`
	Offset      int           `yaml:"offset"`
	Caps        []string      `yaml:"caps"`     // "input", "output", "interrupt"
	Initial     string        `yaml:"initial"`  // "active" | "inactive" (outputs)
	ActiveLow   bool          `yaml:"activelow"`
	Trigger     string        `yaml:"trigger"`  // "rising" | "falling" | "both"
	DebounceInt int           `yaml:"debounce"` // milliseconds
	Debounce    time.Duration `yaml:"-"`
}

var (
	validCaps     = []string{"input", "output", "interrupt"}
	validTriggers = []string{"", "rising", "falling", "both", "level-high", "level-low"}
	validInitial  = []string{"", "active", "inactive"}
)

func NewConfig() *Config {
	return &Config{
		Driver: "gpiocdev",
		Chip:   "gpiochip0",
		Flag:   FlagConfig{},
		Debug: DebugConfig{
			FileString: "stderr",
			FlagString: "standard",
		},
	}
}

func (c *Config) LoadConfig() error {
	if err := c.readConfigFile(); err != nil {
		return fmt.Errorf("error reading config file %q: %w", c.Flag.ConfigFile, err)
	}

	if c.Flag.LogLevel != "" {
		c.Debug.FlagString = c.Flag.LogLevel
	}
	if err := c.setDebugConfig(); err != nil {
		return fmt.Errorf("unable to open debug file %q: %w", c.Debug.FileString, err)
	}

	for i := range c.Lines {
		c.Lines[i].Debounce = time.Duration(c.Lines[i].DebounceInt) * time.Millisecond
	}

	return c.Validate()
}

// Validate checks the decoded line list without touching any hardware.
func (c *Config) Validate() error {
	seen := map[string]bool{}
	for i := range c.Lines {
		l := &c.Lines[i]
		if l.Name == "" {
			return &errcode.E{C: errcode.InvalidConfig, Op: "validate", Msg: fmt.Sprintf("line %d has no name", i)}
		}
		if seen[l.Name] {
			return &errcode.E{C: errcode.InvalidConfig, Op: "validate", Msg: "duplicate line name: " + l.Name}
		}
		seen[l.Name] = true
		if l.Offset < 0 {
			return &errcode.E{C: errcode.InvalidConfig, Op: "validate", Msg: "negative offset on line " + l.Name}
		}
		if len(l.Caps) == 0 {
			return &errcode.E{C: errcode.InvalidConfig, Op: "validate", Msg: "no caps on line " + l.Name}
		}
		for _, capName := range l.Caps {
			if !slices.Contains(validCaps, capName) {
				return &errcode.E{C: errcode.InvalidConfig, Op: "validate", Msg: fmt.Sprintf("unknown cap %q on line %s", capName, l.Name)}
			}
		}
		if !slices.Contains(validTriggers, l.Trigger) {
			return &errcode.E{C: errcode.InvalidConfig, Op: "validate", Msg: fmt.Sprintf("unknown trigger %q on line %s", l.Trigger, l.Name)}
		}
		if l.Trigger != "" && !slices.Contains(l.Caps, "interrupt") {
			return &errcode.E{C: errcode.InvalidConfig, Op: "validate", Msg: "trigger set on non-interrupt line " + l.Name}
		}
		if !slices.Contains(validInitial, l.Initial) {
			return &errcode.E{C: errcode.InvalidConfig, Op: "validate", Msg: fmt.Sprintf("unknown initial %q on line %s", l.Initial, l.Name)}
		}
	}
	return nil
}

// Line returns the configuration of a named line.
func (c *Config) Line(name string) (*LineConfig, error) {
	for i := range c.Lines {
		if c.Lines[i].Name == name {
			return &c.Lines[i], nil
		}
	}
	return nil, &errcode.E{C: errcode.UnknownLine, Op: "line", Msg: name}
}

// BuildInput converts a line entry into the registry's build request.
func (c *Config) BuildInput(l *LineConfig) registry.BuildInput {
	var caps registry.Caps
	for _, s := range l.Caps {
		switch s {
		case "input":
			caps |= registry.CapInput
		case "output":
			caps |= registry.CapOutput
		case "interrupt":
			caps |= registry.CapInterrupt
		}
	}

	initial := digitalio.Inactive
	if l.Initial == "active" {
		initial = digitalio.Active
	}

	trigger := digitalio.TriggerBothEdges
	switch l.Trigger {
	case "rising":
		trigger = digitalio.TriggerRisingEdge
	case "falling":
		trigger = digitalio.TriggerFallingEdge
	case "level-high":
		trigger = digitalio.TriggerLevelHigh
	case "level-low":
		trigger = digitalio.TriggerLevelLow
	}

	return registry.BuildInput{
		Name:      l.Name,
		Driver:    c.Driver,
		Chip:      c.Chip,
		Offset:    l.Offset,
		Caps:      caps,
		Initial:   initial,
		ActiveLow: l.ActiveLow,
		Trigger:   trigger,
		Debounce:  l.Debounce,
	}
}

func (c *Config) readConfigFile() error {
	file, err := os.Open(c.Flag.ConfigFile)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	decoder := yaml.NewDecoder(file)
	if err = decoder.Decode(c); err != nil {
		return err
	}

	return nil
}

func (c *Config) setDebugConfig() (err error) {
	switch c.Debug.FlagString {
	case "trace", "full":
		c.Debug.Flag = debug.Full
	case "debug":
		c.Debug.Flag = debug.Warning | debug.Info | debug.Error | debug.Fatal | debug.Debug
	case "standard":
		c.Debug.Flag = debug.Standard
	}

	switch c.Debug.FileString {
	case "stderr":
		c.Debug.File = os.Stderr
	case "stdout":
		c.Debug.File = os.Stdout
	default:
		if c.Debug.File, err = os.OpenFile(c.Debug.FileString, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666); err != nil {
			return
		}
	}

	return
}
