package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"
	"github.com/womat/debug"

	"digitalio-go/config"
	"digitalio-go/digitalio"
	_ "digitalio-go/driver/gpiocdev"
	_ "digitalio-go/driver/rpi"
	"digitalio-go/irqmux"
	"digitalio-go/registry"
)

const defaultConfigFile = "/etc/gpioctl/gpioctl.yaml"

func main() {
	exitCode := 1
	defer func() {
		os.Exit(exitCode)
	}()

	// cfg holds the tool configuration
	cfg := config.NewConfig()

	cliApp := &cli.App{
		Name:  "gpioctl",
		Usage: "read, drive and watch configured GPIO lines",
		UsageText: "gpioctl [--conf <file>] [--log error|debug|trace] <command>" +
			"\n\nEXAMPLE:" +
			"\n\tread the line named door from /etc/gpioctl/gpioctl.yaml" +
			"\n\t\tgpioctl get door",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Destination: &cfg.Flag.ConfigFile, Value: defaultConfigFile, Usage: "load line configuration from `FILE`"},
			&cli.StringFlag{Name: "log", Aliases: []string{"l"}, Destination: &cfg.Flag.LogLevel, Value: "standard", Usage: "`LEVEL` defines the log level (standard|debug|trace)"},
		},
		Before: func(ctx *cli.Context) error {
			if err := cfg.LoadConfig(); err != nil {
				return err
			}
			debug.SetDebug(cfg.Debug.File, cfg.Debug.Flag)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list configured lines and registered drivers",
				Action: func(ctx *cli.Context) error { return runList(cfg) },
			},
			{
				Name:      "get",
				Usage:     "read the state of a line",
				ArgsUsage: "<line>",
				Action:    func(ctx *cli.Context) error { return runGet(cfg, ctx.Args().First()) },
			},
			{
				Name:      "set",
				Usage:     "drive a line",
				ArgsUsage: "<line> active|inactive",
				Action: func(ctx *cli.Context) error {
					return runSet(cfg, ctx.Args().Get(0), ctx.Args().Get(1))
				},
			},
			{
				Name:      "watch",
				Usage:     "print interrupt events for a line until interrupted",
				ArgsUsage: "<line>",
				Action:    func(ctx *cli.Context) error { return runWatch(cfg, ctx.Args().First()) },
			},
		},
	}

	sort.Sort(cli.FlagsByName(cliApp.Flags))
	sort.Sort(cli.CommandsByName(cliApp.Commands))

	if err := cliApp.Run(os.Args); err != nil {
		debug.FatalLog.Print(err)
		exitCode = 1
		return
	}

	exitCode = 0
}

// buildLine resolves a configured line and constructs it through the
// driver registry.
func buildLine(cfg *config.Config, name string) (digitalio.Line, *config.LineConfig, error) {
	lc, err := cfg.Line(name)
	if err != nil {
		return nil, nil, err
	}
	line, err := registry.Build(cfg.BuildInput(lc))
	if err != nil {
		return nil, nil, err
	}
	return line, lc, nil
}

func runList(cfg *config.Config) error {
	drivers := registry.Drivers()
	sort.Strings(drivers)
	fmt.Printf("drivers: %s\n", strings.Join(drivers, ", "))
	for _, l := range cfg.Lines {
		fmt.Printf("%-16s offset %-3d caps %s\n", l.Name, l.Offset, strings.Join(l.Caps, "+"))
	}
	return nil
}

func runGet(cfg *config.Config, name string) error {
	line, _, err := buildLine(cfg, name)
	if err != nil {
		return err
	}
	in, err := digitalio.AsInput(line)
	if err != nil {
		return fmt.Errorf("line %q provides no input: %w", name, err)
	}

	if err := line.Enable(); err != nil {
		return err
	}
	defer func() {
		if err := line.Disable(); err != nil {
			debug.ErrorLog.Printf("disable %s: %v", name, err)
		}
	}()

	s, err := in.GetState()
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}

func runSet(cfg *config.Config, name, value string) error {
	var s digitalio.State
	switch value {
	case "active":
		s = digitalio.Active
	case "inactive":
		s = digitalio.Inactive
	default:
		return fmt.Errorf("state must be active or inactive, got %q", value)
	}

	line, _, err := buildLine(cfg, name)
	if err != nil {
		return err
	}
	out, err := digitalio.AsOutput(line)
	if err != nil {
		return fmt.Errorf("line %q provides no output: %w", name, err)
	}

	if err := line.Enable(); err != nil {
		return err
	}
	defer func() {
		if err := line.Disable(); err != nil {
			debug.ErrorLog.Printf("disable %s: %v", name, err)
		}
	}()

	if err := out.SetState(s); err != nil {
		return err
	}
	debug.InfoLog.Printf("set %s %v", name, s)
	return nil
}

func runWatch(cfg *config.Config, name string) error {
	line, lc, err := buildLine(cfg, name)
	if err != nil {
		return err
	}
	irq, err := digitalio.AsInterrupt(line)
	if err != nil {
		return fmt.Errorf("line %q provides no interrupt: %w", name, err)
	}

	if err := line.Enable(); err != nil {
		return err
	}
	defer func() {
		if err := line.Disable(); err != nil {
			debug.ErrorLog.Printf("disable %s: %v", name, err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mux := irqmux.New(0, 0)
	mux.Start(ctx)
	stop, err := mux.Watch(name, irq, cfg.BuildInput(lc).Trigger, lc.Debounce)
	if err != nil {
		return err
	}
	defer stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	debug.InfoLog.Printf("watching %s, interrupt to stop", name)
	for {
		select {
		case ev := <-mux.Events():
			fmt.Printf("%s %s %v\n", ev.TS.Format("15:04:05.000"), ev.Name, ev.State)
		case sig := <-quit:
			debug.InfoLog.Printf("got %s signal, stopping", sig)
			if n := mux.Drops(); n > 0 {
				debug.ErrorLog.Printf("%d events dropped", n)
			}
			return nil
		}
	}
}
