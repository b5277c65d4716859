// Command venuspm runs a full attach / power-cycle / detach sequence for a
// chosen hardware generation. It exists for sequencing bring-up and for
// eyeballing the engine's behavior: by default the wrapper registers and
// the platform resources are emulated, and -mmio-base points the engine at
// a real wrapper window through /dev/mem instead.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	venuspm "github.com/tinyrange/venuspm"
	"github.com/tinyrange/venuspm/internal/sim"
)

var (
	version       = flag.Int("version", 4, "hardware generation (1, 3 or 4)")
	resourcesFile = flag.String("resources", "", "optional resource table override (YAML)")
	mmioBase      = flag.Uint64("mmio-base", 0, "physical address of the wrapper register window; 0 uses the emulated wrapper")
	verbose       = flag.Bool("v", false, "enable debug logging")
)

func run() error {
	res := venuspm.TableFor(venuspm.Version(*version))
	if *resourcesFile != "" {
		var err error
		res, err = venuspm.LoadTable(*resourcesFile)
		if err != nil {
			return err
		}
	}

	// Clocks and domains stay emulated even against real registers; the
	// harness has no platform glue to drive the OS's clock tree.
	dev := sim.NewDevice(res)

	var regs venuspm.RegisterSpace
	if *mmioBase != 0 {
		dm, err := venuspm.OpenDevMem(*mmioBase, res.WrapperSize)
		if err != nil {
			return fmt.Errorf("map wrapper window at %#x: %w", *mmioBase, err)
		}
		defer dm.Close()
		slog.Info("driving hardware registers", "base", fmt.Sprintf("%#x", *mmioBase))
		regs = dm
	} else {
		regs = sim.NewWrapper(res.WrapperSize)
	}

	core := venuspm.New(dev, regs, res, slog.Default())
	ops := venuspm.OpsFor(res.Version)

	slog.Info("acquiring resources", "version", res.Version, "clocks", res.Clocks)
	if err := ops.GetResources(core); err != nil {
		return fmt.Errorf("get resources: %w", err)
	}

	slog.Info("powering on")
	if err := ops.SetPower(core, true); err != nil {
		return fmt.Errorf("power on: %w", err)
	}

	slog.Info("powering off")
	if err := ops.SetPower(core, false); err != nil {
		return fmt.Errorf("power off: %w", err)
	}

	if rel, ok := ops.(venuspm.Releaser); ok {
		slog.Info("releasing resources")
		rel.ReleaseResources(core)
	}

	slog.Info("power cycle complete")
	return nil
}

func main() {
	flag.Parse()

	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if err := run(); err != nil {
		slog.Error("power cycle failed", "err", err)
		os.Exit(1)
	}
}
