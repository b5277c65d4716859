// Package pm sequences power for the codec accelerator. The accelerator has
// up to two independent codec cores behind a shared wrapper block; each
// hardware generation exposes a different register layout and resource set,
// so the sequencing strategy is selected once per device from the generation
// identifier (see OpsFor).
//
// The engine performs no internal locking. Callers own a Core and must
// serialize power transitions on it.
package pm

import (
	"log/slog"

	"github.com/tinyrange/venuspm/internal/hw"
	"github.com/tinyrange/venuspm/internal/platform"
	"github.com/tinyrange/venuspm/internal/resources"
)

// Core is the long-lived device context. It owns every resource handle the
// engine acquires: the shared clock list, the per-core clock pairs, the
// power-domain handles and the shared-domain device link. A handle is nil
// until acquired; a failed acquisition leaves earlier handles in place so
// the caller can inspect and clean up the partial state.
type Core struct {
	dev  platform.Device
	regs hw.RegisterSpace
	res  resources.Table
	log  *slog.Logger

	clks []platform.Clock

	core0Clk    platform.Clock
	core0BusClk platform.Clock
	core1Clk    platform.Clock
	core1BusClk platform.Clock

	pdShared platform.Domain
	pdCore0  platform.Domain
	pdCore1  platform.Domain
	pdLink   platform.Link
}

// NewCore builds a device context. log may be nil, in which case the
// default logger is used.
func NewCore(dev platform.Device, regs hw.RegisterSpace, res resources.Table, log *slog.Logger) *Core {
	if log == nil {
		log = slog.Default()
	}
	return &Core{dev: dev, regs: regs, res: res, log: log}
}

// coreResources maps a core id to its domain and clock pair.
func (c *Core) coreResources(id CoreID) (platform.Domain, platform.Clock, platform.Clock) {
	if id == CoreID1 {
		return c.pdCore0, c.core0Clk, c.core0BusClk
	}
	return c.pdCore1, c.core1Clk, c.core1BusClk
}
