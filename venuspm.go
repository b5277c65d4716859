// Package venuspm sequences power for a multi-block video codec
// accelerator with up to two independent codec cores. A session manager
// selects the sequencing strategy for its hardware generation once, acquires
// resources at device attach, drives power transitions at stream start/stop
// and releases resources at detach.
//
// The engine is synchronous and performs no internal locking; callers must
// serialize operations on a Core.
package venuspm

import (
	"log/slog"

	"github.com/tinyrange/venuspm/internal/hw"
	"github.com/tinyrange/venuspm/internal/platform"
	"github.com/tinyrange/venuspm/internal/pm"
	"github.com/tinyrange/venuspm/internal/resources"
)

// Core is the long-lived device context owning every acquired resource
// handle.
type Core = pm.Core

// Ops is one hardware generation's sequencing strategy.
type Ops = pm.Ops

// Releaser is implemented by strategies whose resources are released at
// device detach. Probe with a type assertion.
type Releaser = pm.Releaser

// SessionOps is implemented by strategies with per-session (decoder /
// encoder) resources and power control. Probe with a type assertion.
type SessionOps = pm.SessionOps

// Clock, Domain, Link and Device are the platform collaborator interfaces
// the caller provides.
type (
	Clock     = platform.Clock
	Domain    = platform.Domain
	Link      = platform.Link
	LinkFlags = platform.LinkFlags
	Device    = platform.Device
)

// RegisterSpace is the register access collaborator for the accelerator's
// wrapper window.
type RegisterSpace = hw.RegisterSpace

// DevMem is a RegisterSpace over a /dev/mem mapping of the wrapper window.
// Only available on Linux.
type DevMem = hw.DevMem

// OpenDevMem maps size bytes of the wrapper register window at the given
// physical address. base must be page aligned. Returns ErrUnsupported on
// platforms without /dev/mem.
func OpenDevMem(base uint64, size uint32) (*DevMem, error) {
	return hw.OpenDevMem(base, size)
}

// Version identifies the hardware generation.
type Version = resources.Version

// Table describes one generation's named resources.
type Table = resources.Table

const (
	Version1 = resources.Version1
	Version3 = resources.Version3
	Version4 = resources.Version4
)

// Common sentinel errors. Match with errors.Is; failures from the platform
// collaborators are wrapped and pass through unchanged.
var (
	ErrNotFound         = platform.ErrNotFound
	ErrHandshakeTimeout = platform.ErrHandshakeTimeout
	ErrLinkFailed       = platform.ErrLinkFailed
	ErrUnsupported      = platform.ErrUnsupported
)

// TableFor returns the built-in resource table for a generation.
// Unrecognized generations fall back to the first generation, mirroring
// OpsFor.
func TableFor(v Version) Table {
	return resources.ForVersion(v)
}

// LoadTable reads a resource table override from a YAML file, filling
// omitted fields from the generation's built-in table.
func LoadTable(path string) (Table, error) {
	return resources.Load(path)
}

// OpsFor maps a hardware generation to its sequencing strategy. The
// returned value is immutable; select it once per device.
func OpsFor(v Version) Ops {
	return pm.OpsFor(v)
}

// New builds a device context over the caller's collaborators. log may be
// nil for the default logger.
func New(dev Device, regs RegisterSpace, table Table, log *slog.Logger) *Core {
	return pm.NewCore(dev, regs, table, log)
}
