package pm

import (
	"fmt"

	"github.com/tinyrange/venuspm/internal/platform"
	"github.com/tinyrange/venuspm/internal/resources"
)

// Ops is the sequencing strategy for one hardware generation. Every
// generation can acquire its resources at attach time and drive power
// transitions; the optional capabilities below are discovered by type
// assertion, the way a session manager probes them.
type Ops interface {
	// GetResources acquires every clock and domain handle the generation
	// needs. Called once at attach; failure is an attach failure.
	GetResources(c *Core) error

	// SetPower drives a full power transition. Callers alternate on/off
	// and never re-enter while a call is in flight.
	SetPower(c *Core, on bool) error
}

// Releaser is implemented by generations whose resources are detached at
// device removal rather than living for the device lifetime.
type Releaser interface {
	ReleaseResources(c *Core)
}

// SessionOps is implemented by generations with per-session (decoder /
// encoder) resources and power control.
type SessionOps interface {
	DecoderGetResources(c *Core) error
	DecoderSetPower(c *Core, on bool) error
	EncoderGetResources(c *Core) error
	EncoderSetPower(c *Core, on bool) error
}

// OpsFor maps a hardware generation to its sequencing strategy. Legacy or
// unrecognized generations get the first-generation strategy.
func OpsFor(v resources.Version) Ops {
	switch v {
	case resources.Version3:
		return opsV3{}
	case resources.Version4:
		return opsV4{}
	default:
		return opsV1{}
	}
}

// opsV1 drives the first generation: the shared clock set is the whole
// power interface. Resources live for the device lifetime.
type opsV1 struct{}

func (opsV1) GetResources(c *Core) error {
	return c.clocksGet()
}

func (opsV1) SetPower(c *Core, on bool) error {
	if on {
		return c.clocksEnable()
	}
	c.clocksDisable()
	return nil
}

// opsV3 keeps the first generation's shared-clock behavior and adds
// per-session clocks whose mutation is bracketed by the session block's
// power-control toggle.
type opsV3 struct {
	opsV1
}

func (opsV3) DecoderGetResources(c *Core) error {
	clk, err := c.dev.LookupClock(c.res.Core0Clock)
	if err != nil {
		return fmt.Errorf("pm: lookup clock %q: %w", c.res.Core0Clock, err)
	}
	c.core0Clk = clk
	return nil
}

func (opsV3) DecoderSetPower(c *Core, on bool) error {
	return sessionPowerV3(c, SessionDecoder, c.core0Clk, on)
}

func (opsV3) EncoderGetResources(c *Core) error {
	clk, err := c.dev.LookupClock(c.res.Core1Clock)
	if err != nil {
		return fmt.Errorf("pm: lookup clock %q: %w", c.res.Core1Clock, err)
	}
	c.core1Clk = clk
	return nil
}

func (opsV3) EncoderSetPower(c *Core, on bool) error {
	return sessionPowerV3(c, SessionEncoder, c.core1Clk, on)
}

// sessionPowerV3 mutates a session clock inside an assert/deassert pair of
// the unacknowledged power-control toggle. The deassert runs even when the
// enable fails, so the bus gate is never left asserted.
func sessionPowerV3(c *Core, session SessionType, clk platform.Clock, on bool) error {
	c.powerControlV3(session, true)

	var err error
	if on {
		err = clk.Enable()
	} else {
		clk.Disable()
	}

	c.powerControlV3(session, false)

	if err != nil {
		return fmt.Errorf("pm: enable session clock: %w", err)
	}
	return nil
}

// opsV4 drives the fourth generation: shared clocks plus the two-core
// sequencer over acknowledged power-control handshakes and per-core power
// domains.
type opsV4 struct{}

func (opsV4) GetResources(c *Core) error {
	if err := c.clocksGet(); err != nil {
		return err
	}

	for _, want := range []struct {
		name string
		dst  *platform.Clock
	}{
		{c.res.Core0Clock, &c.core0Clk},
		{c.res.Core0BusClock, &c.core0BusClk},
		{c.res.Core1Clock, &c.core1Clk},
		{c.res.Core1BusClock, &c.core1BusClk},
	} {
		clk, err := c.dev.LookupClock(want.name)
		if err != nil {
			return fmt.Errorf("pm: lookup clock %q: %w", want.name, err)
		}
		*want.dst = clk
	}

	for _, want := range []struct {
		name string
		dst  *platform.Domain
	}{
		{c.res.DomainShared, &c.pdShared},
		{c.res.DomainCore0, &c.pdCore0},
		{c.res.DomainCore1, &c.pdCore1},
	} {
		pd, err := c.dev.AttachDomain(want.name)
		if err != nil {
			return fmt.Errorf("pm: attach domain %q: %w", want.name, err)
		}
		*want.dst = pd
	}

	link, err := c.dev.LinkDomain(c.pdShared,
		platform.LinkStateless|platform.LinkPMRuntime|platform.LinkRPMActive)
	if err != nil {
		return fmt.Errorf("pm: link %q domain: %w", c.res.DomainShared, err)
	}
	c.pdLink = link

	return nil
}

// ReleaseResources severs the shared-domain link and detaches every
// attached domain. Safe on a partially acquired context and idempotent.
func (opsV4) ReleaseResources(c *Core) {
	if c.pdLink != nil {
		c.pdLink.Close()
		c.pdLink = nil
	}

	for _, pd := range []*platform.Domain{&c.pdShared, &c.pdCore0, &c.pdCore1} {
		if *pd != nil {
			(*pd).Detach()
			*pd = nil
		}
	}
}

func (opsV4) SetPower(c *Core, on bool) error {
	if on {
		if err := c.clocksEnable(); err != nil {
			c.log.Error("pm: core clocks enable failed", "err", err)
			return err
		}
		return c.powerOnCores(AllCores)
	}

	err := c.powerOffCores(AllCores)
	if err != nil {
		c.log.Error("pm: power off by core failed", "err", err)
	}
	c.clocksDisable()
	return err
}
