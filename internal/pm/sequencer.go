package pm

import "fmt"

// CoreID is a bitmask selecting codec cores for a sequencing operation.
type CoreID uint32

const (
	CoreID1 CoreID = 1 << iota
	CoreID2
)

// AllCores selects both codec cores.
const AllCores = CoreID1 | CoreID2

// index maps a single core id to its zero-based hardware index.
func (id CoreID) index() int {
	if id == CoreID2 {
		return 1
	}
	return 0
}

// coreOn powers one core up: acquire its domain, assert power control with
// acknowledgment, enable the core clock then the bus clock, deassert power
// control to let the island settle into operation.
//
// Any failure aborts the sequence and propagates. A failure after the
// domain acquisition leaves the domain held; the caller's escalation path
// is a full power-off, which releases it.
func (c *Core) coreOn(id CoreID) error {
	pd, clk, busClk := c.coreResources(id)

	if err := pd.Acquire(); err != nil {
		return fmt.Errorf("pm: acquire vcodec%d domain: %w", id.index(), err)
	}

	if err := c.powerControlV4(id, true); err != nil {
		return err
	}

	if err := clk.Enable(); err != nil {
		return fmt.Errorf("pm: enable vcodec%d core clock: %w", id.index(), err)
	}
	if err := busClk.Enable(); err != nil {
		return fmt.Errorf("pm: enable vcodec%d bus clock: %w", id.index(), err)
	}

	return c.powerControlV4(id, false)
}

// coreOff powers one core down. The power-control assert must be
// acknowledged before any clock is gated; if it is not, the teardown of
// this core is abandoned and the error propagates. Once the clocks are off
// the hardware is safe, so failures in the trailing deassert and the domain
// release are logged and sequencing continues.
func (c *Core) coreOff(id CoreID) error {
	pd, clk, busClk := c.coreResources(id)

	if err := c.powerControlV4(id, true); err != nil {
		// Never gate clocks on an island whose power gating is
		// unconfirmed.
		return err
	}

	busClk.Disable()
	clk.Disable()

	if err := c.powerControlV4(id, false); err != nil {
		c.log.Error("pm: settle vcodec power control failed",
			"core", id.index(), "err", err)
	}

	if err := pd.Release(); err != nil {
		c.log.Error("pm: release vcodec domain failed",
			"core", id.index(), "err", err)
	}

	return nil
}

// powerOnCores sequences the cores selected by mask, core 1 fully before
// core 2. A failure on core 1 aborts before core 2 is started.
func (c *Core) powerOnCores(mask CoreID) error {
	if mask&CoreID1 != 0 {
		if err := c.coreOn(CoreID1); err != nil {
			return err
		}
	}
	if mask&CoreID2 != 0 {
		if err := c.coreOn(CoreID2); err != nil {
			return err
		}
	}
	return nil
}

// powerOffCores tears down the cores selected by mask, core 1 before
// core 2. Teardown favors maximal resource release: a core 1 failure is
// logged and core 2's teardown still runs. The first error is returned
// once every selected core has been attempted.
func (c *Core) powerOffCores(mask CoreID) error {
	var firstErr error

	if mask&CoreID1 != 0 {
		if err := c.coreOff(CoreID1); err != nil {
			c.log.Error("pm: power off vcodec0 failed", "err", err)
			firstErr = err
		}
	}
	if mask&CoreID2 != 0 {
		if err := c.coreOff(CoreID2); err != nil {
			c.log.Error("pm: power off vcodec1 failed", "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
