package pm

import (
	"fmt"

	"github.com/tinyrange/venuspm/internal/platform"
)

// clocksGet looks up every shared clock named in the resource table, in
// table order. The first failed lookup is returned as-is; clocks acquired
// before it stay in the context (lookups hand over ownership, there is
// nothing to roll back).
func (c *Core) clocksGet() error {
	c.clks = make([]platform.Clock, 0, len(c.res.Clocks))
	for _, name := range c.res.Clocks {
		clk, err := c.dev.LookupClock(name)
		if err != nil {
			return fmt.Errorf("pm: lookup clock %q: %w", name, err)
		}
		c.clks = append(c.clks, clk)
	}
	return nil
}

// clocksEnable enables the shared clocks in table order. If an enable fails
// the clocks enabled so far are disabled again in reverse order, so the
// caller never observes a partially enabled set.
func (c *Core) clocksEnable() error {
	for i, clk := range c.clks {
		if err := clk.Enable(); err != nil {
			for j := i - 1; j >= 0; j-- {
				c.clks[j].Disable()
			}
			return fmt.Errorf("pm: enable clock %q: %w", c.res.Clocks[i], err)
		}
	}
	return nil
}

// clocksDisable disables the shared clocks in strict reverse table order.
func (c *Core) clocksDisable() {
	for i := len(c.clks) - 1; i >= 0; i-- {
		c.clks[i].Disable()
	}
}
