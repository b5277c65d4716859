package sim

import (
	"fmt"

	"github.com/tinyrange/venuspm/internal/platform"
	"github.com/tinyrange/venuspm/internal/resources"
)

// Clock is an instrumented emulated clock line.
type Clock struct {
	Name    string
	Enabled bool

	Enables  int
	Disables int

	// FailEnable makes every Enable call fail.
	FailEnable bool
}

func (c *Clock) Enable() error {
	c.Enables++
	if c.FailEnable {
		return fmt.Errorf("sim: clock %q enable failed", c.Name)
	}
	c.Enabled = true
	return nil
}

func (c *Clock) Disable() {
	c.Disables++
	c.Enabled = false
}

// Domain is an instrumented emulated power domain with a usage count.
type Domain struct {
	Name     string
	Users    int
	Attached bool

	FailAcquire bool
}

func (d *Domain) Acquire() error {
	if d.FailAcquire {
		return fmt.Errorf("sim: domain %q acquire failed", d.Name)
	}
	d.Users++
	return nil
}

func (d *Domain) Release() error {
	if d.Users == 0 {
		return fmt.Errorf("sim: domain %q released while unheld", d.Name)
	}
	d.Users--
	return nil
}

func (d *Domain) Detach() {
	d.Attached = false
}

// Link is an emulated device/domain lifetime link.
type Link struct {
	Domain *Domain
	Flags  platform.LinkFlags
	Closed bool
}

func (l *Link) Close() {
	l.Closed = true
}

// Device emulates the resource-acquisition collaborator. Its inventory is
// populated from a resource table; every name in the table resolves, every
// other name reports not-found.
type Device struct {
	Clocks  map[string]*Clock
	Domains map[string]*Domain
	Links   []*Link

	// FailLink makes LinkDomain fail.
	FailLink bool
}

// NewDevice builds a device holding every resource the table names.
func NewDevice(res resources.Table) *Device {
	d := &Device{
		Clocks:  make(map[string]*Clock),
		Domains: make(map[string]*Domain),
	}

	names := append([]string{}, res.Clocks...)
	names = append(names, res.Core0Clock, res.Core0BusClock,
		res.Core1Clock, res.Core1BusClock)
	for _, name := range names {
		if name != "" {
			d.Clocks[name] = &Clock{Name: name}
		}
	}

	for _, name := range []string{res.DomainShared, res.DomainCore0, res.DomainCore1} {
		if name != "" {
			d.Domains[name] = &Domain{Name: name, Attached: true}
		}
	}

	return d
}

func (d *Device) LookupClock(name string) (platform.Clock, error) {
	clk, ok := d.Clocks[name]
	if !ok {
		return nil, fmt.Errorf("sim: clock %q: %w", name, platform.ErrNotFound)
	}
	return clk, nil
}

func (d *Device) AttachDomain(name string) (platform.Domain, error) {
	pd, ok := d.Domains[name]
	if !ok {
		return nil, fmt.Errorf("sim: domain %q: %w", name, platform.ErrNotFound)
	}
	pd.Attached = true
	return pd, nil
}

func (d *Device) LinkDomain(pd platform.Domain, flags platform.LinkFlags) (platform.Link, error) {
	if d.FailLink {
		return nil, platform.ErrLinkFailed
	}
	link := &Link{Domain: pd.(*Domain), Flags: flags}
	d.Links = append(d.Links, link)
	return link, nil
}
