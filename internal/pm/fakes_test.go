package pm

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/tinyrange/venuspm/internal/platform"
	"github.com/tinyrange/venuspm/internal/resources"
)

// eventLog records every fake's calls in one ordered trace so tests can
// assert sequencing across clocks, domains and registers.
type eventLog struct {
	events []string
}

func (l *eventLog) add(e string) {
	l.events = append(l.events, e)
}

func (l *eventLog) indexOf(t *testing.T, e string) int {
	t.Helper()
	for i, got := range l.events {
		if got == e {
			return i
		}
	}
	t.Fatalf("event %q not in trace %v", e, l.events)
	return -1
}

func (l *eventLog) contains(e string) bool {
	for _, got := range l.events {
		if got == e {
			return true
		}
	}
	return false
}

var errEnableFailed = errors.New("enable failed")

type fakeClock struct {
	name       string
	log        *eventLog
	failEnable bool
	enabled    bool
}

func (c *fakeClock) Enable() error {
	c.log.add("clk:" + c.name + ":enable")
	if c.failEnable {
		return errEnableFailed
	}
	c.enabled = true
	return nil
}

func (c *fakeClock) Disable() {
	c.log.add("clk:" + c.name + ":disable")
	c.enabled = false
}

var (
	errAcquireFailed = errors.New("acquire failed")
	errReleaseFailed = errors.New("release failed")
	errUnheldDomain  = errors.New("released while unheld")
)

type fakeDomain struct {
	name        string
	log         *eventLog
	failAcquire bool
	failRelease bool
	held        int
	detached    bool
}

func (d *fakeDomain) Acquire() error {
	d.log.add("pd:" + d.name + ":acquire")
	if d.failAcquire {
		return errAcquireFailed
	}
	d.held++
	return nil
}

func (d *fakeDomain) Release() error {
	d.log.add("pd:" + d.name + ":release")
	if d.failRelease {
		return errReleaseFailed
	}
	if d.held == 0 {
		return errUnheldDomain
	}
	d.held--
	return nil
}

func (d *fakeDomain) Detach() {
	d.log.add("pd:" + d.name + ":detach")
	d.detached = true
}

type fakeLink struct {
	log    *eventLog
	flags  platform.LinkFlags
	closed bool
}

func (l *fakeLink) Close() {
	l.log.add("link:close")
	l.closed = true
}

type fakeDevice struct {
	log      *eventLog
	clocks   map[string]*fakeClock
	domains  map[string]*fakeDomain
	failLink bool
	links    []*fakeLink
}

func (d *fakeDevice) LookupClock(name string) (platform.Clock, error) {
	clk, ok := d.clocks[name]
	if !ok {
		return nil, fmt.Errorf("clock %q: %w", name, platform.ErrNotFound)
	}
	return clk, nil
}

func (d *fakeDevice) AttachDomain(name string) (platform.Domain, error) {
	pd, ok := d.domains[name]
	if !ok {
		return nil, fmt.Errorf("domain %q: %w", name, platform.ErrNotFound)
	}
	return pd, nil
}

func (d *fakeDevice) LinkDomain(pd platform.Domain, flags platform.LinkFlags) (platform.Link, error) {
	if d.failLink {
		return nil, platform.ErrLinkFailed
	}
	link := &fakeLink{log: d.log, flags: flags}
	d.links = append(d.links, link)
	return link, nil
}

// fakeRegs acknowledges power-control writes immediately unless a status
// register is marked stuck, in which case it never changes.
type fakeRegs struct {
	log   *eventLog
	mem   map[uint32]uint32
	stuck map[uint32]bool
}

func newFakeRegs(log *eventLog) *fakeRegs {
	return &fakeRegs{
		log:   log,
		mem:   make(map[uint32]uint32),
		stuck: make(map[uint32]bool),
	}
}

func (r *fakeRegs) Read32(off uint32) uint32 {
	return r.mem[off]
}

func (r *fakeRegs) Write32(off uint32, val uint32) {
	r.log.add(fmt.Sprintf("reg:%#x=%d", off, val))
	r.mem[off] = val

	var stat uint32
	switch off {
	case WrapperVcodec0PowerControl:
		stat = WrapperVcodec0PowerStatus
	case WrapperVcodec1PowerControl:
		stat = WrapperVcodec1PowerStatus
	default:
		return
	}

	if r.stuck[stat] {
		return
	}
	if val == controlPowered {
		r.mem[stat] |= PowerStatusReady
	} else {
		r.mem[stat] &^= PowerStatusReady
	}
}

type testRig struct {
	log  *eventLog
	dev  *fakeDevice
	regs *fakeRegs
	core *Core
	res  resources.Table
}

// newRig builds a core context over fakes holding every resource the given
// generation's table names.
func newRig(v resources.Version) *testRig {
	log := &eventLog{}
	res := resources.ForVersion(v)

	dev := &fakeDevice{
		log:     log,
		clocks:  make(map[string]*fakeClock),
		domains: make(map[string]*fakeDomain),
	}
	names := append([]string{}, res.Clocks...)
	names = append(names, res.Core0Clock, res.Core0BusClock,
		res.Core1Clock, res.Core1BusClock)
	for _, name := range names {
		if name != "" {
			dev.clocks[name] = &fakeClock{name: name, log: log}
		}
	}
	for _, name := range []string{res.DomainShared, res.DomainCore0, res.DomainCore1} {
		if name != "" {
			dev.domains[name] = &fakeDomain{name: name, log: log}
		}
	}

	regs := newFakeRegs(log)
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testRig{
		log:  log,
		dev:  dev,
		regs: regs,
		core: NewCore(dev, regs, res, quiet),
		res:  res,
	}
}
