// Package sim emulates the accelerator's wrapper register block and the
// platform resource collaborator, for tests and the venuspm harness.
package sim

import (
	"github.com/tinyrange/venuspm/internal/hw"
	"github.com/tinyrange/venuspm/internal/pm"
)

// island models one core's power island: a control write latches the
// requested state and the status bit follows after AckLatency status reads.
type island struct {
	status  uint32
	powered bool
	reads   int
	stuck   bool
}

func (is *island) request(powered bool, latency int) {
	is.powered = powered
	is.reads = latency
}

func (is *island) read() uint32 {
	if !is.stuck {
		if is.reads > 0 {
			is.reads--
		}
		if is.reads == 0 {
			if is.powered {
				is.status |= pm.PowerStatusReady
			} else {
				is.status &^= pm.PowerStatusReady
			}
		}
	}
	return is.status
}

// Wrapper emulates the wrapper register window. Writes to the
// fourth-generation per-core power-control registers drive the island
// models; all other offsets behave as plain RAM, so the third-generation
// write-only toggles are latched and readable by tests.
type Wrapper struct {
	mem     *hw.Memory
	islands [2]island

	// AckLatency is the number of status reads before an island
	// acknowledges a transition. Zero acknowledges on the first read.
	AckLatency int
}

// NewWrapper builds a wrapper window of the given byte size.
func NewWrapper(size uint32) *Wrapper {
	return &Wrapper{mem: hw.NewMemory(size)}
}

// SetStuck makes a core's island stop acknowledging transitions, for
// handshake-timeout scenarios. core is the zero-based hardware index.
func (w *Wrapper) SetStuck(core int, stuck bool) {
	w.islands[core].stuck = stuck
}

func (w *Wrapper) Read32(off uint32) uint32 {
	switch off {
	case pm.WrapperVcodec0PowerStatus:
		return w.islands[0].read()
	case pm.WrapperVcodec1PowerStatus:
		return w.islands[1].read()
	default:
		return w.mem.Read32(off)
	}
}

func (w *Wrapper) Write32(off uint32, val uint32) {
	switch off {
	case pm.WrapperVcodec0PowerControl:
		w.islands[0].request(val == 0, w.AckLatency)
	case pm.WrapperVcodec1PowerControl:
		w.islands[1].request(val == 0, w.AckLatency)
	}
	w.mem.Write32(off, val)
}
