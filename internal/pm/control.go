package pm

import (
	"fmt"
	"time"

	"github.com/tinyrange/venuspm/internal/platform"
)

// Wrapper register offsets. The third-generation wrapper exposes one
// write-only power-control toggle per session type; the fourth generation
// exposes a control/status pair per codec core.
const (
	WrapperVdecPowerControl uint32 = 0x060
	WrapperVencPowerControl uint32 = 0x064

	WrapperVcodec0PowerControl uint32 = 0x070
	WrapperVcodec0PowerStatus  uint32 = 0x074
	WrapperVcodec1PowerControl uint32 = 0x078
	WrapperVcodec1PowerStatus  uint32 = 0x07c
)

// PowerStatusReady is the status bit the fourth-generation wrapper raises
// once a core's power island has completed a transition.
const PowerStatusReady uint32 = 1 << 1

// Control register encoding: 0 requests the powered state, 1 requests the
// power-gated state.
const (
	controlPowered    uint32 = 0
	controlPowerGated uint32 = 1
)

const (
	handshakeInterval = time.Microsecond
	handshakeTimeout  = 100 * time.Microsecond
)

// SessionType selects the decoder or encoder block of the third-generation
// wrapper.
type SessionType int

const (
	SessionDecoder SessionType = iota
	SessionEncoder
)

// powerControlV3 toggles a session block's power-control bit. The
// third-generation wrapper gives no acknowledgment; the toggle is a bus
// access gate around clock mutation, not a real power transition.
func (c *Core) powerControlV3(session SessionType, enable bool) {
	ctrl := WrapperVencPowerControl
	if session == SessionDecoder {
		ctrl = WrapperVdecPowerControl
	}

	if enable {
		c.regs.Write32(ctrl, controlPowered)
	} else {
		c.regs.Write32(ctrl, controlPowerGated)
	}
}

// powerControlV4 toggles a core's power-control bit and polls the status
// register until the island acknowledges the transition: status bit set
// when enabling, clear when disabling. The poll runs at a 1us interval
// with a 100us budget and the timeout is the only cancellation mechanism.
func (c *Core) powerControlV4(id CoreID, enable bool) error {
	ctrl, stat := WrapperVcodec0PowerControl, WrapperVcodec0PowerStatus
	if id == CoreID2 {
		ctrl, stat = WrapperVcodec1PowerControl, WrapperVcodec1PowerStatus
	}

	if enable {
		c.regs.Write32(ctrl, controlPowered)
	} else {
		c.regs.Write32(ctrl, controlPowerGated)
	}

	deadline := time.Now().Add(handshakeTimeout)
	for {
		ready := c.regs.Read32(stat)&PowerStatusReady != 0
		if ready == enable {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("pm: vcodec%d power control (enable=%t): %w",
				id.index(), enable, platform.ErrHandshakeTimeout)
		}
		time.Sleep(handshakeInterval)
	}
}
