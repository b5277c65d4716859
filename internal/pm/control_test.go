package pm

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tinyrange/venuspm/internal/platform"
	"github.com/tinyrange/venuspm/internal/resources"
)

func TestPowerControlV3Writes(t *testing.T) {
	rig := newRig(resources.Version3)

	rig.core.powerControlV3(SessionDecoder, true)
	if got := rig.regs.mem[WrapperVdecPowerControl]; got != controlPowered {
		t.Fatalf("decoder control = %d after enable, want %d", got, controlPowered)
	}

	rig.core.powerControlV3(SessionDecoder, false)
	if got := rig.regs.mem[WrapperVdecPowerControl]; got != controlPowerGated {
		t.Fatalf("decoder control = %d after disable, want %d", got, controlPowerGated)
	}

	rig.core.powerControlV3(SessionEncoder, true)
	if got := rig.regs.mem[WrapperVencPowerControl]; got != controlPowered {
		t.Fatalf("encoder control = %d after enable, want %d", got, controlPowered)
	}
}

func TestPowerControlV4Handshake(t *testing.T) {
	rig := newRig(resources.Version4)

	if err := rig.core.powerControlV4(CoreID1, true); err != nil {
		t.Fatalf("enable handshake failed: %v", err)
	}
	if rig.regs.mem[WrapperVcodec0PowerStatus]&PowerStatusReady == 0 {
		t.Fatalf("status bit not set after enable")
	}

	if err := rig.core.powerControlV4(CoreID1, false); err != nil {
		t.Fatalf("disable handshake failed: %v", err)
	}
	if rig.regs.mem[WrapperVcodec0PowerStatus]&PowerStatusReady != 0 {
		t.Fatalf("status bit still set after disable")
	}
}

func TestPowerControlV4SelectsCoreRegisters(t *testing.T) {
	rig := newRig(resources.Version4)

	if err := rig.core.powerControlV4(CoreID2, true); err != nil {
		t.Fatalf("core 2 handshake failed: %v", err)
	}

	rig.log.indexOf(t, fmt.Sprintf("reg:%#x=%d", WrapperVcodec1PowerControl, controlPowered))
	if rig.log.contains(fmt.Sprintf("reg:%#x=%d", WrapperVcodec0PowerControl, controlPowered)) {
		t.Fatalf("core 2 handshake touched core 1's control register")
	}
}

func TestPowerControlV4Timeout(t *testing.T) {
	rig := newRig(resources.Version4)
	rig.regs.stuck[WrapperVcodec0PowerStatus] = true

	start := time.Now()
	err := rig.core.powerControlV4(CoreID1, true)
	elapsed := time.Since(start)

	if !errors.Is(err, platform.ErrHandshakeTimeout) {
		t.Fatalf("got %v, want ErrHandshakeTimeout", err)
	}
	// The poll budget is 100us; allow generous scheduling slack but make
	// sure the call cannot hang anywhere near indefinitely.
	if elapsed > time.Second {
		t.Fatalf("timeout took %v, poll budget is %v", elapsed, handshakeTimeout)
	}
}
