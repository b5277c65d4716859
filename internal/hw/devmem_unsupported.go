//go:build !linux

package hw

import "github.com/tinyrange/venuspm/internal/platform"

// DevMem is only available on Linux.
type DevMem struct{}

func OpenDevMem(base uint64, size uint32) (*DevMem, error) {
	return nil, platform.ErrUnsupported
}

func (d *DevMem) Read32(off uint32) uint32       { return 0 }
func (d *DevMem) Write32(off uint32, val uint32) {}
func (d *DevMem) Close() error                   { return nil }
