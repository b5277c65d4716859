//go:build linux

package hw

import (
	"encoding/binary"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// DevMem maps a physical register window through /dev/mem.
type DevMem struct {
	f   *os.File
	mem []byte
}

// OpenDevMem maps size bytes at physical address base. base must be page
// aligned.
func OpenDevMem(base uint64, size uint32) (*DevMem, error) {
	pageSize := uint64(unix.Getpagesize())
	if base%pageSize != 0 {
		return nil, fmt.Errorf("hw: base 0x%x not page aligned", base)
	}

	f, err := os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("hw: open /dev/mem: %w", err)
	}

	mem, err := unix.Mmap(int(f.Fd()), int64(base), int(size),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("hw: mmap 0x%x+0x%x: %w", base, size, err)
	}

	return &DevMem{f: f, mem: mem}, nil
}

func (d *DevMem) Read32(off uint32) uint32 {
	if int(off)+4 > len(d.mem) {
		return 0
	}
	return binary.LittleEndian.Uint32(d.mem[off:])
}

func (d *DevMem) Write32(off uint32, val uint32) {
	if int(off)+4 > len(d.mem) {
		return
	}
	binary.LittleEndian.PutUint32(d.mem[off:], val)
}

func (d *DevMem) Close() error {
	err := unix.Munmap(d.mem)
	if cerr := d.f.Close(); err == nil {
		err = cerr
	}
	return err
}
