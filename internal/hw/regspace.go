// Package hw provides 32-bit register-space access for the codec wrapper
// window. Backends are a RAM-backed space for emulation and tests and a
// /dev/mem mapping on Linux.
package hw

import "encoding/binary"

// RegisterSpace is the register access collaborator. Offsets are byte
// offsets into the wrapper window. Accesses do not fail once the window is
// mapped; unmapped offsets behave like open bus (reads as zero, writes
// dropped).
type RegisterSpace interface {
	Read32(off uint32) uint32
	Write32(off uint32, val uint32)
}

// Memory is a RAM-backed RegisterSpace.
type Memory struct {
	buf []byte
}

// NewMemory returns a zeroed register window of the given byte size,
// rounded up to a multiple of 4.
func NewMemory(size uint32) *Memory {
	size = (size + 3) &^ 3
	return &Memory{buf: make([]byte, size)}
}

func (m *Memory) Read32(off uint32) uint32 {
	if int(off)+4 > len(m.buf) {
		return 0
	}
	return binary.LittleEndian.Uint32(m.buf[off:])
}

func (m *Memory) Write32(off uint32, val uint32) {
	if int(off)+4 > len(m.buf) {
		return
	}
	binary.LittleEndian.PutUint32(m.buf[off:], val)
}
