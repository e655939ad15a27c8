// Package machinetest provides a flat-byte-slice fake implementing machine.Machine, for use in this
// module's own tests and as a reference for conformance-testing a real Machine implementation.
package machinetest

import (
	"encoding/binary"

	"github.com/smoynes/rvsys/internal/machine"
)

// Fake is an in-process Machine backed by a flat byte slice. Addresses beyond the configured size
// fail with *machine.ErrBadAddress, mirroring the 32-bit flat address space the real VM presents.
type Fake struct {
	mem  []byte
	regs [machine.NumReg]uint64
}

// New creates a Fake with the given memory size in bytes.
func New(size int) *Fake {
	return &Fake{mem: make([]byte, size)}
}

func (f *Fake) Reg(r machine.Reg) uint64      { return f.regs[r] }
func (f *Fake) SetReg(r machine.Reg, v uint64) { f.regs[r] = v }

func (f *Fake) bounds(addr, length uint64) error {
	if addr+length < addr || addr+length > uint64(len(f.mem)) {
		return &machine.ErrBadAddress{Addr: addr}
	}

	return nil
}

func (f *Fake) ReadU8(addr uint64) (uint8, error) {
	if err := f.bounds(addr, 1); err != nil {
		return 0, err
	}

	return f.mem[addr], nil
}

func (f *Fake) ReadU16(addr uint64) (uint16, error) {
	if err := f.bounds(addr, 2); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(f.mem[addr:]), nil
}

func (f *Fake) ReadU32(addr uint64) (uint32, error) {
	if err := f.bounds(addr, 4); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(f.mem[addr:]), nil
}

func (f *Fake) ReadU64(addr uint64) (uint64, error) {
	if err := f.bounds(addr, 8); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(f.mem[addr:]), nil
}

func (f *Fake) WriteU8(addr uint64, v uint8) error {
	if err := f.bounds(addr, 1); err != nil {
		return err
	}

	f.mem[addr] = v

	return nil
}

func (f *Fake) WriteU16(addr uint64, v uint16) error {
	if err := f.bounds(addr, 2); err != nil {
		return err
	}

	binary.LittleEndian.PutUint16(f.mem[addr:], v)

	return nil
}

func (f *Fake) WriteU32(addr uint64, v uint32) error {
	if err := f.bounds(addr, 4); err != nil {
		return err
	}

	binary.LittleEndian.PutUint32(f.mem[addr:], v)

	return nil
}

func (f *Fake) WriteU64(addr uint64, v uint64) error {
	if err := f.bounds(addr, 8); err != nil {
		return err
	}

	binary.LittleEndian.PutUint64(f.mem[addr:], v)

	return nil
}

func (f *Fake) ReadMemory(addr, length uint64) ([]byte, error) {
	if err := f.bounds(addr, length); err != nil {
		return nil, err
	}

	out := make([]byte, length)
	copy(out, f.mem[addr:addr+length])

	return out, nil
}

func (f *Fake) ReadMemoryInto(addr uint64, buf []byte) error {
	if err := f.bounds(addr, uint64(len(buf))); err != nil {
		return err
	}

	copy(buf, f.mem[addr:addr+uint64(len(buf))])

	return nil
}

func (f *Fake) WriteMemory(addr uint64, data []byte) error {
	if err := f.bounds(addr, uint64(len(data))); err != nil {
		return err
	}

	copy(f.mem[addr:addr+uint64(len(data))], data)

	return nil
}

func (f *Fake) ReadCString(addr, maxLen uint64) (string, error) {
	return machine.ReadCStringByte(f, addr, maxLen)
}

var _ machine.Machine = (*Fake)(nil)
