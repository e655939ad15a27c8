// Package machine defines the capability the kernel engine needs from a guest virtual machine: a
// register file and an addressable memory, plus the process-startup stack layout that is common to
// every VM backend.
//
// The virtual machine itself -- instruction decode, paging, fault injection -- is out of scope for
// this module. A caller supplies a concrete Machine; this package only defines the interface and the
// one piece of behavior (Init) that is the same regardless of backend.
package machine

import "fmt"

// Reg enumerates the virtual registers used by the syscall ABI.
type Reg uint8

// The thirteen registers the syscall ABI reads and writes. Numeric codes are stable; a Machine
// implementation maps them onto its own register bank.
const (
	RA Reg = iota
	SP
	T0
	T1
	T2
	S0
	S1
	A0
	A1
	A2
	A3
	A4
	A5

	NumReg
)

var regNames = [NumReg]string{
	RA: "RA", SP: "SP", T0: "T0", T1: "T1", T2: "T2",
	S0: "S0", S1: "S1",
	A0: "A0", A1: "A1", A2: "A2", A3: "A3", A4: "A4", A5: "A5",
}

func (r Reg) String() string {
	if int(r) < len(regNames) {
		return regNames[r]
	}

	return fmt.Sprintf("Reg(%d)", uint8(r))
}

// ErrBadAddress is returned by a Machine implementation when an address or address range falls
// outside of guest memory, or is misaligned per the VM's rules.
type ErrBadAddress struct {
	Addr uint64
}

func (e *ErrBadAddress) Error() string {
	return fmt.Sprintf("machine: bad address: %#x", e.Addr)
}

// Machine is the capability the kernel engine uses to read and write guest register and memory
// state. Every method that touches guest memory may fail with an error wrapping *ErrBadAddress.
type Machine interface {
	// Reg reads a register.
	Reg(r Reg) uint64
	// SetReg writes a register.
	SetReg(r Reg, value uint64)

	ReadU8(addr uint64) (uint8, error)
	ReadU16(addr uint64) (uint16, error)
	ReadU32(addr uint64) (uint32, error)
	ReadU64(addr uint64) (uint64, error)

	WriteU8(addr uint64, v uint8) error
	WriteU16(addr uint64, v uint16) error
	WriteU32(addr uint64, v uint32) error
	WriteU64(addr uint64, v uint64) error

	// ReadMemory returns a copy of length bytes starting at addr.
	ReadMemory(addr, length uint64) ([]byte, error)
	// ReadMemoryInto fills buf from guest memory starting at addr.
	ReadMemoryInto(addr uint64, buf []byte) error
	// WriteMemory copies data into guest memory starting at addr.
	WriteMemory(addr uint64, data []byte) error

	// ReadCString scans guest memory starting at addr for a NUL byte, returning the bytes before
	// it (excluding the NUL). It fails with *ErrBadAddress if no NUL byte appears within maxLen
	// bytes.
	ReadCString(addr, maxLen uint64) (string, error)
}

// ReadCStringByte is a reusable, byte-at-a-time implementation of Machine.ReadCString, for
// implementations that have no faster way to scan guest memory. It is exported so a Machine
// implementation can embed it as its default and override only where a bulk read is cheaper.
func ReadCStringByte(m Machine, addr, maxLen uint64) (string, error) {
	buf := make([]byte, 0, 64)

	for off := uint64(0); off < maxLen; off++ {
		b, err := m.ReadU8(addr + off)
		if err != nil {
			return "", err
		}

		if b == 0 {
			return string(buf), nil
		}

		buf = append(buf, b)
	}

	return "", &ErrBadAddress{Addr: addr}
}
