package kernel

import "github.com/smoynes/rvsys/internal/vfs"

// State is the kernel's descriptor table: the mapping from guest-visible descriptor numbers to
// the Fd each backend returned from Open, plus the cursor that makes allocation monotonic. It is
// a plain value, separate from Kernel itself, so a caller can snapshot and restore it.
type State struct {
	fds          map[uint64]vfs.Fd
	highWater    uint64
	highWaterSet bool
}

// NewState returns an empty descriptor table.
func NewState() *State {
	return &State{fds: make(map[uint64]vfs.Fd)}
}

// reservedFds are never inserted into the table: 0 (stdin), 1 (stdout), 2 (stderr).
const reservedFds = 2

func (s *State) allocate(fd vfs.Fd) uint64 {
	if !s.highWaterSet {
		var max uint64

		for num := range s.fds {
			if num > max {
				max = num
			}
		}

		s.highWater = max
		s.highWaterSet = true
	}

	s.highWater++
	num := reservedFds + s.highWater
	s.fds[num] = fd

	return num
}

func (s *State) get(num uint64) (vfs.Fd, bool) {
	fd, ok := s.fds[num]

	return fd, ok
}

func (s *State) close(num uint64) bool {
	if _, ok := s.fds[num]; !ok {
		return false
	}

	delete(s.fds, num)

	return true
}

// Snapshot returns a deep copy of the descriptor table's bookkeeping -- the descriptor numbers
// and the allocation cursor -- for checkpointing. The Fd values themselves are copied by
// reference: they remain owned by whatever FileSystem backend produced them.
func (s *State) Snapshot() *State {
	clone := &State{
		fds:          make(map[uint64]vfs.Fd, len(s.fds)),
		highWater:    s.highWater,
		highWaterSet: s.highWaterSet,
	}

	for num, fd := range s.fds {
		clone.fds[num] = fd
	}

	return clone
}

// RestoreFrom replaces s's descriptor table and cursor with a copy of snapshot's.
func (s *State) RestoreFrom(snapshot *State) {
	s.fds = make(map[uint64]vfs.Fd, len(snapshot.fds))
	for num, fd := range snapshot.fds {
		s.fds[num] = fd
	}

	s.highWater = snapshot.highWater
	s.highWaterSet = snapshot.highWaterSet
}
