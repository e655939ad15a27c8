package kernel

import (
	"github.com/smoynes/rvsys/internal/abi"
	"github.com/smoynes/rvsys/internal/debugnames"
	"github.com/smoynes/rvsys/internal/kernelerr"
	"github.com/smoynes/rvsys/internal/machine"
	"github.com/smoynes/rvsys/internal/vfs"
)

// stdinFd, stdoutFd, stderrFd are the reserved descriptor numbers; never inserted into State.
const (
	stdinFd  = 0
	stdoutFd = 1
	stderrFd = 2
)

// Dispatch reads the syscall number and its arguments from A0..A5, runs the matching handler, and
// encodes the result back into A0. It returns Continue unless the guest has terminated.
func (k *Kernel) Dispatch() Outcome {
	m := k.Context.Machine

	number := m.Reg(machine.A0)
	a1 := m.Reg(machine.A1)
	a2 := m.Reg(machine.A2)
	a3 := m.Reg(machine.A3)
	a4 := m.Reg(machine.A4)
	a5 := m.Reg(machine.A5)

	switch number {
	case abi.SysExit, abi.SysExitGroup:
		code := uint8(a1 & 0xff)
		k.log.Info("syscall exit", "name", debugnames.Syscall(number), "status", code)

		return Exit(code)

	case abi.SysTkill:
		outcome, result, err := k.sysTkill(a1, a2)
		if outcome.exit {
			return outcome
		}

		m.SetReg(machine.A0, kernelerr.Encode(result, err))

		return Continue
	}

	var (
		result uint64
		err    error
	)

	switch number {
	case abi.SysGetcwd:
		result, err = k.sysGetcwd(a1, a2)
	case abi.SysFcntl:
		result, err = k.sysFcntl(a1, a2, a3)
	case abi.SysIoctl:
		result, err = k.sysIoctl(a1, a2, a3)
	case abi.SysFaccessat:
		result, err = k.sysFaccessat(a1, a2, a3, a4)
	case abi.SysOpenat:
		result, err = k.sysOpenat(a1, a2, a3)
	case abi.SysClose:
		result, err = k.sysClose(a1)
	case abi.SysGetdents64:
		result, err = k.sysGetdents64(a1, a2, a3)
	case abi.SysLseek:
		result, err = k.sysLseek(a1, a2, a3)
	case abi.SysRead:
		result, err = k.sysRead(a1, a2, a3)
	case abi.SysWrite:
		result, err = k.sysWrite(a1, a2, a3)
	case abi.SysReadv:
		result, err = k.sysReadv(a1, a2, a3)
	case abi.SysWritev:
		result, err = k.sysWritev(a1, a2, a3)
	case abi.SysPpoll:
		result, err = 0, nil
	case abi.SysNewfstatat:
		result, err = k.sysNewfstatat(a1, a2, a3, a4)
	case abi.SysSync:
		result, err = 0, nil
	case abi.SysSetTidAddress:
		result, err = k.sysSetTidAddress(a1)
	case abi.SysClockGettime:
		result, err = k.sysClockGettime(a1, a2)
	case abi.SysRtSigaction:
		result, err = 0, nil
	case abi.SysRtSigprocmask:
		k.log.Debug("rt_sigprocmask", "how", debugnames.SigMaskHow(uint8(a1)))

		result, err = 0, nil
	case abi.SysSetgid:
		result, err = k.sysSetgid(a1)
	case abi.SysSetuid:
		result, err = k.sysSetuid(a1)
	case abi.SysGetgroups:
		result, err = k.sysGetgroups(a1, a2)
	case abi.SysUname:
		result, err = k.sysUname(a1)
	case abi.SysGetuid:
		result, err = uint64(k.uid), nil
	case abi.SysGeteuid:
		result, err = uint64(k.uid), nil
	case abi.SysGetgid:
		result, err = uint64(k.gid), nil
	case abi.SysGetegid:
		result, err = uint64(k.gid), nil
	default:
		k.log.Debug("unimplemented syscall", "number", number, "name", debugnames.Syscall(number),
			"a1", a1, "a2", a2, "a3", a3, "a4", a4, "a5", a5)

		result, err = 0, kernelerr.New(abi.ENOSYS)
	}

	k.log.Debug("syscall", "name", debugnames.Syscall(number), "result", result, "err", err)

	m.SetReg(machine.A0, kernelerr.Encode(result, err))

	return Continue
}

// asFault folds any error from the Machine layer into EFAULT, per spec §7: address-translation
// failures are a distinct kind at the Machine layer that always cross into the engine as EFAULT.
func asFault(err error) error {
	if err == nil {
		return nil
	}

	return kernelerr.ErrFault
}

func (k *Kernel) sysGetcwd(buf, size uint64) (uint64, error) {
	if size < 2 {
		return 0, kernelerr.ErrRange
	}

	if err := k.Context.WriteMemory(buf, []byte("/\x00")); err != nil {
		return 0, asFault(err)
	}

	return buf, nil
}

func (k *Kernel) sysFcntl(fdNum, op, arg uint64) (uint64, error) {
	if _, ok := k.resolveFd(fdNum); !ok {
		return 0, kernelerr.ErrBadFD
	}

	if op == abi.FSetFD && arg == abi.FDCLOEXEC {
		return 0, nil
	}

	return 0, kernelerr.New(abi.ENOSYS)
}

func (k *Kernel) sysIoctl(fdNum, op, arg uint64) (uint64, error) {
	if op != abi.TIOCGWINSZ {
		return 0, kernelerr.New(abi.ENOSYS)
	}

	ws := abi.Winsize{Row: 25, Col: 80, Xpixel: 0, Ypixel: 0}
	encoded := ws.Encode()

	if err := k.Context.WriteMemory(arg, encoded[:]); err != nil {
		return 0, asFault(err)
	}

	return 0, nil
}

func (k *Kernel) sysFaccessat(dirfd, pathAddr, mode, flags uint64) (uint64, error) {
	k.log.Debug("faccessat", "dirfd", debugnames.DirFd(int32(dirfd)))

	if int64(int32(dirfd)) != abi.AtFDCWD {
		return 0, kernelerr.New(abi.ENOSYS)
	}

	path, err := k.Context.ReadCString(pathAddr, abi.PathMax)
	if err != nil {
		return 0, asFault(err)
	}

	md, err := k.Context.Metadata(path)
	if err != nil {
		return 0, err
	}

	if uint64(md.Mode)&mode != mode {
		return 0, kernelerr.ErrAccess
	}

	return 0, nil
}

func (k *Kernel) sysOpenat(dirfd, pathAddr, flags uint64) (uint64, error) {
	k.log.Debug("openat", "dirfd", debugnames.DirFd(int32(dirfd)))

	if int64(int32(dirfd)) != abi.AtFDCWD {
		return 0, kernelerr.New(abi.ENOSYS)
	}

	path, err := k.Context.ReadCString(pathAddr, abi.PathMax)
	if err != nil {
		return 0, asFault(err)
	}

	if flags&(abi.OWRONLY|abi.ORDWR) != 0 {
		return 0, kernelerr.ErrAccess
	}

	fd, err := k.Context.Open(path, flags)
	if err != nil {
		return 0, err
	}

	return k.State.allocate(fd), nil
}

func (k *Kernel) sysClose(fdNum uint64) (uint64, error) {
	if !k.State.close(fdNum) {
		return 0, kernelerr.ErrBadFD
	}

	return 0, nil
}

func (k *Kernel) sysGetdents64(fdNum, buf, size uint64) (uint64, error) {
	fd, ok := k.resolveFd(fdNum)
	if !ok {
		return 0, kernelerr.ErrBadFD
	}

	bufLen, err := checkRange(buf, size)
	if err != nil {
		return 0, err
	}

	scratch := make([]byte, bufLen)

	var written int

	for written < len(scratch) {
		n, err := k.Context.ReadDir(fd, scratch[written:])
		if err != nil {
			// A backend reports failure (e.g. the next entry doesn't fit the remaining
			// buffer) once bytes from earlier entries are already in scratch; that's EOF
			// for this call, not a whole-syscall failure. Only propagate the error if
			// nothing has been written yet this syscall.
			if written == 0 {
				return 0, err
			}

			break
		}

		if n == 0 {
			break
		}

		written += n
	}

	if err := k.Context.WriteMemory(buf, scratch[:written]); err != nil {
		return 0, asFault(err)
	}

	return uint64(written), nil
}

func (k *Kernel) sysLseek(fdNum, offset, whence uint64) (uint64, error) {
	fd, ok := k.resolveFd(fdNum)
	if !ok {
		return 0, kernelerr.ErrBadFD
	}

	var from vfs.SeekFrom

	switch whence {
	case abi.SeekSet:
		from = vfs.SeekStart(offset)
	case abi.SeekCur:
		from = vfs.SeekCurrent(int64(offset))
	case abi.SeekEnd:
		from = vfs.SeekEnd(int64(offset))
	default:
		return 0, kernelerr.ErrInvalid
	}

	return k.Context.Seek(fd, from)
}

// checkRange validates the [addr, addr+length) range per spec §3: it must not overflow, and must
// fit in the VM's 32-bit address space.
func checkRange(addr, length uint64) (uint64, error) {
	sum := addr + length
	if sum < addr || sum > 0xffffffff {
		return 0, kernelerr.ErrFault
	}

	return length, nil
}

func (k *Kernel) sysRead(fdNum, addr, length uint64) (uint64, error) {
	fd, ok := k.resolveFd(fdNum)
	if !ok {
		return 0, kernelerr.ErrBadFD
	}

	bufLen, err := checkRange(addr, length)
	if err != nil {
		return 0, err
	}

	buf := make([]byte, bufLen)

	n, err := k.Context.Read(fd, buf)
	if err != nil {
		return 0, err
	}

	if err := k.Context.WriteMemory(addr, buf[:n]); err != nil {
		return 0, asFault(err)
	}

	return uint64(n), nil
}

func (k *Kernel) sysReadv(fdNum, iov, iovcnt uint64) (uint64, error) {
	if iovcnt == 0 || iovcnt > abi.IOVMax {
		return 0, kernelerr.ErrInvalid
	}

	var total uint64

	for n := uint64(0); n < iovcnt; n++ {
		addr, err := k.Context.ReadU64(iov + n*16)
		if err != nil {
			return 0, asFault(err)
		}

		length, err := k.Context.ReadU64(iov + n*16 + 8)
		if err != nil {
			return 0, asFault(err)
		}

		if _, err := k.sysRead(fdNum, addr, length); err != nil {
			return 0, err
		}

		total += length
	}

	return total, nil
}

func (k *Kernel) sysWrite(fdNum, addr, length uint64) (uint64, error) {
	if fdNum != stdoutFd && fdNum != stderrFd {
		if _, ok := k.resolveFd(fdNum); !ok {
			return 0, kernelerr.ErrBadFD
		}
	}

	if _, err := checkRange(addr, length); err != nil {
		return 0, err
	}

	data, err := k.Context.ReadMemory(addr, length)
	if err != nil {
		return 0, asFault(err)
	}

	switch fdNum {
	case stdoutFd:
		return k.Context.WriteToStdout(data)
	case stderrFd:
		return k.Context.WriteToStderr(data)
	default:
		// The fd exists but this engine has no writable FileSystem target. Preserve the
		// two-step validate-then-refuse behaviour verbatim; do not synthesise a write path.
		return 0, kernelerr.New(abi.ENOSYS)
	}
}

func (k *Kernel) sysWritev(fdNum, iov, iovcnt uint64) (uint64, error) {
	if iovcnt == 0 || iovcnt > abi.IOVMax {
		return 0, kernelerr.ErrInvalid
	}

	var total uint64

	for n := uint64(0); n < iovcnt; n++ {
		addr, err := k.Context.ReadU64(iov + n*16)
		if err != nil {
			return 0, asFault(err)
		}

		length, err := k.Context.ReadU64(iov + n*16 + 8)
		if err != nil {
			return 0, asFault(err)
		}

		if _, err := k.sysWrite(fdNum, addr, length); err != nil {
			return 0, err
		}

		total += length
	}

	return total, nil
}

func (k *Kernel) sysNewfstatat(dirfd, pathAddr, buf, flags uint64) (uint64, error) {
	k.log.Debug("newfstatat", "dirfd", debugnames.DirFd(int32(dirfd)))

	if int64(int32(dirfd)) != abi.AtFDCWD {
		return 0, kernelerr.New(abi.ENOSYS)
	}

	path, err := k.Context.ReadCString(pathAddr, abi.PathMax)
	if err != nil {
		return 0, asFault(err)
	}

	md, err := k.Context.Metadata(path)
	if err != nil {
		return 0, err
	}

	st := abi.Stat{
		Ino:     md.ID,
		Mode:    md.Mode,
		Nlink:   1,
		Size:    int64(md.Size),
		Blksize: int32(md.BlockSize),
		Blocks:  int64((md.Size + 511) / 512),
	}

	encoded := st.Encode()

	if err := k.Context.WriteMemory(buf, encoded[:]); err != nil {
		return 0, asFault(err)
	}

	return 0, nil
}

func (k *Kernel) sysSetTidAddress(addr uint64) (uint64, error) {
	if addr != 0 {
		if err := k.Context.WriteU32(addr, abi.ThreadID); err != nil {
			return 0, asFault(err)
		}
	}

	return abi.ThreadID, nil
}

func (k *Kernel) sysClockGettime(clockID, buf uint64) (uint64, error) {
	if buf == 0 {
		return 0, kernelerr.ErrFault
	}

	var encoded [abi.TimespecSize]byte // timespec{0, 0}: all bytes zero.

	if err := k.Context.WriteMemory(buf, encoded[:]); err != nil {
		return 0, asFault(err)
	}

	return 0, nil
}

// sysTkill returns Exit(sig) itself (rather than an (result, error) pair) because a self-directed
// kill terminates the dispatcher, same as exit.
func (k *Kernel) sysTkill(pid, sig uint64) (Outcome, uint64, error) {
	if pid == 0 && sig != 0 {
		k.log.Info("tkill self-directed", "signal", debugnames.Signal(uint8(sig&0xff)))

		return Exit(uint8(sig & 0xff)), 0, nil
	}

	if pid == 0 && sig == 0 {
		return Continue, 0, nil
	}

	return Continue, 0, kernelerr.New(abi.ENOSYS)
}

func (k *Kernel) sysSetgid(gid uint64) (uint64, error) {
	if uint32(gid) == k.gid {
		return 0, nil
	}

	return 0, kernelerr.New(abi.ENOSYS)
}

func (k *Kernel) sysSetuid(uid uint64) (uint64, error) {
	if uint32(uid) == k.uid {
		return 0, nil
	}

	return 0, kernelerr.New(abi.ENOSYS)
}

func (k *Kernel) sysGetgroups(size, list uint64) (uint64, error) {
	if size == 0 {
		return 1, nil
	}

	if err := k.Context.WriteU32(list, k.gid); err != nil {
		return 0, asFault(err)
	}

	return 1, nil
}

func (k *Kernel) sysUname(buf uint64) (uint64, error) {
	if buf == 0 {
		return 0, kernelerr.ErrFault
	}

	u := abi.Utsname{
		Sysname:  "Linux",
		Nodename: "node",
		Release:  "6.15.0",
		Version:  "rvsys-0",
		Machine:  "riscv64emac",
	}

	encoded := u.Encode()

	if err := k.Context.WriteMemory(buf, encoded[:]); err != nil {
		return 0, asFault(err)
	}

	return 0, nil
}

// resolveFd looks up a descriptor number in the table. Reserved numbers (0, 1, 2) are never in
// the table and always fail here; callers that accept them (write) check explicitly first.
func (k *Kernel) resolveFd(fdNum uint64) (vfs.Fd, bool) {
	return k.State.get(fdNum)
}
