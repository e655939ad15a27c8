// Package abi holds the numeric catalogue and on-wire layouts of the Linux/riscv64/musl ABI
// subset the kernel engine emulates: syscall numbers, errno values, open/seek/ioctl flags, and the
// byte layouts of stat, timespec, utsname, and winsize records.
//
// Everything here is data, not behavior: constants and fixed-size structs only.
package abi

// Syscall numbers, as used by musl's riscv64 target. See arch/riscv64/bits/syscall.h.in in musl.
const (
	SysGetcwd         = 17
	SysDup3           = 24
	SysFcntl          = 25
	SysIoctl          = 29
	SysFaccessat      = 48
	SysOpenat         = 56
	SysClose          = 57
	SysGetdents64     = 61
	SysLseek          = 62
	SysRead           = 63
	SysWrite          = 64
	SysReadv          = 65
	SysWritev         = 66
	SysPpoll          = 73
	SysNewfstatat     = 79
	SysSync           = 81
	SysExit           = 93
	SysExitGroup      = 94
	SysSetTidAddress  = 96
	SysFutex          = 98
	SysClockGettime   = 113
	SysTkill          = 130
	SysRtSigaction    = 134
	SysRtSigprocmask  = 135
	SysSetgid         = 144
	SysSetuid         = 146
	SysGetgroups      = 158
	SysUname          = 160
	SysGetuid         = 174
	SysGeteuid        = 175
	SysGetgid         = 176
	SysGetegid        = 177
)

// Errno values recognized by the kernel engine. Codes not listed here may still flow through
// kernelerr.Error, but these are the ones the engine and its diagnostics name.
const (
	EIO     = 5
	ENOENT  = 2
	EBADF   = 9
	EACCES  = 13
	EFAULT  = 14
	ENOTDIR = 20
	EISDIR  = 21
	EINVAL  = 22
	ERANGE  = 34
	ENOSYS  = 38
)

// AT_FDCWD is the sentinel dirfd meaning "relative to the current working directory."
const AtFDCWD = -100

// open(2)/openat(2) flags relevant to this emulation.
const (
	ORDONLY    = 0
	OWRONLY    = 1
	ORDWR      = 2
	ODIRECTORY = 0o40000
	OCLOEXEC   = 0o2000000
)

// lseek(2) whence values.
const (
	SeekSet = 0
	SeekCur = 1
	SeekEnd = 2
)

// fcntl(2) operation and flag used by the only supported fcntl call.
const (
	FSetFD    = 2
	FDCLOEXEC = 1
)

// ioctl(2) request codes.
const (
	TIOCGWINSZ = 0x5413
)

// getgroups(2)/setuid(2)/setgid(2) have no flags of their own; omitted.

// IOVMax bounds the number of entries a readv/writev iovec table may contain.
const IOVMax = 1024

// PathMax bounds the length, including the NUL terminator, of a NUL-terminated guest path.
const PathMax = 4096

// AtPagesz is the auxv key for the system page size.
const AtPagesz = 6

// Pagesz is the page size reported via the AT_PAGESZ auxv entry.
const Pagesz = 4096

// ThreadID is the fixed value set_tid_address returns and writes to its pointer argument: this
// emulation never creates more than one thread.
const ThreadID = 1
