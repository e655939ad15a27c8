// Package debugnames turns the raw numeric values the kernel engine traces -- syscall numbers,
// signal numbers, dirfd sentinels, sigprocmask "how" codes -- into the symbolic names a human
// reads in a log line, falling back to the bare number for anything unrecognized.
package debugnames

import (
	"fmt"

	"github.com/smoynes/rvsys/internal/abi"
)

var syscallNames = map[uint64]string{
	abi.SysGetcwd:        "getcwd",
	abi.SysDup3:          "dup3",
	abi.SysFcntl:         "fcntl",
	abi.SysIoctl:         "ioctl",
	abi.SysFaccessat:     "faccessat",
	abi.SysOpenat:        "openat",
	abi.SysClose:         "close",
	abi.SysGetdents64:    "getdents64",
	abi.SysLseek:         "lseek",
	abi.SysRead:          "read",
	abi.SysWrite:         "write",
	abi.SysReadv:         "readv",
	abi.SysWritev:        "writev",
	abi.SysPpoll:         "ppoll",
	abi.SysNewfstatat:    "newfstatat",
	abi.SysSync:          "sync",
	abi.SysExit:          "exit",
	abi.SysExitGroup:     "exit_group",
	abi.SysSetTidAddress: "set_tid_address",
	abi.SysFutex:         "futex",
	abi.SysClockGettime:  "clock_gettime",
	abi.SysTkill:         "tkill",
	abi.SysRtSigaction:   "rt_sigaction",
	abi.SysRtSigprocmask: "rt_sigprocmask",
	abi.SysSetgid:        "setgid",
	abi.SysSetuid:        "setuid",
	abi.SysGetgroups:     "getgroups",
	abi.SysUname:         "uname",
	abi.SysGetuid:        "getuid",
	abi.SysGeteuid:       "geteuid",
	abi.SysGetgid:        "getgid",
	abi.SysGetegid:       "getegid",
}

// Syscall returns the musl/riscv64 syscall name for num, or "syscall(num)" if it is not one this
// engine recognizes.
func Syscall(num uint64) string {
	if name, ok := syscallNames[num]; ok {
		return name
	}

	return fmt.Sprintf("syscall(%d)", num)
}

var signalNames = map[uint8]string{
	1: "SIGHUP", 2: "SIGINT", 3: "SIGQUIT", 4: "SIGILL", 5: "SIGTRAP", 6: "SIGABRT",
	7: "SIGBUS", 8: "SIGFPE", 9: "SIGKILL", 10: "SIGUSR1", 11: "SIGSEGV", 12: "SIGUSR2",
	13: "SIGPIPE", 14: "SIGALRM", 15: "SIGTERM", 16: "SIGSTKFLT", 17: "SIGCHLD", 18: "SIGCONT",
	19: "SIGSTOP", 20: "SIGTSTP", 21: "SIGTTIN", 22: "SIGTTOU", 23: "SIGURG", 24: "SIGXCPU",
	25: "SIGXFSZ", 26: "SIGVTALRM", 27: "SIGPROF", 28: "SIGWINCH", 29: "SIGIO", 30: "SIGPWR",
	31: "SIGSYS",
}

// Signal names a signal number, or "Signal(n)" if unrecognized.
func Signal(num uint8) string {
	if name, ok := signalNames[num]; ok {
		return name
	}

	return fmt.Sprintf("Signal(%d)", num)
}

// DirFd names a dirfd argument, special-casing AT_FDCWD the way openat(2) callers expect to read
// it in a trace.
func DirFd(fd int32) string {
	if fd == abi.AtFDCWD {
		return "AT_FDCWD"
	}

	return fmt.Sprintf("%d", fd)
}

var sigMaskHowNames = map[uint8]string{
	0: "SIG_BLOCK",
	1: "SIG_UNBLOCK",
	2: "SIG_SETMASK",
}

// SigMaskHow names an rt_sigprocmask "how" argument, or "SigMask(n)" if unrecognized.
func SigMaskHow(how uint8) string {
	if name, ok := sigMaskHowNames[how]; ok {
		return name
	}

	return fmt.Sprintf("SigMask(%d)", how)
}
