package debugnames_test

import (
	"testing"

	"github.com/smoynes/rvsys/internal/abi"
	"github.com/smoynes/rvsys/internal/debugnames"
)

func TestSyscall(tt *testing.T) {
	tt.Parallel()

	if got := debugnames.Syscall(abi.SysWrite); got != "write" {
		tt.Errorf("Syscall(SysWrite) = %q, want %q", got, "write")
	}

	if got := debugnames.Syscall(999); got != "syscall(999)" {
		tt.Errorf("Syscall(999) = %q, want %q", got, "syscall(999)")
	}
}

func TestSignal(tt *testing.T) {
	tt.Parallel()

	if got := debugnames.Signal(9); got != "SIGKILL" {
		tt.Errorf("Signal(9) = %q, want SIGKILL", got)
	}

	if got := debugnames.Signal(200); got != "Signal(200)" {
		tt.Errorf("Signal(200) = %q, want Signal(200)", got)
	}
}

func TestDirFd(tt *testing.T) {
	tt.Parallel()

	if got := debugnames.DirFd(abi.AtFDCWD); got != "AT_FDCWD" {
		tt.Errorf("DirFd(AT_FDCWD) = %q, want AT_FDCWD", got)
	}

	if got := debugnames.DirFd(5); got != "5" {
		tt.Errorf("DirFd(5) = %q, want 5", got)
	}
}

func TestSigMaskHow(tt *testing.T) {
	tt.Parallel()

	if got := debugnames.SigMaskHow(2); got != "SIG_SETMASK" {
		tt.Errorf("SigMaskHow(2) = %q, want SIG_SETMASK", got)
	}

	if got := debugnames.SigMaskHow(9); got != "SigMask(9)" {
		tt.Errorf("SigMaskHow(9) = %q, want SigMask(9)", got)
	}
}
