// Package kernelerr defines the kernel engine's single numeric error type, its mapping from host
// I/O failures, and the encoding convention used to return it across the syscall ABI.
package kernelerr

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/smoynes/rvsys/internal/abi"
)

// Error wraps a positive Linux errno code. It is the only error type the kernel engine returns
// from a syscall handler.
type Error struct {
	Errno uint32
}

// New wraps an errno code as an Error.
func New(errno uint32) Error {
	return Error{Errno: errno}
}

var names = map[uint32]string{
	abi.EACCES:  "EACCES",
	abi.EBADF:   "EBADF",
	abi.EFAULT:  "EFAULT",
	abi.EINVAL:  "EINVAL",
	abi.EIO:     "EIO",
	abi.ENOENT:  "ENOENT",
	abi.ENOSYS:  "ENOSYS",
	abi.EISDIR:  "EISDIR",
	abi.ENOTDIR: "ENOTDIR",
	abi.ERANGE:  "ERANGE",
}

func (e Error) Error() string {
	if name, ok := names[e.Errno]; ok {
		return name
	}

	return fmt.Sprintf("errno %d", e.Errno)
}

// Is reports whether target is a kernelerr.Error with the same errno, so callers can write
// errors.Is(err, kernelerr.New(abi.ENOENT)).
func (e Error) Is(target error) bool {
	var other Error
	if errors.As(target, &other) {
		return other.Errno == e.Errno
	}

	return false
}

// Well-known errors, for use with errors.Is and as return values.
var (
	ErrAccess   = Error{abi.EACCES}
	ErrBadFD    = Error{abi.EBADF}
	ErrFault    = Error{abi.EFAULT}
	ErrInvalid  = Error{abi.EINVAL}
	ErrIO       = Error{abi.EIO}
	ErrNotFound = Error{abi.ENOENT}
	ErrNoSys    = Error{abi.ENOSYS}
	ErrIsDir    = Error{abi.EISDIR}
	ErrNotDir   = Error{abi.ENOTDIR}
	ErrRange    = Error{abi.ERANGE}
)

// FromIOError classifies a host I/O error into the closest Linux errno, per the table in spec §4.4:
// InvalidData/InvalidInput -> EINVAL, NotFound -> ENOENT, PermissionDenied -> EACCES,
// Unsupported -> ENOSYS, anything else -> EINVAL.
func FromIOError(err error) Error {
	switch {
	case err == nil:
		return Error{}
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrAccess
	case errors.Is(err, errors.ErrUnsupported):
		return ErrNoSys
	default:
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return FromIOError(pathErr.Err)
		}

		var linkErr *os.LinkError
		if errors.As(err, &linkErr) {
			return FromIOError(linkErr.Err)
		}

		return ErrInvalid
	}
}

// Encode performs the two's-complement negation of the errno that the syscall ABI expects in A0
// on failure. A nil error encodes to value, the syscall's non-negative success result.
func Encode(value uint64, err error) uint64 {
	if err == nil {
		return value
	}

	var kerr Error
	if errors.As(err, &kerr) {
		return uint64(-int64(kerr.Errno))
	}

	// Anything that isn't already a kernelerr.Error is an engine bug, not a guest-visible
	// condition; surface it as EIO rather than panic mid-dispatch.
	return uint64(-int64(ErrIO.Errno))
}
