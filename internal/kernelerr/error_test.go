package kernelerr_test

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/smoynes/rvsys/internal/abi"
	"github.com/smoynes/rvsys/internal/kernelerr"
)

func TestEncode_roundTrip(tt *testing.T) {
	tt.Parallel()

	for _, errno := range []uint32{
		abi.EACCES, abi.EBADF, abi.EFAULT, abi.EINVAL, abi.EIO,
		abi.ENOENT, abi.ENOSYS, abi.EISDIR, abi.ENOTDIR, abi.ERANGE,
	} {
		errno := errno

		tt.Run(kernelerr.New(errno).Error(), func(tt *testing.T) {
			tt.Parallel()

			a0 := kernelerr.Encode(0, kernelerr.New(errno))
			got := -int64(a0)

			if got != int64(errno) {
				tt.Errorf("Encode: got -A0 = %d, want %d", got, errno)
			}
		})
	}
}

func TestEncode_success(tt *testing.T) {
	tt.Parallel()

	a0 := kernelerr.Encode(42, nil)
	if a0 != 42 {
		tt.Errorf("Encode: got %d, want 42", a0)
	}
}

func TestFromIOError(tt *testing.T) {
	tt.Parallel()

	cases := []struct {
		name string
		err  error
		want kernelerr.Error
	}{
		{"not exist", fs.ErrNotExist, kernelerr.ErrNotFound},
		{"permission", fs.ErrPermission, kernelerr.ErrAccess},
		{"unsupported", errors.ErrUnsupported, kernelerr.ErrNoSys},
		{"other", fmt.Errorf("weird"), kernelerr.ErrInvalid},
		{
			"wrapped path error",
			&fs.PathError{Op: "open", Path: "/x", Err: fs.ErrNotExist},
			kernelerr.ErrNotFound,
		},
		{
			"wrapped link error",
			&os.LinkError{Op: "link", Old: "a", New: "b", Err: fs.ErrPermission},
			kernelerr.ErrAccess,
		},
	}

	for _, c := range cases {
		c := c

		tt.Run(c.name, func(tt *testing.T) {
			tt.Parallel()

			got := kernelerr.FromIOError(c.err)
			if got != c.want {
				tt.Errorf("FromIOError(%v) = %v, want %v", c.err, got, c.want)
			}
		})
	}
}

func TestError_is(tt *testing.T) {
	tt.Parallel()

	err := fmt.Errorf("wrap: %w", kernelerr.ErrNotFound)

	if !errors.Is(err, kernelerr.ErrNotFound) {
		tt.Error("errors.Is: want true")
	}

	if errors.Is(err, kernelerr.ErrBadFD) {
		tt.Error("errors.Is: want false")
	}
}
