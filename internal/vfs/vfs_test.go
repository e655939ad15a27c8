package vfs_test

import (
	"testing"

	"github.com/smoynes/rvsys/internal/vfs"
)

func TestNormalisePath(tt *testing.T) {
	tt.Parallel()

	cases := []struct{ in, want string }{
		{"/a/./b/../c", "/a/c"},
		{"", ""},
		{"/", "/"},
		{"a/b/c", "a/b/c"},
		{"/../a", "/a"},
		{"/a//b", "/a/b"},
		{"/etc/hosts", "/etc/hosts"},
	}

	for _, c := range cases {
		c := c

		tt.Run(c.in, func(tt *testing.T) {
			tt.Parallel()

			got := vfs.NormalisePath(c.in)
			if got != c.want {
				tt.Errorf("NormalisePath(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestNormalisePath_idempotent(tt *testing.T) {
	tt.Parallel()

	for _, p := range []string{"/a/./b/../c", "/../../x", "a/b/../../c", "/x/y/z"} {
		once := vfs.NormalisePath(p)
		twice := vfs.NormalisePath(once)

		if once != twice {
			tt.Errorf("NormalisePath not idempotent: %q -> %q -> %q", p, once, twice)
		}
	}
}

func TestSeekFrom_resolve(tt *testing.T) {
	tt.Parallel()

	const size = 20

	cases := []struct {
		name    string
		from    vfs.SeekFrom
		current uint64
		want    uint64
	}{
		{"start absolute", vfs.SeekStart(5), 10, 5},
		{"current forward", vfs.SeekCurrent(3), 10, 13},
		{"current past end clamps", vfs.SeekCurrent(100), 10, size},
		{"end zero", vfs.SeekEnd(0), 0, size},
		{"end negative", vfs.SeekEnd(-5), 0, size - 5},
		{"end past start clamps to zero", vfs.SeekEnd(-100), 0, 0},
	}

	for _, c := range cases {
		c := c

		tt.Run(c.name, func(tt *testing.T) {
			tt.Parallel()

			got := c.from.Resolve(c.current, size)
			if got != c.want {
				tt.Errorf("Resolve() = %d, want %d", got, c.want)
			}
		})
	}
}

func TestWriteDirEntry(tt *testing.T) {
	tt.Parallel()

	buf := make([]byte, 64)

	n, err := vfs.WriteDirEntry(7, "hosts", buf)
	if err != nil {
		tt.Fatalf("WriteDirEntry: %v", err)
	}

	want := vfs.DirEntryLen(len("hosts"))
	if n != want {
		tt.Errorf("n = %d, want %d", n, want)
	}

	// d_reclen is padded to 8 bytes: fixed(19) + "hosts\0"(6) = 25, rounds up to 32.
	if want != 32 {
		tt.Fatalf("DirEntryLen sanity check failed: got %d", want)
	}
}

func TestWriteDirEntry_bufferTooSmall(tt *testing.T) {
	tt.Parallel()

	buf := make([]byte, 4)

	if _, err := vfs.WriteDirEntry(1, "x", buf); err != vfs.ErrBufferTooSmall {
		tt.Errorf("err = %v, want ErrBufferTooSmall", err)
	}
}
