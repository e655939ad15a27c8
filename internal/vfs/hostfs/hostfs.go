// Package hostfs is a FileSystem backend that serves guest paths from the real, host filesystem
// rooted at a configured directory. Stat and directory-entry metadata are read with
// golang.org/x/sys/unix, the way gvisor's host filesystem implementation does it.
package hostfs

import (
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/smoynes/rvsys/internal/abi"
	"github.com/smoynes/rvsys/internal/kernelerr"
	"github.com/smoynes/rvsys/internal/vfs"
)

// FS serves guest paths relative to Root on the host filesystem.
type FS struct {
	// Root is the host directory guest paths are resolved under. A guest path is joined to Root
	// after normalisation; hostfs never allows escaping Root via "..".
	Root string
}

// New returns a backend rooted at root.
func New(root string) *FS {
	return &FS{Root: root}
}

func (fs *FS) resolve(path string) string {
	normal := vfs.NormalisePath(path)

	return filepath.Join(fs.Root, filepath.Clean("/"+normal))
}

// fileFd wraps an open regular file.
type fileFd struct {
	file *os.File
}

// dirFd wraps an open directory, queued for ReadDir.
type dirFd struct {
	file    *os.File
	entries []os.DirEntry
	index   int
}

// Open opens path on the host. When flags carries O_DIRECTORY, the result only supports ReadDir;
// otherwise it only supports Seek/Read.
func (fs *FS) Open(path string, flags uint64) (vfs.Fd, error) {
	hostPath := fs.resolve(path)

	file, err := os.Open(hostPath)
	if err != nil {
		return nil, kernelerr.FromIOError(err)
	}

	if flags&abi.ODIRECTORY != 0 {
		entries, err := file.ReadDir(-1)
		if err != nil {
			file.Close()

			return nil, kernelerr.FromIOError(err)
		}

		return &dirFd{file: file, entries: entries}, nil
	}

	return &fileFd{file: file}, nil
}

// Seek repositions a regular file fd. Directory fds do not support Seek.
func (fs *FS) Seek(handle vfs.Fd, from vfs.SeekFrom) (uint64, error) {
	f, ok := handle.(*fileFd)
	if !ok {
		return 0, kernelerr.New(abi.EISDIR)
	}

	info, err := f.file.Stat()
	if err != nil {
		return 0, kernelerr.FromIOError(err)
	}

	current, err := f.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, kernelerr.FromIOError(err)
	}

	target := from.Resolve(uint64(current), uint64(info.Size()))

	pos, err := f.file.Seek(int64(target), io.SeekStart)
	if err != nil {
		return 0, kernelerr.FromIOError(err)
	}

	return uint64(pos), nil
}

// Read reads from a regular file fd. Directory fds do not support Read.
func (fs *FS) Read(handle vfs.Fd, buf []byte) (int, error) {
	f, ok := handle.(*fileFd)
	if !ok {
		return 0, kernelerr.New(abi.EISDIR)
	}

	n, err := f.file.Read(buf)
	if err != nil && err != io.EOF {
		return n, kernelerr.FromIOError(err)
	}

	return n, nil
}

// ReadDir packs entries from a directory fd via vfs.WriteDirEntry. Regular file fds do not
// support ReadDir.
func (fs *FS) ReadDir(handle vfs.Fd, buf []byte) (int, error) {
	d, ok := handle.(*dirFd)
	if !ok {
		return 0, kernelerr.New(abi.ENOTDIR)
	}

	var written int

	for d.index < len(d.entries) {
		name := d.entries[d.index].Name()

		var st unix.Stat_t

		var ino uint64
		if err := unix.Lstat(filepath.Join(d.file.Name(), name), &st); err == nil {
			ino = st.Ino
		}

		n, err := vfs.WriteDirEntry(ino, name, buf[written:])
		if err != nil {
			if written == 0 {
				return 0, kernelerr.New(abi.EINVAL)
			}

			break
		}

		written += n
		d.index++
	}

	return written, nil
}

// Metadata stats path on the host, via unix.Stat for the fields Linux's stat(2) exposes.
func (fs *FS) Metadata(path string) (vfs.Metadata, error) {
	hostPath := fs.resolve(path)

	var st unix.Stat_t
	if err := unix.Stat(hostPath, &st); err != nil {
		return vfs.Metadata{}, kernelerr.FromIOError(err)
	}

	return vfs.Metadata{
		ID:        st.Ino,
		Size:      uint64(st.Size),
		Mode:      st.Mode,
		BlockSize: uint64(st.Blksize),
	}, nil
}

var _ vfs.FileSystem = (*FS)(nil)
