// Package memfs is an in-memory FileSystem backend: a fixed, sorted table of normalised path to
// immutable byte blob, seeded once at construction. It never supports directories.
package memfs

import (
	"sort"

	"github.com/smoynes/rvsys/internal/abi"
	"github.com/smoynes/rvsys/internal/kernelerr"
	"github.com/smoynes/rvsys/internal/vfs"
)

// entry is one seeded file: a normalised path and its immutable contents.
type entry struct {
	path string
	blob []byte
}

// FS is a read-only, in-memory FileSystem. The zero value has no files; use New to seed one.
type FS struct {
	entries []entry
}

// New builds an FS seeded from files, a map of guest path to file contents. Paths are normalised
// at construction, matching how the guest will address them.
func New(files map[string][]byte) *FS {
	fs := &FS{entries: make([]entry, 0, len(files))}

	for path, blob := range files {
		fs.entries = append(fs.entries, entry{path: vfs.NormalisePath(path), blob: blob})
	}

	sort.Slice(fs.entries, func(i, j int) bool { return fs.entries[i].path < fs.entries[j].path })

	return fs
}

func (fs *FS) find(path string) (entry, bool) {
	path = vfs.NormalisePath(path)

	i := sort.Search(len(fs.entries), func(i int) bool { return fs.entries[i].path >= path })
	if i < len(fs.entries) && fs.entries[i].path == path {
		return fs.entries[i], true
	}

	return entry{}, false
}

// fd is a cursor into a seeded blob.
type fd struct {
	position uint64
	blob     []byte
}

// Open resolves path to its seeded blob. flags is accepted but unused: memfs is always read-only,
// and the engine has already rejected write-intent opens before calling Open.
func (fs *FS) Open(path string, flags uint64) (vfs.Fd, error) {
	e, ok := fs.find(path)
	if !ok {
		return nil, kernelerr.ErrNotFound
	}

	return &fd{blob: e.blob}, nil
}

func (fs *FS) asFd(handle vfs.Fd) (*fd, error) {
	f, ok := handle.(*fd)
	if !ok {
		return nil, kernelerr.New(abi.EBADF)
	}

	return f, nil
}

// Seek repositions handle per from, clamping current/end anchored seeks to the blob size.
func (fs *FS) Seek(handle vfs.Fd, from vfs.SeekFrom) (uint64, error) {
	f, err := fs.asFd(handle)
	if err != nil {
		return 0, err
	}

	f.position = from.Resolve(f.position, uint64(len(f.blob)))

	return f.position, nil
}

// Read fills buf from handle's current position and advances it.
func (fs *FS) Read(handle vfs.Fd, buf []byte) (int, error) {
	f, err := fs.asFd(handle)
	if err != nil {
		return 0, err
	}

	size := uint64(len(f.blob))
	if f.position >= size {
		return 0, nil
	}

	end := f.position + uint64(len(buf))
	if end > size {
		end = size
	}

	n := copy(buf, f.blob[f.position:end])
	f.position += uint64(n)

	return n, nil
}

// ReadDir always fails: memfs has no directory hierarchy, matching the original implementation's
// flat, pre-seeded file table.
func (fs *FS) ReadDir(handle vfs.Fd, buf []byte) (int, error) {
	return 0, kernelerr.New(abi.ENOSYS)
}

// Metadata returns the seeded blob's size as Size. ID is always 1 and Mode is always a regular
// file with permissions 0644, whatever the path; BlockSize is the page size.
func (fs *FS) Metadata(path string) (vfs.Metadata, error) {
	e, ok := fs.find(path)
	if !ok {
		return vfs.Metadata{}, kernelerr.ErrNotFound
	}

	return vfs.Metadata{
		ID:        1,
		Size:      uint64(len(e.blob)),
		Mode:      0o100644,
		BlockSize: abi.Pagesz,
	}, nil
}

var _ vfs.FileSystem = (*FS)(nil)
