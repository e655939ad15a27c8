package vfs

import (
	"encoding/binary"
	"errors"
)

// direntFixedSize is the size, in bytes, of a directory entry's fixed-width fields: d_ino(8) +
// d_off(8) + d_reclen(2) + d_type(1), before the NUL-terminated name and its padding.
const direntFixedSize = 8 + 8 + 2 + 1

// ErrNameTooLong is returned by WriteDirEntry when the padded entry length would overflow uint16.
var ErrNameTooLong = errors.New("vfs: directory entry name too long")

// ErrBufferTooSmall is returned by WriteDirEntry when buf has no room for the entry.
var ErrBufferTooSmall = errors.New("vfs: buffer too small for directory entry")

// DirEntryLen returns the padded, 8-byte-aligned total length of a directory entry for a name of
// nameLen bytes (not including the NUL terminator).
func DirEntryLen(nameLen int) int {
	raw := direntFixedSize + nameLen + 1 // +1 for the NUL terminator.

	return (raw + 7) &^ 7
}

// WriteDirEntry packs one getdents64 entry -- d_ino, d_off (always 0), d_reclen, d_type (always
// 0), then the NUL-terminated name padded to the next 8-byte boundary -- into buf, per spec §6. It
// returns the number of bytes written.
func WriteDirEntry(ino uint64, name string, buf []byte) (int, error) {
	entryLen := DirEntryLen(len(name))

	if entryLen > 0xffff {
		return 0, ErrNameTooLong
	}

	if entryLen > len(buf) {
		return 0, ErrBufferTooSmall
	}

	binary.LittleEndian.PutUint64(buf[0:8], ino)
	binary.LittleEndian.PutUint64(buf[8:16], 0) // d_off.
	binary.LittleEndian.PutUint16(buf[16:18], uint16(entryLen))
	buf[18] = 0 // d_type: unknown.

	n := copy(buf[19:], name)
	buf[19+n] = 0 // NUL terminator.

	for i := 19 + n + 1; i < entryLen; i++ {
		buf[i] = 0
	}

	return entryLen, nil
}
