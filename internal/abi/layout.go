package abi

import "encoding/binary"

// StatSize is the size in bytes of the packed, little-endian riscv64 stat record.
const StatSize = 128

// Timespec is {tv_sec, tv_nsec}, two signed 64-bit words.
type Timespec struct {
	Sec  int64
	Nsec int64
}

func (t Timespec) put(b []byte) {
	binary.LittleEndian.PutUint64(b[0:8], uint64(t.Sec))
	binary.LittleEndian.PutUint64(b[8:16], uint64(t.Nsec))
}

// Stat mirrors musl's riscv64 struct stat. Field offsets follow the layout in spec §6:
//
//	st_dev(u64) st_ino(u64) st_mode(u32) st_nlink(u32) st_uid(u32) st_gid(u32) st_rdev(u64)
//	_pad(u64) st_size(i64) st_blksize(i32) _pad2(i32) st_blocks(i64)
//	st_atim(timespec) st_mtim(timespec) st_ctim(timespec) _unused[2](u32)
type Stat struct {
	Dev     uint64
	Ino     uint64
	Mode    uint32
	Nlink   uint32
	UID     uint32
	GID     uint32
	Rdev    uint64
	Size    int64
	Blksize int32
	Blocks  int64
	Atim    Timespec
	Mtim    Timespec
	Ctim    Timespec
}

// Encode packs the stat record into its 128-byte wire layout.
func (s Stat) Encode() [StatSize]byte {
	var b [StatSize]byte

	binary.LittleEndian.PutUint64(b[0:8], s.Dev)
	binary.LittleEndian.PutUint64(b[8:16], s.Ino)
	binary.LittleEndian.PutUint32(b[16:20], s.Mode)
	binary.LittleEndian.PutUint32(b[20:24], s.Nlink)
	binary.LittleEndian.PutUint32(b[24:28], s.UID)
	binary.LittleEndian.PutUint32(b[28:32], s.GID)
	binary.LittleEndian.PutUint64(b[32:40], s.Rdev)
	// bytes 40:48 are _pad.
	binary.LittleEndian.PutUint64(b[48:56], uint64(s.Size))
	binary.LittleEndian.PutUint32(b[56:60], uint32(s.Blksize))
	// bytes 60:64 are _pad2.
	binary.LittleEndian.PutUint64(b[64:72], uint64(s.Blocks))
	s.Atim.put(b[72:88])
	s.Mtim.put(b[88:104])
	s.Ctim.put(b[104:120])
	// bytes 120:128 are _unused.

	return b
}

// WinsizeSize is the size in bytes of the packed winsize record.
const WinsizeSize = 8

// Winsize mirrors struct winsize: {row, col, xpixel, ypixel}, four u16 fields.
type Winsize struct {
	Row, Col, Xpixel, Ypixel uint16
}

// Encode packs the winsize record into its 8-byte wire layout.
func (w Winsize) Encode() [WinsizeSize]byte {
	var b [WinsizeSize]byte

	binary.LittleEndian.PutUint16(b[0:2], w.Row)
	binary.LittleEndian.PutUint16(b[2:4], w.Col)
	binary.LittleEndian.PutUint16(b[4:6], w.Xpixel)
	binary.LittleEndian.PutUint16(b[6:8], w.Ypixel)

	return b
}

// UtsnameFieldSize is the width of each fixed-size, NUL-padded utsname field.
const UtsnameFieldSize = 65

// UtsnameSize is the total size in bytes of the utsname record (6 fields x 65 bytes).
const UtsnameSize = 6 * UtsnameFieldSize

// Utsname mirrors struct utsname: six 65-byte NUL-padded fields.
type Utsname struct {
	Sysname, Nodename, Release, Version, Machine, Domainname string
}

// Encode packs the utsname record, NUL-padding (and truncating, defensively) each field to 65
// bytes.
func (u Utsname) Encode() [UtsnameSize]byte {
	var b [UtsnameSize]byte

	fields := []string{u.Sysname, u.Nodename, u.Release, u.Version, u.Machine, u.Domainname}
	for i, field := range fields {
		start := i * UtsnameFieldSize
		n := copy(b[start:start+UtsnameFieldSize], field)
		_ = n // remaining bytes are already zero (NUL).
	}

	return b
}

// Timespec is 16 bytes.
const TimespecSize = 16
