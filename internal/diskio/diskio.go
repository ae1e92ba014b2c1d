// Package diskio provides random-access binary file I/O for the paired
// catalog files: seek/read/write at an offset, little-endian scalars,
// and fixed-width space-padded strings. It is the only package in this
// module that touches *os.File directly.
package diskio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/dmakarov/partcat/internal/catalogerr"
)

// File wraps an *os.File opened for random-access read/write.
type File struct {
	f    *os.File
	path string
}

func wrapIOErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("diskio: %s %s: %w: %v", op, path, catalogerr.ErrIO, err)
}

// OpenRW opens an existing file for reading and writing.
func OpenRW(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, wrapIOErr("open", path, err)
	}
	return &File{f: f, path: path}, nil
}

// CreateRWTruncate creates path (truncating it if it already exists) and
// leaves it open for both reading and writing.
func CreateRWTruncate(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, wrapIOErr("create", path, err)
	}
	return &File{f: f, path: path}, nil
}

// Close closes the underlying file. It is a no-op if already closed.
func (d *File) Close() error {
	if d == nil || d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	if err != nil {
		return wrapIOErr("close", d.path, err)
	}
	return nil
}

// IsOpen reports whether the file handle is currently open.
func (d *File) IsOpen() bool {
	return d != nil && d.f != nil
}

// Path returns the path the handle was opened or created with.
func (d *File) Path() string {
	if d == nil {
		return ""
	}
	return d.path
}

// Size returns the current byte length of the file, leaving the file's
// read/write offset unchanged.
func (d *File) Size() (int64, error) {
	cur, err := d.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, wrapIOErr("size", d.path, err)
	}
	end, err := d.f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, wrapIOErr("size", d.path, err)
	}
	if _, err := d.f.Seek(cur, io.SeekStart); err != nil {
		return 0, wrapIOErr("size", d.path, err)
	}
	return end, nil
}

// Seek positions the file at the given absolute offset.
func (d *File) Seek(pos int64) error {
	if _, err := d.f.Seek(pos, io.SeekStart); err != nil {
		return wrapIOErr("seek", d.path, err)
	}
	return nil
}

// Tell returns the file's current read/write offset.
func (d *File) Tell() (int64, error) {
	pos, err := d.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, wrapIOErr("tell", d.path, err)
	}
	return pos, nil
}

// Flush durably persists writes made so far via fsync.
func (d *File) Flush() error {
	if err := d.f.Sync(); err != nil {
		return wrapIOErr("flush", d.path, err)
	}
	return nil
}

// WriteBytes writes b at the current offset.
func (d *File) WriteBytes(b []byte) error {
	if _, err := d.f.Write(b); err != nil {
		return wrapIOErr("write", d.path, err)
	}
	return nil
}

// ReadBytes reads len(b) bytes into b from the current offset.
func (d *File) ReadBytes(b []byte) error {
	if _, err := io.ReadFull(d.f, b); err != nil {
		return wrapIOErr("read", d.path, err)
	}
	return nil
}

// WriteUint8 writes a single byte.
func (d *File) WriteUint8(v uint8) error {
	return d.WriteBytes([]byte{v})
}

// ReadUint8 reads a single byte.
func (d *File) ReadUint8() (uint8, error) {
	var buf [1]byte
	if err := d.ReadBytes(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// WriteUint16 writes v little-endian.
func (d *File) WriteUint16(v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return d.WriteBytes(buf[:])
}

// ReadUint16 reads a little-endian uint16.
func (d *File) ReadUint16() (uint16, error) {
	var buf [2]byte
	if err := d.ReadBytes(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// WriteUint32 writes v little-endian.
func (d *File) WriteUint32(v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return d.WriteBytes(buf[:])
}

// ReadUint32 reads a little-endian uint32.
func (d *File) ReadUint32() (uint32, error) {
	var buf [4]byte
	if err := d.ReadBytes(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// WriteFixedString writes value as exactly n bytes, truncating or
// right-padding with pad as needed.
func (d *File) WriteFixedString(value string, n int, pad byte) error {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = pad
	}
	copy(buf, value)
	return d.WriteBytes(buf)
}

// ReadFixedString reads exactly n bytes and returns them as a string,
// unmodified (callers trim padding themselves).
func (d *File) ReadFixedString(n int) (string, error) {
	buf := make([]byte, n)
	if err := d.ReadBytes(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
