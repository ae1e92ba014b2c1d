package diskio

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmakarov/partcat/internal/catalogerr"
)

func TestCreateRWTruncateThenOpenRW(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.bin")

	f, err := CreateRWTruncate(path)
	if err != nil {
		t.Fatalf("CreateRWTruncate: %v", err)
	}
	if !f.IsOpen() {
		t.Fatal("IsOpen() = false after create")
	}
	if f.Path() != path {
		t.Errorf("Path() = %q, want %q", f.Path(), path)
	}
	if err := f.WriteUint32(0xDEADBEEF); err != nil {
		t.Fatalf("WriteUint32: %v", err)
	}
	if err := f.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if f.IsOpen() {
		t.Fatal("IsOpen() = true after Close")
	}

	f2, err := OpenRW(path)
	if err != nil {
		t.Fatalf("OpenRW: %v", err)
	}
	defer f2.Close()

	if err := f2.Seek(0); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	got, err := f2.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32: %v", err)
	}
	if got != 0xDEADBEEF {
		t.Errorf("ReadUint32() = %#x, want %#x", got, 0xDEADBEEF)
	}
}

func TestSizeLeavesOffsetUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "size.bin")
	f, err := CreateRWTruncate(path)
	if err != nil {
		t.Fatalf("CreateRWTruncate: %v", err)
	}
	defer f.Close()

	if err := f.WriteBytes([]byte("12345678")); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	if err := f.Seek(3); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	size, err := f.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if size != 8 {
		t.Errorf("Size() = %d, want 8", size)
	}
	pos, err := f.Tell()
	if err != nil {
		t.Fatalf("Tell: %v", err)
	}
	if pos != 3 {
		t.Errorf("Tell() = %d, want 3 (Size must not move the offset)", pos)
	}
}

func TestFixedStringRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixed.bin")
	f, err := CreateRWTruncate(path)
	if err != nil {
		t.Fatalf("CreateRWTruncate: %v", err)
	}
	defer f.Close()

	if err := f.WriteFixedString("bolt", 16, ' '); err != nil {
		t.Fatalf("WriteFixedString: %v", err)
	}
	if err := f.Seek(0); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	got, err := f.ReadFixedString(16)
	if err != nil {
		t.Fatalf("ReadFixedString: %v", err)
	}
	if len(got) != 16 {
		t.Fatalf("ReadFixedString len = %d, want 16", len(got))
	}
	if got[:4] != "bolt" {
		t.Errorf("ReadFixedString()[:4] = %q, want %q", got[:4], "bolt")
	}
}

func TestOpenRWMissingFileIsErrIO(t *testing.T) {
	_, err := OpenRW(filepath.Join(t.TempDir(), "does-not-exist.bin"))
	if err == nil {
		t.Fatal("expected an error opening a missing file")
	}
	if !errors.Is(err, catalogerr.ErrIO) {
		t.Errorf("errors.Is(err, catalogerr.ErrIO) = false, err = %v", err)
	}
}

func TestReadBytesPastEOFIsErrIO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.bin")
	f, err := CreateRWTruncate(path)
	if err != nil {
		t.Fatalf("CreateRWTruncate: %v", err)
	}
	defer f.Close()

	if err := f.WriteBytes([]byte("ab")); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	if err := f.Seek(0); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	buf := make([]byte, 10)
	if err := f.ReadBytes(buf); !errors.Is(err, catalogerr.ErrIO) {
		t.Errorf("ReadBytes past EOF: errors.Is(err, ErrIO) = false, err = %v", err)
	}
}
