// Package specstore owns the .prs file: the spec header and the
// append-only BOM-edge record area. Each live component owns a singly
// linked chain of edges, threaded through nextPtr starting at its
// firstSpecPtr.
package specstore

import (
	"fmt"

	"github.com/dmakarov/partcat/internal/catalogerr"
	"github.com/dmakarov/partcat/internal/diskio"
	"github.com/dmakarov/partcat/internal/record"
)

// Store is the specification / BOM-edge (.prs) file store.
type Store struct {
	file   *diskio.File
	path   string
	header record.SpecHeader
}

func ioErr(format string, args ...any) error {
	return fmt.Errorf("specstore: %w: %s", catalogerr.ErrIO, fmt.Sprintf(format, args...))
}

// Create creates a new, empty .prs file at prsPath.
func Create(prsPath string) (*Store, error) {
	f, err := diskio.CreateRWTruncate(prsPath)
	if err != nil {
		return nil, err
	}
	s := &Store{
		file: f,
		path: prsPath,
		header: record.SpecHeader{
			HeadPtr: record.NullPtr,
			FreePtr: record.SpecHeaderSize,
		},
	}
	if err := s.writeHeader(); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Flush(); err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

// Open opens an existing .prs file, reading its header.
func Open(prsPath string) (*Store, error) {
	f, err := diskio.OpenRW(prsPath)
	if err != nil {
		return nil, err
	}
	s := &Store{file: f, path: prsPath}
	if err := s.readHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying file.
func (s *Store) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

// IsOpen reports whether the store's file handle is open.
func (s *Store) IsOpen() bool { return s != nil && s.file != nil && s.file.IsOpen() }

// Path returns the .prs file path.
func (s *Store) Path() string { return s.path }

func (s *Store) writeHeader() error {
	if err := s.file.Seek(0); err != nil {
		return err
	}
	if err := s.file.WriteUint32(s.header.HeadPtr); err != nil {
		return err
	}
	return s.file.WriteUint32(s.header.FreePtr)
}

func (s *Store) readHeader() error {
	if err := s.file.Seek(0); err != nil {
		return err
	}
	headPtr, err := s.file.ReadUint32()
	if err != nil {
		return err
	}
	freePtr, err := s.file.ReadUint32()
	if err != nil {
		return err
	}
	s.header = record.SpecHeader{HeadPtr: headPtr, FreePtr: freePtr}
	return nil
}

func (s *Store) writeRecordAt(offset uint32, rec record.Spec) error {
	if err := s.file.Seek(int64(offset)); err != nil {
		return err
	}
	var del uint8
	if rec.Deleted {
		del = 1
	}
	if err := s.file.WriteUint8(del); err != nil {
		return err
	}
	if err := s.file.WriteUint32(rec.ComponentPtr); err != nil {
		return err
	}
	if err := s.file.WriteUint16(rec.Qty); err != nil {
		return err
	}
	return s.file.WriteUint32(rec.NextPtr)
}

func (s *Store) appendRecord(rec record.Spec) (uint32, error) {
	size, err := s.file.Size()
	if err != nil {
		return 0, err
	}
	offset := uint32(size)
	if err := s.writeRecordAt(offset, rec); err != nil {
		return 0, err
	}
	newSize, err := s.file.Size()
	if err != nil {
		return 0, err
	}
	s.header.FreePtr = uint32(newSize)
	if err := s.writeHeader(); err != nil {
		return 0, err
	}
	if err := s.file.Flush(); err != nil {
		return 0, err
	}
	return offset, nil
}

// ReadRecordAt reads the BOM-edge record at the given byte offset.
func (s *Store) ReadRecordAt(offset uint32) (record.Spec, error) {
	var rec record.Spec
	rec.Offset = offset

	if err := s.file.Seek(int64(offset)); err != nil {
		return rec, err
	}
	del, err := s.file.ReadUint8()
	if err != nil {
		return rec, err
	}
	rec.Deleted = del != 0

	if rec.ComponentPtr, err = s.file.ReadUint32(); err != nil {
		return rec, err
	}
	if rec.Qty, err = s.file.ReadUint16(); err != nil {
		return rec, err
	}
	if rec.NextPtr, err = s.file.ReadUint32(); err != nil {
		return rec, err
	}
	return rec, nil
}

// ReadAllRecords returns every physically present edge, including
// tombstones, in file order.
func (s *Store) ReadAllRecords() ([]record.Spec, error) {
	var out []record.Spec
	size, err := s.file.Size()
	if err != nil {
		return nil, err
	}
	const stride = int64(record.SpecRecordSize)
	pos := int64(record.SpecHeaderSize)
	for pos+stride <= size {
		rec, err := s.ReadRecordAt(uint32(pos))
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
		pos += stride
	}
	return out, nil
}

// AddSpecItem appends a new, unlinked BOM edge referencing componentPtr
// with the given quantity. The caller is responsible for threading it
// into an owner's chain.
func (s *Store) AddSpecItem(componentPtr uint32, qty uint16) (uint32, error) {
	rec := record.Spec{
		Deleted:      false,
		ComponentPtr: componentPtr,
		Qty:          qty,
		NextPtr:      record.NullPtr,
	}
	return s.appendRecord(rec)
}

// MarkDeleted sets or clears the tombstone flag on the edge at offset.
func (s *Store) MarkDeleted(offset uint32, deleted bool) error {
	rec, err := s.ReadRecordAt(offset)
	if err != nil {
		return err
	}
	rec.Deleted = deleted
	if err := s.writeRecordAt(offset, rec); err != nil {
		return err
	}
	return s.file.Flush()
}

// UpdateNext rewrites nextPtr on the edge at offset, in place.
func (s *Store) UpdateNext(offset uint32, nextPtr uint32) error {
	rec, err := s.ReadRecordAt(offset)
	if err != nil {
		return err
	}
	rec.NextPtr = nextPtr
	if err := s.writeRecordAt(offset, rec); err != nil {
		return err
	}
	return s.file.Flush()
}

// RebuildSpecLinks walks the chain starting at firstSpecPtr, drops
// tombstoned edges, and rewrites nextPtr to form a tombstone-free chain.
// It never moves edges on disk and returns the new chain head.
func (s *Store) RebuildSpecLinks(firstSpecPtr uint32) (uint32, error) {
	if firstSpecPtr == record.NullPtr {
		return record.NullPtr, nil
	}

	var chain []record.Spec
	cur := firstSpecPtr
	for cur != record.NullPtr {
		rec, err := s.ReadRecordAt(cur)
		if err != nil {
			return 0, err
		}
		if !rec.Deleted {
			chain = append(chain, rec)
		}
		cur = rec.NextPtr
	}

	for i, rec := range chain {
		next := record.NullPtr
		if i+1 < len(chain) {
			next = chain[i+1].Offset
		}
		if err := s.UpdateNext(rec.Offset, next); err != nil {
			return 0, err
		}
	}

	if len(chain) == 0 {
		return record.NullPtr, nil
	}
	return chain[0].Offset, nil
}

// HasActiveReferenceToComponent reports whether any live edge's
// componentPtr equals componentPtr.
func (s *Store) HasActiveReferenceToComponent(componentPtr uint32) (bool, error) {
	all, err := s.ReadAllRecords()
	if err != nil {
		return false, err
	}
	for _, r := range all {
		if !r.Deleted && r.ComponentPtr == componentPtr {
			return true, nil
		}
	}
	return false, nil
}
