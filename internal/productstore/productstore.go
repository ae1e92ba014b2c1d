// Package productstore owns the .prd file: the component header, the
// append-only record area, and the alphabetical singly linked list that
// threads every live component in byte-wise name order.
package productstore

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dmakarov/partcat/internal/catalogerr"
	"github.com/dmakarov/partcat/internal/diskio"
	"github.com/dmakarov/partcat/internal/record"
)

// Store is the component (.prd) file store.
type Store struct {
	file   *diskio.File
	path   string
	header record.ProductHeader
}

func validationErr(format string, args ...any) error {
	return fmt.Errorf("productstore: %w: %s", catalogerr.ErrValidation, fmt.Sprintf(format, args...))
}

func formatErr(format string, args ...any) error {
	return fmt.Errorf("productstore: %w: %s", catalogerr.ErrFormat, fmt.Sprintf(format, args...))
}

// Create creates a new .prd file at prdPath with the given maxNameLen,
// referencing prsPath as its paired specification file.
func Create(prdPath string, maxNameLen int, prsPath string) (*Store, error) {
	if maxNameLen < record.MinMaxNameLen || maxNameLen > record.MaxMaxNameLen {
		return nil, validationErr("maxNameLen %d out of range [%d,%d]", maxNameLen, record.MinMaxNameLen, record.MaxMaxNameLen)
	}

	f, err := diskio.CreateRWTruncate(prdPath)
	if err != nil {
		return nil, err
	}

	s := &Store{
		file: f,
		path: prdPath,
		header: record.ProductHeader{
			DataLen:      record.DataLenFor(maxNameLen),
			HeadPtr:      record.NullPtr,
			FreePtr:      0,
			SpecFileName: prsPath,
		},
	}

	if err := s.writeHeader(); err != nil {
		f.Close()
		return nil, err
	}

	size, err := f.Size()
	if err != nil {
		f.Close()
		return nil, err
	}
	s.header.FreePtr = uint32(size)
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

// Open opens an existing .prd file, validating its header.
func Open(prdPath string) (*Store, error) {
	f, err := diskio.OpenRW(prdPath)
	if err != nil {
		return nil, err
	}
	s := &Store{file: f, path: prdPath}
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

// Header returns the current in-memory header.
func (s *Store) Header() record.ProductHeader { return s.header }

// Path returns the .prd file path.
func (s *Store) Path() string { return s.path }

// SpecPath returns the paired .prs path embedded in the header, trimmed.
func (s *Store) SpecPath() string { return record.TrimName(s.header.SpecFileName) }

// MaxNameLen returns the maximum component name length this store was
// created with.
func (s *Store) MaxNameLen() int { return int(s.header.DataLen) - 1 }

func (s *Store) recordSize() int { return record.ComponentRecordSize(s.MaxNameLen()) }

func (s *Store) writeHeader() error {
	if err := s.file.Seek(0); err != nil {
		return err
	}
	if err := s.file.WriteBytes([]byte(record.ProductSignature)); err != nil {
		return err
	}
	if err := s.file.WriteUint16(s.header.DataLen); err != nil {
		return err
	}
	if err := s.file.WriteUint32(s.header.HeadPtr); err != nil {
		return err
	}
	if err := s.file.WriteUint32(s.header.FreePtr); err != nil {
		return err
	}
	return s.file.WriteFixedString(s.header.SpecFileName, record.SpecFileNameLen, ' ')
}

func (s *Store) readHeader() error {
	if err := s.file.Seek(0); err != nil {
		return err
	}
	sig, err := s.file.ReadFixedString(2)
	if err != nil {
		return err
	}
	if sig != record.ProductSignature {
		return formatErr("bad signature %q, expected %q", sig, record.ProductSignature)
	}
	dataLen, err := s.file.ReadUint16()
	if err != nil {
		return err
	}
	if dataLen < 2 {
		return formatErr("dataLen %d is too small", dataLen)
	}
	headPtr, err := s.file.ReadUint32()
	if err != nil {
		return err
	}
	freePtr, err := s.file.ReadUint32()
	if err != nil {
		return err
	}
	specFileName, err := s.file.ReadFixedString(record.SpecFileNameLen)
	if err != nil {
		return err
	}
	s.header = record.ProductHeader{
		DataLen:      dataLen,
		HeadPtr:      headPtr,
		FreePtr:      freePtr,
		SpecFileName: specFileName,
	}
	return nil
}

func (s *Store) writeRecordAt(offset uint32, rec record.Component) error {
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
	if err := s.file.WriteUint32(rec.FirstSpecPtr); err != nil {
		return err
	}
	if err := s.file.WriteUint32(rec.NextPtr); err != nil {
		return err
	}
	if err := s.file.WriteUint8(uint8(rec.Type)); err != nil {
		return err
	}
	return s.file.WriteFixedString(rec.Name, s.MaxNameLen(), ' ')
}

func (s *Store) appendRecord(rec record.Component) (uint32, error) {
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

// ReadRecordAt reads the component record at the given byte offset.
func (s *Store) ReadRecordAt(offset uint32) (record.Component, error) {
	var rec record.Component
	rec.Offset = offset

	if err := s.file.Seek(int64(offset)); err != nil {
		return rec, err
	}
	del, err := s.file.ReadUint8()
	if err != nil {
		return rec, err
	}
	rec.Deleted = del != 0

	if rec.FirstSpecPtr, err = s.file.ReadUint32(); err != nil {
		return rec, err
	}
	if rec.NextPtr, err = s.file.ReadUint32(); err != nil {
		return rec, err
	}
	t, err := s.file.ReadUint8()
	if err != nil {
		return rec, err
	}
	rec.Type = record.ComponentType(t)

	name, err := s.file.ReadFixedString(s.MaxNameLen())
	if err != nil {
		return rec, err
	}
	rec.Name = record.TrimName(name)
	return rec, nil
}

// ReadAllRecords returns every physically present record, including
// tombstones, in file order.
func (s *Store) ReadAllRecords() ([]record.Component, error) {
	var out []record.Component
	size, err := s.file.Size()
	if err != nil {
		return nil, err
	}
	stride := int64(s.recordSize())
	pos := int64(record.ProductHeaderSize)
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

// FindActiveByName returns the first live record whose trimmed name
// equals the trimmed query, if any.
func (s *Store) FindActiveByName(name string) (record.Component, bool, error) {
	target := record.TrimName(name)
	all, err := s.ReadAllRecords()
	if err != nil {
		return record.Component{}, false, err
	}
	for _, r := range all {
		if !r.Deleted && r.Name == target {
			return r, true, nil
		}
	}
	return record.Component{}, false, nil
}

// AddComponent appends a new component record and inserts it into the
// alphabetical list in byte-wise name order.
func (s *Store) AddComponent(name string, t record.ComponentType) (record.Component, error) {
	nm := record.TrimName(name)
	if nm == "" {
		return record.Component{}, validationErr("empty component name")
	}
	if len(nm) > s.MaxNameLen() {
		return record.Component{}, validationErr("component name %q longer than maxNameLen %d", nm, s.MaxNameLen())
	}
	if _, found, err := s.FindActiveByName(nm); err != nil {
		return record.Component{}, err
	} else if found {
		return record.Component{}, validationErr("duplicate component name %q", nm)
	}

	newRec := record.Component{
		Deleted:      false,
		FirstSpecPtr: record.NullPtr,
		NextPtr:      record.NullPtr,
		Type:         t,
		Name:         nm,
	}

	newOffset, err := s.appendRecord(newRec)
	if err != nil {
		return record.Component{}, err
	}
	newRec.Offset = newOffset

	if s.header.HeadPtr == record.NullPtr {
		s.header.HeadPtr = newOffset
		if err := s.writeHeader(); err != nil {
			return record.Component{}, err
		}
		return newRec, s.file.Flush()
	}

	prev := record.NullPtr
	cur := s.header.HeadPtr
	for cur != record.NullPtr {
		curRec, err := s.ReadRecordAt(cur)
		if err != nil {
			return record.Component{}, err
		}
		if !curRec.Deleted && curRec.Name > nm {
			break
		}
		prev = cur
		cur = curRec.NextPtr
	}

	if prev == record.NullPtr {
		newRec.NextPtr = s.header.HeadPtr
		if err := s.writeRecordAt(newOffset, newRec); err != nil {
			return record.Component{}, err
		}
		s.header.HeadPtr = newOffset
		if err := s.writeHeader(); err != nil {
			return record.Component{}, err
		}
		return newRec, s.file.Flush()
	}

	prevRec, err := s.ReadRecordAt(prev)
	if err != nil {
		return record.Component{}, err
	}
	newRec.NextPtr = cur
	if err := s.writeRecordAt(newOffset, newRec); err != nil {
		return record.Component{}, err
	}
	prevRec.NextPtr = newOffset
	if err := s.writeRecordAt(prev, prevRec); err != nil {
		return record.Component{}, err
	}
	return newRec, s.file.Flush()
}

// MarkDeleted sets or clears the tombstone flag on the record at offset.
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

// UpdatePointers rewrites firstSpecPtr and nextPtr on the record at
// offset, in place.
func (s *Store) UpdatePointers(offset uint32, firstSpecPtr, nextPtr uint32) error {
	rec, err := s.ReadRecordAt(offset)
	if err != nil {
		return err
	}
	rec.FirstSpecPtr = firstSpecPtr
	rec.NextPtr = nextPtr
	if err := s.writeRecordAt(offset, rec); err != nil {
		return err
	}
	return s.file.Flush()
}

// UpdateComponent rewrites name and type on the record at offset. It
// does not reorder the alphabetical list; call RebuildAlphabeticalLinks
// afterward if the name changed.
func (s *Store) UpdateComponent(offset uint32, newName string, newType record.ComponentType) error {
	rec, err := s.ReadRecordAt(offset)
	if err != nil {
		return err
	}
	rec.Name = record.TrimName(newName)
	rec.Type = newType
	if err := s.writeRecordAt(offset, rec); err != nil {
		return err
	}
	return s.file.Flush()
}

// RebuildAlphabeticalLinks collects all live records, sorts them by
// byte-wise name, and rewrites nextPtr/headPtr to match.
func (s *Store) RebuildAlphabeticalLinks() error {
	all, err := s.ReadAllRecords()
	if err != nil {
		return err
	}

	active := make([]record.Component, 0, len(all))
	for _, r := range all {
		if !r.Deleted {
			active = append(active, r)
		}
	}
	sort.Slice(active, func(i, j int) bool { return strings.Compare(active[i].Name, active[j].Name) < 0 })

	for i, r := range active {
		next := record.NullPtr
		if i+1 < len(active) {
			next = active[i+1].Offset
		}
		if err := s.UpdatePointers(r.Offset, r.FirstSpecPtr, next); err != nil {
			return err
		}
	}

	if len(active) == 0 {
		s.header.HeadPtr = record.NullPtr
	} else {
		s.header.HeadPtr = active[0].Offset
	}
	size, err := s.file.Size()
	if err != nil {
		return err
	}
	s.header.FreePtr = uint32(size)
	if err := s.writeHeader(); err != nil {
		return err
	}
	return s.file.Flush()
}
