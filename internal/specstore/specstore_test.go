package specstore

import (
	"path/filepath"
	"testing"

	"github.com/dmakarov/partcat/internal/record"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Create(filepath.Join(t.TempDir(), "catalog.prs"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddSpecItemIsUnlinked(t *testing.T) {
	s := newTestStore(t)
	off, err := s.AddSpecItem(1234, 7)
	if err != nil {
		t.Fatalf("AddSpecItem: %v", err)
	}
	rec, err := s.ReadRecordAt(off)
	if err != nil {
		t.Fatalf("ReadRecordAt: %v", err)
	}
	if rec.ComponentPtr != 1234 || rec.Qty != 7 {
		t.Errorf("ReadRecordAt() = %+v, want ComponentPtr=1234 Qty=7", rec)
	}
	if rec.NextPtr != record.NullPtr {
		t.Errorf("NextPtr = %d, want NullPtr (AddSpecItem leaves edges unlinked)", rec.NextPtr)
	}
}

func TestRebuildSpecLinksDropsTombstones(t *testing.T) {
	s := newTestStore(t)

	off1, err := s.AddSpecItem(100, 1)
	if err != nil {
		t.Fatalf("AddSpecItem: %v", err)
	}
	off2, err := s.AddSpecItem(200, 2)
	if err != nil {
		t.Fatalf("AddSpecItem: %v", err)
	}
	off3, err := s.AddSpecItem(300, 3)
	if err != nil {
		t.Fatalf("AddSpecItem: %v", err)
	}
	if err := s.UpdateNext(off1, off2); err != nil {
		t.Fatalf("UpdateNext: %v", err)
	}
	if err := s.UpdateNext(off2, off3); err != nil {
		t.Fatalf("UpdateNext: %v", err)
	}

	if err := s.MarkDeleted(off2, true); err != nil {
		t.Fatalf("MarkDeleted: %v", err)
	}

	newHead, err := s.RebuildSpecLinks(off1)
	if err != nil {
		t.Fatalf("RebuildSpecLinks: %v", err)
	}
	if newHead != off1 {
		t.Fatalf("new head = %d, want %d", newHead, off1)
	}

	var chain []uint32
	cur := newHead
	for cur != record.NullPtr {
		r, err := s.ReadRecordAt(cur)
		if err != nil {
			t.Fatalf("ReadRecordAt: %v", err)
		}
		chain = append(chain, r.ComponentPtr)
		cur = r.NextPtr
	}
	if len(chain) != 2 || chain[0] != 100 || chain[1] != 300 {
		t.Errorf("rebuilt chain = %v, want [100 300] (tombstone at 200 removed)", chain)
	}
}

func TestRebuildSpecLinksAllTombstonedReturnsNullPtr(t *testing.T) {
	s := newTestStore(t)
	off, err := s.AddSpecItem(1, 1)
	if err != nil {
		t.Fatalf("AddSpecItem: %v", err)
	}
	if err := s.MarkDeleted(off, true); err != nil {
		t.Fatalf("MarkDeleted: %v", err)
	}
	newHead, err := s.RebuildSpecLinks(off)
	if err != nil {
		t.Fatalf("RebuildSpecLinks: %v", err)
	}
	if newHead != record.NullPtr {
		t.Errorf("RebuildSpecLinks with all-tombstoned chain = %d, want NullPtr", newHead)
	}
}

func TestHasActiveReferenceToComponent(t *testing.T) {
	s := newTestStore(t)
	off, err := s.AddSpecItem(42, 1)
	if err != nil {
		t.Fatalf("AddSpecItem: %v", err)
	}

	has, err := s.HasActiveReferenceToComponent(42)
	if err != nil || !has {
		t.Fatalf("HasActiveReferenceToComponent(42) = %v, %v, want true, nil", has, err)
	}

	if err := s.MarkDeleted(off, true); err != nil {
		t.Fatalf("MarkDeleted: %v", err)
	}
	has, err = s.HasActiveReferenceToComponent(42)
	if err != nil || has {
		t.Fatalf("HasActiveReferenceToComponent(42) after tombstone = %v, %v, want false, nil", has, err)
	}
}
