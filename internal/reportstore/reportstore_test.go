package reportstore

import (
	"io"
	"testing"
)

type fakeReporter struct{}

func (fakeReporter) Render(w io.Writer, snap Snapshot) error { return nil }

func TestRegisterAndFor(t *testing.T) {
	saved := registry
	registry = make(map[ReportFormat]Reporter)
	defer func() { registry = saved }()

	Register(FormatCSV, fakeReporter{})
	r, err := For(FormatCSV)
	if err != nil {
		t.Fatalf("For(csv): %v", err)
	}
	if r == nil {
		t.Fatal("For(csv) returned nil reporter")
	}
}

func TestForUnregisteredFormat(t *testing.T) {
	saved := registry
	registry = make(map[ReportFormat]Reporter)
	defer func() { registry = saved }()

	if _, err := For(ReportFormat("nonexistent")); err == nil {
		t.Fatal("For(nonexistent) expected an error")
	}
}

func TestRegisterOverwritesExisting(t *testing.T) {
	saved := registry
	registry = make(map[ReportFormat]Reporter)
	defer func() { registry = saved }()

	first := fakeReporter{}
	second := fakeReporter{}
	Register(FormatJSON, first)
	Register(FormatJSON, second)

	r, err := For(FormatJSON)
	if err != nil {
		t.Fatalf("For(json): %v", err)
	}
	if _, ok := r.(fakeReporter); !ok {
		t.Errorf("For(json) returned %T, want fakeReporter", r)
	}
}
