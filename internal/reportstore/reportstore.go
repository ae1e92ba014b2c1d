// Package reportstore renders a read-only snapshot of the catalog to
// interchange and document formats (CSV, JSON, XML, HTML, XLSX, PDF).
// It never touches the .prd/.prs files: reporters only ever see a
// Snapshot built once by the caller. Reporters register themselves by
// format name at init() time, the same way the command dispatch table
// in internal/commands builds itself up.
package reportstore

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/dmakarov/partcat/internal/record"
)

// ReportFormat identifies a rendering target.
type ReportFormat string

const (
	FormatCSV  ReportFormat = "csv"
	FormatJSON ReportFormat = "json"
	FormatXML  ReportFormat = "xml"
	FormatHTML ReportFormat = "html"
	FormatXLSX ReportFormat = "xlsx"
	FormatPDF  ReportFormat = "pdf"
)

// EdgeView is a BOM row: one part of an owner's bill of materials, with
// its quantity and type. It duplicates catalog.SpecItemView's shape
// rather than importing the catalog package, so reportstore stays a
// leaf with no dependency on the service it reports on.
type EdgeView struct {
	PartName string
	Qty      uint16
	Type     record.ComponentType
}

// Snapshot is the full, read-only catalog state a reporter renders
// from. OwnerOrder preserves ListComponents' alphabetical order so
// reporters that iterate owners don't need to re-sort.
//
// RootTrees holds, for every live Product-type component, the exact
// text the catalog service's own PrintSpecTree produces for it — so a
// reporter that wants tree-shaped output (the pdf reporter) reuses that
// rendering instead of re-walking BOM edges itself. StandaloneComponents
// lists every live component PrintSpecTree never visits from any
// Product root (an orphan Node or Detail, or a Detail never referenced
// by anyone), so a reporter built on RootTrees can still account for
// every component. A part shared by several Product trees appears in
// each of them.
type Snapshot struct {
	Components           []record.Component
	Edges                map[string][]EdgeView
	OwnerOrder           []string
	RootTrees            map[string]string
	StandaloneComponents []record.Component
}

// Reporter renders a Snapshot to w in its own format.
type Reporter interface {
	Render(w io.Writer, snap Snapshot) error
}

var (
	mu       sync.RWMutex
	registry = make(map[ReportFormat]Reporter)
)

// Register is called by each format package's init() to install itself
// into the registry.
func Register(format ReportFormat, r Reporter) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[format]; exists {
		log.Printf("reportstore: duplicate registration for %q, overwriting", format)
	}
	registry[format] = r
}

// For looks up the Reporter registered for format.
func For(format ReportFormat) (Reporter, error) {
	mu.RLock()
	defer mu.RUnlock()
	r, ok := registry[format]
	if !ok {
		return nil, fmt.Errorf("reportstore: no reporter registered for format %q", format)
	}
	return r, nil
}
