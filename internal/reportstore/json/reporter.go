// Package json renders a catalog snapshot as a single JSON document,
// for backup/interchange use. Stdlib encoding/json is the idiomatic
// choice: the example corpus itself hand-rolls JSON byte content
// (internal/adapters/json) rather than reach for a third-party encoder,
// and here we actually want struct-tag-driven marshaling rather than
// placeholder byte generation.
package json

import (
	"encoding/json"
	"io"

	"github.com/dmakarov/partcat/internal/reportstore"
)

func init() {
	reportstore.Register(reportstore.FormatJSON, New())
}

type document struct {
	Components []component `json:"components"`
}

type component struct {
	Name string    `json:"name"`
	Type string    `json:"type"`
	BOM  []bomEntry `json:"bom,omitempty"`
}

type bomEntry struct {
	Part string `json:"part"`
	Type string `json:"type"`
	Qty  uint16 `json:"qty"`
}

// Reporter renders a Snapshot as JSON.
type Reporter struct{}

// New constructs a JSON Reporter.
func New() *Reporter { return &Reporter{} }

// Render writes the snapshot to w as a pretty-printed JSON document.
func (r *Reporter) Render(w io.Writer, snap reportstore.Snapshot) error {
	doc := document{Components: make([]component, 0, len(snap.OwnerOrder))}
	byName := make(map[string]string, len(snap.Components))
	for _, c := range snap.Components {
		byName[c.Name] = c.Type.String()
	}

	for _, name := range snap.OwnerOrder {
		c := component{Name: name, Type: byName[name]}
		for _, edge := range snap.Edges[name] {
			c.BOM = append(c.BOM, bomEntry{Part: edge.PartName, Type: edge.Type.String(), Qty: edge.Qty})
		}
		doc.Components = append(doc.Components, c)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
