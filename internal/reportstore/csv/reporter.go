// Package csv renders a catalog snapshot as a CSV table: one row per
// component, with a second row emitted per BOM edge for non-Detail
// owners. No third-party CSV library fits a table this small, so
// encoding/csv is the idiomatic choice here.
package csv

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/dmakarov/partcat/internal/record"
	"github.com/dmakarov/partcat/internal/reportstore"
)

func init() {
	reportstore.Register(reportstore.FormatCSV, New())
}

// Reporter renders a Snapshot as CSV.
type Reporter struct{}

// New constructs a CSV Reporter.
func New() *Reporter { return &Reporter{} }

// Render writes the snapshot to w as CSV with the header
// "name,type,parent,qty".
func (r *Reporter) Render(w io.Writer, snap reportstore.Snapshot) error {
	byName := make(map[string]record.ComponentType, len(snap.Components))
	for _, c := range snap.Components {
		byName[c.Name] = c.Type
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "type", "parent", "qty"}); err != nil {
		return err
	}
	for _, name := range snap.OwnerOrder {
		if err := cw.Write([]string{name, byName[name].String(), "", ""}); err != nil {
			return err
		}
		for _, edge := range snap.Edges[name] {
			row := []string{edge.PartName, edge.Type.String(), name, strconv.Itoa(int(edge.Qty))}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
