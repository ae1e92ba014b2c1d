// Package xml renders a catalog snapshot as an XML document, the format
// many PLM/ERP systems use for BOM interchange. Stdlib encoding/xml's
// struct-tag-driven marshaling is the idiomatic fit for a document this
// shape, the same reasoning as the json reporter.
package xml

import (
	"encoding/xml"
	"io"

	"github.com/dmakarov/partcat/internal/reportstore"
)

func init() {
	reportstore.Register(reportstore.FormatXML, New())
}

type catalogXML struct {
	XMLName    xml.Name       `xml:"catalog"`
	Components []componentXML `xml:"component"`
}

type componentXML struct {
	Name string    `xml:"name,attr"`
	Type string    `xml:"type,attr"`
	BOM  []bomXML  `xml:"bom>item,omitempty"`
}

type bomXML struct {
	Part string `xml:"part,attr"`
	Type string `xml:"type,attr"`
	Qty  uint16 `xml:"qty,attr"`
}

// Reporter renders a Snapshot as XML.
type Reporter struct{}

// New constructs an XML Reporter.
func New() *Reporter { return &Reporter{} }

// Render writes the snapshot to w as an indented XML document.
func (r *Reporter) Render(w io.Writer, snap reportstore.Snapshot) error {
	doc := catalogXML{Components: make([]componentXML, 0, len(snap.OwnerOrder))}
	byName := make(map[string]string, len(snap.Components))
	for _, c := range snap.Components {
		byName[c.Name] = c.Type.String()
	}

	for _, name := range snap.OwnerOrder {
		cx := componentXML{Name: name, Type: byName[name]}
		for _, edge := range snap.Edges[name] {
			cx.BOM = append(cx.BOM, bomXML{Part: edge.PartName, Type: edge.Type.String(), Qty: edge.Qty})
		}
		doc.Components = append(doc.Components, cx)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(doc)
}
