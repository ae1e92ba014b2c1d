// Package html renders a catalog snapshot as a standalone HTML page, one
// section per component with a table of its BOM rows, driven by
// html/template against a fixed HTML5 skeleton.
package html

import (
	"html/template"
	"io"

	"github.com/dmakarov/partcat/internal/reportstore"
)

func init() {
	reportstore.Register(reportstore.FormatHTML, New())
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>Part catalog</title>
	<style>
		body { padding: 1rem; font-family: sans-serif; }
		table { border-collapse: collapse; margin-bottom: 1.5rem; }
		th, td { border: 1px solid #ccc; padding: 0.25rem 0.5rem; text-align: left; }
		h2 { margin-bottom: 0.25rem; }
	</style>
</head>
<body>
	<h1>Part catalog</h1>
	{{range .Owners}}
	<h2>{{.Name}} <small>({{.Type}})</small></h2>
	{{if .Rows}}
	<table>
		<tr><th>Part</th><th>Type</th><th>Qty</th></tr>
		{{range .Rows}}<tr><td>{{.Part}}</td><td>{{.Type}}</td><td>{{.Qty}}</td></tr>
		{{end}}
	</table>
	{{else}}
	<p><em>no BOM entries</em></p>
	{{end}}
	{{end}}
</body>
</html>
`

var tmpl = template.Must(template.New("catalog").Parse(pageTemplate))

type ownerView struct {
	Name string
	Type string
	Rows []rowView
}

type rowView struct {
	Part string
	Type string
	Qty  uint16
}

// Reporter renders a Snapshot as an HTML page.
type Reporter struct{}

// New constructs an HTML Reporter.
func New() *Reporter { return &Reporter{} }

// Render writes the snapshot to w as a self-contained HTML document.
func (r *Reporter) Render(w io.Writer, snap reportstore.Snapshot) error {
	byName := make(map[string]string, len(snap.Components))
	for _, c := range snap.Components {
		byName[c.Name] = c.Type.String()
	}

	owners := make([]ownerView, 0, len(snap.OwnerOrder))
	for _, name := range snap.OwnerOrder {
		ov := ownerView{Name: name, Type: byName[name]}
		for _, edge := range snap.Edges[name] {
			ov.Rows = append(ov.Rows, rowView{Part: edge.PartName, Type: edge.Type.String(), Qty: edge.Qty})
		}
		owners = append(owners, ov)
	}

	return tmpl.Execute(w, struct{ Owners []ownerView }{Owners: owners})
}
