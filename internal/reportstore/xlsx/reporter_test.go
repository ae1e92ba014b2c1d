package xlsx

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/dmakarov/partcat/internal/record"
	"github.com/dmakarov/partcat/internal/reportstore"
)

func TestRenderProducesComponentsAndBOMSheets(t *testing.T) {
	snap := reportstore.Snapshot{
		Components: []record.Component{
			{Name: "engine", Type: record.Product},
			{Name: "piston", Type: record.Detail},
		},
		Edges: map[string][]reportstore.EdgeView{
			"engine": {{PartName: "piston", Qty: 4, Type: record.Detail}},
		},
		OwnerOrder: []string{"engine", "piston"},
	}

	var buf bytes.Buffer
	if err := New().Render(&buf, snap); err != nil {
		t.Fatalf("Render: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("output is not a readable xlsx workbook: %v", err)
	}
	defer f.Close()

	components, err := f.GetRows(componentsSheet)
	if err != nil {
		t.Fatalf("GetRows(Components): %v", err)
	}
	if len(components) != 3 {
		t.Fatalf("got %d Components rows, want 3 (header + engine + piston)", len(components))
	}
	if components[1][0] != "engine" || components[2][0] != "piston" {
		t.Errorf("Components rows = %v, want engine then piston", components)
	}

	bom, err := f.GetRows(bomSheet)
	if err != nil {
		t.Fatalf("GetRows(BOM): %v", err)
	}
	if len(bom) != 2 {
		t.Fatalf("got %d BOM rows, want 2 (header + one edge)", len(bom))
	}
	if bom[1][0] != "engine" || bom[1][1] != "piston" || bom[1][2] != "4" {
		t.Errorf("BOM row = %v, want [engine piston 4]", bom[1])
	}
}
