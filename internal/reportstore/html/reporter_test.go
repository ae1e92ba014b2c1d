package html

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dmakarov/partcat/internal/record"
	"github.com/dmakarov/partcat/internal/reportstore"
)

func TestRenderIncludesOwnersAndBOMRows(t *testing.T) {
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

	out := buf.String()
	if !strings.Contains(out, "<h2>engine") {
		t.Errorf("missing engine heading, got:\n%s", out)
	}
	if !strings.Contains(out, "<td>piston</td>") {
		t.Errorf("missing piston BOM row, got:\n%s", out)
	}
	if !strings.Contains(out, "no BOM entries") {
		t.Errorf("expected piston's empty-BOM placeholder, got:\n%s", out)
	}
}
