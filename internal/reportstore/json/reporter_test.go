package json

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dmakarov/partcat/internal/record"
	"github.com/dmakarov/partcat/internal/reportstore"
)

func TestRenderProducesValidNestedJSON(t *testing.T) {
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

	var decoded struct {
		Components []struct {
			Name string `json:"name"`
			Type string `json:"type"`
			BOM  []struct {
				Part string `json:"part"`
				Type string `json:"type"`
				Qty  int    `json:"qty"`
			} `json:"bom,omitempty"`
		} `json:"components"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded.Components) != 2 {
		t.Fatalf("got %d components, want 2", len(decoded.Components))
	}
	if decoded.Components[0].Name != "engine" || len(decoded.Components[0].BOM) != 1 {
		t.Errorf("engine entry = %+v, want one BOM row", decoded.Components[0])
	}
	if decoded.Components[1].Name != "piston" || len(decoded.Components[1].BOM) != 0 {
		t.Errorf("piston entry = %+v, want zero BOM rows", decoded.Components[1])
	}
}
