// Package xlsx renders a catalog snapshot as a two-sheet spreadsheet
// via excelize: one sheet listing every component, one listing every
// BOM edge.
package xlsx

import (
	"fmt"
	"io"

	"github.com/dmakarov/partcat/internal/reportstore"
	"github.com/xuri/excelize/v2"
)

func init() {
	reportstore.Register(reportstore.FormatXLSX, New())
}

const (
	componentsSheet = "Components"
	bomSheet        = "BOM"
)

// Reporter renders a Snapshot as an XLSX workbook.
type Reporter struct{}

// New constructs an XLSX Reporter.
func New() *Reporter { return &Reporter{} }

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// Render writes the snapshot to w as a two-sheet XLSX workbook:
// Components (name, type) and BOM (owner, part, qty).
func (r *Reporter) Render(w io.Writer, snap reportstore.Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", componentsSheet)
	if _, err := f.NewSheet(bomSheet); err != nil {
		return fmt.Errorf("reportstore/xlsx: %w", err)
	}

	byName := make(map[string]string, len(snap.Components))
	for _, c := range snap.Components {
		byName[c.Name] = c.Type.String()
	}

	if err := writeRow(f, componentsSheet, 1, "Name", "Type"); err != nil {
		return fmt.Errorf("reportstore/xlsx: %w", err)
	}
	row := 2
	for _, name := range snap.OwnerOrder {
		if err := writeRow(f, componentsSheet, row, name, byName[name]); err != nil {
			return fmt.Errorf("reportstore/xlsx: %w", err)
		}
		row++
	}

	if err := writeRow(f, bomSheet, 1, "Owner", "Part", "Qty"); err != nil {
		return fmt.Errorf("reportstore/xlsx: %w", err)
	}
	row = 2
	for _, owner := range snap.OwnerOrder {
		for _, edge := range snap.Edges[owner] {
			if err := writeRow(f, bomSheet, row, owner, edge.PartName, edge.Qty); err != nil {
				return fmt.Errorf("reportstore/xlsx: %w", err)
			}
			row++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("reportstore/xlsx: %w", err)
	}
	return nil
}
