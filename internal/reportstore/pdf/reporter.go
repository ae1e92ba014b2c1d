// Package pdf renders a catalog snapshot as a PDF document: a title
// page followed by one line per component. Every live Product's lines
// are the exact text its catalog service's PrintSpecTree produces, so
// BOM nesting is indented the same way the tree command shows it;
// components no Product tree reaches get one standalone line. The
// DejaVuSans TTF is embedded and loaded into gopdf directly because
// component names and type labels are Russian text, and gopdf has no
// built-in Cyrillic-capable font.
package pdf

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/dmakarov/partcat/internal/reportstore"
	"github.com/signintech/gopdf"
)

func init() {
	reportstore.Register(reportstore.FormatPDF, New())
}

//go:embed fonts/DejaVuSans.ttf
var dejaVuSansFontData []byte

const (
	fontName    = "DejaVuSans"
	titleSize   = 24
	fontSize    = 11
	lineHeight  = 14.0
	leftMargin  = 10.0
	topMargin   = 10.0
	titleOffset = 40.0
)

// Reporter renders a Snapshot as a PDF document.
type Reporter struct{}

// New constructs a PDF Reporter.
func New() *Reporter { return &Reporter{} }

// Render writes the snapshot to w as a multi-page PDF: a title page,
// then one line per component.
func (r *Reporter) Render(w io.Writer, snap reportstore.Snapshot) error {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	if err := pdf.AddTTFFontByReader(fontName, bytes.NewReader(dejaVuSansFontData)); err != nil {
		return fmt.Errorf("reportstore/pdf: load font: %w", err)
	}

	pdf.AddPage()
	if err := pdf.SetFont(fontName, "", titleSize); err != nil {
		return fmt.Errorf("reportstore/pdf: set title font: %w", err)
	}
	pdf.SetX(leftMargin)
	pdf.SetY(topMargin)
	if err := pdf.Cell(nil, "Part Catalog"); err != nil {
		return fmt.Errorf("reportstore/pdf: write title: %w", err)
	}

	if err := pdf.SetFont(fontName, "", fontSize); err != nil {
		return fmt.Errorf("reportstore/pdf: set font: %w", err)
	}
	pdf.SetX(leftMargin)
	pdf.SetY(topMargin + titleOffset)
	summary := fmt.Sprintf("%d components", len(snap.Components))
	if err := pdf.Cell(nil, summary); err != nil {
		return fmt.Errorf("reportstore/pdf: write summary: %w", err)
	}

	pdf.AddPage()
	y := topMargin
	pageHeight := gopdf.PageSizeA4.H

	writeLine := func(text string) error {
		if y+lineHeight > pageHeight-topMargin {
			pdf.AddPage()
			y = topMargin
		}
		pdf.SetX(leftMargin)
		pdf.SetY(y)
		y += lineHeight
		return pdf.Cell(nil, text)
	}

	for _, name := range snap.OwnerOrder {
		tree, ok := snap.RootTrees[name]
		if !ok {
			continue
		}
		for _, line := range strings.Split(strings.TrimRight(tree, "\n"), "\n") {
			if err := writeLine(line); err != nil {
				return fmt.Errorf("reportstore/pdf: write line: %w", err)
			}
		}
	}
	for _, c := range snap.StandaloneComponents {
		if err := writeLine(fmt.Sprintf("%s (%s)", c.Name, c.Type.String())); err != nil {
			return fmt.Errorf("reportstore/pdf: write line: %w", err)
		}
	}

	_, err := w.Write(pdf.GetBytesPdf())
	return err
}
