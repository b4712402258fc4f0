package reports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	fontName   = "Helvetica"
	lineHeight = 5.0
)

// RenderPDF renders doc as an A4 portrait PDF using the core Helvetica font.
// Text is transcoded to cp1252, so characters outside it print as '?'.
func RenderPDF(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(doc.Title, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont(fontName, "B", 16)
	pdf.Cell(0, 10, tr(doc.Title))
	pdf.Ln(10)

	if doc.Subtitle != "" {
		pdf.SetFont(fontName, "", 10)
		pdf.MultiCell(0, lineHeight, tr(doc.Subtitle), "", "L", false)
		pdf.Ln(4)
	}

	for _, section := range doc.Sections {
		pdf.SetFont(fontName, "B", 13)
		pdf.Cell(0, 8, tr(section.Heading))
		pdf.Ln(8)

		pdf.SetFont(fontName, "", 10)
		for _, line := range section.Lines {
			pdf.MultiCell(0, lineHeight, tr(line), "", "L", false)
		}

		if section.Table != nil {
			if err := drawTable(pdf, tr, *section.Table); err != nil {
				return nil, err
			}
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func drawTable(pdf *gofpdf.Fpdf, tr func(string) string, t Table) error {
	if len(t.Widths) != len(t.Header) {
		return fmt.Errorf("table has %d columns but %d widths", len(t.Header), len(t.Widths))
	}

	pdf.SetFont(fontName, "B", 8)
	for i, h := range t.Header {
		ln := 0
		if i == len(t.Header)-1 {
			ln = 1
		}
		pdf.CellFormat(t.Widths[i], 6, tr(h), "1", ln, "C", false, 0, "")
	}

	pdf.SetFont(fontName, "", 8)
	for _, row := range t.Rows {
		for i := range t.Header {
			cell := ""
			if i < len(row) {
				cell = truncate(pdf, tr(row[i]), t.Widths[i]-2)
			}
			ln := 0
			if i == len(t.Header)-1 {
				ln = 1
			}
			pdf.CellFormat(t.Widths[i], 6, cell, "1", ln, "L", false, 0, "")
		}
	}
	return nil
}

// truncate shortens s with a trailing "..." until it fits width.
func truncate(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if pdf.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return ""
}
