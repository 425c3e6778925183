package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a basic tabular PDF. Marks sheets carry
// one column per subject, so wide datasets switch to landscape.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// landscapeThreshold is the column count past which portrait cells get too
// narrow for subject names and scores.
const landscapeThreshold = 8

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	orientation, tableWidth := "P", 190.0
	if len(data.Headers) > landscapeThreshold {
		orientation, tableWidth = "L", 277.0
	}
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	colWidth := tableWidth / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			value := row[header]
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Document builds card-style PDFs (report cards, admit cards) section by
// section: a centred letterhead, key/value blocks, tables and free text.
type Document struct {
	pdf *gofpdf.Fpdf
}

// NewDocument starts an empty A4 portrait document.
func NewDocument() *Document {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 14, 12)
	return &Document{pdf: pdf}
}

// AddPage starts a new page.
func (d *Document) AddPage() {
	d.pdf.AddPage()
}

// Letterhead renders the school identity block at the top of the page.
func (d *Document) Letterhead(name string, lines ...string) {
	d.pdf.SetFont("Arial", "B", 16)
	d.pdf.CellFormat(0, 9, name, "", 1, "C", false, 0, "")
	d.pdf.SetFont("Arial", "", 9)
	for _, line := range lines {
		if line == "" {
			continue
		}
		d.pdf.CellFormat(0, 5, line, "", 1, "C", false, 0, "")
	}
	d.pdf.Ln(2)
}

// SectionTitle renders a bold centred section heading.
func (d *Document) SectionTitle(title string) {
	d.pdf.SetFont("Arial", "B", 12)
	d.pdf.CellFormat(0, 8, strings.ToUpper(title), "", 1, "C", false, 0, "")
	d.pdf.Ln(1)
}

// KeyValues renders label/value pairs two per line.
func (d *Document) KeyValues(pairs [][2]string) {
	half := 93.0
	for i := 0; i < len(pairs); i += 2 {
		d.pdf.SetFont("Arial", "B", 9)
		d.pdf.CellFormat(28, 6, pairs[i][0], "", 0, "", false, 0, "")
		d.pdf.SetFont("Arial", "", 9)
		d.pdf.CellFormat(half-28, 6, pairs[i][1], "", 0, "", false, 0, "")
		if i+1 < len(pairs) {
			d.pdf.SetFont("Arial", "B", 9)
			d.pdf.CellFormat(28, 6, pairs[i+1][0], "", 0, "", false, 0, "")
			d.pdf.SetFont("Arial", "", 9)
			d.pdf.CellFormat(half-28, 6, pairs[i+1][1], "", 0, "", false, 0, "")
		}
		d.pdf.Ln(-1)
	}
	d.pdf.Ln(2)
}

// Table renders a bordered table with the given column widths. Widths must
// match the header count; rows shorter than the header row are padded.
func (d *Document) Table(headers []string, widths []float64, rows [][]string) {
	d.pdf.SetFont("Arial", "B", 9)
	for i, header := range headers {
		d.pdf.CellFormat(widths[i], 7, header, "1", 0, "C", false, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		for i := range headers {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			d.pdf.CellFormat(widths[i], 6.5, value, "1", 0, "C", false, 0, "")
		}
		d.pdf.Ln(-1)
	}
	d.pdf.Ln(2)
}

// Paragraph renders wrapped free text.
func (d *Document) Paragraph(text string) {
	d.pdf.SetFont("Arial", "", 9)
	d.pdf.MultiCell(0, 5, text, "", "", false)
	d.pdf.Ln(1)
}

// Output finalises the document into PDF bytes.
func (d *Document) Output() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := d.pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
