package report

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer writes the whole-unit summary table followed by the heavy goods table
// on A4 pages.
type PDFRenderer struct{}

func (PDFRenderer) Format() string      { return "pdf" }
func (PDFRenderer) ContentType() string { return "application/pdf" }
func (PDFRenderer) FileName() string    { return "balanco-mensal.pdf" }

func (PDFRenderer) Render(w io.Writer, r *Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(16, 16, 16)
	pdf.SetAutoPageBreak(true, 16)
	pdf.SetCreationDate(r.GeneratedAt)
	pdf.SetTitle(r.Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(r.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(68, 68, 68)
	pdf.CellFormat(0, 6, tr(IssuedLine(r.GeneratedAt)), "", 1, "C", false, 0, "")
	pdf.SetTextColor(17, 17, 17)
	pdf.Ln(4)

	if r.Empty() {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 8, tr("Nenhum produto lançado."), "", 1, "L", false, 0, "")
	}
	for _, t := range []*Table{r.Summary, r.Heavy} {
		if t != nil {
			pdfTable(pdf, tr, t)
		}
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func pdfTable(pdf *gofpdf.Fpdf, tr func(string) string, t *Table) {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	// The product column takes a third of the width when there are many sectors.
	nameWidth := usable / 3
	if len(t.Headers) <= 2 {
		nameWidth = usable * 2 / 3
	}
	cellWidth := (usable - nameWidth) / float64(len(t.Headers)-1)
	width := func(col int) float64 {
		if col == 0 {
			return nameWidth
		}
		return cellWidth
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 9, tr(t.Title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(234, 234, 234)
	for i, h := range t.Headers {
		pdf.CellFormat(width(i), 7, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range t.Rows {
		for i, cell := range row {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(width(i), 6, tr(cell), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}
