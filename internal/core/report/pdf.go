package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"labqc/internal/core/analytics"
)

const (
	pdfMargin    = 20.0
	pdfFont      = "Helvetica"
	lineHeight   = 7.0
	subHeight    = 5.0
	keepWithNext = 40.0 // room a heading needs before it is pushed to the next page
	subIndent    = 15.0
	lineIndent   = 10.0
	footerSpace  = 25.0
)

// WritePDF renders s as an A4 PDF
func WritePDF(w io.Writer, s analytics.Snapshot) error {
	return newPDF(s, true).Output(w)
}

func newPDF(s analytics.Snapshot, compress bool) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, footerSpace)
	pdf.SetTitle("Analytics Report", true)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfMargin)
		pdf.SetFont(pdfFont, "", 10)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	title, period, generated := header(s)
	pdf.SetFont(pdfFont, "B", 20)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(5)
	pdf.SetFont(pdfFont, "", 12)
	pdf.CellFormat(0, lineHeight, period, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, lineHeight, generated, "", 1, "C", false, 0, "")

	_, pageH := pdf.GetPageSize()
	for _, sec := range layout(s) {
		pdf.Ln(10)
		if pdf.GetY()+keepWithNext >= pageH-footerSpace {
			pdf.AddPage()
		}
		pdf.SetFont(pdfFont, "B", 16)
		pdf.CellFormat(0, 10, sec.title, "", 1, "L", false, 0, "")

		pdf.SetFont(pdfFont, "", 12)
		for _, l := range sec.lines {
			h, indent := lineHeight, lineIndent
			if l.sub {
				h, indent = subHeight, subIndent
			}
			pdf.SetX(pdfMargin + indent)
			pdf.CellFormat(0, h, l.text, "", 1, "L", false, 0, "")
		}
	}
	return pdf
}
