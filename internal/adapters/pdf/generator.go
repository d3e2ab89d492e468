// Package pdf renders a one-page receipt for a recorded paper submission:
// a header bar, the seller's details, the paper's title and summary, and the
// uploaded file's metadata.
package pdf

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/unicode/norm"

	"github.com/academlist/seller-portal/internal/domain"
)

const utf8Family = "receipt"

// Receipts generates submission receipts. With a TTF font configured the
// seller's text is embedded as UTF-8, so Hebrew renders; without one the
// core Helvetica font is used and characters outside cp1252 are lost.
type Receipts struct {
	fontPath string
}

// NewReceipts returns a generator. fontPath may be empty.
func NewReceipts(fontPath string) *Receipts {
	return &Receipts{fontPath: fontPath}
}

// Generate writes the receipt for s to w.
func (g *Receipts) Generate(s *domain.Submission, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)

	family := "Helvetica"
	var encode func(string) string
	if g.fontPath != "" {
		pdf.AddUTF8Font(utf8Family, "", g.fontPath)
		pdf.AddUTF8Font(utf8Family, "B", g.fontPath)
		family = utf8Family
	} else {
		encode = pdf.UnicodeTranslatorFromDescriptor("")
	}
	text := composed(encode)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("load receipt font: %w", err)
	}

	pdf.AddPage()
	drawReceipt(pdf, family, text, s)
	return pdf.Output(w)
}

// composed returns a text mapper that precomposes combining marks before
// encoding. fpdf draws one glyph per rune with no shaping, and the cp1252
// translator only knows precomposed letters. encode may be nil.
func composed(encode func(string) string) func(string) string {
	return func(s string) string {
		s = norm.NFC.String(s)
		if encode != nil {
			s = encode(s)
		}
		return s
	}
}

func drawReceipt(pdf *fpdf.Fpdf, family string, text func(string) string, s *domain.Submission) {
	pageW, pageH := pdf.GetPageSize()
	marginL, marginT, marginR, marginB := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// ── Header bar ───────────────────────────────────────────────────────────
	pdf.SetFillColor(22, 101, 52)
	pdf.Rect(marginL, marginT, contentW, 12, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginL+3, marginT+2.5)
	pdf.CellFormat(contentW-6, 7, "ACADEMLIST  SUBMISSION RECEIPT", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginL+3, marginT+2.5)
	pdf.CellFormat(contentW-6, 7, fmt.Sprintf("No. %06d", s.ID), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	y := marginT + 17

	section := func(title string) {
		pdf.SetFillColor(240, 240, 240)
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetXY(marginL, y)
		pdf.CellFormat(contentW, 5.5, title, "LRT", 1, "L", true, 0, "")
		y += 5.5
	}
	row := func(label, value, border string) {
		pdf.SetXY(marginL, y)
		pdf.SetFont("Helvetica", "", 8.5)
		pdf.CellFormat(35, 6.5, label, border, 0, "L", false, 0, "")
		pdf.SetFont(family, "", 10)
		right := "R"
		if len(border) > 1 {
			right = "RB"
		}
		pdf.CellFormat(contentW-35, 6.5, text(value), right, 1, "L", false, 0, "")
		y += 6.5
	}

	// ── Seller ───────────────────────────────────────────────────────────────
	section("SELLER")
	row("Name", s.Fields.Name, "L")
	row("Email", s.Fields.Email, "LB")
	y += 4

	// ── Paper ────────────────────────────────────────────────────────────────
	section("PAPER")
	row("Title", s.Fields.Title, "L")
	pdf.SetXY(marginL, y)
	pdf.SetFont("Helvetica", "", 8.5)
	pdf.CellFormat(contentW, 6, "Summary", "LR", 1, "L", false, 0, "")
	y += 6
	pdf.SetXY(marginL, y)
	pdf.SetFont(family, "", 9.5)
	pdf.MultiCell(contentW, 5, text(s.Fields.Summary), "LRB", "L", false)
	y = pdf.GetY() + 4

	// ── File ─────────────────────────────────────────────────────────────────
	section("FILE")
	row("Name", s.File.Name, "L")
	row("Type", fileKind(s.File.MediaType), "L")
	row("Size", sizeToDisplay(s.File.Size), "LB")
	y += 4

	pdf.SetXY(marginL, y)
	pdf.SetFont("Helvetica", "I", 8.5)
	pdf.MultiCell(contentW, 4.5,
		"The paper will be reviewed by our team before it is published. "+
			"Terms of use accepted at submission time.", "", "L", false)

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.SetXY(marginL, pageH-marginB-6)
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(contentW/2, 5, "Generated by Academlist", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "Received "+s.CreatedAt.UTC().Format("2006-01-02 15:04 MST"), "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func fileKind(mediaType string) string {
	switch mediaType {
	case domain.MediaTypePDF:
		return "PDF"
	case domain.MediaTypeDOC, domain.MediaTypeDOCX:
		return "Word"
	case domain.MediaTypePPT, domain.MediaTypePPTX:
		return "PowerPoint"
	default:
		return mediaType
	}
}

// sizeToDisplay renders a byte count as B, KB or MB with one decimal.
func sizeToDisplay(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
