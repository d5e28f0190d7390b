package export

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"

	"github.com/mesh-intelligence/journal/pkg/types"
)

// Document text.
const (
	DocumentTitle = "My Journal Archive"
	FooterText    = "Personal Journal App"
	EmptyText     = "No entries found for the selected range."
)

// HeadingLayout formats an entry date in the document body.
const HeadingLayout = "Monday, January 02, 2006"

// Page geometry in millimetres.
const (
	pageMargin  = 25.4
	lineHeight  = 5.5
	bodySize    = 11
	tagSize     = 9
	headingSize = 13
	titleSize   = 20
)

type rgb struct{ r, g, b int }

var (
	colorAccent = rgb{33, 150, 243}
	colorMuted  = rgb{158, 158, 158}
	colorTags   = rgb{117, 117, 117}
	colorRule   = rgb{224, 224, 224}
	colorText   = rgb{0, 0, 0}
)

// PDFRenderer renders entries as an A4 PDF archive.
type PDFRenderer struct {
	// Now stamps the "Generated on" line and the document creation date.
	// Defaults to time.Now.
	Now func() time.Time
}

// NewPDFRenderer returns a renderer using the wall clock.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{Now: time.Now}
}

// Render writes a PDF for entries, in the order given, to w.
func (r *PDFRenderer) Render(w io.Writer, entries []*types.Entry) error {
	now := time.Now()
	if r != nil && r.Now != nil {
		now = r.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := codePageText(pdf.UnicodeTranslatorFromDescriptor(""))
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(DocumentTitle, true)
	pdf.SetCreator(FooterText, true)
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetCatalogSort(true)

	pageWidth, pageHeight := pdf.GetPageSize()
	contentWidth := pageWidth - 2*pageMargin

	pdf.SetHeaderFunc(func() {
		setColor(pdf, colorAccent)
		pdf.SetFont("Helvetica", "B", titleSize)
		pdf.CellFormat(contentWidth, 9, tr(DocumentTitle), "", 1, "L", false, 0, "")
		setColor(pdf, colorMuted)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentWidth, 5, tr("Generated on "+now.Format("Jan 02, 2006")), "", 1, "L", false, 0, "")
		pdf.Ln(6)
	})

	pdf.SetFooterFunc(func() {
		y := pageHeight - pageMargin + 4
		pdf.SetDrawColor(colorRule.r, colorRule.g, colorRule.b)
		pdf.SetLineWidth(0.2)
		pdf.Line(pageMargin, y, pageWidth-pageMargin, y)
		pdf.SetY(y + 2)
		setColor(pdf, colorMuted)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentWidth/2, 5, tr(FooterText), "", 0, "L", false, 0, "")
		setColor(pdf, colorText)
		pdf.CellFormat(contentWidth/2, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	if len(entries) == 0 {
		setColor(pdf, colorText)
		pdf.SetFont("Helvetica", "I", bodySize)
		pdf.MultiCell(contentWidth, lineHeight, tr(EmptyText), "", "L", false)
		return output(pdf, w)
	}

	for _, e := range entries {
		if e == nil {
			continue
		}
		writeEntry(pdf, tr, e, contentWidth)
	}
	return output(pdf, w)
}

func writeEntry(pdf *fpdf.Fpdf, tr func(string) string, e *types.Entry, width float64) {
	// Date on the left, primary mood right-aligned on the same line.
	setColor(pdf, colorText)
	pdf.SetFont("Helvetica", "B", headingSize)
	moodWidth := 0.0
	if e.PrimaryMood != "" {
		pdf.SetFont("Helvetica", "I", bodySize)
		moodWidth = pdf.GetStringWidth(tr(e.PrimaryMood)) + 2
		pdf.SetFont("Helvetica", "B", headingSize)
	}
	pdf.CellFormat(width-moodWidth, 7, tr(e.EntryDate.Format(HeadingLayout)), "", 0, "L", false, 0, "")
	if moodWidth > 0 {
		setColor(pdf, colorAccent)
		pdf.SetFont("Helvetica", "I", bodySize)
		pdf.CellFormat(moodWidth, 7, tr(e.PrimaryMood), "", 0, "R", false, 0, "")
	}
	pdf.Ln(8)

	x, y := pdf.GetXY()
	pdf.SetDrawColor(colorRule.r, colorRule.g, colorRule.b)
	pdf.SetLineWidth(0.3)
	pdf.Line(x, y, x+width, y)
	pdf.Ln(2)

	if len(e.Tags) > 0 {
		setColor(pdf, colorText)
		pdf.SetFont("Helvetica", "B", tagSize)
		label := "Tags: "
		pdf.CellFormat(pdf.GetStringWidth(label), 4.5, label, "", 0, "L", false, 0, "")
		setColor(pdf, colorTags)
		pdf.SetFont("Helvetica", "", tagSize)
		pdf.MultiCell(0, 4.5, tr(strings.Join(e.Tags, ", ")), "", "L", false)
	}

	pdf.Ln(3)
	setColor(pdf, colorText)
	pdf.SetFont("Helvetica", "", bodySize)
	if text := StripHTML(e.Content); text != "" {
		pdf.MultiCell(width, lineHeight*1.5, tr(text), "", "L", false)
	}
	pdf.Ln(6)
}

// codePageText wraps a cp1252 translator so runes outside the code page
// print as '?' rather than as raw UTF-8 bytes. The core fonts carry no
// glyphs beyond cp1252.
func codePageText(tr func(string) string) func(string) string {
	return func(s string) string {
		var b strings.Builder
		for _, r := range s {
			if r < utf8.RuneSelf {
				b.WriteRune(r)
				continue
			}
			out := tr(string(r))
			if len(out) != 1 {
				b.WriteByte('?')
				continue
			}
			b.WriteString(out)
		}
		return b.String()
	}
}

func setColor(pdf *fpdf.Fpdf, c rgb) {
	pdf.SetTextColor(c.r, c.g, c.b)
}

func output(pdf *fpdf.Fpdf, w io.Writer) error {
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
