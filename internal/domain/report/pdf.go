package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

var ErrRender = errors.New("report render failed")

const (
	pageWidth  = 210.0
	lineHeight = 7.0
	imageSide  = 50.0
	fontFamily = "report"
)

// Renderer dibuja un Document en A4. Sin FontFile usa Helvetica con la
// tabla cp1252: los caracteres fuera de esa tabla (tailandés) no se ven.
type Renderer struct {
	FontFile string
}

func NewRenderer(fontFile string) *Renderer {
	return &Renderer{FontFile: strings.TrimSpace(fontFile)}
}

func (r *Renderer) Render(d Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(XLabel, 15, XLabel)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetCreationDate(d.GeneratedAt)
	pdf.SetCreator("petcare", true)
	pdf.SetTitle(Title, true)

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if r != nil && r.FontFile != "" {
		pdf.AddUTF8Font(fontFamily, "", r.FontFile)
		if !pdf.Ok() {
			return nil, fmt.Errorf("%w: font %s: %v", ErrRender, r.FontFile, pdf.Error())
		}
		family = fontFamily
		tr = func(s string) string { return s }
	}

	pdf.AddPage()

	imageFailed := false
	for i, b := range d.Blocks {
		switch b.Kind {
		case KindTitle:
			pdf.SetFont(family, "", 16)
			pdf.CellFormat(0, 10, tr(b.Text), "", 1, "C", false, 0, "")
			pdf.SetFont(family, "", 12)

		case KindLine:
			if imageFailed && b.Text == ImageCaption {
				imageFailed = false
				continue
			}
			pdf.SetX(b.X)
			pdf.CellFormat(0, lineHeight, tr(b.Text), "", 1, "L", false, 0, "")

		case KindParagraph:
			pdf.SetX(b.X)
			pdf.MultiCell(pageWidth-XLabel-b.X, lineHeight, tr(b.Text), "", "L", false)

		case KindImage:
			name := fmt.Sprintf("img-%d", i)
			opts := fpdf.ImageOptions{ImageType: b.ImageType, ReadDpi: false}
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(b.Image))
			if !pdf.Ok() {
				// el render sigue con el aviso en lugar de la imagen
				pdf.ClearError()
				imageFailed = true
				pdf.SetX(XLabel)
				pdf.MultiCell(pageWidth-2*XLabel, lineHeight, tr(ImageFailed), "", "L", false)
				continue
			}
			h := b.Height
			if h <= 0 {
				h = imageSide
			}
			if pdf.GetY()+h > 297-15 {
				pdf.AddPage()
			}
			y := pdf.GetY()
			pdf.ImageOptions(name, b.X, y, h, h, false, opts, 0, "")
			pdf.SetY(y + h + 5)

		case KindGap:
			pdf.Ln(b.Height)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}
