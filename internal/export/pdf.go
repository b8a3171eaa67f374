package export

import (
	"image"

	"github.com/signintech/gopdf"
)

// A5 portrait page, in millimetres.
const (
	A5WidthMM  = 148.0
	A5HeightMM = 210.0
)

// A5Builder assembles an A5-portrait PDF with exactly one full-bleed
// image per page.
type A5Builder struct {
	pdf   *gopdf.GoPdf
	pages int
}

func NewA5Builder() *A5Builder {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{
		PageSize: gopdf.Rect{W: A5WidthMM, H: A5HeightMM},
		Unit:     gopdf.UnitMM,
	})
	return &A5Builder{pdf: pdf}
}

// AddPage places img scaled to the full page bounds on a fresh page.
func (b *A5Builder) AddPage(img image.Image) error {
	b.pdf.AddPage()
	if err := b.pdf.ImageFrom(img, 0, 0, &gopdf.Rect{W: A5WidthMM, H: A5HeightMM}); err != nil {
		return err
	}
	b.pages++
	return nil
}

// Pages reports how many pages have been placed.
func (b *A5Builder) Pages() int {
	return b.pages
}

// Output returns the assembled document bytes.
func (b *A5Builder) Output() ([]byte, error) {
	return b.pdf.GetBytesPdfReturnErr()
}
