package render

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/festie/shefest-tools/internal/candidates"
)

// PosterLayout fixes the absolute positions of the dynamic poster fields
// against a reference template width. Two hand-tuned variants exist
// rather than a responsive formula; both preserve the original visual
// proportions.
type PosterLayout struct {
	Name string

	// RefWidth is the template pixel width the offsets below are
	// expressed against.
	RefWidth float64

	NameTop      float64
	NameSize     float64
	NameMaxWidth float64

	PhotoTop    float64
	PhotoLeft   float64
	PhotoWidth  float64
	PhotoRadius float64
}

var (
	// LayoutSmall matches the narrow-viewport reference layout.
	LayoutSmall = PosterLayout{
		Name:     "small",
		RefWidth: 320,

		NameTop:      317,
		NameSize:     13,
		NameMaxWidth: 176,

		PhotoTop:    199.2,
		PhotoLeft:   111,
		PhotoWidth:  100.8,
		PhotoRadius: 24,
	}

	// LayoutLarge matches the wide-viewport reference layout.
	LayoutLarge = PosterLayout{
		Name:     "large",
		RefWidth: 320,

		NameTop:      275.2,
		NameSize:     13,
		NameMaxWidth: 176,

		PhotoTop:    172.8,
		PhotoLeft:   98,
		PhotoWidth:  88,
		PhotoRadius: 24,
	}
)

// LayoutByName resolves a layout variant by its name.
func LayoutByName(name string) (PosterLayout, bool) {
	switch name {
	case "small":
		return LayoutSmall, true
	case "large":
		return LayoutLarge, true
	}
	return PosterLayout{}, false
}

// Poster composes the campaign poster: template background, the cropped
// photo behind the template overlay, and the entrant's name on top.
// Missing fields render nothing; the compositor does not validate them.
type Poster struct {
	Template image.Image
	Name     string
	Photo    image.Image
	Layout   PosterLayout
	Fonts    *Fonts
}

// Render rasterizes the poster at the given pixel-density multiplier.
func (p Poster) Render(scale int) (image.Image, error) {
	k := float64(scale)
	outW := int(p.Layout.RefWidth * k)
	tpl := imaging.Resize(p.Template, outW, 0, imaging.Lanczos)
	outH := tpl.Bounds().Dy()

	dc := gg.NewContext(outW, outH)
	dc.DrawImage(tpl, 0, 0)

	if p.Photo != nil {
		w := p.Layout.PhotoWidth * k
		h := w * PosterAspectH / PosterAspectW
		x := p.Layout.PhotoLeft * k
		y := p.Layout.PhotoTop * k
		photo := imaging.Fill(p.Photo, int(w), int(h), imaging.Center, imaging.Lanczos)
		dc.DrawRoundedRectangle(x, y, w, h, p.Layout.PhotoRadius*k)
		dc.Clip()
		dc.DrawImage(photo, int(x), int(y))
		dc.ResetClip()
	}

	// The template is layered again on top so its artwork frames the
	// photo; the name stays above both.
	dc.DrawImage(tpl, 0, 0)

	if p.Name != "" {
		dc.SetFontFace(p.Fonts.Face(p.Layout.NameSize * k))
		dc.SetHexColor("#000000")
		dc.DrawStringWrapped(candidates.DisplayName(p.Name),
			float64(outW)/2, p.Layout.NameTop*k, 0.5, 0.5,
			p.Layout.NameMaxWidth*k, 1.1, gg.AlignCenter)
	}

	return dc.Image(), nil
}
