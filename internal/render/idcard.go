package render

import (
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/festie/shefest-tools/internal/candidates"
)

// Reference card size, A5 aspect (1:1.414).
const (
	cardRefW = 420.0
	cardRefH = 594.0
)

// Card palette.
const (
	cardOrange     = "#fe8d00"
	cardDeepOrange = "#ff4c01"
	cardInk        = "#1f2937"
	cardChipText   = "#374151"
)

const cardTitle = "SHEFEST MAHDIYYAH"

// IDCard composes one printable candidate card. A nil Photo draws the
// placeholder glyph instead of failing.
type IDCard struct {
	Candidate candidates.Candidate
	Photo     image.Image
	Fonts     *Fonts
}

// Render rasterizes the card at the given pixel-density multiplier.
func (card IDCard) Render(scale int) (image.Image, error) {
	k := float64(scale)
	w := cardRefW * k
	h := cardRefH * k

	dc := gg.NewContext(int(w), int(h))
	dc.SetHexColor("#ffffff")
	dc.Clear()

	card.drawHeader(dc, k, w)
	card.drawPhotoBox(dc, k, w)
	card.drawIdentity(dc, k, w)
	card.drawPrograms(dc, k, w, h)

	if err := card.drawQR(dc, k, w, h); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func (card IDCard) drawHeader(dc *gg.Context, k, w float64) {
	grad := gg.NewLinearGradient(0, 0, w, 0)
	grad.AddColorStop(0, hexColor(cardOrange))
	grad.AddColorStop(1, hexColor(cardDeepOrange))
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, 64*k)
	dc.Fill()

	dc.SetHexColor("#ffffff")
	dc.SetFontFace(card.Fonts.BoldFace(20 * k))
	dc.DrawStringAnchored(cardTitle, w/2, 27*k, 0.5, 0.5)

	if card.Candidate.Section != "" {
		dc.SetFontFace(card.Fonts.Face(11 * k))
		dc.DrawStringAnchored(strings.ToUpper(card.Candidate.Section), w/2, 49*k, 0.5, 0.5)
	}
}

// drawPhotoBox renders the passport-ratio (35:45) photo slot.
func (card IDCard) drawPhotoBox(dc *gg.Context, k, w float64) {
	boxW, boxH := 132*k, 170*k
	x := (w - boxW) / 2
	y := 84 * k

	if card.Photo != nil {
		photo := imaging.Fill(card.Photo, int(boxW), int(boxH), imaging.Center, imaging.Lanczos)
		dc.DrawImage(photo, int(x), int(y))
	} else {
		// Faint gradient backdrop with a person silhouette.
		grad := gg.NewLinearGradient(x, y, x+boxW, y+boxH)
		grad.AddColorStop(0, hexColorAlpha(cardOrange, 0.2))
		grad.AddColorStop(1, hexColorAlpha(cardDeepOrange, 0.2))
		dc.SetFillStyle(grad)
		dc.DrawRectangle(x, y, boxW, boxH)
		dc.Fill()

		dc.Push()
		dc.DrawRectangle(x, y, boxW, boxH)
		dc.Clip()
		dc.SetRGBA(254.0/255, 141.0/255, 0, 0.5)
		dc.DrawCircle(x+boxW/2, y+66*k, 26*k)
		dc.Fill()
		dc.DrawEllipse(x+boxW/2, y+150*k, 46*k, 34*k)
		dc.Fill()
		dc.ResetClip()
		dc.Pop()
	}

	dc.SetHexColor(cardOrange)
	dc.SetLineWidth(2 * k)
	dc.DrawRectangle(x, y, boxW, boxH)
	dc.Stroke()
}

func (card IDCard) drawIdentity(dc *gg.Context, k, w float64) {
	// Chest-number pill, rendered verbatim.
	if card.Candidate.ChestNo != "" {
		dc.SetFontFace(card.Fonts.BoldFace(12 * k))
		tw, _ := dc.MeasureString(card.Candidate.ChestNo)
		pillW, pillH := tw+28*k, 22*k
		px := (w - pillW) / 2
		py := 268 * k
		dc.SetHexColor(cardDeepOrange)
		dc.DrawRoundedRectangle(px, py, pillW, pillH, pillH/2)
		dc.Fill()
		dc.SetHexColor("#ffffff")
		dc.DrawStringAnchored(card.Candidate.ChestNo, w/2, py+pillH/2, 0.5, 0.5)
	}

	if card.Candidate.Name != "" {
		dc.SetFontFace(card.Fonts.ItalicFace(19 * k))
		dc.SetHexColor(cardInk)
		dc.DrawStringWrapped(candidates.DisplayName(card.Candidate.Name),
			w/2, 306*k, 0.5, 0.5, w-80*k, 1.1, gg.AlignCenter)
	}

	if card.Candidate.StudyCentre != "" {
		dc.SetFontFace(card.Fonts.Face(10 * k))
		centre := strings.ToUpper(card.Candidate.StudyCentre)
		tw, _ := dc.MeasureString(centre)
		pillW, pillH := tw+32*k, 20*k
		px := (w - pillW) / 2
		py := 330 * k
		dc.SetColor(hexColorAlpha(cardOrange, 0.1))
		dc.DrawRoundedRectangle(px, py, pillW, pillH, pillH/2)
		dc.Fill()
		dc.SetHexColor(cardDeepOrange)
		dc.DrawStringAnchored(centre, w/2, py+pillH/2, 0.5, 0.5)
	}

	// Divider.
	dc.SetColor(hexColorAlpha(cardOrange, 0.2))
	dc.SetLineWidth(2 * k)
	dc.DrawLine(40*k, 364*k, w-40*k, 364*k)
	dc.Stroke()
}

// drawPrograms lays out the program chips in centered rows, ordered
// ascending by program-name length (stable).
func (card IDCard) drawPrograms(dc *gg.Context, k, w, h float64) {
	dc.SetFontFace(card.Fonts.BoldFace(11 * k))
	dc.SetHexColor(cardDeepOrange)
	dc.DrawStringAnchored("PROGRAMS", w/2, 382*k, 0.5, 0.5)

	programs := candidates.SortedPrograms(card.Candidate.Programs)
	if len(programs) == 0 {
		return
	}

	const sep = " - "
	pad := 8 * k
	gap := 6 * k
	chipH := 22 * k
	maxRowW := w - 48*k
	bottom := h - 72*k

	type chip struct {
		code, name   string
		codeW, restW float64
	}
	chips := make([]chip, 0, len(programs))
	dc.SetFontFace(card.Fonts.Face(10 * k))
	for _, p := range programs {
		ch := chip{code: p.ProgramCode, name: candidates.DisplayName(p.ProgramName)}
		cw, _ := dc.MeasureString(ch.code)
		rw, _ := dc.MeasureString(sep + ch.name)
		ch.codeW, ch.restW = cw, rw
		chips = append(chips, ch)
	}

	chipW := func(ch chip) float64 { return ch.codeW + ch.restW + 2*pad }

	y := 396 * k
	for i := 0; i < len(chips); {
		rowW := 0.0
		j := i
		for j < len(chips) {
			cw := chipW(chips[j])
			next := rowW + cw
			if j > i {
				next += gap
			}
			if j > i && next > maxRowW {
				break
			}
			rowW = next
			j++
		}
		if y+chipH > bottom {
			break
		}
		x := (w - rowW) / 2
		for ; i < j; i++ {
			ch := chips[i]
			cw := chipW(ch)
			dc.SetColor(hexColorAlpha(cardDeepOrange, 0.08))
			dc.DrawRoundedRectangle(x, y, cw, chipH, 6*k)
			dc.Fill()
			dc.SetHexColor(cardDeepOrange)
			dc.DrawString(ch.code, x+pad, y+chipH/2+3.5*k)
			dc.SetHexColor(cardChipText)
			dc.DrawString(sep+ch.name, x+pad+ch.codeW, y+chipH/2+3.5*k)
			x += cw + gap
		}
		y += chipH + gap
	}
}

// drawQR places a verification QR carrying the chest number in the
// bottom-right corner.
func (card IDCard) drawQR(dc *gg.Context, k, w, h float64) error {
	if card.Candidate.ChestNo == "" {
		return nil
	}
	size := int(48 * k)
	qr, err := QRImage(card.Candidate.ChestNo, size)
	if err != nil {
		return err
	}
	dc.DrawImage(qr, int(w-60*k), int(h-60*k))
	return nil
}
