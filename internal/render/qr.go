package render

import (
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

// QRImage renders text as a borderless QR raster for composition onto a
// card.
func QRImage(text string, size int) (image.Image, error) {
	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true
	return q.Image(size), nil
}
