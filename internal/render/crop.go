package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// Poster photos are cropped at a fixed 4:4.4 aspect.
const (
	PosterAspectW = 4.0
	PosterAspectH = 4.4

	aspectTolerance = 0.02
)

// ErrOutOfAspect is returned when a confirmed crop region does not match
// the poster photo aspect.
var ErrOutOfAspect = errors.New("render: crop region is not 4:4.4")

// CropRegion is a rectangle in source-image pixel space.
type CropRegion struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Validate checks that the region has positive size and lies entirely
// within bounds.
func (r CropRegion) Validate(bounds image.Rectangle) error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("render: crop region %dx%d has no area", r.Width, r.Height)
	}
	rect := r.rect(bounds)
	if !rect.In(bounds) {
		return fmt.Errorf("render: crop region %v outside source bounds %v", rect, bounds)
	}
	return nil
}

// MatchesPosterAspect reports whether the region is 4:4.4 within a small
// tolerance, since the region arrives in whole pixels.
func (r CropRegion) MatchesPosterAspect() bool {
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}
	want := PosterAspectW / PosterAspectH
	got := float64(r.Width) / float64(r.Height)
	return got > want-aspectTolerance && got < want+aspectTolerance
}

func (r CropRegion) rect(bounds image.Rectangle) image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height).Add(bounds.Min)
}

// Crop extracts the region from src as a freshly allocated raster. The
// operation is deterministic: the same source and region always produce
// pixel-identical output.
func Crop(src image.Image, region CropRegion) (*image.NRGBA, error) {
	if err := region.Validate(src.Bounds()); err != nil {
		return nil, err
	}
	return imaging.Crop(src, region.rect(src.Bounds())), nil
}

// EncodePNG losslessly encodes img.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
