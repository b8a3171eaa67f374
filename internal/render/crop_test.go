package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func TestCropIsIdempotent(t *testing.T) {
	src := gradientImage(200, 200)
	region := CropRegion{X: 10, Y: 20, Width: 100, Height: 110}

	first, err := Crop(src, region)
	require.NoError(t, err)
	second, err := Crop(src, region)
	require.NoError(t, err)

	a, err := EncodePNG(first)
	require.NoError(t, err)
	b, err := EncodePNG(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 100, first.Bounds().Dx())
	assert.Equal(t, 110, first.Bounds().Dy())
}

func TestCropRejectsZeroArea(t *testing.T) {
	src := gradientImage(50, 50)

	_, err := Crop(src, CropRegion{X: 0, Y: 0, Width: 0, Height: 10})
	assert.Error(t, err)

	_, err = Crop(src, CropRegion{X: 0, Y: 0, Width: 10, Height: -1})
	assert.Error(t, err)
}

func TestCropRejectsOutOfBounds(t *testing.T) {
	src := gradientImage(50, 50)

	_, err := Crop(src, CropRegion{X: 40, Y: 0, Width: 20, Height: 20})
	assert.Error(t, err)

	_, err = Crop(src, CropRegion{X: -1, Y: 0, Width: 10, Height: 10})
	assert.Error(t, err)
}

func TestMatchesPosterAspect(t *testing.T) {
	assert.True(t, CropRegion{Width: 400, Height: 440}.MatchesPosterAspect())
	assert.True(t, CropRegion{Width: 100, Height: 110}.MatchesPosterAspect())
	assert.False(t, CropRegion{Width: 100, Height: 100}.MatchesPosterAspect())
	assert.False(t, CropRegion{Width: 0, Height: 0}.MatchesPosterAspect())
}
