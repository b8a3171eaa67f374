package render

import (
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
)

var photoClient = http.Client{Timeout: 10 * time.Second}

// FetchPhoto downloads and decodes a candidate's pre-existing photo
// reference. Callers treat failure as "no photo" and fall back to the
// placeholder glyph.
func FetchPhoto(url string) (image.Image, error) {
	resp, err := photoClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching photo: status %d", resp.StatusCode)
	}
	img, err := imaging.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding photo: %w", err)
	}
	return img, nil
}

// LoadTemplate opens the poster background template from disk.
func LoadTemplate(path string) (image.Image, error) {
	return imaging.Open(path)
}
