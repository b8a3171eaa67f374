package render

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts holds the parsed typefaces used by the compositors. When no TTF
// is configured the bundled Go faces are used, so rendering works with
// zero assets on disk.
type Fonts struct {
	regular *truetype.Font
	bold    *truetype.Font
	italic  *truetype.Font
}

// LoadFonts parses the font at path, or the bundled fallback faces when
// path is empty. A configured font replaces only the regular face.
func LoadFonts(path string) (*Fonts, error) {
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing bundled bold face: %w", err)
	}
	italic, err := truetype.Parse(goitalic.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing bundled italic face: %w", err)
	}
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing bundled regular face: %w", err)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading font %s: %w", path, err)
		}
		custom, err := truetype.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing font %s: %w", path, err)
		}
		regular = custom
	}
	return &Fonts{regular: regular, bold: bold, italic: italic}, nil
}

// Face returns the regular face at the given point size.
func (f *Fonts) Face(size float64) font.Face {
	return truetype.NewFace(f.regular, &truetype.Options{Size: size})
}

// BoldFace returns the bold face at the given point size.
func (f *Fonts) BoldFace(size float64) font.Face {
	return truetype.NewFace(f.bold, &truetype.Options{Size: size})
}

// ItalicFace returns the italic face at the given point size.
func (f *Fonts) ItalicFace(size float64) font.Face {
	return truetype.NewFace(f.italic, &truetype.Options{Size: size})
}
