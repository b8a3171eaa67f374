// Package export converts composed posters and cards into downloadable
// artifacts: single PNG captures and multi-page PDF documents.
package export

import (
	"errors"
	"fmt"
	"image"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/festie/shefest-tools/internal/render"
	"github.com/festie/shefest-tools/internal/util"
)

// CaptureScale is the pixel-density multiplier applied to every capture,
// compensating for the low on-screen reference resolution.
const CaptureScale = 3

// ErrBusy is returned when a batch export is requested while another one
// is still running.
var ErrBusy = errors.New("export: another batch export is in flight")

// Target renders a composed region to a raster at a pixel-density
// multiplier.
type Target interface {
	Render(scale int) (image.Image, error)
}

// DocumentBuilder accumulates full-bleed pages, one per capture, and
// produces the final document bytes in memory.
type DocumentBuilder interface {
	AddPage(img image.Image) error
	Output() ([]byte, error)
}

// Exporter sequences captures. A single busy flag guards batch exports:
// only one document may be assembled at a time, regardless of caller.
type Exporter struct {
	log  *log.Logger
	busy atomic.Bool
}

func New(logger *log.Logger) *Exporter {
	return &Exporter{log: logger}
}

// PNG captures a single target at CaptureScale and encodes it.
func (e *Exporter) PNG(t Target) ([]byte, error) {
	img, err := t.Render(CaptureScale)
	if err != nil {
		return nil, fmt.Errorf("capturing image: %w", err)
	}
	return render.EncodePNG(img)
}

// Document captures each non-nil target in input order and appends one
// page per capture. Nil targets are skipped with a warning, never a
// blank page. Any capture or builder failure aborts the batch before a
// document is produced, so no partial artifact exists. Captures run
// strictly sequentially to keep page order and bound peak memory.
func (e *Exporter) Document(targets []Target, b DocumentBuilder) ([]byte, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer e.busy.Store(false)

	for i, t := range targets {
		if t == nil {
			e.log.Warn("skipping empty capture target", "index", i)
			continue
		}
		img, err := t.Render(CaptureScale)
		if err != nil {
			return nil, fmt.Errorf("capturing page %d: %w", i, err)
		}
		if err := b.AddPage(img); err != nil {
			return nil, fmt.Errorf("placing page %d: %w", i, err)
		}
	}
	return b.Output()
}

// PosterFilename is the generic poster download name.
const PosterFilename = "poster.png"

// CardFilename names a single-card PNG after the candidate.
func CardFilename(candidateName string) string {
	return util.SafeFilename(candidateName, "card") + ".png"
}

// CardsPDFFilename names the batch document after the study centre.
func CardsPDFFilename(centre string) string {
	return util.SafeFilename(centre, "centre") + "_ID_Cards.pdf"
}
