// Package icon rasterizes the SVG icons attached to navigation index items.
package icon

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// ErrEmpty is returned for an empty SVG source.
var ErrEmpty = errors.New("icon: empty svg")

// Rasterize renders svg scaled to w×h pixels.
func Rasterize(svg string, w, h int) (*image.RGBA, error) {
	if strings.TrimSpace(svg) == "" {
		return nil, ErrEmpty
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("icon: invalid size %dx%d", w, h)
	}

	parsed, err := oksvg.ReadIconStream(strings.NewReader(svg), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("icon: parse: %w", err)
	}
	parsed.SetTarget(0, 0, float64(w), float64(h))

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	parsed.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return rgba, nil
}
