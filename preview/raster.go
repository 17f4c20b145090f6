package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// maxRasterDim limits pixel size of rendered page so absurd page dimensions
// or dpi cannot exhaust memory.
var maxRasterDim = 8192

// rasterize draws SVG data into w by h image keeping aspect ratio of the
// viewBox.
func rasterize(svgData []byte, w, h int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, fmt.Errorf("unable to parse page drawing: %w", err)
	}

	w, h = max(w, 1), max(h, 1)
	if w > maxRasterDim || h > maxRasterDim {
		s := min(float64(maxRasterDim)/float64(w), float64(maxRasterDim)/float64(h))
		w = max(int(math.Round(float64(w)*s)), 1)
		h = max(int(math.Round(float64(h)*s)), 1)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}
