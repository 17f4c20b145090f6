package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"go.uber.org/multierr"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"reflow/layout"
	"reflow/model"
)

// Fonts provides faces used for layout so preview shows exactly what was
// measured.
type Fonts interface {
	Font(family layout.Family) *sfnt.Font
}

type faceKey struct {
	family layout.Family
	size   float64
}

// Renderer draws pages into PNG images. Not safe for concurrent use.
type Renderer struct {
	fonts Fonts
	dpi   float64
	faces map[faceKey]font.Face
}

func NewRenderer(fonts Fonts, dpi int) *Renderer {
	if dpi <= 0 {
		dpi = 72
	}
	return &Renderer{
		fonts: fonts,
		dpi:   float64(dpi),
		faces: make(map[faceKey]font.Face),
	}
}

func (r *Renderer) face(bold bool, size float64) (font.Face, error) {
	family := layout.Regular
	if bold {
		family = layout.Bold
	}
	key := faceKey{family: family, size: size}
	if f, ok := r.faces[key]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(r.fonts.Font(family), &opentype.FaceOptions{
		Size:    size,
		DPI:     r.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create %s face of size %.2f: %w", family, size, err)
	}
	r.faces[key] = f
	return f, nil
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// PNG renders page frames with oksvg and draws text over them with the
// layout fonts.
func (r *Renderer) PNG(page *model.Page) ([]byte, error) {
	scale := r.dpi / 72
	w, h := pageSize(page)

	doc := document(page, false)
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("unable to prepare page %d drawing: %w", page.Number, err)
	}
	img, err := rasterize(data, int(math.Ceil(w*scale)), int(math.Ceil(h*scale)))
	if err != nil {
		return nil, err
	}
	// rasterize may have clamped the size
	scale = float64(img.Bounds().Dx()) / w

	for _, b := range page.Blocks {
		for _, l := range b.Lines {
			for _, p := range l.Pieces {
				if p.Text == "" || p.Size <= 0 {
					continue
				}
				face, err := r.face(p.Bold, p.Size*scale*72/r.dpi)
				if err != nil {
					return nil, err
				}
				d := font.Drawer{
					Dst:  img,
					Src:  image.Black,
					Face: face,
					Dot:  fixed.Point26_6{X: toFixed(p.X * scale), Y: toFixed(l.Y * scale)},
				}
				d.DrawString(p.Text)
			}
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return nil, fmt.Errorf("unable to encode page %d preview: %w", page.Number, err)
	}
	return buf.Bytes(), nil
}

// Close releases cached faces.
func (r *Renderer) Close() error {
	var err error
	for k, f := range r.faces {
		err = multierr.Append(err, f.Close())
		delete(r.faces, k)
	}
	return err
}
