package render

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/hexlattice/internal/pattern"
)

// DefaultSupersample is the oversampling factor used when RasterOptions
// leaves Supersample at zero. Drawing at 4x and downscaling with a Lanczos
// filter anti-aliases the hexagon edges.
const DefaultSupersample = 4

// RasterOptions controls rasterization quality.
type RasterOptions struct {
	// Supersample is the oversampling factor; 0 selects
	// DefaultSupersample, 1 disables supersampling.
	Supersample int
}

// Rasterize draws a pattern into an RGBA image at its canvas resolution.
// Transparent patterns keep an alpha channel; otherwise the canvas is
// cleared to the pattern's background color first.
func Rasterize(p *pattern.Pattern, opts RasterOptions) (image.Image, error) {
	ss := opts.Supersample
	if ss == 0 {
		ss = DefaultSupersample
	}
	if ss < 1 {
		return nil, fmt.Errorf("render: supersample factor %d must be positive", opts.Supersample)
	}

	dc := gg.NewContext(p.Width*ss, p.Height*ss)
	if !p.Transparent {
		bg, err := colorful.Hex(p.Background)
		if err != nil {
			return nil, fmt.Errorf("render: background color %q: %w", p.Background, err)
		}
		dc.SetRGB(bg.R, bg.G, bg.B)
		dc.Clear()
	}

	f := float64(ss)
	for _, h := range p.Hexagons {
		fill, err := colorful.Hex(h.FillHex)
		if err != nil {
			return nil, fmt.Errorf("render: fill color %q: %w", h.FillHex, err)
		}
		dc.MoveTo(h.Vertices[0].X*f, h.Vertices[0].Y*f)
		for _, v := range h.Vertices[1:] {
			dc.LineTo(v.X*f, v.Y*f)
		}
		dc.ClosePath()
		dc.SetRGBA(fill.R, fill.G, fill.B, h.Opacity)
		dc.Fill()
	}

	img := dc.Image()
	if ss > 1 {
		img = imaging.Resize(img, p.Width, p.Height, imaging.Lanczos)
	}
	return img, nil
}

// EncodePNG rasterizes the pattern and writes it as PNG.
func EncodePNG(w io.Writer, p *pattern.Pattern, opts RasterOptions) error {
	img, err := Rasterize(p, opts)
	if err != nil {
		return err
	}
	return imaging.Encode(w, img, imaging.PNG)
}

// EncodeJPEG rasterizes the pattern and writes it as JPEG at quality 99.
// JPEG has no alpha channel, so transparent patterns are flattened over
// the pattern's background color.
func EncodeJPEG(w io.Writer, p *pattern.Pattern, opts RasterOptions) error {
	img, err := Rasterize(p, opts)
	if err != nil {
		return err
	}
	if p.Transparent {
		bg, err := colorful.Hex(p.Background)
		if err != nil {
			return fmt.Errorf("render: background color %q: %w", p.Background, err)
		}
		flat := imaging.New(p.Width, p.Height, bg)
		img = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)
	}
	return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(99))
}

// SavePNG writes the rasterized pattern to a PNG file.
func SavePNG(path string, p *pattern.Pattern, opts RasterOptions) error {
	return saveWith(path, p, opts, EncodePNG)
}

// SaveJPEG writes the rasterized pattern to a JPEG file.
func SaveJPEG(path string, p *pattern.Pattern, opts RasterOptions) error {
	return saveWith(path, p, opts, EncodeJPEG)
}

func saveWith(path string, p *pattern.Pattern, opts RasterOptions, encode func(io.Writer, *pattern.Pattern, RasterOptions) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	if err := encode(f, p, opts); err != nil {
		f.Close()
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	return f.Close()
}
