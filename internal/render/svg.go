package render

import (
	"fmt"
	"io"
	"os"

	svg "github.com/ajstarks/svgo/float"

	"github.com/ironsheep/hexlattice/internal/pattern"
)

// errWriter tracks the first write failure so the SVG canvas, which does
// not surface write errors itself, can still report one.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(b []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(b)
	if err != nil {
		ew.err = err
	}
	return n, err
}

// WriteSVG serializes a pattern as an SVG document: an optional background
// rect followed by one polygon element per hexagon, in pattern order.
func WriteSVG(w io.Writer, p *pattern.Pattern) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	canvas.Start(float64(p.Width), float64(p.Height))
	if !p.Transparent {
		canvas.Rect(0, 0, float64(p.Width), float64(p.Height), "fill:"+p.Background)
	}

	xs := make([]float64, 6)
	ys := make([]float64, 6)
	for _, h := range p.Hexagons {
		for i, v := range h.Vertices {
			xs[i] = v.X
			ys[i] = v.Y
		}
		canvas.Polygon(xs, ys, fmt.Sprintf("fill:%s;fill-opacity:%.4f", h.FillHex, h.Opacity))
	}
	canvas.End()

	return ew.err
}

// SaveSVG writes the pattern to an SVG file.
func SaveSVG(path string, p *pattern.Pattern) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	if err := WriteSVG(f, p); err != nil {
		f.Close()
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	return f.Close()
}
