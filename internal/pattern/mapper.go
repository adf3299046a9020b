package pattern

import (
	"math"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/hexlattice/internal/field"
	"github.com/ironsheep/hexlattice/internal/lattice"
)

// Vertex is one corner of a hexagon in canvas coordinates.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Hexagon is the terminal artifact of the mapping stage: six ordered
// vertices plus the resolved fill. Immutable once produced.
type Hexagon struct {
	Row      int       `json:"row"`
	Col      int       `json:"col"`
	CX       float64   `json:"cx"`
	CY       float64   `json:"cy"`
	Vertices [6]Vertex `json:"vertices"`

	// Scale is the resolved size multiplier, always within
	// [Style.MinScale, Style.MaxScale].
	Scale float64 `json:"scale"`

	// Value is the field sample the hexagon was derived from.
	Value float64 `json:"value"`

	// FillHex is the resolved fill color as "#rrggbb"; Opacity is in [0,1].
	FillHex string  `json:"fill"`
	Opacity float64 `json:"opacity"`
}

// Pattern is the renderer handoff record: the ordered hexagon list plus
// the canvas and background it was generated for.
type Pattern struct {
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Background  string    `json:"background"`
	Transparent bool      `json:"transparent"`
	Hexagons    []Hexagon `json:"hexagons"`
}

// Generate maps every center to a hexagon by sampling the field at the
// center, pushing the value through the style's response curve and
// emitting vertex geometry. The output order matches centers 1:1.
//
// Generate is a pure function of its inputs; identical inputs produce
// identical patterns.
func Generate(f *field.Field, centers []lattice.Center, lcfg lattice.Config, style Style) (*Pattern, error) {
	if err := lcfg.Validate(); err != nil {
		return nil, err
	}
	if err := style.Validate(); err != nil {
		return nil, err
	}

	p := newPattern(lcfg, style, len(centers))
	base, _ := colorful.Hex(style.HexColor)
	for i, c := range centers {
		p.Hexagons[i] = mapOne(f, c, lcfg, style, base)
	}
	return p, nil
}

// GenerateParallel is Generate fanned out across worker goroutines. Each
// hexagon depends only on its own center and the read-only field, so the
// centers are split into contiguous stripes with no locking. The output
// is identical to the sequential path. workers < 2 falls back to Generate.
func GenerateParallel(f *field.Field, centers []lattice.Center, lcfg lattice.Config, style Style, workers int) (*Pattern, error) {
	if workers < 2 || len(centers) < 2 {
		return Generate(f, centers, lcfg, style)
	}
	if err := lcfg.Validate(); err != nil {
		return nil, err
	}
	if err := style.Validate(); err != nil {
		return nil, err
	}
	if workers > len(centers) {
		workers = len(centers)
	}

	p := newPattern(lcfg, style, len(centers))
	base, _ := colorful.Hex(style.HexColor)

	var wg sync.WaitGroup
	chunk := (len(centers) + workers - 1) / workers
	for start := 0; start < len(centers); start += chunk {
		end := start + chunk
		if end > len(centers) {
			end = len(centers)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				p.Hexagons[i] = mapOne(f, centers[i], lcfg, style, base)
			}
		}(start, end)
	}
	wg.Wait()
	return p, nil
}

func newPattern(lcfg lattice.Config, style Style, n int) *Pattern {
	return &Pattern{
		Width:       lcfg.Width,
		Height:      lcfg.Height,
		Background:  style.Background,
		Transparent: style.Transparent,
		Hexagons:    make([]Hexagon, n),
	}
}

// mapOne derives a single hexagon from its center.
func mapOne(f *field.Field, c lattice.Center, lcfg lattice.Config, style Style, base colorful.Color) Hexagon {
	v := f.Sample(c.X, c.Y)

	scale := style.MinScale + (style.MaxScale-style.MinScale)*style.curve(v, style.SizeDir)
	// Absorbs floating-point rounding only; configuration errors are
	// rejected up front.
	if scale < style.MinScale {
		scale = style.MinScale
	} else if scale > style.MaxScale {
		scale = style.MaxScale
	}

	fillHex, opacity := resolveFill(style, base, v)

	return Hexagon{
		Row:      c.Row,
		Col:      c.Col,
		CX:       c.X,
		CY:       c.Y,
		Vertices: hexVertices(c.X, c.Y, lcfg.SideLength*scale, lcfg.Orientation, lcfg.PhaseDeg),
		Scale:    scale,
		Value:    v,
		FillHex:  fillHex,
		Opacity:  opacity,
	}
}

// resolveFill turns the sampled value into a fill color and opacity per
// the style's fill mode and direction.
func resolveFill(style Style, base colorful.Color, v float64) (string, float64) {
	t := style.curve(v, style.FillDir)
	switch style.Fill {
	case FillShade:
		white := colorful.Color{R: 1, G: 1, B: 1}
		shade := white.BlendLab(base, t).Clamped()
		return shade.Hex(), style.MaxOpacity
	default: // FillOpacity
		opacity := style.MinOpacity + (style.MaxOpacity-style.MinOpacity)*t
		if opacity < style.MinOpacity {
			opacity = style.MinOpacity
		} else if opacity > style.MaxOpacity {
			opacity = style.MaxOpacity
		}
		return base.Hex(), opacity
	}
}

// hexVertices computes the six corners of a regular hexagon at 60 degree
// increments. Flat-top hexagons start at phase 0 (first vertex due east),
// pointy-top hexagons at 30 degrees; PhaseDeg rotates further.
func hexVertices(cx, cy, side float64, o lattice.Orientation, phaseDeg float64) [6]Vertex {
	phase := phaseDeg * math.Pi / 180
	if o == lattice.PointyTop {
		phase += math.Pi / 6
	}

	var verts [6]Vertex
	for i := 0; i < 6; i++ {
		a := phase + float64(i)*math.Pi/3
		verts[i] = Vertex{
			X: cx + side*math.Cos(a),
			Y: cy + side*math.Sin(a),
		}
	}
	return verts
}
