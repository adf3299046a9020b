package lattice

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig reports a geometrically inconsistent lattice configuration.
var ErrInvalidConfig = errors.New("lattice: invalid config")

// Orientation is the rotation of the hexagons relative to the tiling axes.
type Orientation int

const (
	// FlatTop orients hexagons with a flat edge upward; rows run
	// horizontally and every other row is offset by half the lattice
	// constant.
	FlatTop Orientation = iota

	// PointyTop orients hexagons with a vertex upward; columns run
	// vertically and every other column is offset by half the lattice
	// constant.
	PointyTop
)

// String returns the textual name of the orientation.
func (o Orientation) String() string {
	switch o {
	case FlatTop:
		return "flat"
	case PointyTop:
		return "pointy"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// ParseOrientation converts "flat" or "pointy" into an Orientation.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "flat", "":
		return FlatTop, nil
	case "pointy":
		return PointyTop, nil
	}
	return 0, fmt.Errorf("%w: unknown orientation %q", ErrInvalidConfig, s)
}

// ClipPolicy controls what happens to hexagons near the canvas border.
type ClipPolicy int

const (
	// ClipAllow keeps every center inside the canvas even when its
	// hexagon is partially clipped at the border. This is the default.
	ClipAllow ClipPolicy = iota

	// ClipDrop removes any center whose bounding circle (at full side
	// length) would leave the canvas by more than Config.Margin pixels.
	ClipDrop
)

// String returns the textual name of the clip policy.
func (c ClipPolicy) String() string {
	switch c {
	case ClipAllow:
		return "allow"
	case ClipDrop:
		return "drop"
	}
	return fmt.Sprintf("ClipPolicy(%d)", int(c))
}

// ParseClipPolicy converts "allow" or "drop" into a ClipPolicy.
func ParseClipPolicy(s string) (ClipPolicy, error) {
	switch s {
	case "allow", "":
		return ClipAllow, nil
	case "drop":
		return ClipDrop, nil
	}
	return 0, fmt.Errorf("%w: unknown clip policy %q", ErrInvalidConfig, s)
}

// Config describes a regular hexagonal tiling over a canvas.
type Config struct {
	// Constant is the center-to-center spacing between adjacent hexagons,
	// in canvas pixels. Must be positive.
	Constant float64

	// SideLength is the hexagon side length at scale 1.0. Must be
	// positive and at most Constant/2, which guarantees neighboring
	// hexagons cannot overlap at any scale within [0,1].
	SideLength float64

	// Width and Height are the canvas dimensions in pixels.
	Width  int
	Height int

	// Orientation selects flat-top or pointy-top tiling.
	Orientation Orientation

	// PhaseDeg is an extra rotation in degrees applied to every hexagon's
	// vertices on top of the orientation's base phase.
	PhaseDeg float64

	// Clip selects the border policy; Margin is the slack in pixels
	// allowed by ClipDrop before a hexagon is removed.
	Clip   ClipPolicy
	Margin float64
}

// Validate checks the configuration, reporting the first violated
// constraint wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Constant <= 0 {
		return fmt.Errorf("%w: lattice constant %v must be positive", ErrInvalidConfig, c.Constant)
	}
	if c.SideLength <= 0 {
		return fmt.Errorf("%w: side length %v must be positive", ErrInvalidConfig, c.SideLength)
	}
	if c.SideLength > c.Constant/2 {
		return fmt.Errorf("%w: side length %v exceeds half the lattice constant %v", ErrInvalidConfig, c.SideLength, c.Constant)
	}
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: canvas %dx%d, both dimensions must be positive", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Orientation != FlatTop && c.Orientation != PointyTop {
		return fmt.Errorf("%w: unknown orientation %d", ErrInvalidConfig, int(c.Orientation))
	}
	if c.Margin < 0 {
		return fmt.Errorf("%w: margin %v must not be negative", ErrInvalidConfig, c.Margin)
	}
	return nil
}

// Center is one hexagon position in the tiling: a canvas coordinate plus
// its stable (row, column) grid index.
type Center struct {
	Row int     `json:"row"`
	Col int     `json:"col"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
}

// Generate enumerates the hexagon centers of the tiling described by cfg
// in row-major order. For flat-top tilings the column step is the lattice
// constant d, the row step is d*sqrt(3)/2 and odd rows are shifted right
// by d/2; pointy-top tilings are the transpose (odd columns shifted down).
// Enumeration stops once a coordinate reaches the canvas edge, so centers
// always satisfy 0 <= x < Width and 0 <= y < Height.
//
// The output is fully determined by cfg: identical configurations yield
// identical center sequences.
func Generate(cfg Config) ([]Center, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := cfg.Constant
	w := float64(cfg.Width)
	h := float64(cfg.Height)
	var centers []Center

	switch cfg.Orientation {
	case PointyTop:
		colStep := d * math.Sqrt(3) / 2
		for row := 0; float64(row)*d < h; row++ {
			baseY := float64(row) * d
			for col := 0; float64(col)*colStep < w; col++ {
				x := float64(col) * colStep
				y := baseY
				if col%2 == 1 {
					y += d / 2
				}
				if y >= h {
					continue
				}
				if cfg.Clip == ClipDrop && clipped(cfg, x, y) {
					continue
				}
				centers = append(centers, Center{Row: row, Col: col, X: x, Y: y})
			}
		}
	default: // FlatTop
		rowStep := d * math.Sqrt(3) / 2
		for row := 0; float64(row)*rowStep < h; row++ {
			y := float64(row) * rowStep
			offset := 0.0
			if row%2 == 1 {
				offset = d / 2
			}
			for col := 0; float64(col)*d+offset < w; col++ {
				x := float64(col)*d + offset
				if cfg.Clip == ClipDrop && clipped(cfg, x, y) {
					continue
				}
				centers = append(centers, Center{Row: row, Col: col, X: x, Y: y})
			}
		}
	}

	return centers, nil
}

// clipped reports whether the hexagon's bounding circle leaves the canvas
// by more than the configured margin.
func clipped(cfg Config, x, y float64) bool {
	r := cfg.SideLength - cfg.Margin
	return x-r < 0 || y-r < 0 ||
		x+r > float64(cfg.Width) || y+r > float64(cfg.Height)
}
