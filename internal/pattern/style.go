package pattern

import (
	"errors"
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidConfig reports an out-of-range or inconsistent style
// configuration.
var ErrInvalidConfig = errors.New("pattern: invalid config")

// Direction chooses which way a sampled brightness value drives the
// response curve.
type Direction int

const (
	// BrightGrows makes brighter field values produce larger hexagons or
	// more opaque fills. This is the default.
	BrightGrows Direction = iota

	// BrightShrinks inverts the mapping: brighter field values produce
	// smaller hexagons or more transparent fills.
	BrightShrinks
)

// String returns the textual name of the direction.
func (d Direction) String() string {
	switch d {
	case BrightGrows:
		return "grow"
	case BrightShrinks:
		return "shrink"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection converts "grow" or "shrink" into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "grow", "":
		return BrightGrows, nil
	case "shrink":
		return BrightShrinks, nil
	}
	return 0, fmt.Errorf("%w: unknown direction %q", ErrInvalidConfig, s)
}

// FillMode chooses how the sampled brightness reaches the hexagon fill.
type FillMode int

const (
	// FillOpacity keeps the configured hexagon color fixed and derives
	// the opacity from the response curve. This is the default.
	FillOpacity FillMode = iota

	// FillShade keeps the opacity fixed at MaxOpacity and derives the
	// color intensity from the response curve, blending in Lab space from
	// white toward the configured hexagon color.
	FillShade
)

// String returns the textual name of the fill mode.
func (m FillMode) String() string {
	switch m {
	case FillOpacity:
		return "opacity"
	case FillShade:
		return "shade"
	}
	return fmt.Sprintf("FillMode(%d)", int(m))
}

// ParseFillMode converts "opacity" or "shade" into a FillMode.
func ParseFillMode(s string) (FillMode, error) {
	switch s {
	case "opacity", "":
		return FillOpacity, nil
	case "shade":
		return FillShade, nil
	}
	return 0, fmt.Errorf("%w: unknown fill mode %q", ErrInvalidConfig, s)
}

// Style holds the visual parameters that turn sampled brightness values
// into hexagon size and fill. Styles are immutable value types passed
// explicitly through the pipeline.
type Style struct {
	// HexColor and Background are "#RRGGBB" hex strings.
	HexColor   string
	Background string

	// Transparent drops the background entirely (raster output gets an
	// alpha channel, SVG output omits the background rect).
	Transparent bool

	// MinScale and MaxScale bound the hexagon size multiplier. The
	// response curve output is clamped into [MinScale, MaxScale]
	// regardless of the sampled value.
	MinScale float64
	MaxScale float64

	// Exponent shapes the response curve: scale follows v^Exponent.
	// 1 is linear.
	Exponent float64

	// MinOpacity and MaxOpacity bound the fill opacity in FillOpacity
	// mode; FillShade mode uses MaxOpacity as its fixed opacity. Both
	// must lie in [0,1].
	MinOpacity float64
	MaxOpacity float64

	// SizeDir and FillDir choose the mapping direction for size and fill
	// independently.
	SizeDir Direction
	FillDir Direction

	// Fill selects between opacity-varying and shade-varying fills.
	Fill FillMode
}

// DefaultStyle returns dark cyan hexagons on a white background, fully
// opaque, with a linear response from a small floor to full size.
func DefaultStyle() Style {
	return Style{
		HexColor:   "#008B8B",
		Background: "#FFFFFF",
		MinScale:   0.05,
		MaxScale:   1.0,
		Exponent:   1.0,
		MinOpacity: 1.0,
		MaxOpacity: 1.0,
	}
}

// Validate checks the style, reporting the first violated constraint
// wrapped in ErrInvalidConfig.
func (s Style) Validate() error {
	if s.MinScale < 0 {
		return fmt.Errorf("%w: min scale %v must not be negative", ErrInvalidConfig, s.MinScale)
	}
	if s.MinScale > s.MaxScale {
		return fmt.Errorf("%w: min scale %v exceeds max scale %v", ErrInvalidConfig, s.MinScale, s.MaxScale)
	}
	if s.Exponent <= 0 {
		return fmt.Errorf("%w: exponent %v must be positive", ErrInvalidConfig, s.Exponent)
	}
	if s.MinOpacity < 0 || s.MinOpacity > 1 || s.MaxOpacity < 0 || s.MaxOpacity > 1 {
		return fmt.Errorf("%w: opacity bounds [%v,%v] outside [0,1]", ErrInvalidConfig, s.MinOpacity, s.MaxOpacity)
	}
	if s.MinOpacity > s.MaxOpacity {
		return fmt.Errorf("%w: min opacity %v exceeds max opacity %v", ErrInvalidConfig, s.MinOpacity, s.MaxOpacity)
	}
	if s.SizeDir != BrightGrows && s.SizeDir != BrightShrinks {
		return fmt.Errorf("%w: unknown size direction %d", ErrInvalidConfig, int(s.SizeDir))
	}
	if s.FillDir != BrightGrows && s.FillDir != BrightShrinks {
		return fmt.Errorf("%w: unknown fill direction %d", ErrInvalidConfig, int(s.FillDir))
	}
	if s.Fill != FillOpacity && s.Fill != FillShade {
		return fmt.Errorf("%w: unknown fill mode %d", ErrInvalidConfig, int(s.Fill))
	}
	if _, err := colorful.Hex(s.HexColor); err != nil {
		return fmt.Errorf("%w: hexagon color %q: %v", ErrInvalidConfig, s.HexColor, err)
	}
	if _, err := colorful.Hex(s.Background); err != nil {
		return fmt.Errorf("%w: background color %q: %v", ErrInvalidConfig, s.Background, err)
	}
	return nil
}

// curve maps a sampled field value through the response curve, honoring
// the direction and exponent. The input is defensively clamped to [0,1]
// to absorb floating-point drift; the output is in [0,1].
func (s Style) curve(v float64, dir Direction) float64 {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	if dir == BrightShrinks {
		v = 1 - v
	}
	if s.Exponent == 1 {
		return v
	}
	return math.Pow(v, s.Exponent)
}
