package field

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// ErrInvalidInput reports a source brightness array or image that cannot
// produce a field (empty, zero dimension, ragged rows, negative radius).
var ErrInvalidInput = errors.New("field: invalid input")

// Boundary selects how Sample resolves coordinates outside the field extent.
type Boundary int

const (
	// BoundaryClamp extends the edge values outward. This is the default.
	BoundaryClamp Boundary = iota

	// BoundaryReflect mirrors the field at its edges.
	BoundaryReflect

	// BoundaryConstant returns Options.FillValue for any lookup outside
	// the field.
	BoundaryConstant
)

// String returns the textual name of the boundary mode.
func (b Boundary) String() string {
	switch b {
	case BoundaryClamp:
		return "clamp"
	case BoundaryReflect:
		return "reflect"
	case BoundaryConstant:
		return "constant"
	}
	return fmt.Sprintf("Boundary(%d)", int(b))
}

// ParseBoundary converts a textual boundary mode ("clamp", "reflect",
// "constant") into a Boundary value.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "clamp", "":
		return BoundaryClamp, nil
	case "reflect":
		return BoundaryReflect, nil
	case "constant":
		return BoundaryConstant, nil
	}
	return 0, fmt.Errorf("%w: unknown boundary mode %q", ErrInvalidInput, s)
}

// Options controls how a Field is built from a source image or array.
//
// The zero value is usable: no smoothing, no boundary adjustment, clamp
// boundary mode, no normalization, no inversion.
type Options struct {
	// SmoothRadius is the Gaussian blur radius in canvas pixels.
	// Zero disables smoothing entirely (identity pass).
	SmoothRadius float64

	// Boundary selects the out-of-extent sampling policy.
	Boundary Boundary

	// FillValue is the brightness returned outside the field when
	// Boundary is BoundaryConstant. Clamped to [0,1].
	FillValue float64

	// AdjustPixels applies grey dilation (> 0) or erosion (< 0) with the
	// given radius before smoothing. Dilation grows bright regions,
	// erosion shrinks them.
	AdjustPixels int

	// Normalize stretches the processed field to cover the full [0,1]
	// range. A flat field is left untouched.
	Normalize bool

	// Invert maps brightness v to 1-v after all other processing, so dark
	// source regions drive large output values.
	Invert bool
}

// Field is a continuous scalar brightness function over canvas coordinates,
// built once from a source image and read-only thereafter. Values are
// normalized to [0,1]. Safe for concurrent sampling.
type Field struct {
	width  int
	height int
	data   []float64
	opts   Options
}

// Width returns the canvas width the field was built for.
func (f *Field) Width() int { return f.width }

// Height returns the canvas height the field was built for.
func (f *Field) Height() int { return f.height }

// Options returns the build options the field was constructed with.
func (f *Field) Options() Options { return f.opts }

// FromArray builds a field from a raw brightness array (height rows of
// width columns, values in 0-255). The array is normalized to [0,1],
// resized to targetW x targetH with bilinear interpolation, then run
// through the adjustment/smoothing pipeline described by opts.
func FromArray(raw [][]float64, targetW, targetH int, opts Options) (*Field, error) {
	if len(raw) == 0 || len(raw[0]) == 0 {
		return nil, fmt.Errorf("%w: empty brightness array", ErrInvalidInput)
	}
	srcH := len(raw)
	srcW := len(raw[0])
	for i, row := range raw {
		if len(row) != srcW {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidInput, i, len(row), srcW)
		}
	}

	src := image.NewGray16(image.Rect(0, 0, srcW, srcH))
	for y := 0; y < srcH; y++ {
		for x := 0; x < srcW; x++ {
			v := raw[y][x]
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			src.SetGray16(x, y, color.Gray16{Y: uint16(v/255*65535 + 0.5)})
		}
	}

	if err := validateTarget(targetW, targetH, opts); err != nil {
		return nil, err
	}
	resized := imaging.Resize(src, targetW, targetH, imaging.Linear)
	return finish(resized, targetW, targetH, opts)
}

// FromImage builds a field from a decoded image. The image is converted to
// grayscale, scaled and center-cropped to cover targetW x targetH, then run
// through the adjustment/smoothing pipeline described by opts.
func FromImage(img image.Image, targetW, targetH int, opts Options) (*Field, error) {
	if img == nil || img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return nil, fmt.Errorf("%w: empty source image", ErrInvalidInput)
	}
	if err := validateTarget(targetW, targetH, opts); err != nil {
		return nil, err
	}
	gray := imaging.Grayscale(img)
	covered := imaging.Fill(gray, targetW, targetH, imaging.Center, imaging.Lanczos)
	return finish(covered, targetW, targetH, opts)
}

func validateTarget(targetW, targetH int, opts Options) error {
	if targetW < 1 || targetH < 1 {
		return fmt.Errorf("%w: target size %dx%d, both dimensions must be positive", ErrInvalidInput, targetW, targetH)
	}
	if opts.SmoothRadius < 0 {
		return fmt.Errorf("%w: smoothing radius %v is negative", ErrInvalidInput, opts.SmoothRadius)
	}
	return nil
}

// finish runs the shared tail of the build pipeline: boundary adjustment,
// Gaussian smoothing, grayscale extraction, normalization and inversion.
func finish(img image.Image, targetW, targetH int, opts Options) (*Field, error) {
	if opts.AdjustPixels > 0 {
		img = effect.Dilate(img, float64(opts.AdjustPixels))
	} else if opts.AdjustPixels < 0 {
		img = effect.Erode(img, float64(-opts.AdjustPixels))
	}
	if opts.SmoothRadius > 0 {
		img = blur.Gaussian(img, opts.SmoothRadius)
	}

	data := make([]float64, targetW*targetH)
	b := img.Bounds()
	for y := 0; y < targetH; y++ {
		for x := 0; x < targetW; x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			data[y*targetW+x] = float64(g.Y) / 255.0
		}
	}

	if opts.Normalize {
		normalize(data)
	}
	if opts.Invert {
		for i, v := range data {
			data[i] = 1 - v
		}
	}

	return &Field{width: targetW, height: targetH, data: data, opts: opts}, nil
}

// normalize stretches values to the full [0,1] range. Flat data is left
// as-is to avoid dividing by zero.
func normalize(data []float64) {
	min, max := data[0], data[0]
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max <= min {
		return
	}
	span := max - min
	for i, v := range data {
		data[i] = (v - min) / span
	}
}

// Sample returns the field value at canvas coordinates (x, y) using
// bilinear interpolation over the underlying grid. Coordinates outside
// [0,width) x [0,height) are resolved per the configured boundary mode.
// The result is always within [0,1].
func (f *Field) Sample(x, y float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	ix := int(fx)
	iy := int(fy)
	tx := x - fx
	ty := y - fy

	v00 := f.at(ix, iy)
	v10 := f.at(ix+1, iy)
	v01 := f.at(ix, iy+1)
	v11 := f.at(ix+1, iy+1)

	top := v00 + (v10-v00)*tx
	bottom := v01 + (v11-v01)*tx
	return top + (bottom-top)*ty
}

// at resolves a single grid lookup, applying the boundary mode for
// out-of-range indices.
func (f *Field) at(ix, iy int) float64 {
	switch f.opts.Boundary {
	case BoundaryConstant:
		if ix < 0 || ix >= f.width || iy < 0 || iy >= f.height {
			return clamp01(f.opts.FillValue)
		}
	case BoundaryReflect:
		ix = reflect(ix, f.width)
		iy = reflect(iy, f.height)
	default:
		ix = clampInt(ix, 0, f.width-1)
		iy = clampInt(iy, 0, f.height-1)
	}
	return f.data[iy*f.width+ix]
}

// Stats returns the minimum, maximum and mean of the field values.
func (f *Field) Stats() (min, max, mean float64) {
	min, max = f.data[0], f.data[0]
	var sum float64
	for _, v := range f.data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	return min, max, sum / float64(len(f.data))
}

// reflect mirrors index i into [0,n) with period 2n, so the field reads
// as if reflected at both edges.
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
