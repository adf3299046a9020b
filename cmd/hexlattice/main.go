package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/hexlattice/internal/field"
	"github.com/ironsheep/hexlattice/internal/lattice"
	"github.com/ironsheep/hexlattice/internal/pattern"
	"github.com/ironsheep/hexlattice/internal/render"
	"github.com/ironsheep/hexlattice/internal/source"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var (
		inPath  = flag.String("in", "", "source image file (PNG, JPEG or GIF)")
		outPath = flag.String("out", "pattern.svg", "output file; format chosen by extension (.svg, .png, .jpg)")

		width    = flag.Int("width", 1000, "canvas width in pixels")
		height   = flag.Int("height", 700, "canvas height in pixels")
		constant = flag.Float64("d", 12, "lattice constant: center-to-center spacing in pixels")
		side     = flag.Float64("side", 6, "hexagon side length at full scale")
		orient   = flag.String("orientation", "flat", "hexagon orientation: flat or pointy")
		phase    = flag.Float64("phase", 0, "extra vertex rotation in degrees")
		clip     = flag.String("clip", "allow", "border policy: allow or drop")
		margin   = flag.Float64("margin", 0, "slack in pixels before the drop policy removes a hexagon")

		smoothing = flag.Float64("smoothing", 0, "gaussian blur radius for the brightness field; 0 disables")
		boundary  = flag.String("boundary", "clamp", "out-of-extent sampling: clamp, reflect or constant")
		fillValue = flag.Float64("fill-value", 0, "field value outside the canvas for -boundary constant")
		adjust    = flag.Int("adjust", 0, "grey dilation (>0) or erosion (<0) radius before smoothing")
		normalize = flag.Bool("normalize", true, "stretch the field to the full [0,1] range")
		invert    = flag.Bool("invert", true, "invert the field so dark source regions drive large hexagons")

		hexColor    = flag.String("color", "#008B8B", "hexagon fill color as #RRGGBB")
		background  = flag.String("bg", "#FFFFFF", "background color as #RRGGBB")
		transparent = flag.Bool("transparent", false, "omit the background entirely")
		minScale    = flag.Float64("min-scale", 0.05, "lower bound of the hexagon size multiplier")
		maxScale    = flag.Float64("max-scale", 1.0, "upper bound of the hexagon size multiplier")
		exponent    = flag.Float64("exponent", 1.0, "response curve exponent; 1 is linear")
		minOpacity  = flag.Float64("min-opacity", 1.0, "lower opacity bound in [0,1]")
		maxOpacity  = flag.Float64("max-opacity", 1.0, "upper opacity bound in [0,1]")
		sizeDir     = flag.String("size-direction", "grow", "brighter field values grow or shrink hexagons")
		fillDir     = flag.String("fill-direction", "grow", "brighter field values grow or shrink fill intensity")
		fillMode    = flag.String("fill-mode", "opacity", "fill variation: opacity or shade")

		supersample = flag.Int("supersample", render.DefaultSupersample, "anti-aliasing factor for raster output")
		workers     = flag.Int("workers", 0, "goroutines for the mapping stage; <2 runs sequentially")
		version     = flag.Bool("version", false, "print version information and exit")
	)
	flag.Parse()

	if *version {
		fmt.Printf("hexlattice %s (built %s, commit %s)\n", Version, BuildTime, GitCommit)
		return
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(0)

	if *inPath == "" {
		log.Println("missing required -in flag")
		flag.Usage()
		os.Exit(2)
	}

	boundaryMode, err := field.ParseBoundary(*boundary)
	if err != nil {
		log.Fatalf("invalid -boundary: %v", err)
	}
	orientation, err := lattice.ParseOrientation(*orient)
	if err != nil {
		log.Fatalf("invalid -orientation: %v", err)
	}
	clipPolicy, err := lattice.ParseClipPolicy(*clip)
	if err != nil {
		log.Fatalf("invalid -clip: %v", err)
	}
	sizeDirection, err := pattern.ParseDirection(*sizeDir)
	if err != nil {
		log.Fatalf("invalid -size-direction: %v", err)
	}
	fillDirection, err := pattern.ParseDirection(*fillDir)
	if err != nil {
		log.Fatalf("invalid -fill-direction: %v", err)
	}
	mode, err := pattern.ParseFillMode(*fillMode)
	if err != nil {
		log.Fatalf("invalid -fill-mode: %v", err)
	}

	img, err := source.Load(*inPath)
	if err != nil {
		log.Fatalf("load image: %v", err)
	}

	f, err := field.FromImage(img, *width, *height, field.Options{
		SmoothRadius: *smoothing,
		Boundary:     boundaryMode,
		FillValue:    *fillValue,
		AdjustPixels: *adjust,
		Normalize:    *normalize,
		Invert:       *invert,
	})
	if err != nil {
		log.Fatalf("build field: %v", err)
	}

	lcfg := lattice.Config{
		Constant:    *constant,
		SideLength:  *side,
		Width:       *width,
		Height:      *height,
		Orientation: orientation,
		PhaseDeg:    *phase,
		Clip:        clipPolicy,
		Margin:      *margin,
	}
	centers, err := lattice.Generate(lcfg)
	if err != nil {
		log.Fatalf("generate lattice: %v", err)
	}

	style := pattern.Style{
		HexColor:    *hexColor,
		Background:  *background,
		Transparent: *transparent,
		MinScale:    *minScale,
		MaxScale:    *maxScale,
		Exponent:    *exponent,
		MinOpacity:  *minOpacity,
		MaxOpacity:  *maxOpacity,
		SizeDir:     sizeDirection,
		FillDir:     fillDirection,
		Fill:        mode,
	}
	p, err := pattern.GenerateParallel(f, centers, lcfg, style, *workers)
	if err != nil {
		log.Fatalf("generate pattern: %v", err)
	}

	opts := render.RasterOptions{Supersample: *supersample}
	switch strings.ToLower(filepath.Ext(*outPath)) {
	case ".svg":
		err = render.SaveSVG(*outPath, p)
	case ".png":
		err = render.SavePNG(*outPath, p, opts)
	case ".jpg", ".jpeg":
		err = render.SaveJPEG(*outPath, p, opts)
	default:
		log.Fatalf("unsupported output extension: %s", filepath.Ext(*outPath))
	}
	if err != nil {
		log.Fatalf("write output: %v", err)
	}

	log.Printf("wrote %s (%d hexagons, %dx%d)", *outPath, len(p.Hexagons), p.Width, p.Height)
}
