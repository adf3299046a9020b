package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/hexlattice/internal/field"
	"github.com/ironsheep/hexlattice/internal/lattice"
	"github.com/ironsheep/hexlattice/internal/pattern"
	"github.com/ironsheep/hexlattice/internal/render"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "pattern_generate_svg").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Runs the field -> lattice -> pattern pipeline as needed
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Pattern Generation
	case "pattern_generate_svg":
		return s.handlePatternGenerateSVG(args)
	case "pattern_render":
		return s.handlePatternRender(args)
	case "pattern_geometry":
		return s.handlePatternGeometry(args)

	// Inspection
	case "field_inspect":
		return s.handleFieldInspect(args)
	case "lattice_preview":
		return s.handleLatticePreview(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Shared pipeline arguments ===

// patternArgs carries every configuration input of the generation
// pipeline. Zero values select the documented defaults; normalize and
// invert use pointers because their default is true.
type patternArgs struct {
	Path string `json:"path"`

	Width           int     `json:"width"`
	Height          int     `json:"height"`
	LatticeConstant float64 `json:"lattice_constant"`
	SideLength      float64 `json:"side_length"`
	Orientation     string  `json:"orientation"`
	PhaseDeg        float64 `json:"phase_deg"`
	Clip            string  `json:"clip"`
	Margin          float64 `json:"margin"`

	SmoothingRadius float64 `json:"smoothing_radius"`
	BoundaryMode    string  `json:"boundary_mode"`
	FillValue       float64 `json:"fill_value"`
	AdjustPixels    int     `json:"adjust_pixels"`
	Normalize       *bool   `json:"normalize,omitempty"`
	Invert          *bool   `json:"invert,omitempty"`

	HexColor        string   `json:"hex_color"`
	BackgroundColor string   `json:"background_color"`
	Transparent     bool     `json:"transparent"`
	MinScale        *float64 `json:"min_scale,omitempty"`
	MaxScale        *float64 `json:"max_scale,omitempty"`
	Exponent        *float64 `json:"exponent,omitempty"`
	MinOpacity      *float64 `json:"min_opacity,omitempty"`
	MaxOpacity      *float64 `json:"max_opacity,omitempty"`
	SizeDirection   string   `json:"size_direction"`
	FillDirection   string   `json:"fill_direction"`
	FillMode        string   `json:"fill_mode"`

	Workers int `json:"workers"`
}

func (a *patternArgs) applyDefaults() {
	if a.Width == 0 {
		a.Width = 1000
	}
	if a.Height == 0 {
		a.Height = 700
	}
	if a.LatticeConstant == 0 {
		a.LatticeConstant = 12
	}
	if a.SideLength == 0 {
		a.SideLength = 6
	}
	if a.HexColor == "" {
		a.HexColor = "#008B8B"
	}
	if a.BackgroundColor == "" {
		a.BackgroundColor = "#FFFFFF"
	}
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func (a *patternArgs) fieldOptions() (field.Options, error) {
	boundary, err := field.ParseBoundary(a.BoundaryMode)
	if err != nil {
		return field.Options{}, err
	}
	return field.Options{
		SmoothRadius: a.SmoothingRadius,
		Boundary:     boundary,
		FillValue:    a.FillValue,
		AdjustPixels: a.AdjustPixels,
		Normalize:    boolOr(a.Normalize, true),
		Invert:       boolOr(a.Invert, true),
	}, nil
}

func (a *patternArgs) latticeConfig() (lattice.Config, error) {
	orientation, err := lattice.ParseOrientation(a.Orientation)
	if err != nil {
		return lattice.Config{}, err
	}
	clip, err := lattice.ParseClipPolicy(a.Clip)
	if err != nil {
		return lattice.Config{}, err
	}
	return lattice.Config{
		Constant:    a.LatticeConstant,
		SideLength:  a.SideLength,
		Width:       a.Width,
		Height:      a.Height,
		Orientation: orientation,
		PhaseDeg:    a.PhaseDeg,
		Clip:        clip,
		Margin:      a.Margin,
	}, nil
}

func (a *patternArgs) style() (pattern.Style, error) {
	sizeDir, err := pattern.ParseDirection(a.SizeDirection)
	if err != nil {
		return pattern.Style{}, err
	}
	fillDir, err := pattern.ParseDirection(a.FillDirection)
	if err != nil {
		return pattern.Style{}, err
	}
	fillMode, err := pattern.ParseFillMode(a.FillMode)
	if err != nil {
		return pattern.Style{}, err
	}
	return pattern.Style{
		HexColor:    a.HexColor,
		Background:  a.BackgroundColor,
		Transparent: a.Transparent,
		MinScale:    floatOr(a.MinScale, 0.05),
		MaxScale:    floatOr(a.MaxScale, 1.0),
		Exponent:    floatOr(a.Exponent, 1.0),
		MinOpacity:  floatOr(a.MinOpacity, 1.0),
		MaxOpacity:  floatOr(a.MaxOpacity, 1.0),
		SizeDir:     sizeDir,
		FillDir:     fillDir,
		Fill:        fillMode,
	}, nil
}

// buildField loads the source image and runs the field stage.
func (s *Server) buildField(a *patternArgs) (*field.Field, error) {
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	opts, err := a.fieldOptions()
	if err != nil {
		return nil, err
	}
	return field.FromImage(img, a.Width, a.Height, opts)
}

// buildPattern runs the full field -> lattice -> pattern pipeline.
func (s *Server) buildPattern(a *patternArgs) (*pattern.Pattern, error) {
	a.applyDefaults()

	lcfg, err := a.latticeConfig()
	if err != nil {
		return nil, err
	}
	style, err := a.style()
	if err != nil {
		return nil, err
	}

	f, err := s.buildField(a)
	if err != nil {
		return nil, err
	}
	centers, err := lattice.Generate(lcfg)
	if err != nil {
		return nil, err
	}
	return pattern.GenerateParallel(f, centers, lcfg, style, a.Workers)
}

// === Pattern Generation Handlers ===

// SVGResult contains a generated pattern serialized as an SVG document.
type SVGResult struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	HexagonCount int    `json:"hexagon_count"`
	SVG          string `json:"svg"`
	MimeType     string `json:"mime_type"`
}

func (s *Server) handlePatternGenerateSVG(args json.RawMessage) (interface{}, error) {
	var a patternArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p, err := s.buildPattern(&a)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := render.WriteSVG(&buf, p); err != nil {
		return nil, err
	}
	return &SVGResult{
		Width:        p.Width,
		Height:       p.Height,
		HexagonCount: len(p.Hexagons),
		SVG:          buf.String(),
		MimeType:     "image/svg+xml",
	}, nil
}

type patternRenderArgs struct {
	patternArgs
	Format      string `json:"format"`
	Supersample int    `json:"supersample"`
}

// RenderResult contains a rasterized pattern encoded as base64.
type RenderResult struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	HexagonCount int    `json:"hexagon_count"`
	ImageBase64  string `json:"image_base64"`
	MimeType     string `json:"mime_type"`
}

func (s *Server) handlePatternRender(args json.RawMessage) (interface{}, error) {
	var a patternRenderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p, err := s.buildPattern(&a.patternArgs)
	if err != nil {
		return nil, err
	}

	opts := render.RasterOptions{Supersample: a.Supersample}
	var buf bytes.Buffer
	var mime string
	switch a.Format {
	case "jpeg", "jpg":
		mime = "image/jpeg"
		err = render.EncodeJPEG(&buf, p, opts)
	case "png", "":
		mime = "image/png"
		err = render.EncodePNG(&buf, p, opts)
	default:
		return nil, fmt.Errorf("unknown format: %s", a.Format)
	}
	if err != nil {
		return nil, err
	}

	return &RenderResult{
		Width:        p.Width,
		Height:       p.Height,
		HexagonCount: len(p.Hexagons),
		ImageBase64:  base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:     mime,
	}, nil
}

func (s *Server) handlePatternGeometry(args json.RawMessage) (interface{}, error) {
	var a patternArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.buildPattern(&a)
}

// === Inspection Handlers ===

type fieldInspectArgs struct {
	patternArgs
	Points []struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"points"`
}

// FieldSample is one probed field value.
type FieldSample struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Value float64 `json:"value"`
}

// FieldInspectResult contains field statistics and optional point samples.
type FieldInspectResult struct {
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Min     float64       `json:"min"`
	Max     float64       `json:"max"`
	Mean    float64       `json:"mean"`
	Samples []FieldSample `json:"samples,omitempty"`
}

func (s *Server) handleFieldInspect(args json.RawMessage) (interface{}, error) {
	var a fieldInspectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	a.applyDefaults()

	f, err := s.buildField(&a.patternArgs)
	if err != nil {
		return nil, err
	}

	min, max, mean := f.Stats()
	result := &FieldInspectResult{
		Width:  f.Width(),
		Height: f.Height(),
		Min:    min,
		Max:    max,
		Mean:   mean,
	}
	for _, pt := range a.Points {
		result.Samples = append(result.Samples, FieldSample{
			X:     pt.X,
			Y:     pt.Y,
			Value: f.Sample(pt.X, pt.Y),
		})
	}
	return result, nil
}

type latticePreviewArgs struct {
	patternArgs
	MaxCenters int `json:"max_centers"`
}

// LatticePreviewResult describes the center enumeration for a config.
type LatticePreviewResult struct {
	Count   int              `json:"count"`
	Rows    int              `json:"rows"`
	Centers []lattice.Center `json:"centers"`
}

func (s *Server) handleLatticePreview(args json.RawMessage) (interface{}, error) {
	var a latticePreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	a.applyDefaults()
	if a.MaxCenters == 0 {
		a.MaxCenters = 50
	}

	lcfg, err := a.latticeConfig()
	if err != nil {
		return nil, err
	}
	centers, err := lattice.Generate(lcfg)
	if err != nil {
		return nil, err
	}

	rows := 0
	if n := len(centers); n > 0 {
		rows = centers[n-1].Row + 1
	}
	preview := centers
	if len(preview) > a.MaxCenters {
		preview = preview[:a.MaxCenters]
	}
	return &LatticePreviewResult{
		Count:   len(centers),
		Rows:    rows,
		Centers: preview,
	}, nil
}
