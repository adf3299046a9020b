package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// patternProperties returns the schema properties shared by every tool
// that runs the full generation pipeline.
func patternProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the source image file (PNG, JPEG or GIF)",
		},
		"width": map[string]interface{}{
			"type":        "integer",
			"description": "Canvas width in pixels (default 1000)",
			"default":     1000,
		},
		"height": map[string]interface{}{
			"type":        "integer",
			"description": "Canvas height in pixels (default 700)",
			"default":     700,
		},
		"lattice_constant": map[string]interface{}{
			"type":        "number",
			"description": "Center-to-center hexagon spacing in pixels (default 12)",
			"default":     12,
		},
		"side_length": map[string]interface{}{
			"type":        "number",
			"description": "Hexagon side length at full scale; at most half the lattice constant (default 6)",
			"default":     6,
		},
		"orientation": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"flat", "pointy"},
			"description": "Hexagon orientation (default flat)",
			"default":     "flat",
		},
		"phase_deg": map[string]interface{}{
			"type":        "number",
			"description": "Extra vertex rotation in degrees (default 0)",
		},
		"clip": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"allow", "drop"},
			"description": "Border policy: keep clipped hexagons or drop them (default allow)",
			"default":     "allow",
		},
		"margin": map[string]interface{}{
			"type":        "number",
			"description": "Slack in pixels before the drop policy removes a border hexagon (default 0)",
		},
		"smoothing_radius": map[string]interface{}{
			"type":        "number",
			"description": "Gaussian blur radius applied to the brightness field; 0 disables smoothing (default 0)",
		},
		"boundary_mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"clamp", "reflect", "constant"},
			"description": "Out-of-extent field sampling policy (default clamp)",
			"default":     "clamp",
		},
		"fill_value": map[string]interface{}{
			"type":        "number",
			"description": "Field value outside the canvas when boundary_mode is constant (default 0)",
		},
		"adjust_pixels": map[string]interface{}{
			"type":        "integer",
			"description": "Grey dilation (>0) or erosion (<0) radius applied before smoothing (default 0)",
		},
		"normalize": map[string]interface{}{
			"type":        "boolean",
			"description": "Stretch the field to the full [0,1] range (default true)",
			"default":     true,
		},
		"invert": map[string]interface{}{
			"type":        "boolean",
			"description": "Invert the field so dark source regions drive large hexagons (default true)",
			"default":     true,
		},
		"hex_color": map[string]interface{}{
			"type":        "string",
			"description": "Hexagon fill color as #RRGGBB (default #008B8B)",
			"default":     "#008B8B",
		},
		"background_color": map[string]interface{}{
			"type":        "string",
			"description": "Background color as #RRGGBB (default #FFFFFF)",
			"default":     "#FFFFFF",
		},
		"transparent": map[string]interface{}{
			"type":        "boolean",
			"description": "Omit the background entirely (default false)",
		},
		"min_scale": map[string]interface{}{
			"type":        "number",
			"description": "Lower bound of the hexagon size multiplier (default 0.05)",
			"default":     0.05,
		},
		"max_scale": map[string]interface{}{
			"type":        "number",
			"description": "Upper bound of the hexagon size multiplier (default 1.0)",
			"default":     1.0,
		},
		"exponent": map[string]interface{}{
			"type":        "number",
			"description": "Response curve exponent; 1 is linear (default 1)",
			"default":     1,
		},
		"min_opacity": map[string]interface{}{
			"type":        "number",
			"description": "Lower opacity bound in [0,1] (default 1)",
			"default":     1,
		},
		"max_opacity": map[string]interface{}{
			"type":        "number",
			"description": "Upper opacity bound in [0,1] (default 1)",
			"default":     1,
		},
		"size_direction": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"grow", "shrink"},
			"description": "Whether brighter field values grow or shrink hexagons (default grow)",
			"default":     "grow",
		},
		"fill_direction": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"grow", "shrink"},
			"description": "Whether brighter field values increase or decrease fill intensity (default grow)",
			"default":     "grow",
		},
		"fill_mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"opacity", "shade"},
			"description": "Vary opacity at fixed color, or color shade at fixed opacity (default opacity)",
			"default":     "opacity",
		},
		"workers": map[string]interface{}{
			"type":        "integer",
			"description": "Goroutines for the mapping stage; <2 runs sequentially (default 0)",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Pattern Generation
		{
			Name:        "pattern_generate_svg",
			Description: "Generate a hexagonal lattice pattern from a grayscale image and return it as an SVG document.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": patternProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "pattern_render",
			Description: "Generate a hexagonal lattice pattern from a grayscale image and return it as a base64-encoded PNG or JPEG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(patternProperties(), map[string]interface{}{
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"png", "jpeg"},
						"description": "Raster output format (default png)",
						"default":     "png",
					},
					"supersample": map[string]interface{}{
						"type":        "integer",
						"description": "Anti-aliasing oversampling factor (default 4)",
						"default":     4,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "pattern_geometry",
			Description: "Generate a hexagonal lattice pattern and return the raw geometry list (vertices, fill color, opacity per hexagon) for external renderers.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": patternProperties(),
				"required":   []string{"path"},
			},
		},

		// Field Inspection
		{
			Name:        "field_inspect",
			Description: "Build the smoothed brightness field for an image and return its statistics, optionally sampling it at specific canvas coordinates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(patternProperties(), map[string]interface{}{
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x": map[string]interface{}{"type": "number"},
								"y": map[string]interface{}{"type": "number"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Canvas coordinates to sample the field at",
					},
				}),
				"required": []string{"path"},
			},
		},

		// Lattice Inspection
		{
			Name:        "lattice_preview",
			Description: "Enumerate the hexagon centers for a lattice configuration without touching an image. Useful for checking spacing and clipping before generating.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(patternProperties(), map[string]interface{}{
					"max_centers": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of centers to include in the response (default 50)",
						"default":     50,
					},
				}),
				"required": []string{},
			},
		},
	}
}

// mergeProperties overlays extra schema properties onto a base property map.
func mergeProperties(base, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
