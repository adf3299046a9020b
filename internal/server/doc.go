// Package server implements the MCP (Model Context Protocol) server for
// hexagonal pattern generation.
//
// The server communicates via JSON-RPC 2.0 over stdin/stdout, exposing the
// generation pipeline as tools:
//
// Pattern Generation:
//   - pattern_generate_svg: generate a pattern and return the SVG document
//   - pattern_render: generate a pattern and return a base64 PNG or JPEG
//   - pattern_geometry: return the raw per-hexagon geometry list
//
// Inspection:
//   - field_inspect: brightness field statistics and point samples
//   - lattice_preview: enumerate hexagon centers for a configuration
//
// Every generation tool accepts the full parameter set of the pipeline
// (canvas size, lattice spacing, field smoothing, style). Source images
// are decoded once and cached for the lifetime of the process.
package server
