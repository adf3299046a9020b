// Package render serializes hexagon patterns to SVG documents and
// rasterizes them to PNG or JPEG images.
//
// The raster path draws anti-aliased polygons at a supersampled resolution
// and downscales with a Lanczos filter, matching the quality of the vector
// output. Renderers consume the pattern's geometry list as-is; they add no
// geometry of their own.
package render
