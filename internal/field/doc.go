// Package field derives a smoothed scalar brightness field from a source
// image or raw brightness array.
//
// A Field is built once per (image, options) pair and is immutable after
// construction: the build pipeline converts the source to grayscale,
// resizes it to the target canvas, optionally applies grey dilation or
// erosion and a Gaussian blur, and normalizes values into [0,1]. The
// resulting field can then be sampled at arbitrary canvas coordinates with
// bilinear interpolation.
//
// # Coordinate System
//
// Canvas coordinates are continuous, with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward. Lookups outside the
// field's extent never fail; they are resolved by the configured Boundary
// mode (clamp-to-edge by default).
//
// # Thread Safety
//
// A constructed Field is read-only and safe for concurrent sampling from
// multiple goroutines.
package field
