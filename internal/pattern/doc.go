// Package pattern maps hexagon centers and a sampled brightness field to
// renderable hexagon geometry.
//
// For each center the field is sampled at the center coordinate, the value
// is pushed through a configurable response curve
// (scale = min + (max-min) * v^exponent, clamped) and a regular hexagon is
// emitted with the scaled side length and a resolved fill color and
// opacity. The mapping is a pure function of its inputs: the output list
// is 1:1 and order-preserving with the input centers, and identical inputs
// produce identical patterns. GenerateParallel exploits that purity to fan
// the mapping out across goroutines without locks.
package pattern
