// Package lattice computes the center positions of a regular hexagonal
// tiling over a rectangular canvas.
//
// The defining rule of a hexagonal tiling is the staggered half-step: for
// flat-top hexagons, adjacent centers in a row are one lattice constant d
// apart, rows are d*sqrt(3)/2 apart, and every odd row is shifted right by
// d/2. Pointy-top tilings transpose the rule. Centers are enumerated
// deterministically in row-major order with stable 0-based row/column
// indices.
package lattice
