// Package source loads and caches the input images a pattern is generated
// from. The core pipeline itself never touches the filesystem; this
// package is the boundary that hands it decoded pixel data.
package source
