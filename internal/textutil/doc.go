// Package textutil provides small string helpers shared across the
// pipeline: filename sanitizing and excerpt formatting.
package textutil
