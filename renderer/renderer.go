// Package renderer provides catalog report output in different formats.
package renderer

import (
	"io"

	"github.com/retrodev/mzmap/catalog"
)

// Renderer defines the interface for rendering an analysis catalog in
// different formats.
type Renderer interface {
	// Render writes the catalog in the desired format to the provided writer.
	Render(cat *catalog.Catalog, output io.Writer) error

	// Format returns the name of the output format (e.g., "json", "text").
	Format() string
}
