package renderer

import (
	"encoding/json"
	"io"

	"github.com/retrodev/mzmap/catalog"
)

// JSONRenderer renders the catalog in JSON format.
type JSONRenderer struct{}

func NewJSONRenderer() Renderer {
	return &JSONRenderer{}
}

func (r *JSONRenderer) Render(cat *catalog.Catalog, output io.Writer) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cat)
}

func (r *JSONRenderer) Format() string {
	return "json"
}
