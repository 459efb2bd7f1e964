package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/okian/openings/internal/domain/types"
)

// YAMLRenderer writes the report as a YAML document.
type YAMLRenderer struct {
	Indent int
}

// Render implements Renderer.
func (y YAMLRenderer) Render(w io.Writer, r types.Report) error {
	enc := yaml.NewEncoder(w)
	if y.Indent > 0 {
		enc.SetIndent(y.Indent)
	}
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	return nil
}
