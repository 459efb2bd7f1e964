package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/okian/openings/internal/domain/types"
)

// JSONRenderer writes the report as a JSON document.
type JSONRenderer struct {
	Indent string
}

// Render implements Renderer.
func (j JSONRenderer) Render(w io.Writer, r types.Report) error {
	enc := json.NewEncoder(w)
	if j.Indent != "" {
		enc.SetIndent("", j.Indent)
	}
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}
	return nil
}
