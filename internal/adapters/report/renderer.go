// Package report renders analysis reports as text, JSON or YAML.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/okian/openings/internal/domain/types"
)

// Supported formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Renderer writes a report to w.
type Renderer interface {
	Render(w io.Writer, r types.Report) error
}

// Formats lists the supported format names.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML}
}

// New returns the renderer for format. Names are case-insensitive.
func New(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatText:
		return TextRenderer{}, nil
	case FormatJSON:
		return JSONRenderer{Indent: "  "}, nil
	case FormatYAML:
		return YAMLRenderer{Indent: 2}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
