package cli

import (
	"encoding/json"
	"io"

	perr "parachute/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

// render writes v in the chosen format. text is used for OutputText
func render(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case OutputText:
		return text(w)
	}
	return perr.InvalidArgf("unknown output format %q", format)
}
