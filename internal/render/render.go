// Package render writes parsed env maps in the CLI output formats.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/envresolve/internal/config"
)

// Vars writes vars to w in format. Keys are emitted in sorted order.
func Vars(w io.Writer, format string, vars map[string]string) error {
	if vars == nil {
		vars = map[string]string{}
	}

	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(vars); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(vars); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
	case config.FormatDotenv:
		out, err := godotenv.Marshal(vars)
		if err != nil {
			return fmt.Errorf("encode dotenv: %w", err)
		}
		if out != "" {
			out += "\n"
		}
		if _, err := io.WriteString(w, out); err != nil {
			return fmt.Errorf("write dotenv: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}
