package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Formats accepted by Write
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Write renders v in the given format. Text output prints string slices one
// per line and falls back to JSON for anything else.
func Write(w io.Writer, v interface{}, format string) error {
	var data []byte
	var err error

	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	case FormatYAML, "yml":
		data, err = yaml.Marshal(v)
	case FormatText, "":
		if lines, ok := v.([]string); ok {
			if len(lines) > 0 {
				data = []byte(strings.Join(lines, "\n") + "\n")
			}
			break
		}
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unsupported output format %q (json/yaml/text)", format)
	}

	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	_, err = w.Write(data)
	return err
}
