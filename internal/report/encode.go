package report

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/sleepstat-cli/internal/utils"
	"gopkg.in/yaml.v3"
)

// Format selects an output encoding.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// ParseFormat accepts markdown|md, json and yaml|yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use markdown|json|yaml)", s)
	}
}

// Ext is the file extension for f, dot included.
func (f Format) Ext() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	default:
		return ".md"
	}
}

// Encode renders the report in the given format.
func (r *Report) Encode(f Format) ([]byte, error) {
	switch f {
	case FormatMarkdown, "":
		return []byte(r.Markdown()), nil
	case FormatJSON:
		b, err := utils.PrettyJSON(r)
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case FormatYAML:
		b, err := yaml.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", f)
	}
}
