package report

import (
	"errors"
	"fmt"
	"strings"
)

const (
	unsupportedFormatTemplateConstant = "%w: %s"
)

// Format selects how inspections are rendered.
type Format string

// Supported formats.
const (
	FormatJSON Format = Format("json")
	FormatYAML Format = Format("yaml")
	FormatText Format = Format("text")
)

// ErrUnsupportedFormat indicates an output format outside the supported set.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// ParseFormat normalizes a textual format name. An empty value selects JSON.
func ParseFormat(value string) (Format, error) {
	normalized := Format(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML, FormatText:
		return normalized, nil
	default:
		return "", fmt.Errorf(unsupportedFormatTemplateConstant, ErrUnsupportedFormat, value)
	}
}

// UnmarshalText decodes configuration values into a Format.
func (format *Format) UnmarshalText(text []byte) error {
	parsed, parseError := ParseFormat(string(text))
	if parseError != nil {
		return parseError
	}
	*format = parsed
	return nil
}

// String returns the format name.
func (format Format) String() string {
	return string(format)
}
