package renderer

import (
	"errors"
	"strings"
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
	FormatEPS Format = "eps"
)

var SupportedFormats = []Format{
	FormatPNG,
	FormatSVG,
	FormatPDF,
	FormatEPS,
}

var (
	ErrInvalidFormat = errors.New("unsupported format")
)

type FormatError struct {
	Value string
}

func (e *FormatError) Error() string {
	return "Unsupported format: " + e.Value + ". Supported formats: " + strings.Join(FormatNames(), ", ")
}

func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// ResolveFormat maps an optional format token to a Format. A nil value
// resolves to png.
func ResolveFormat(val *string) (Format, error) {
	if val == nil {
		return FormatPNG, nil
	}

	return ParseFormat(*val)
}

func ParseFormat(val string) (Format, error) {
	switch strings.ToLower(val) {
	case string(FormatPNG):
		return FormatPNG, nil

	case string(FormatSVG):
		return FormatSVG, nil

	case string(FormatPDF):
		return FormatPDF, nil

	case string(FormatEPS):
		return FormatEPS, nil
	}

	return "", &FormatError{Value: val}
}

func FormatNames() []string {
	names := make([]string, 0, len(SupportedFormats))

	for _, f := range SupportedFormats {
		names = append(names, string(f))
	}

	return names
}

func (f Format) ContentType() string {
	return ContentType(f)
}

func (f Format) Extension() string {
	return "." + string(f)
}

func ContentType(f Format) string {
	switch f {
	case FormatPNG:
		return "image/png"

	case FormatSVG:
		return "image/svg+xml"

	case FormatPDF:
		return "application/pdf"

	case FormatEPS:
		return "application/postscript"

	default:
		return "image/png"
	}
}
