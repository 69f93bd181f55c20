package render

import (
	"context"

	"github.com/matzehuels/cobolgraph/pkg/config"
	"github.com/matzehuels/cobolgraph/pkg/errors"
)

// Format is an image format.
type Format string

// Supported formats.
const (
	SVG Format = "svg"
	PNG Format = "png"
)

// Formats returns the supported formats in preference order.
func Formats() []Format {
	return []Format{SVG, PNG}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case SVG, PNG:
		return Format(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported render format %q (must be 'svg' or 'png')", s)
}

// Renderer turns DOT text into an image.
type Renderer interface {
	Render(ctx context.Context, dot []byte, format Format) ([]byte, error)
}

// New returns the renderer selected by cfg.
func New(cfg config.Render) (Renderer, error) {
	switch cfg.Engine {
	case config.EngineGraphviz, "":
		return Graphviz{}, nil
	case config.EngineCommand:
		return Command{Path: cfg.Command}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown render engine %q", cfg.Engine)
}
