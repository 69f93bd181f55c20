package render

import (
	"bytes"
	"context"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cobolgraph/pkg/errors"
)

// Graphviz renders with the Graphviz library embedded by go-graphviz.
type Graphviz struct{}

// Render implements [Renderer].
func (Graphviz) Render(ctx context.Context, dot []byte, format Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case SVG:
		gvFormat = graphviz.SVG
	case PNG:
		gvFormat = graphviz.PNG
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported render format %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

// Validate reports whether Graphviz accepts dot.
func Validate(dot []byte) error {
	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	return g.Close()
}
