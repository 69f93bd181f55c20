package render

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/matzehuels/cobolgraph/pkg/errors"
)

// Command renders by running an external Graphviz binary as
// "<Path> -T<format>" with the DOT text on stdin.
type Command struct {
	Path string // executable name or path, "dot" when empty
}

func (c Command) path() string {
	if c.Path == "" {
		return "dot"
	}
	return c.Path
}

// Available reports whether the executable can be found.
func (c Command) Available() bool {
	_, err := exec.LookPath(c.path())
	return err == nil
}

// Render implements [Renderer].
func (c Command) Render(ctx context.Context, dot []byte, format Format) ([]byte, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	bin, err := exec.LookPath(c.path())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err,
			"%s export requires Graphviz. Install with:\n  macOS:  brew install graphviz\n  Linux:  apt install graphviz", format)
	}

	cmd := exec.CommandContext(ctx, bin, "-T"+string(format))
	cmd.Stdin = bytes.NewReader(dot)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "%s: %s", c.path(), strings.TrimSpace(errBuf.String()))
	}
	return out.Bytes(), nil
}
