package source

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"lukechampine.com/blake3"

	"github.com/matzehuels/cobolgraph/pkg/errors"
)

// Line is one raw source line, undecoded.
type Line struct {
	Number int    // 1-based line number in the file
	Raw    []byte // line bytes without the line terminator
}

// Unit is one source program read from disk.
type Unit struct {
	Name        string // unit-qualified name used for output files
	Path        string
	Lines       []Line
	Fingerprint string // hex BLAKE3-256 of the file contents
}

// ReadFile reads the unit at path. The unit is named after the file's base
// name; use [Discover] to obtain names qualified by their directory.
func ReadFile(path string) (*Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "source %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read source %s", path)
	}
	return &Unit{
		Name:        UnitName(filepath.Base(path)),
		Path:        path,
		Lines:       SplitLines(data),
		Fingerprint: Fingerprint(data),
	}, nil
}

// SplitLines splits data on '\n' and drops a trailing '\r' from every line.
// A final terminator does not produce an empty trailing line.
func SplitLines(data []byte) []Line {
	if len(data) == 0 {
		return nil
	}
	parts := bytes.Split(data, []byte{'\n'})
	if len(parts[len(parts)-1]) == 0 {
		parts = parts[:len(parts)-1]
	}
	lines := make([]Line, len(parts))
	for i, p := range parts {
		lines[i] = Line{Number: i + 1, Raw: bytes.TrimSuffix(p, []byte{'\r'})}
	}
	return lines
}

// Fingerprint returns the hex BLAKE3-256 digest of data.
func Fingerprint(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// UnitName derives a flat, collision-free unit name from a path relative to
// the source root: the extension is dropped and directory separators become
// "__", so "batch/PAY01.cbl" is named "batch__PAY01".
func UnitName(rel string) string {
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	rel = strings.TrimPrefix(rel, "./")
	return strings.ReplaceAll(rel, "/", "__")
}
