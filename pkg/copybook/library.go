package copybook

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/cobolgraph/pkg/config"
)

// Library locates copybook members on disk.
type Library struct {
	Dirs       []string
	Extensions []string
}

// NewLibrary returns the library described by cfg.
func NewLibrary(cfg config.Copybook) Library {
	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = []string{""}
	}
	return Library{Dirs: cfg.Dirs, Extensions: exts}
}

// Find returns the path of member name. The upper-case spelling is tried
// before the name as written, in every directory and with every extension.
func (l Library) Find(name string) (string, bool) {
	names := []string{strings.ToUpper(name)}
	if name != names[0] {
		names = append(names, name)
	}
	for _, dir := range l.Dirs {
		for _, n := range names {
			for _, ext := range l.Extensions {
				p := filepath.Join(dir, n+ext)
				if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
					return p, true
				}
			}
		}
	}
	return "", false
}
