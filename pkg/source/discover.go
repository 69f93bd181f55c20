package source

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/matzehuels/cobolgraph/pkg/config"
	"github.com/matzehuels/cobolgraph/pkg/errors"
)

// Entry is a discovered source file.
type Entry struct {
	Name string // unit name, see [UnitName]
	Rel  string // path relative to the root, slash-separated
	Path string // path joined with the root
}

var skipDirs = map[string]struct{}{
	".git": {},
	".hg":  {},
	".svn": {},
}

// Discover lists the source units under p.SourceDir, sorted by relative path.
func Discover(p config.Paths) ([]Entry, error) {
	root := p.SourceDir
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "source directory %s", root)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "stat %s", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", root)
	}

	for _, pattern := range p.Include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "invalid include pattern %q", pattern)
		}
	}
	gi := loadIgnore(root, p.IgnoreFile)

	var results []Entry
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip || !p.Recurse {
				return filepath.SkipDir
			}
			if gi != nil && gi.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip symlinks and the ignore file itself
		if d.Type()&os.ModeSymlink != 0 || rel == p.IgnoreFile {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		if !matchAny(p.Include, rel) {
			return nil
		}

		results = append(results, Entry{Name: UnitName(rel), Rel: rel, Path: path})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "walk %s", root)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Rel < results[j].Rel
	})
	if err := checkNames(results); err != nil {
		return nil, err
	}
	return results, nil
}

// Files builds entries for explicitly named source files, in the given order.
// Units are named after the base name, so two files with the same base name
// in different directories are rejected.
func Files(paths []string) ([]Entry, error) {
	results := make([]Entry, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "source %s", path)
			}
			return nil, errors.Wrap(errors.ErrCodeIO, err, "stat %s", path)
		}
		if info.IsDir() {
			return nil, errors.New(errors.ErrCodeInvalidPath, "%s is a directory", path)
		}
		base := filepath.Base(path)
		results = append(results, Entry{Name: UnitName(base), Rel: base, Path: path})
	}
	if err := checkNames(results); err != nil {
		return nil, err
	}
	return results, nil
}

func checkNames(entries []Entry) error {
	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		if prev, ok := seen[e.Name]; ok {
			return errors.New(errors.ErrCodeInvalidInput, "%s and %s map to the same unit name %s", prev, e.Path, e.Name)
		}
		seen[e.Name] = e.Path
	}
	return nil
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		// Patterns without a directory part also match by base name.
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, filepath.Base(rel)); ok {
				return true
			}
		}
	}
	return false
}

func loadIgnore(root, name string) *ignore.GitIgnore {
	if name == "" {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, name))
	if err != nil {
		return nil
	}
	return gi
}
