package pipeline

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/cobolgraph/pkg/errors"
)

type artifact struct {
	kind string // see Outputs.path
	path string
	data []byte
}

// commit writes every artifact to a temporary file in its target directory,
// then renames them into place. If any step fails, no artifact of the set
// is left on disk.
func commit(list []artifact) error {
	temps := make([]string, 0, len(list))
	discard := func() {
		for _, t := range temps {
			_ = os.Remove(t)
		}
	}

	for _, a := range list {
		tmp, err := writeTemp(a)
		if err != nil {
			discard()
			return err
		}
		temps = append(temps, tmp)
	}

	for i, a := range list {
		if err := os.Rename(temps[i], a.path); err != nil {
			for _, done := range list[:i] {
				_ = os.Remove(done.path)
			}
			discard()
			return errors.Wrap(errors.ErrCodeIO, err, "rename %s", a.path)
		}
	}
	return nil
}

func writeTemp(a artifact) (string, error) {
	dir := filepath.Dir(a.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "create %s", dir)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(a.path)+".*.tmp")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "create temp file for %s", a.path)
	}
	name := f.Name()
	fail := func(err error) (string, error) {
		f.Close()
		os.Remove(name)
		return "", errors.Wrap(errors.ErrCodeIO, err, "write %s", a.path)
	}
	if _, err := f.Write(a.data); err != nil {
		return fail(err)
	}
	if err := f.Chmod(0o644); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", errors.Wrap(errors.ErrCodeIO, err, "close %s", a.path)
	}
	return name, nil
}

// removeAll deletes paths, ignoring files that do not exist.
func removeAll(paths []string) {
	for _, p := range paths {
		_ = os.Remove(p)
	}
}
