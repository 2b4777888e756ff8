package template

import (
	"os"
	"path/filepath"

	"github.com/ksyq12/wsgate/internal/errors"
)

// Install writes content to path atomically. The content is staged in
// a temporary file in the target directory and renamed into place, so
// a reader of path observes either the previous file or the complete
// new one. The temporary file is removed on any failure.
func Install(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".config-*")
	if err != nil {
		return errors.WrapTarget(errors.ErrCodeWrite, path, err)
	}
	tmpName := tmp.Name()

	_, werr := tmp.Write(content)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		_ = os.Remove(tmpName)
		if werr == nil {
			werr = cerr
		}
		return errors.WrapTarget(errors.ErrCodeWrite, path, werr)
	}

	// CreateTemp uses 0600; the rendered config must be readable by
	// the server regardless of which user it drops to.
	if err := os.Chmod(tmpName, perm); err != nil {
		_ = os.Remove(tmpName)
		return errors.WrapTarget(errors.ErrCodeWrite, path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errors.WrapTarget(errors.ErrCodeWrite, path, err)
	}
	return nil
}
