package core

import (
	"errors"
	"os"
	"path/filepath"
)

// renameio doesn't support Windows, where a rename can't atomically replace an open file anyway

type tempFile struct {
	*os.File
	path string
	done bool
}

func stageFile(dir string, f PendingFile) (stagedFile, error) {
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+"-*.tmp")
	if err != nil {
		return nil, err
	}
	t := &tempFile{File: tmp, path: f.Path}
	if _, err := t.Write(f.Data); err != nil {
		_ = t.Cleanup()
		return nil, err
	}
	return t, nil
}

func (t *tempFile) CloseAtomicallyReplace() error {
	if err := errors.Join(t.Sync(), t.File.Close()); err != nil {
		return err
	}
	if err := os.Rename(t.Name(), t.path); err != nil {
		return err
	}
	t.done = true
	return nil
}

func (t *tempFile) Cleanup() error {
	if t.done {
		return nil
	}
	_ = t.File.Close()
	return os.Remove(t.Name())
}
