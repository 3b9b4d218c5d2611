//go:build !windows

package core

import (
	"github.com/google/renameio/v2"
)

func stageFile(dir string, f PendingFile) (stagedFile, error) {
	t, err := renameio.NewPendingFile(f.Path, renameio.WithTempDir(dir), renameio.WithStaticPermissions(0644))
	if err != nil {
		return nil, err
	}
	if _, err := t.Write(f.Data); err != nil {
		_ = t.Cleanup()
		return nil, err
	}
	return t, nil
}
