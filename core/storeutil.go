package core

import (
	"fmt"
	"os"
	"path/filepath"
)

// PendingFile is a file to be written by WriteFilesAtomic
type PendingFile struct {
	Path string
	Data []byte
}

// stagedFile is a fully written temporary file waiting to replace its destination
type stagedFile interface {
	CloseAtomicallyReplace() error
	Cleanup() error
}

// WriteFilesAtomic writes every file to a temporary file next to its destination, then renames them all into place.
// If any file fails to stage, nothing is written; if a rename fails, files already renamed into place are removed,
// so a failed call never leaves a partial set of files behind.
func WriteFilesAtomic(files []PendingFile) error {
	staged := make([]stagedFile, 0, len(files))
	discard := func(pending []stagedFile) {
		for _, s := range pending {
			_ = s.Cleanup()
		}
	}

	for _, f := range files {
		dir := filepath.Dir(f.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			discard(staged)
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		s, err := stageFile(dir, f)
		if err != nil {
			discard(staged)
			return fmt.Errorf("failed to write %s: %w", f.Path, err)
		}
		staged = append(staged, s)
	}

	for i, s := range staged {
		if err := s.CloseAtomicallyReplace(); err != nil {
			for _, done := range files[:i] {
				_ = os.Remove(done.Path)
			}
			discard(staged[i:])
			return fmt.Errorf("failed to move %s into place: %w", files[i].Path, err)
		}
	}
	return nil
}
