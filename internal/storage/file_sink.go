package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileSink stores the snapshot as a single JSON file. Saves go through a
// temp file plus rename so a crash mid-write cannot truncate the previous
// snapshot.
type FileSink struct {
	path string
}

// NewFileSink creates a sink writing to path, creating parent directories
// as needed.
func NewFileSink(path string) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating snapshot directory %s: %w", dir, err)
		}
	}
	return &FileSink{path: path}, nil
}

func (f *FileSink) Load() ([]byte, bool, error) {
	blob, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading snapshot %s: %w", f.path, err)
	}
	return blob, true, nil
}

func (f *FileSink) Save(blob []byte) error {
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("writing snapshot temp file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing snapshot %s: %w", f.path, err)
	}
	return nil
}
