package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// recoverTempFiles deletes the temporary files an interrupted atomic save
// leaves next to its target. The target itself is still the last complete
// version, so nothing else needs replaying.
func (s *FileStore) recoverTempFiles() error {
	dbs, err := os.ReadDir(s.root)
	if err != nil {
		return fmt.Errorf("recovery: read root: %w", err)
	}

	for _, db := range dbs {
		if !db.IsDir() {
			continue
		}
		dir := filepath.Join(s.root, db.Name())
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("recovery: read %s: %w", db.Name(), err)
		}
		for _, ent := range entries {
			if ent.IsDir() || !strings.HasPrefix(ent.Name(), tempPrefix) {
				continue
			}
			if err := os.Remove(filepath.Join(dir, ent.Name())); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("recovery: remove %s: %w", ent.Name(), err)
			}
		}
	}
	return nil
}
