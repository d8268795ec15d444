package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"tabDB/internal/storage"
	"tabDB/internal/table"
)

const (
	tableExt      = ".tab"
	counterSuffix = "_ID"
	// tempPrefix marks half-written files; see recoverTempFiles.
	tempPrefix = ".tmp-"
)

// FileStore keeps every database as a directory under root.
//
// Layout:
//
//	<root>/<db>/<table>.tab   header line plus one tab-separated line per row
//	<root>/<db>/<table>_ID    last assigned identity, decimal
type FileStore struct {
	root   string
	atomic bool

	// mu serializes writers; commands are single-threaded but a CLI
	// may share one store between the shell and the metrics handler.
	mu sync.Mutex
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithAtomicWrites chooses how SaveTable replaces files. When on (the
// default) the new content is written to a temporary file and renamed over
// the old one. When off, the old file is removed first and then rewritten,
// which can lose the table if the write fails.
func WithAtomicWrites(on bool) Option {
	return func(s *FileStore) { s.atomic = on }
}

// New opens (creating if needed) a store rooted at root. Temporary files left
// behind by an interrupted save are removed.
func New(root string, opts ...Option) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create root: %w", err)
	}

	s := &FileStore{root: root, atomic: true}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.recoverTempFiles(); err != nil {
		return nil, fmt.Errorf("filestore: recovery failed: %w", err)
	}
	return s, nil
}

// Root is the directory holding the databases.
func (s *FileStore) Root() string { return s.root }

func (s *FileStore) dbPath(db string) (string, error) {
	if !storage.ValidName(db) {
		return "", fmt.Errorf("%w: %q", storage.ErrInvalidName, db)
	}
	return filepath.Join(s.root, db), nil
}

func (s *FileStore) tablePaths(db, name string) (tab, counter string, err error) {
	dir, err := s.dbPath(db)
	if err != nil {
		return "", "", err
	}
	if !storage.ValidName(name) {
		return "", "", fmt.Errorf("%w: %q", storage.ErrInvalidName, name)
	}
	return filepath.Join(dir, name+tableExt), filepath.Join(dir, name+counterSuffix), nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (s *FileStore) DatabaseExists(db string) (bool, error) {
	dir, err := s.dbPath(db)
	if err != nil {
		return false, err
	}
	return exists(dir)
}

func (s *FileStore) CreateDatabase(db string) error {
	dir, err := s.dbPath(db)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Mkdir(dir, 0o755); err != nil {
		if errors.Is(err, os.ErrExist) {
			return storage.ErrDatabaseExists
		}
		return fmt.Errorf("filestore: create database %q: %w", db, err)
	}
	return nil
}

func (s *FileStore) DropDatabase(db string) error {
	dir, err := s.dbPath(db)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := exists(dir)
	if err != nil {
		return fmt.Errorf("filestore: stat database %q: %w", db, err)
	}
	if !ok {
		return storage.ErrDatabaseNotFound
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("filestore: drop database %q: %w", db, err)
	}
	return nil
}

// ListDatabases returns the database directory names, sorted.
func (s *FileStore) ListDatabases() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("filestore: list databases: %w", err)
	}
	var dbs []string
	for _, ent := range entries {
		if ent.IsDir() && storage.ValidName(ent.Name()) {
			dbs = append(dbs, ent.Name())
		}
	}
	sort.Strings(dbs)
	return dbs, nil
}

func (s *FileStore) TableExists(db, name string) (bool, error) {
	tab, _, err := s.tablePaths(db, name)
	if err != nil {
		return false, err
	}
	return exists(tab)
}

// ListTables returns all *.tab files in the database directory, sorted.
func (s *FileStore) ListTables(db string) ([]string, error) {
	dir, err := s.dbPath(db)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrDatabaseNotFound
		}
		return nil, fmt.Errorf("filestore: list tables: %w", err)
	}

	var tables []string
	for _, ent := range entries {
		name := ent.Name()
		if !ent.IsDir() && strings.HasSuffix(name, tableExt) && !strings.HasPrefix(name, tempPrefix) {
			tables = append(tables, strings.TrimSuffix(name, tableExt))
		}
	}
	sort.Strings(tables)
	return tables, nil
}

// LoadTable reads the table file and then its identity counter. A missing
// counter file, or one behind the largest stored id, is repaired to the
// largest stored id so ids are never reused.
func (s *FileStore) LoadTable(db, name string) (*table.Table, error) {
	tab, counter, err := s.tablePaths(db, name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(tab)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrTableNotFound
		}
		return nil, fmt.Errorf("filestore: open table: %w", err)
	}
	defer f.Close()

	t, err := decodeTable(name, f)
	if err != nil {
		return nil, fmt.Errorf("filestore: load %s/%s: %w", db, name, err)
	}

	lastID := 0
	if cf, err := os.Open(counter); err == nil {
		lastID, err = decodeCounter(cf)
		cf.Close()
		if err != nil {
			return nil, fmt.Errorf("filestore: load %s/%s counter: %w", db, name, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("filestore: open counter: %w", err)
	}
	for _, id := range t.IDs() {
		if id > lastID {
			lastID = id
		}
	}
	t.SetLastID(lastID)

	return t, nil
}

// SaveTable writes the table file and then the counter file.
func (s *FileStore) SaveTable(db string, t *table.Table) error {
	tab, counter, err := s.tablePaths(db, t.Name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := exists(filepath.Dir(tab))
	if err != nil {
		return fmt.Errorf("filestore: stat database %q: %w", db, err)
	}
	if !ok {
		return storage.ErrDatabaseNotFound
	}

	if err := s.writeFile(tab, func(w io.Writer) error { return encodeTable(w, t) }); err != nil {
		return fmt.Errorf("filestore: save %s/%s: %w", db, t.Name, err)
	}
	if err := s.writeFile(counter, func(w io.Writer) error { return encodeCounter(w, t.LastID()) }); err != nil {
		return fmt.Errorf("filestore: save %s/%s counter: %w", db, t.Name, err)
	}
	return nil
}

// writeFile replaces path with whatever write produces.
func (s *FileStore) writeFile(path string, write func(io.Writer) error) error {
	if !s.atomic {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		if err := write(f); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), tempPrefix+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if err := write(tmp); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// DropTable removes the table file and its counter.
func (s *FileStore) DropTable(db, name string) error {
	tab, counter, err := s.tablePaths(db, name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(tab); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return storage.ErrTableNotFound
		}
		return fmt.Errorf("filestore: drop table: %w", err)
	}
	if err := os.Remove(counter); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("filestore: drop counter: %w", err)
	}
	return nil
}

var _ storage.Store = (*FileStore)(nil)
