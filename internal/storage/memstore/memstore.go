package memstore

import (
	"fmt"
	"sort"
	"sync"
	"tabDB/internal/storage"
	"tabDB/internal/table"
)

type database struct {
	tables map[string]*table.Table
}

// MemStore keeps databases in maps. Tables are cloned on the way in and out,
// so callers never share state with the store.
type MemStore struct {
	mu  sync.RWMutex
	dbs map[string]*database
}

// New creates a new in-memory store.
func New() *MemStore {
	return &MemStore{
		dbs: make(map[string]*database),
	}
}

func (s *MemStore) DatabaseExists(db string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.dbs[db]
	return ok, nil
}

func (s *MemStore) CreateDatabase(db string) error {
	if !storage.ValidName(db) {
		return fmt.Errorf("%w: %q", storage.ErrInvalidName, db)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.dbs[db]; ok {
		return storage.ErrDatabaseExists
	}
	s.dbs[db] = &database{tables: make(map[string]*table.Table)}
	return nil
}

func (s *MemStore) DropDatabase(db string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.dbs[db]; !ok {
		return storage.ErrDatabaseNotFound
	}
	delete(s.dbs, db)
	return nil
}

func (s *MemStore) ListDatabases() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.dbs))
	for name := range s.dbs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// lookup returns the database or ErrDatabaseNotFound. Callers hold mu.
func (s *MemStore) lookup(db string) (*database, error) {
	d, ok := s.dbs[db]
	if !ok {
		return nil, storage.ErrDatabaseNotFound
	}
	return d, nil
}

func (s *MemStore) TableExists(db, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, err := s.lookup(db)
	if err != nil {
		return false, nil
	}
	_, ok := d.tables[name]
	return ok, nil
}

func (s *MemStore) ListTables(db string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, err := s.lookup(db)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(d.tables))
	for name := range d.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemStore) LoadTable(db, name string) (*table.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, err := s.lookup(db)
	if err != nil {
		return nil, err
	}
	t, ok := d.tables[name]
	if !ok {
		return nil, storage.ErrTableNotFound
	}
	return t.Clone(), nil
}

func (s *MemStore) SaveTable(db string, t *table.Table) error {
	if !storage.ValidName(t.Name) {
		return fmt.Errorf("%w: %q", storage.ErrInvalidName, t.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.lookup(db)
	if err != nil {
		return err
	}
	d.tables[t.Name] = t.Clone()
	return nil
}

func (s *MemStore) DropTable(db, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.lookup(db)
	if err != nil {
		return err
	}
	if _, ok := d.tables[name]; !ok {
		return storage.ErrTableNotFound
	}
	delete(d.tables, name)
	return nil
}

var _ storage.Store = (*MemStore)(nil)
