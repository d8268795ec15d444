package storage

import (
	"errors"
	"tabDB/internal/table"
)

var (
	ErrDatabaseExists   = errors.New("storage: database already exists")
	ErrDatabaseNotFound = errors.New("storage: database does not exist")
	ErrTableNotFound    = errors.New("storage: table does not exist")
	ErrInvalidName      = errors.New("storage: invalid name")
	ErrCorrupt          = errors.New("storage: corrupt table data")
)

// Store persists tables keyed by (database, table).
//
// Callers pass names already case-folded; a Store treats them verbatim.
// Implementations:
//   - filestore: one directory per database, one .tab and one _ID file per table
//   - memstore: maps, for tests and throwaway sessions
type Store interface {
	DatabaseExists(db string) (bool, error)
	CreateDatabase(db string) error
	// DropDatabase removes the database and every table in it.
	DropDatabase(db string) error
	ListDatabases() ([]string, error)

	TableExists(db, name string) (bool, error)
	ListTables(db string) ([]string, error)

	// LoadTable returns a fresh copy the caller may mutate freely.
	LoadTable(db, name string) (*table.Table, error)
	// SaveTable replaces the stored table and its identity counter.
	SaveTable(db string, t *table.Table) error
	// DropTable removes the table and its identity counter.
	DropTable(db, name string) error
}

// ValidName reports whether name is usable as a database or table name:
// non-empty and made only of ASCII letters and digits.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
