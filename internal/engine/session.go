package engine

// Session is the per-client state carried between commands: only the
// current database. Database is empty until USE or CREATE DATABASE
// succeeds and is cleared when that database is dropped.
type Session struct {
	Database string
}

// NewSession returns a session with no database selected.
func NewSession() *Session {
	return &Session{}
}
