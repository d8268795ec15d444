package engine

import "tabDB/internal/dberr"

// Client-facing failures. The messages are part of the response contract.
var (
	errNotStarted = dberr.New(dberr.KindInternal, "Engine not started.")

	errTokenLimit  = dberr.New(dberr.KindLexical, "Command length exceeds limit.")
	errRowLimit    = dberr.New(dberr.KindCapacity, "Table entry limit exceeded.")
	errColumnLimit = dberr.New(dberr.KindCapacity, "Table attribute limit exceeded.")

	errNoDatabase        = dberr.New(dberr.KindSemantic, "Please specify database.")
	errDatabaseNotFound  = dberr.New(dberr.KindSemantic, "Database does not exist.")
	errDatabaseExists    = dberr.New(dberr.KindSemantic, "Database already exists.")
	errDropDatabase      = dberr.New(dberr.KindSemantic, "Please check database exists.")
	errTableNotFound     = dberr.New(dberr.KindSemantic, "Table does not exist. Check database correctly set.")
	errTableExists       = dberr.New(dberr.KindSemantic, "Table already exists.")
	errDuplicateColumns  = dberr.New(dberr.KindSemantic, "Duplicate attribute names in table definition.")
	errColumnExists      = dberr.New(dberr.KindSemantic, "Column already exists.")
	errColumnNotFound    = dberr.New(dberr.KindSemantic, "Column does not exist.")
	errMissingAttributes = dberr.New(dberr.KindSemantic, "Not all specified attributes exist.")
	errJoinTables        = dberr.New(dberr.KindSemantic, "Check both tables exist within database.")
	errJoinAttributes    = dberr.New(dberr.KindSemantic, "Non-existent attribute(s) within table(s).")

	errValueCount = dberr.New(dberr.KindData, "Failed to add values. Check number of columns correct.")

	errDropID   = dberr.New(dberr.KindImmutable, "Cannot delete ID column.")
	errUpdateID = dberr.New(dberr.KindImmutable, "The ID column cannot be changed.")
)

// Storage failures keep the underlying cause for logs.
const (
	msgLoadFailed   = "Failed to load table."
	msgSaveFailed   = "Failed to save table."
	msgDropTable    = "Could not delete table."
	msgStoreFailure = "Storage failure."
)

func storageErr(msg string, err error) error {
	return dberr.Wrap(dberr.KindStorage, msg, err)
}
