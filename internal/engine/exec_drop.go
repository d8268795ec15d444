package engine

import "tabDB/internal/sql"

func (e *DBEngine) executeDropTable(sess *Session, stmt *sql.DropTableStmt) error {
	if err := e.store.DropTable(sess.Database, stmt.TableName); err != nil {
		return storageErr(msgDropTable, err)
	}
	return nil
}
