package sql

// Statement is the common interface for all SQL statements.
type Statement interface {
	stmtNode()
	// Kind is a short lower-case name used in logs and metrics.
	Kind() string
	// Tree is the parse tree the statement was built from.
	Tree() *Node
}

// TableStatement is a statement that operates on one named table.
type TableStatement interface {
	Statement
	Table() string
}

type base struct {
	tree *Node
}

func (b base) Tree() *Node { return b.tree }

// UseStmt represents USE db.
type UseStmt struct {
	base
	Database string
}

// CreateDatabaseStmt represents CREATE DATABASE db.
type CreateDatabaseStmt struct {
	base
	Database string
}

// DropDatabaseStmt represents DROP DATABASE db.
type DropDatabaseStmt struct {
	base
	Database string
}

// CreateTableStmt represents a parsed CREATE TABLE statement. Columns is
// empty when no attribute list was given.
type CreateTableStmt struct {
	base
	TableName string
	Columns   []string
}

// DropTableStmt represents DROP TABLE t.
type DropTableStmt struct {
	base
	TableName string
}

// AlterAction is ADD or DROP in ALTER TABLE.
type AlterAction int

const (
	AlterAdd AlterAction = iota
	AlterDrop
)

func (a AlterAction) String() string {
	if a == AlterDrop {
		return "DROP"
	}
	return "ADD"
}

// AlterTableStmt represents ALTER TABLE t ADD|DROP column.
type AlterTableStmt struct {
	base
	TableName string
	Action    AlterAction
	Column    string
}

// InsertStmt represents INSERT INTO t VALUES (...). Values are literal
// texts exactly as written, string literals keep their quotes.
type InsertStmt struct {
	base
	TableName string
	Values    []string
}

// SelectStmt represents SELECT cols FROM t [WHERE cond].
type SelectStmt struct {
	base
	TableName string
	// Columns is nil for SELECT *.
	Columns []string
	// Where is nil when there is no WHERE clause.
	Where *Condition
}

// Assignment is one "column = value" pair of an UPDATE.
type Assignment struct {
	Column string
	Value  string
}

// UpdateStmt represents UPDATE t SET a=v,... WHERE cond.
type UpdateStmt struct {
	base
	TableName   string
	Assignments []Assignment
	Where       *Condition
}

// DeleteStmt represents DELETE FROM t WHERE cond.
type DeleteStmt struct {
	base
	TableName string
	Where     *Condition
}

// JoinStmt represents JOIN left AND right ON leftCol AND rightCol.
type JoinStmt struct {
	base
	Left        string
	Right       string
	LeftColumn  string
	RightColumn string
}

func (*UseStmt) stmtNode()            {}
func (*CreateDatabaseStmt) stmtNode() {}
func (*DropDatabaseStmt) stmtNode()   {}
func (*CreateTableStmt) stmtNode()    {}
func (*DropTableStmt) stmtNode()      {}
func (*AlterTableStmt) stmtNode()     {}
func (*InsertStmt) stmtNode()         {}
func (*SelectStmt) stmtNode()         {}
func (*UpdateStmt) stmtNode()         {}
func (*DeleteStmt) stmtNode()         {}
func (*JoinStmt) stmtNode()           {}

func (*UseStmt) Kind() string            { return "use" }
func (*CreateDatabaseStmt) Kind() string { return "create_database" }
func (*DropDatabaseStmt) Kind() string   { return "drop_database" }
func (*CreateTableStmt) Kind() string    { return "create_table" }
func (*DropTableStmt) Kind() string      { return "drop_table" }
func (*AlterTableStmt) Kind() string     { return "alter" }
func (*InsertStmt) Kind() string         { return "insert" }
func (*SelectStmt) Kind() string         { return "select" }
func (*UpdateStmt) Kind() string         { return "update" }
func (*DeleteStmt) Kind() string         { return "delete" }
func (*JoinStmt) Kind() string           { return "join" }

func (s *CreateTableStmt) Table() string { return s.TableName }
func (s *DropTableStmt) Table() string   { return s.TableName }
func (s *AlterTableStmt) Table() string  { return s.TableName }
func (s *InsertStmt) Table() string      { return s.TableName }
func (s *SelectStmt) Table() string      { return s.TableName }
func (s *UpdateStmt) Table() string      { return s.TableName }
func (s *DeleteStmt) Table() string      { return s.TableName }

// Table of a join is its left table; the right one is checked separately.
func (s *JoinStmt) Table() string { return s.Left }
