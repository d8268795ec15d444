package engine

import (
	"errors"
	"fmt"
	"strings"
	"tabDB/internal/metrics"
	"tabDB/internal/sql"
	"tabDB/internal/storage/filestore"
	"tabDB/internal/storage/memstore"
	"tabDB/internal/table"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newEngine(t *testing.T, opts ...Option) *DBEngine {
	t.Helper()
	eng := New(memstore.New(), opts...)
	if err := eng.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return eng
}

func mustOK(t *testing.T, eng *DBEngine, sess *Session, cmd string) string {
	t.Helper()
	resp := eng.HandleCommand(sess, cmd)
	if !strings.HasPrefix(resp, "[OK]\n") {
		t.Fatalf("%s: expected [OK], got %q", cmd, resp)
	}
	return resp
}

func expectError(t *testing.T, eng *DBEngine, sess *Session, cmd, msg string) {
	t.Helper()
	resp := eng.HandleCommand(sess, cmd)
	want := "[ERROR]\n" + msg + "\n"
	if resp != want {
		t.Fatalf("%s: expected %q, got %q", cmd, want, resp)
	}
}

func query(t *testing.T, eng *DBEngine, sess *Session, cmd string) *table.Result {
	t.Helper()
	stmt, err := sql.Parse(cmd)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", cmd, err)
	}
	res, err := eng.Execute(sess, stmt)
	if err != nil {
		t.Fatalf("Execute(%q) failed: %v", cmd, err)
	}
	return res
}

// setupMarks creates database "school" with the marks table used by most
// tests.
func setupMarks(t *testing.T, eng *DBEngine) *Session {
	t.Helper()
	sess := NewSession()
	for _, cmd := range []string{
		"CREATE DATABASE school;",
		"USE school;",
		"CREATE TABLE marks (name, mark, pass);",
		"INSERT INTO marks VALUES ('Simon', 65, TRUE);",
		"INSERT INTO marks VALUES ('Sion', 55, TRUE);",
		"INSERT INTO marks VALUES ('Rob', 35, FALSE);",
		"INSERT INTO marks VALUES ('Chris', 20, FALSE);",
	} {
		mustOK(t, eng, sess, cmd)
	}
	return sess
}

func column(res *table.Result, c int) []string {
	out := make([]string, len(res.Rows))
	for i, row := range res.Rows {
		out[i] = row[c]
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBasicCreateAndQuery(t *testing.T) {
	eng := newEngine(t)
	sess := setupMarks(t, eng)

	resp := mustOK(t, eng, sess, "SELECT * FROM marks;")
	if strings.Contains(resp, "[ERROR]") {
		t.Fatalf("unexpected error tag in %q", resp)
	}
	for _, name := range []string{"Simon", "Chris"} {
		if !strings.Contains(resp, name) {
			t.Fatalf("expected %s in %q", name, resp)
		}
	}
	if strings.Contains(resp, "'Simon'") {
		t.Fatalf("quotes should be stripped on output: %q", resp)
	}
}

func TestQueryID(t *testing.T) {
	eng := newEngine(t)
	sess := setupMarks(t, eng)

	resp := mustOK(t, eng, sess, "SELECT id FROM marks WHERE name == 'Simon';")
	if resp != "[OK]\nid\n1\n" {
		t.Fatalf("unexpected response %q", resp)
	}
}

func TestNonQueryReturnsBareOK(t *testing.T) {
	eng := newEngine(t)
	sess := setupMarks(t, eng)

	if resp := eng.HandleCommand(sess, "UPDATE marks SET mark = 70 WHERE name == 'Rob';"); resp != "[OK]\n" {
		t.Fatalf("expected bare [OK], got %q", resp)
	}
}

func TestTablePersistsAfterRestart(t *testing.T) {
	dir := t.TempDir()

	fs, err := filestore.New(dir)
	if err != nil {
		t.Fatalf("filestore.New failed: %v", err)
	}
	eng := New(fs)
	if err := eng.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	sess := setupMarks(t, eng)
	mustOK(t, eng, sess, "DELETE FROM marks WHERE name == 'Chris';")

	fs2, err := filestore.New(dir)
	if err != nil {
		t.Fatalf("filestore.New failed: %v", err)
	}
	eng2 := New(fs2)
	if err := eng2.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	sess2 := NewSession()
	mustOK(t, eng2, sess2, "USE school;")

	res := query(t, eng2, sess2, "SELECT name FROM marks;")
	want := []string{"'Simon'", "'Sion'", "'Rob'"}
	if got := column(res, 0); !equal(got, want) {
		t.Fatalf("expected %v after restart, got %v", want, got)
	}

	// Deleted ids are never reused, even across restarts.
	mustOK(t, eng2, sess2, "INSERT INTO marks VALUES ('Dan', 40, FALSE);")
	res = query(t, eng2, sess2, "SELECT id FROM marks WHERE name == 'Dan';")
	if got := column(res, 0); !equal(got, []string{"5"}) {
		t.Fatalf("expected id 5, got %v", got)
	}
}

func TestErrorMessages(t *testing.T) {
	eng := newEngine(t)
	sess := NewSession()

	expectError(t, eng, sess, "SELECT * FROM marks;", "Please specify database.")
	expectError(t, eng, sess, "USE nowhere;", "Database does not exist.")
	expectError(t, eng, sess, "DROP DATABASE nowhere;", "Please check database exists.")
	expectError(t, eng, sess, "SELECT * FROM;", "Parsing failure. Please check command syntax.")
	expectError(t, eng, sess, "", "Parsing failure. Please check command syntax.")

	sess = setupMarks(t, eng)
	expectError(t, eng, sess, "CREATE DATABASE school;", "Database already exists.")
	expectError(t, eng, sess, "SELECT * FROM libraryfines;", "Table does not exist. Check database correctly set.")
	expectError(t, eng, sess, "CREATE TABLE marks;", "Table already exists.")
	expectError(t, eng, sess, "CREATE TABLE t2 (a, b, A);", "Duplicate attribute names in table definition.")
	expectError(t, eng, sess, "CREATE TABLE select (a);", "Cannot use SQL reserved words for attribute, table or database names.")
	expectError(t, eng, sess, "SELECT age FROM marks;", "Not all specified attributes exist.")
	expectError(t, eng, sess, "DELETE FROM marks WHERE age > 3;", "Not all specified attributes exist.")
	expectError(t, eng, sess, "INSERT INTO marks VALUES ('Tom', 20);", "Failed to add values. Check number of columns correct.")
	expectError(t, eng, sess, "UPDATE marks SET id = 9 WHERE name == 'Rob';", "The ID column cannot be changed.")
	expectError(t, eng, sess, "ALTER TABLE marks DROP id;", "Cannot delete ID column.")
	expectError(t, eng, sess, "ALTER TABLE marks DROP age;", "Column does not exist.")
	expectError(t, eng, sess, "ALTER TABLE marks ADD Mark;", "Column already exists.")
	expectError(t, eng, sess, "JOIN marks AND fines ON name AND name;", "Check both tables exist within database.")
	expectError(t, eng, sess, "JOIN marks AND marks ON name AND age;", "Non-existent attribute(s) within table(s).")
}

func TestDropDatabaseClearsSession(t *testing.T) {
	eng := newEngine(t)
	sess := setupMarks(t, eng)

	mustOK(t, eng, sess, "CREATE DATABASE other;")
	if sess.Database != "other" {
		t.Fatalf("CREATE DATABASE should select the new database, got %q", sess.Database)
	}
	mustOK(t, eng, sess, "DROP DATABASE school;")
	if sess.Database != "other" {
		t.Fatalf("dropping another database changed the session to %q", sess.Database)
	}
	mustOK(t, eng, sess, "DROP DATABASE other;")
	if sess.Database != "" {
		t.Fatalf("expected no database after drop, got %q", sess.Database)
	}
	expectError(t, eng, sess, "SELECT * FROM marks;", "Please specify database.")
}

func TestNamesAreCaseInsensitive(t *testing.T) {
	eng := newEngine(t)
	sess := setupMarks(t, eng)

	mustOK(t, eng, sess, "use SCHOOL;")
	res := query(t, eng, sess, "select NAME from MARKS where MARK > 60;")
	if got := column(res, 0); !equal(got, []string{"'Simon'"}) {
		t.Fatalf("expected Simon, got %v", got)
	}
	// The header keeps the case the column was created with.
	if res.Header[0] != "name" {
		t.Fatalf("expected header name, got %q", res.Header[0])
	}
}

func TestSelectConditions(t *testing.T) {
	eng := newEngine(t)
	sess := setupMarks(t, eng)

	tests := []struct {
		where string
		want  []string
	}{
		{"mark == 65.0", []string{"'Simon'"}},
		{"mark != 65", []string{"'Sion'", "'Rob'", "'Chris'"}},
		{"mark >= 55", []string{"'Simon'", "'Sion'"}},
		{"mark <= 35", []string{"'Rob'", "'Chris'"}},
		{"name LIKE 'im'", []string{"'Simon'"}},
		{"name LIKE 'IM'", []string{}},
		{"name == 'simon'", []string{"'Simon'"}},
		{"pass == TRUE", []string{"'Simon'", "'Sion'"}},
		{"(mark > 50) AND (pass == FALSE)", []string{}},
		{"(mark > 50) OR (name == 'Rob')", []string{"'Simon'", "'Sion'", "'Rob'"}},
		{"((mark < 30) OR (mark > 60)) AND name LIKE 'S'", []string{"'Simon'"}},
		// A string compared with a number is invalid and selects nothing,
		// whatever it is combined with.
		{"(mark > 50) OR (name > 10)", []string{}},
		{"name < 10", []string{}},
	}

	for _, tt := range tests {
		res := query(t, eng, sess, "SELECT name FROM marks WHERE "+tt.where+";")
		if got := column(res, 0); !equal(got, tt.want) {
			t.Fatalf("WHERE %s: expected %v, got %v", tt.where, tt.want, got)
		}
	}
}

func TestSelectEmptyResultRendersHeader(t *testing.T) {
	eng := newEngine(t)
	sess := setupMarks(t, eng)

	resp := mustOK(t, eng, sess, "SELECT name, mark FROM marks WHERE mark > 100;")
	if resp != "[OK]\nname\tmark\n" {
		t.Fatalf("unexpected response %q", resp)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	eng := newEngine(t)
	sess := setupMarks(t, eng)

	mustOK(t, eng, sess, "UPDATE marks SET mark = 38, pass = TRUE WHERE name == 'Rob';")
	res := query(t, eng, sess, "SELECT mark, pass FROM marks WHERE name == 'Rob';")
	if len(res.Rows) != 1 || res.Rows[0][0] != "38" || res.Rows[0][1] != "TRUE" {
		t.Fatalf("unexpected row after update: %v", res.Rows)
	}

	mustOK(t, eng, sess, "DELETE FROM marks WHERE pass == FALSE;")
	res = query(t, eng, sess, "SELECT name FROM marks;")
	if got := column(res, 0); !equal(got, []string{"'Simon'", "'Sion'", "'Rob'"}) {
		t.Fatalf("unexpected rows after delete: %v", got)
	}

	// An invalid condition deletes nothing.
	mustOK(t, eng, sess, "DELETE FROM marks WHERE name > 1;")
	res = query(t, eng, sess, "SELECT * FROM marks;")
	if len(res.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(res.Rows))
	}
}

func TestAlterTable(t *testing.T) {
	eng := newEngine(t)
	sess := setupMarks(t, eng)

	mustOK(t, eng, sess, "ALTER TABLE marks ADD age;")
	res := query(t, eng, sess, "SELECT age FROM marks WHERE name == 'Simon';")
	if got := column(res, 0); !equal(got, []string{"NULL"}) {
		t.Fatalf("new column should hold NULL, got %v", got)
	}
	if resp := mustOK(t, eng, sess, "SELECT age FROM marks WHERE name == 'Simon';"); resp != "[OK]\nage\n\n" {
		t.Fatalf("NULL should render blank, got %q", resp)
	}

	mustOK(t, eng, sess, "ALTER TABLE marks DROP pass;")
	res = query(t, eng, sess, "SELECT * FROM marks;")
	if !equal(res.Header, []string{"id", "name", "mark", "age"}) {
		t.Fatalf("unexpected header %v", res.Header)
	}
}

func TestJoin(t *testing.T) {
	eng := newEngine(t)
	sess := NewSession()
	for _, cmd := range []string{
		"CREATE DATABASE garage;",
		"USE garage;",
		"CREATE TABLE owners (name, age);",
		"INSERT INTO owners VALUES ('Bob', 30);",
		"INSERT INTO owners VALUES ('Ann', 40);",
		"INSERT INTO owners VALUES ('Cid', 50);",
		"CREATE TABLE cars (model, owner);",
		"INSERT INTO cars VALUES ('Mini', 'Bob');",
		"INSERT INTO cars VALUES ('Golf', 'Ann');",
		"INSERT INTO cars VALUES ('Fiat', 'Bob');",
		"INSERT INTO cars VALUES ('Ford', 'Zed');",
	} {
		mustOK(t, eng, sess, cmd)
	}

	res := query(t, eng, sess, "JOIN owners AND cars ON name AND owner;")
	if !equal(res.Header, []string{"id", "age", "model"}) {
		t.Fatalf("unexpected join header %v", res.Header)
	}
	want := [][]string{
		{"1", "30", "'Mini'"},
		{"2", "30", "'Fiat'"},
		{"3", "40", "'Golf'"},
	}
	if len(res.Rows) != len(want) {
		t.Fatalf("expected %d rows, got %v", len(want), res.Rows)
	}
	for i := range want {
		if !equal(res.Rows[i], want[i]) {
			t.Fatalf("row %d: expected %v, got %v", i, want[i], res.Rows[i])
		}
	}

	// Joining on id drops only the source id columns.
	res = query(t, eng, sess, "JOIN owners AND cars ON id AND id;")
	if !equal(res.Header, []string{"id", "name", "age", "model", "owner"}) {
		t.Fatalf("unexpected id join header %v", res.Header)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("expected 3 id matches, got %d", len(res.Rows))
	}
}

func TestLimits(t *testing.T) {
	eng := newEngine(t, WithLimits(Limits{MaxTokens: 12, MaxRows: 2, MaxColumns: 3}))
	sess := NewSession()
	mustOK(t, eng, sess, "CREATE DATABASE lim;")

	expectError(t, eng, sess, "CREATE TABLE wide (a, b, c);", "Table attribute limit exceeded.")
	mustOK(t, eng, sess, "CREATE TABLE t (a, b);")
	expectError(t, eng, sess, "ALTER TABLE t ADD c;", "Table attribute limit exceeded.")

	mustOK(t, eng, sess, "INSERT INTO t VALUES ('x', 'y');")
	mustOK(t, eng, sess, "INSERT INTO t VALUES ('x', 'z');")
	expectError(t, eng, sess, "INSERT INTO t VALUES ('x', 'w');", "Table entry limit exceeded.")

	mustOK(t, eng, sess, "SELECT a, b FROM t WHERE a == 'x';")
	expectError(t, eng, sess, "SELECT a, b FROM t WHERE (a == 'x') AND (b == 'y');", "Command length exceeds limit.")

	res := query(t, eng, sess, "SELECT * FROM t;")
	if len(res.Rows) != 2 || res.Header[len(res.Header)-1] != "b" {
		t.Fatalf("limit violations must not change state: %v %v", res.Header, res.Rows)
	}
}

// repeatList joins n copies of item with ", ".
func repeatList(item string, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = item
	}
	return strings.Join(parts, ", ")
}

func TestDefaultLimits(t *testing.T) {
	eng := newEngine(t)
	sess := NewSession()
	mustOK(t, eng, sess, "CREATE DATABASE big;")

	// 99 attributes plus id is exactly the column cap.
	cols := make([]string, 99)
	for i := range cols {
		cols[i] = fmt.Sprintf("c%d", i+1)
	}
	expectError(t, eng, sess, "CREATE TABLE wide ("+strings.Join(cols, ", ")+", c100);", "Table attribute limit exceeded.")
	mustOK(t, eng, sess, "CREATE TABLE full ("+strings.Join(cols, ", ")+");")
	expectError(t, eng, sess, "ALTER TABLE full ADD extra;", "Table attribute limit exceeded.")

	mustOK(t, eng, sess, "CREATE TABLE t (a);")
	for i := 1; i <= 1000; i++ {
		mustOK(t, eng, sess, fmt.Sprintf("INSERT INTO t VALUES (%d);", i))
	}
	expectError(t, eng, sess, "INSERT INTO t VALUES (1001);", "Table entry limit exceeded.")

	res := query(t, eng, sess, "SELECT * FROM t;")
	if len(res.Rows) != 1000 || res.Rows[999][0] != "1000" {
		t.Fatalf("expected 1000 rows ending at id 1000, got %d", len(res.Rows))
	}

	// SELECT with m attributes is 2m+3 tokens: 999 for 498, 1001 for 499.
	mustOK(t, eng, sess, "SELECT "+repeatList("a", 498)+" FROM t;")
	expectError(t, eng, sess, "SELECT "+repeatList("a", 499)+" FROM t;", "Command length exceeds limit.")

	// INSERT with n values is 2n+6 tokens, so 497 values is exactly 1000
	// and gets past the token cap to the value count check.
	expectError(t, eng, sess, "INSERT INTO full VALUES ("+repeatList("1", 497)+");", "Failed to add values. Check number of columns correct.")
}

func TestExecuteBeforeStart(t *testing.T) {
	eng := New(memstore.New())
	stmt, err := sql.Parse("USE school;")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := eng.Execute(NewSession(), stmt); !errors.Is(err, errNotStarted) {
		t.Fatalf("expected errNotStarted, got %v", err)
	}
	if err := eng.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := eng.Start(); err == nil {
		t.Fatalf("expected error starting twice")
	}
}

type failingStore struct {
	*memstore.MemStore
	panicOnLoad bool
}

func (s *failingStore) LoadTable(db, name string) (*table.Table, error) {
	if s.panicOnLoad {
		panic("disk on fire")
	}
	return s.MemStore.LoadTable(db, name)
}

func (s *failingStore) SaveTable(db string, t *table.Table) error {
	if t.RowCount() > 0 {
		return errors.New("write failed")
	}
	return s.MemStore.SaveTable(db, t)
}

func TestStorageFailures(t *testing.T) {
	store := &failingStore{MemStore: memstore.New()}
	eng := New(store)
	if err := eng.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	sess := NewSession()
	mustOK(t, eng, sess, "CREATE DATABASE school;")
	mustOK(t, eng, sess, "CREATE TABLE marks (name);")

	expectError(t, eng, sess, "INSERT INTO marks VALUES ('Simon');", "Failed to save table.")

	store.panicOnLoad = true
	expectError(t, eng, sess, "SELECT * FROM marks;", "Command Execution Failure")
}

func TestServerKeepsSession(t *testing.T) {
	srv := NewServer(newEngine(t))

	if resp := srv.HandleCommand("CREATE DATABASE shop;"); resp != "[OK]\n" {
		t.Fatalf("unexpected response %q", resp)
	}
	if srv.Database() != "shop" {
		t.Fatalf("expected shop selected, got %q", srv.Database())
	}
	if resp := srv.HandleCommand("CREATE TABLE items (name);"); resp != "[OK]\n" {
		t.Fatalf("unexpected response %q", resp)
	}
}

func TestHandleCommandRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	eng := newEngine(t, WithMetrics(metrics.New(reg)))
	sess := setupMarks(t, eng)
	mustOK(t, eng, sess, "SELECT * FROM marks;")
	expectError(t, eng, sess, "SELECT * FROM;", "Parsing failure. Please check command syntax.")

	// One series each for create_database, use, create_table, insert,
	// select ok and the unparsed error.
	n, err := testutil.GatherAndCount(reg, "tabdb_commands_total")
	if err != nil {
		t.Fatalf("GatherAndCount failed: %v", err)
	}
	if n != 6 {
		t.Fatalf("expected 6 command series, got %d", n)
	}
}
