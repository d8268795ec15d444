package sql

import "testing"

type columnSet map[string]bool

func (c columnSet) HasColumn(name string) bool { return c[name] }

func mustMatch(t *testing.T, command string) *Node {
	t.Helper()
	tree, err := grammar.Match(Tokenize(command))
	if err != nil {
		t.Fatalf("Match(%q) failed: %v", command, err)
	}
	return tree
}

func TestNodeFindAndText(t *testing.T) {
	tree := mustMatch(t, "SELECT name FROM Marks WHERE mark > 40;")

	if got, ok := tree.Text(RuleTableName); !ok || got != "Marks" {
		t.Fatalf("expected table name Marks, got %q (%v)", got, ok)
	}
	if tree.Find(RuleSelectCondition) == nil {
		t.Fatalf("expected select-condition node")
	}
	if tree.Has(RuleSelectNoCondition) {
		t.Fatalf("did not expect select-no-condition node")
	}
	if _, ok := tree.Text(RuleSelect); ok {
		t.Fatalf("Text on a branch rule must fail")
	}
}

func TestNodeValuesInDocumentOrder(t *testing.T) {
	tree := mustMatch(t, "INSERT INTO t VALUES ('a', 2, NULL, 3.5);")
	got := tree.Values(RuleValue)
	want := []string{"'a'", "2", "NULL", "3.5"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("value %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	tree = mustMatch(t, "JOIN a AND b ON x AND y;")
	if tables := tree.Values(RuleTableName); len(tables) != 2 || tables[0] != "a" || tables[1] != "b" {
		t.Fatalf("unexpected tables: %v", tables)
	}
}

func TestNodeConditionKinds(t *testing.T) {
	tree := mustMatch(t, "DELETE FROM t WHERE (a == 1) OR b == 2;")
	if n := tree.Find(RuleCompoundWithBracket); n == nil || n.Kind != ConditionNode {
		t.Fatalf("expected compound-with-bracket condition node")
	}
	if n := tree.Find(RuleSimpleCondition); n == nil || n.Kind != ConditionNode {
		t.Fatalf("expected simple condition node")
	}
	if n := tree.Find(RuleBracketCondition); n == nil || n.Kind != BranchNode {
		t.Fatalf("expected bracket condition to be a plain branch")
	}
}

func TestNodeMissingAttribute(t *testing.T) {
	tree := mustMatch(t, "SELECT name FROM t WHERE age > 3;")
	if attr, missing := tree.MissingAttribute(columnSet{"name": true, "age": true}); missing {
		t.Fatalf("unexpected missing attribute %q", attr)
	}
	attr, missing := tree.MissingAttribute(columnSet{"name": true})
	if !missing || attr != "age" {
		t.Fatalf("expected age to be missing, got %q (%v)", attr, missing)
	}
}

func TestNodeString(t *testing.T) {
	tree := mustMatch(t, "select * from t where (a==1);")
	if got := tree.String(); got != "select * from t where ( a == 1 ) ;" {
		t.Fatalf("unexpected rendering %q", got)
	}
}
