package sql

import "strings"

// ConditionResult is the outcome of evaluating a condition against a row.
// The values are ordered by severity: None < True < False < Invalid.
type ConditionResult int

const (
	// ResultNone means the subtree held no condition.
	ResultNone ConditionResult = iota
	ResultTrue
	ResultFalse
	// ResultInvalid marks a type-mismatched comparison. It wins over every
	// other result and selects no rows.
	ResultInvalid
)

// Rank orders results for aggregation.
func (r ConditionResult) Rank() int {
	return int(r)
}

func (r ConditionResult) String() string {
	switch r {
	case ResultNone:
		return "none"
	case ResultTrue:
		return "true"
	case ResultFalse:
		return "false"
	case ResultInvalid:
		return "invalid"
	}
	return "unknown"
}

// MostSevere returns whichever of a and b ranks higher.
func MostSevere(a, b ConditionResult) ConditionResult {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// Combine joins two evaluated sub-conditions with AND or OR. Both sides are
// always evaluated by the caller; Invalid on either side is Invalid, and
// anything not proven True is False.
func Combine(left ConditionResult, op string, right ConditionResult) ConditionResult {
	if left == ResultInvalid || right == ResultInvalid {
		return ResultInvalid
	}
	lt, rt := left == ResultTrue, right == ResultTrue
	switch strings.ToUpper(op) {
	case "AND":
		if lt && rt {
			return ResultTrue
		}
	case "OR":
		if lt || rt {
			return ResultTrue
		}
	}
	return ResultFalse
}

// Condition is the WHERE clause of a statement, kept as its parse subtree.
type Condition struct {
	root *Node
}

// Eval evaluates the condition against one row.
func (c *Condition) Eval(ev RowEvaluator, row int) ConditionResult {
	if c == nil || c.root == nil {
		return ResultNone
	}
	return c.root.EvaluateConditions(ev, row)
}

// Attributes lists the columns the condition refers to.
func (c *Condition) Attributes() []string {
	if c == nil {
		return nil
	}
	return c.root.Values(RuleAttribute)
}

func (c *Condition) String() string {
	if c == nil || c.root == nil {
		return ""
	}
	return c.root.String()
}
