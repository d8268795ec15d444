package engine

import (
	"math"
	"strings"
	"tabDB/internal/sql"
	"tabDB/internal/table"
)

// epsilon is the tolerance for numeric equality.
const epsilon = 0.0001

// rowEvaluator evaluates simple conditions against the rows of one table.
type rowEvaluator struct {
	t *table.Table
}

func (ev rowEvaluator) Evaluate(attribute, comparator, literal string, row int) sql.ConditionResult {
	cell, ok := ev.t.Cell(attribute, row)
	if !ok {
		return sql.ResultInvalid
	}
	return evaluate(cell, comparator, literal)
}

// evaluate compares a stored cell with a literal. LIKE is a case-sensitive
// substring test on the literal without its quotes. The other comparators
// need both sides to be numbers or both to be strings; strings compare
// case-insensitively on their stored text.
func evaluate(cell, comparator, literal string) sql.ConditionResult {
	if strings.EqualFold(comparator, "LIKE") {
		return boolResult(strings.Contains(cell, sql.StripQuotes(literal)))
	}

	cellType, cellNum := sql.TypeOf(cell)
	litType, litNum := sql.TypeOf(literal)
	if cellType != litType {
		return sql.ResultInvalid
	}

	if cellType == sql.TypeNumber {
		switch comparator {
		case "==":
			return boolResult(math.Abs(cellNum-litNum) < epsilon)
		case "!=":
			return boolResult(math.Abs(cellNum-litNum) > epsilon)
		case ">":
			return boolResult(cellNum > litNum)
		case "<":
			return boolResult(cellNum < litNum)
		case ">=":
			return boolResult(cellNum >= litNum)
		case "<=":
			return boolResult(cellNum <= litNum)
		}
		return sql.ResultInvalid
	}

	cmp := strings.Compare(strings.ToLower(cell), strings.ToLower(literal))
	switch comparator {
	case "==":
		return boolResult(cmp == 0)
	case "!=":
		return boolResult(cmp != 0)
	case ">":
		return boolResult(cmp > 0)
	case "<":
		return boolResult(cmp < 0)
	case ">=":
		return boolResult(cmp >= 0)
	case "<=":
		return boolResult(cmp <= 0)
	}
	return sql.ResultInvalid
}

func boolResult(b bool) sql.ConditionResult {
	if b {
		return sql.ResultTrue
	}
	return sql.ResultFalse
}

// selectionMask marks the rows where matches. A nil condition selects every
// row; otherwise only rows evaluating to True are kept, so an Invalid
// comparison anywhere selects nothing for that row.
func selectionMask(t *table.Table, where *sql.Condition) []bool {
	mask := make([]bool, t.RowCount())
	ev := rowEvaluator{t: t}
	for r := range mask {
		if where == nil {
			mask[r] = true
			continue
		}
		mask[r] = where.Eval(ev, r+1) == sql.ResultTrue
	}
	return mask
}
