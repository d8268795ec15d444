package sql

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// DataType is the type a literal or cell value is read as when compared.
// Cells are stored as text; the type is inferred each time.
type DataType int

const (
	TypeString DataType = iota
	TypeNumber
)

// NullLiteral is the text stored for missing values.
const NullLiteral = "NULL"

// decimal restricts numbers to plain decimal notation; ParseFloat alone would
// also accept hex floats and words such as "inf".
var decimal = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// TypeOf classifies text as a number when it is a decimal float64, and as a
// string otherwise. The parsed value is returned for numbers.
func TypeOf(text string) (DataType, float64) {
	if !decimal.MatchString(text) {
		return TypeString, 0
	}
	f, err := strconv.ParseFloat(text, 64)
	if err == nil {
		return TypeNumber, f
	}
	// Out-of-range values are still numbers (±Inf).
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		return TypeNumber, f
	}
	return TypeString, 0
}

// StripQuotes removes one pair of surrounding single quotes.
func StripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}

// IsNull reports whether a stored value is the NULL literal.
func IsNull(s string) bool {
	return strings.EqualFold(s, NullLiteral)
}
