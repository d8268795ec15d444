package sql

import (
	"strings"
	"unicode"
)

// Tokenize splits a command string into tokens. It never fails: input the
// grammar cannot use is rejected later by Match.
//
// The command is first split on whitespace outside string literals, then each
// piece is broken into alphanumeric runs and single symbols, and finally
// adjacent pieces that form one lexical unit are merged back together
// (string literals, two-character comparators, signed and decimal numbers).
func Tokenize(command string) []Token {
	var pieces []string
	for _, part := range splitBySpaces(command) {
		pieces = append(pieces, splitSymbols(part)...)
	}

	merged := mergePieces(pieces)
	tokens := make([]Token, len(merged))
	for i, s := range merged {
		tokens[i] = Token{Text: s}
	}
	return tokens
}

// splitBySpaces splits on whitespace, keeping anything between single quotes
// together. An unterminated quote runs to the end of the input.
func splitBySpaces(command string) []string {
	var (
		parts     []string
		current   strings.Builder
		inLiteral bool
	)

	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
	}

	for _, r := range command {
		if isSeparator(r) && !inLiteral {
			flush()
			continue
		}
		current.WriteRune(r)
		if r == '\'' {
			inLiteral = !inLiteral
		}
	}
	flush()

	return parts
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// splitSymbols breaks s into maximal letter/digit runs; every other rune is
// a piece of its own.
func splitSymbols(s string) []string {
	var (
		out []string
		run strings.Builder
	)
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			run.WriteRune(r)
			continue
		}
		if run.Len() > 0 {
			out = append(out, run.String())
			run.Reset()
		}
		out = append(out, string(r))
	}
	if run.Len() > 0 {
		out = append(out, run.String())
	}
	return out
}

// mergePieces makes a single greedy left-to-right pass; a piece consumed by
// a merge is never looked at again.
func mergePieces(pieces []string) []string {
	out := make([]string, 0, len(pieces))

	at := func(i int) string {
		if i < len(pieces) {
			return pieces[i]
		}
		return ""
	}

	for i := 0; i < len(pieces); i++ {
		cur := pieces[i]
		remaining := len(pieces) - i - 1

		switch {
		case cur == "'" && remaining >= 1:
			var lit strings.Builder
			lit.WriteString(cur)
			j := i + 1
			for ; j < len(pieces); j++ {
				lit.WriteString(pieces[j])
				if pieces[j] == "'" {
					break
				}
			}
			if j == len(pieces) {
				j--
			}
			out = append(out, lit.String())
			i = j

		case isComparatorStart(cur) && at(i+1) == "=":
			out = append(out, cur+"=")
			i++

		case isSign(cur) && remaining >= 3 && isDigits(at(i+1)) && at(i+2) == "." && isDigits(at(i+3)):
			out = append(out, signPrefix(cur)+at(i+1)+"."+at(i+3))
			i += 3

		case isSign(cur) && isDigits(at(i+1)):
			out = append(out, signPrefix(cur)+at(i+1))
			i++

		case isDigits(cur) && at(i+1) == "." && isDigits(at(i+2)):
			out = append(out, cur+"."+at(i+2))
			i += 2

		default:
			out = append(out, cur)
		}
	}

	return out
}

func isComparatorStart(s string) bool {
	return s == "=" || s == "<" || s == ">" || s == "!"
}

func isSign(s string) bool {
	return s == "+" || s == "-"
}

// signPrefix drops a leading plus; the number reads the same without it.
func signPrefix(sign string) string {
	if sign == "-" {
		return "-"
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
