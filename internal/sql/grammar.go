package sql

import (
	"regexp"
	"strings"
	"tabDB/internal/dberr"
)

// ReservedWords may not be used as database, table or attribute names.
var ReservedWords = []string{
	"USE", "CREATE", "DATABASE", "TABLE", "DROP", "ALTER", "INSERT", "INTO",
	"VALUES", "SELECT", "FROM", "WHERE", "UPDATE", "SET", "DELETE", "JOIN",
	"ON", "ADD", "LIKE", "AND", "OR",
}

var reserved = func() map[string]struct{} {
	m := make(map[string]struct{}, len(ReservedWords))
	for _, w := range ReservedWords {
		m[w] = struct{}{}
	}
	return m
}()

// IsReserved reports whether word is a reserved keyword, ignoring case.
func IsReserved(word string) bool {
	_, ok := reserved[strings.ToUpper(word)]
	return ok
}

// ErrParse is returned for any command that does not match the grammar.
var ErrParse = dberr.New(dberr.KindSyntax, "Parsing failure. Please check command syntax.")

// ErrReservedWord is returned when a name collides with a keyword.
var ErrReservedWord = dberr.New(dberr.KindSemantic,
	"Cannot use SQL reserved words for attribute, table or database names.")

// Grammar is the fixed rule graph for the command language.
type Grammar struct {
	command *Rule
}

// grammar is shared by every parse; it is never modified after init.
var grammar = newGrammar()

// stringLiteralChars lists what may appear between the quotes of a string
// literal: ASCII letters, digits, space and the printable symbols other than
// the quote itself, '"' and '|'.
const stringLiteralChars = ` !#$%&()*+,\-./:;<=>?@\[\\\]^_` + "`" + `{}~a-zA-Z0-9`

func newGrammar() *Grammar {
	keyword := func(word string) *Rule {
		return terminal(RuleKeyword, regexp.QuoteMeta(word))
	}

	// Terminals.
	var (
		attribute      = terminal(RuleAttribute, `[a-zA-Z0-9]+`)
		databaseName   = terminal(RuleDatabaseName, `[a-zA-Z0-9]+`)
		tableName      = terminal(RuleTableName, `[a-zA-Z0-9]+`)
		stringLit      = terminal(RuleStringLiteral, `'[`+stringLiteralChars+`]*'`)
		booleanLit     = terminal(RuleBooleanLiteral, `TRUE|FALSE`)
		floatLit       = terminal(RuleFloatLiteral, `[+-]?[0-9]+\.[0-9]+`)
		integerLit     = terminal(RuleIntegerLiteral, `[+-]?[0-9]+`)
		nullLit        = terminal(RuleNullLiteral, `NULL`)
		asterisk       = terminal(RuleAsterisk, `\*`)
		comparator     = terminal(RuleComparator, `==|>|<|>=|<=|!=|LIKE`)
		semicolon      = terminal(RuleSemicolon, `;`)
		comma          = terminal(RuleComma, `,`)
		equals         = terminal(RuleEquals, `=`)
		openParen      = terminal(RuleOpenParen, `\(`)
		closeParen     = terminal(RuleCloseParen, `\)`)
		alterationType = terminal(RuleAlterationType, `ADD|DROP`)
		boolOperator   = terminal(RuleBoolOperator, `AND|OR`)

		kwUse      = keyword("USE")
		kwCreate   = keyword("CREATE")
		kwDatabase = keyword("DATABASE")
		kwTable    = keyword("TABLE")
		kwDrop     = keyword("DROP")
		kwAlter    = keyword("ALTER")
		kwInsert   = keyword("INSERT")
		kwInto     = keyword("INTO")
		kwValues   = keyword("VALUES")
		kwSelect   = keyword("SELECT")
		kwFrom     = keyword("FROM")
		kwWhere    = keyword("WHERE")
		kwUpdate   = keyword("UPDATE")
		kwSet      = keyword("SET")
		kwDelete   = keyword("DELETE")
		kwJoin     = keyword("JOIN")
		kwAnd      = keyword("AND")
		kwOn       = keyword("ON")
	)

	// Non-terminals.
	var (
		command           = nonTerminal(RuleCommand, Sequence)
		commandType       = nonTerminal(RuleCommandType, Choice)
		use               = nonTerminal(RuleUse, Sequence)
		create            = nonTerminal(RuleCreate, Choice)
		createDatabase    = nonTerminal(RuleCreateDatabase, Sequence)
		createTable       = nonTerminal(RuleCreateTable, Choice)
		createTableNoAttr = nonTerminal(RuleCreateTableNoAttributes, Sequence)
		createTableAttr   = nonTerminal(RuleCreateTableAttributes, Sequence)
		drop              = nonTerminal(RuleDrop, Choice)
		dropDatabase      = nonTerminal(RuleDropDatabase, Sequence)
		dropTable         = nonTerminal(RuleDropTable, Sequence)
		alter             = nonTerminal(RuleAlter, Sequence)
		insert            = nonTerminal(RuleInsert, Sequence)
		selectCmd         = nonTerminal(RuleSelect, Choice)
		selectNoCond      = nonTerminal(RuleSelectNoCondition, Sequence)
		selectCond        = nonTerminal(RuleSelectCondition, Sequence)
		update            = nonTerminal(RuleUpdate, Sequence)
		deleteCmd         = nonTerminal(RuleDelete, Sequence)
		join              = nonTerminal(RuleJoin, Sequence)
		nameValueList     = nonTerminal(RuleNameValueList, Choice)
		nameValueListRec  = nonTerminal(RuleNameValueListRecursive, Sequence)
		nameValuePair     = nonTerminal(RuleNameValuePair, Sequence)
		valueList         = nonTerminal(RuleValueList, Choice)
		valueListRec      = nonTerminal(RuleValueListRecursive, Sequence)
		value             = nonTerminal(RuleValue, Choice)
		wildAttrList      = nonTerminal(RuleWildAttributeList, Choice)
		attrList          = nonTerminal(RuleAttributeList, Choice)
		attrListRec       = nonTerminal(RuleAttributeListRecursive, Sequence)
		condition         = nonTerminal(RuleCondition, ConditionSpecial)
		compoundBracket   = nonTerminal(RuleCompoundWithBracket, Sequence)
		compoundSimple    = nonTerminal(RuleCompoundWithSimple, Sequence)
		bracketCond       = nonTerminal(RuleBracketCondition, Sequence)
		simpleCond        = nonTerminal(RuleSimpleCondition, Sequence)
	)

	command.set(commandType, semicolon)
	commandType.set(use, create, drop, alter, insert, selectCmd, update, deleteCmd, join)
	use.set(kwUse, databaseName)
	create.set(createDatabase, createTable)
	createDatabase.set(kwCreate, kwDatabase, databaseName)
	createTable.set(createTableAttr, createTableNoAttr)
	createTableNoAttr.set(kwCreate, kwTable, tableName)
	createTableAttr.set(kwCreate, kwTable, tableName, openParen, attrList, closeParen)
	drop.set(dropDatabase, dropTable)
	dropDatabase.set(kwDrop, kwDatabase, databaseName)
	dropTable.set(kwDrop, kwTable, tableName)
	alter.set(kwAlter, kwTable, tableName, alterationType, attribute)
	insert.set(kwInsert, kwInto, tableName, kwValues, openParen, valueList, closeParen)
	selectCmd.set(selectCond, selectNoCond)
	selectNoCond.set(kwSelect, wildAttrList, kwFrom, tableName)
	selectCond.set(kwSelect, wildAttrList, kwFrom, tableName, kwWhere, condition)
	update.set(kwUpdate, tableName, kwSet, nameValueList, kwWhere, condition)
	deleteCmd.set(kwDelete, kwFrom, tableName, kwWhere, condition)
	join.set(kwJoin, tableName, kwAnd, tableName, kwOn, attribute, kwAnd, attribute)

	nameValueList.set(nameValueListRec, nameValuePair)
	nameValueListRec.set(nameValuePair, comma, nameValueList)
	nameValuePair.set(attribute, equals, value)
	valueList.set(valueListRec, value)
	valueListRec.set(value, comma, valueList)
	value.set(stringLit, booleanLit, floatLit, integerLit, nullLit)
	wildAttrList.set(attrList, asterisk)
	attrList.set(attrListRec, attribute)
	attrListRec.set(attribute, comma, attrList)

	condition.cond = &conditionRules{
		compoundWithBracket: compoundBracket,
		bracket:             bracketCond,
		compoundWithSimple:  compoundSimple,
		simple:              simpleCond,
		boolOperator:        boolOperator,
	}
	compoundBracket.set(bracketCond, boolOperator, condition)
	compoundSimple.set(simpleCond, boolOperator, condition)
	bracketCond.set(openParen, condition, closeParen)
	simpleCond.set(attribute, comparator, value)

	return &Grammar{command: command}
}

// Match parses a whole command. The command rule must consume every token,
// so anything after the terminating semicolon is a syntax error.
func (g *Grammar) Match(tokens []Token) (*Node, error) {
	tree, n, ok := g.command.match(tokens, 0)
	if !ok || n != len(tokens) {
		return nil, ErrParse
	}
	return tree, nil
}
