package sql

// Token is one lexical unit of a command. Its type is decided by the grammar
// rule that matches it, not by the tokenizer.
type Token struct {
	Text string
}

func (t Token) String() string {
	return t.Text
}
