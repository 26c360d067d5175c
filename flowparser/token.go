package flowparser

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF        TokenKind = iota
	TokenIdentifier           // one or more Unicode word characters
	TokenArrow                // -->
	TokenHyphens              // --
	TokenLBracket             // [
	TokenRBracket             // ]
)

var tokenNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenIdentifier: "identifier",
	TokenArrow:      "'-->'",
	TokenHyphens:    "'--'",
	TokenLBracket:   "'['",
	TokenRBracket:   "']'",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Kind    TokenKind
	Literal string // identifier text, or the raw symbol for punctuation
	Pos     Position
}
