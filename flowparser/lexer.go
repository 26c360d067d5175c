package flowparser

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes dataflow declaration source into a stream of tokens.
type Lexer struct {
	src    []byte
	pos    int // current byte offset
	line   int // current line (1-based)
	col    int // current column (1-based)
	peeked *Token
}

// NewLexer creates a new Lexer for the given source bytes.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	tok, err := l.scan()
	if err != nil {
		return Token{}, err
	}
	l.peeked = &tok
	return tok, nil
}

// Next returns the next token and advances the lexer.
func (l *Lexer) Next() (Token, error) {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok, nil
	}
	return l.scan()
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

// peekRune decodes the rune at the cursor without advancing.
func (l *Lexer) peekRune() (rune, int) {
	if l.atEnd() {
		return 0, 0
	}
	return utf8.DecodeRune(l.src[l.pos:])
}

// advanceRune consumes one rune and updates line/column bookkeeping.
func (l *Lexer) advanceRune() rune {
	r, size := utf8.DecodeRune(l.src[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		r, _ := l.peekRune()
		if !unicode.IsSpace(r) {
			return
		}
		l.advanceRune()
	}
}

func (l *Lexer) scan() (Token, error) {
	l.skipWhitespace()

	if l.atEnd() {
		return Token{Kind: TokenEOF, Pos: l.currentPos()}, nil
	}

	pos := l.currentPos()
	r, _ := l.peekRune()

	switch r {
	case '[':
		l.advanceRune()
		return Token{Kind: TokenLBracket, Literal: "[", Pos: pos}, nil
	case ']':
		l.advanceRune()
		return Token{Kind: TokenRBracket, Literal: "]", Pos: pos}, nil
	case '-':
		// Longest match: '-->' beats '--' at the same offset.
		if l.pos+2 < len(l.src) && l.src[l.pos+1] == '-' && l.src[l.pos+2] == '>' {
			l.advanceRune()
			l.advanceRune()
			l.advanceRune()
			return Token{Kind: TokenArrow, Literal: "-->", Pos: pos}, nil
		}
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '-' {
			l.advanceRune()
			l.advanceRune()
			return Token{Kind: TokenHyphens, Literal: "--", Pos: pos}, nil
		}
		l.advanceRune()
		return Token{}, &LexError{ParseError{
			Message: "unexpected character '-'",
			Pos:     pos,
		}}
	}

	if isWordRune(r) {
		return l.scanIdentifier()
	}

	l.advanceRune()
	return Token{}, &LexError{ParseError{
		Message: fmt.Sprintf("unexpected character %q", r),
		Pos:     pos,
	}}
}

func (l *Lexer) scanIdentifier() (Token, error) {
	pos := l.currentPos()
	start := l.pos

	for !l.atEnd() {
		r, _ := l.peekRune()
		if !isWordRune(r) {
			break
		}
		l.advanceRune()
	}

	return Token{
		Kind:    TokenIdentifier,
		Literal: string(l.src[start:l.pos]),
		Pos:     pos,
	}, nil
}

// isWordRune reports whether r is a word character in the regex \w sense,
// Unicode-aware: letters, digits, and underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
