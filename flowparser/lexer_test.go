package flowparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTokens(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer([]byte(src))
	var tokens []Token
	for {
		tok, err := lex.Next()
		require.NoError(t, err)
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
	return tokens
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestLexerPunctuation(t *testing.T) {
	tokens := collectTokens(t, "[ ] -- -->")
	expected := []TokenKind{
		TokenLBracket, TokenRBracket, TokenHyphens, TokenArrow, TokenEOF,
	}
	assert.Equal(t, expected, kinds(tokens))
}

func TestLexerArrowBeatsHyphens(t *testing.T) {
	// "-->" must lex as a single arrow, never as "--" followed by ">".
	tokens := collectTokens(t, "-->")
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenArrow, tokens[0].Kind)
	assert.Equal(t, "-->", tokens[0].Literal)
}

func TestLexerAnnotatedArrowSequence(t *testing.T) {
	// A --[x]--> B: the "--[" split must favor hyphens + bracket, and the
	// "]-->" split must favor bracket + full arrow.
	tokens := collectTokens(t, "A --[x]--> B")
	expected := []TokenKind{
		TokenIdentifier, TokenHyphens, TokenLBracket, TokenIdentifier,
		TokenRBracket, TokenArrow, TokenIdentifier, TokenEOF,
	}
	assert.Equal(t, expected, kinds(tokens))
}

func TestLexerIdentifiers(t *testing.T) {
	cases := []string{"foo", "_bar", "Plan123", "A_b_C", "x9"}
	for _, id := range cases {
		tokens := collectTokens(t, id)
		require.Len(t, tokens, 2, "input: %s", id) // identifier + EOF
		assert.Equal(t, TokenIdentifier, tokens[0].Kind, "input: %s", id)
		assert.Equal(t, id, tokens[0].Literal, "input: %s", id)
	}
}

func TestLexerUnicodeIdentifiers(t *testing.T) {
	// Word characters are Unicode-aware, not ASCII-only.
	cases := []string{"café", "数据", "αβγ", "über_1"}
	for _, id := range cases {
		tokens := collectTokens(t, id)
		require.Len(t, tokens, 2, "input: %s", id)
		assert.Equal(t, TokenIdentifier, tokens[0].Kind, "input: %s", id)
		assert.Equal(t, id, tokens[0].Literal, "input: %s", id)
	}
}

func TestLexerWhitespaceInsignificant(t *testing.T) {
	compact := collectTokens(t, "A-->B")
	spread := collectTokens(t, "A\n\t -->   B\n")
	assert.Equal(t, kinds(compact), kinds(spread))
	assert.Equal(t, "A", spread[0].Literal)
	assert.Equal(t, "B", spread[2].Literal)
}

func TestLexerPositions(t *testing.T) {
	tokens := collectTokens(t, "A --> B\nC --> D")
	require.Len(t, tokens, 7)

	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, tokens[0].Pos)
	assert.Equal(t, Position{Line: 1, Column: 3, Offset: 2}, tokens[1].Pos)
	assert.Equal(t, Position{Line: 2, Column: 1, Offset: 8}, tokens[3].Pos)
}

func TestLexerUnrecognizedCharacter(t *testing.T) {
	cases := []string{"A ; B", "A => B", "(A)", "A --> B!"}
	for _, src := range cases {
		lex := NewLexer([]byte(src))
		var err error
		for err == nil {
			var tok Token
			tok, err = lex.Next()
			if err == nil && tok.Kind == TokenEOF {
				t.Fatalf("input %q lexed without error", src)
			}
		}
		var lexErr *LexError
		require.ErrorAs(t, err, &lexErr, "input: %s", src)
		assert.Greater(t, lexErr.Pos.Line, 0, "input: %s", src)
	}
}

func TestLexerSingleHyphenFails(t *testing.T) {
	lex := NewLexer([]byte("A - B"))
	_, err := lex.Next()
	require.NoError(t, err)
	_, err = lex.Next()
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 2, lexErr.Pos.Offset)
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	lex := NewLexer([]byte("A"))
	peeked, err := lex.Peek()
	require.NoError(t, err)
	next, err := lex.Next()
	require.NoError(t, err)
	assert.Equal(t, peeked, next)

	eof, err := lex.Next()
	require.NoError(t, err)
	assert.Equal(t, TokenEOF, eof.Kind)
}
