package flowparser

import "fmt"

// Parse parses dataflow declaration source and returns the statement sequence
// in document order. Returns a *LexError or *SyntaxError on failure.
func Parse(src []byte) ([]Statement, error) {
	p := &parser{lex: NewLexer(src)}
	return p.parseStatements()
}

type parser struct {
	lex *Lexer
}

func (p *parser) peek() (Token, error) {
	return p.lex.Peek()
}

func (p *parser) next() (Token, error) {
	return p.lex.Next()
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	tok, err := p.next()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		return Token{}, &SyntaxError{
			ParseError: ParseError{Pos: tok.Pos},
			Expected:   kind.String(),
			Got:        describe(tok),
		}
	}
	return tok, nil
}

func (p *parser) parseStatements() ([]Statement, error) {
	var stmts []Statement
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenEOF:
			return stmts, nil
		case TokenIdentifier:
			stmt, err := p.parseEntityStatement()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, stmt)
		case TokenLBracket:
			stmt, err := p.parseOutcomeToEntity()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, stmt)
		default:
			return nil, &SyntaxError{
				ParseError: ParseError{Pos: tok.Pos},
				Expected:   "statement",
				Got:        describe(tok),
			}
		}
	}
}

// parseEntityStatement parses the statement forms that start with an entity:
//
//	A --> B          (outcome name defaults to A)
//	A --[x]--> B
//	A --> [x]
func (p *parser) parseEntityStatement() (Statement, error) {
	from, _ := p.next() // identifier, already peeked

	tok, err := p.next()
	if err != nil {
		return Statement{}, err
	}

	switch tok.Kind {
	case TokenArrow:
		next, err := p.next()
		if err != nil {
			return Statement{}, err
		}
		switch next.Kind {
		case TokenIdentifier:
			// A --> B routes through the implicit default outcome named
			// after the producing entity.
			return Statement{
				Kind:    EntityToEntity,
				From:    from.Literal,
				To:      next.Literal,
				Outcome: from.Literal,
				Pos:     from.Pos,
			}, nil
		case TokenLBracket:
			name, err := p.expect(TokenIdentifier)
			if err != nil {
				return Statement{}, err
			}
			if _, err := p.expect(TokenRBracket); err != nil {
				return Statement{}, err
			}
			return Statement{
				Kind:    EntityToOutcome,
				From:    from.Literal,
				Outcome: name.Literal,
				Pos:     from.Pos,
			}, nil
		default:
			return Statement{}, &SyntaxError{
				ParseError: ParseError{Pos: next.Pos},
				Expected:   "identifier or '['",
				Got:        describe(next),
			}
		}

	case TokenHyphens:
		// A --[x]--> B
		if _, err := p.expect(TokenLBracket); err != nil {
			return Statement{}, err
		}
		name, err := p.expect(TokenIdentifier)
		if err != nil {
			return Statement{}, err
		}
		if _, err := p.expect(TokenRBracket); err != nil {
			return Statement{}, err
		}
		if _, err := p.expect(TokenArrow); err != nil {
			return Statement{}, err
		}
		to, err := p.expect(TokenIdentifier)
		if err != nil {
			return Statement{}, err
		}
		return Statement{
			Kind:    EntityToEntity,
			From:    from.Literal,
			To:      to.Literal,
			Outcome: name.Literal,
			Pos:     from.Pos,
		}, nil

	default:
		return Statement{}, &SyntaxError{
			ParseError: ParseError{Pos: tok.Pos},
			Expected:   "'-->' or '--'",
			Got:        describe(tok),
		}
	}
}

// parseOutcomeToEntity parses `[x] --> B`.
func (p *parser) parseOutcomeToEntity() (Statement, error) {
	lbracket, _ := p.next() // '[', already peeked

	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return Statement{}, err
	}
	if _, err := p.expect(TokenRBracket); err != nil {
		return Statement{}, err
	}
	if _, err := p.expect(TokenArrow); err != nil {
		return Statement{}, err
	}
	to, err := p.expect(TokenIdentifier)
	if err != nil {
		return Statement{}, err
	}

	return Statement{
		Kind:    OutcomeToEntity,
		Outcome: name.Literal,
		To:      to.Literal,
		Pos:     lbracket.Pos,
	}, nil
}

func describe(tok Token) string {
	if tok.Kind == TokenEOF {
		return "EOF"
	}
	return fmt.Sprintf("%s (%q)", tok.Kind, tok.Literal)
}
