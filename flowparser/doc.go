// Package flowparser implements a parser for the sdataflow declaration
// language.
//
// A declaration document is a sequence of statements describing a directed
// dataflow between named entities and named outcome channels:
//
//	A --> B          entity A feeds entity B through A's default outcome
//	A --[odd]--> B   entity A feeds entity B through outcome "odd"
//	A --> [x]        entity A produces outcome "x"
//	[x] --> B        outcome "x" is consumed by entity B
//
// Statements have no terminator; whitespace between tokens is insignificant.
// Identifiers are one or more Unicode word characters (letters, digits,
// underscore).
//
// The parser is structured as a hand-rolled recursive-descent parser with two
// layers:
//
//   - Lexer: converts raw bytes into a token stream.
//   - Parser: consumes tokens according to the grammar and produces an
//     ordered sequence of tagged Statement values.
//
// Usage:
//
//	stmts, err := flowparser.Parse(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range stmts {
//	    fmt.Println(s.Kind, s.From, s.Outcome, s.To)
//	}
package flowparser
