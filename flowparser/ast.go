package flowparser

// Position tracks a source location for error messages.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset into source
}

// StatementKind discriminates the Statement tagged union.
type StatementKind int

const (
	// EntityToEntity is `A --> B` or `A --[x]--> B`.
	EntityToEntity StatementKind = iota
	// EntityToOutcome is `A --> [x]`.
	EntityToOutcome
	// OutcomeToEntity is `[x] --> B`.
	OutcomeToEntity
)

func (k StatementKind) String() string {
	switch k {
	case EntityToEntity:
		return "entity_to_entity"
	case EntityToOutcome:
		return "entity_to_outcome"
	case OutcomeToEntity:
		return "outcome_to_entity"
	default:
		return "unknown"
	}
}

// Statement is one parsed declaration. Kind determines which fields are set:
//
//   - EntityToEntity: From, To, Outcome (the producing entity's name when no
//     explicit `--[x]-->` annotation was written)
//   - EntityToOutcome: From, Outcome
//   - OutcomeToEntity: Outcome, To
type Statement struct {
	Kind    StatementKind
	From    string
	To      string
	Outcome string
	Pos     Position
}
