package semantic

import (
	"fmt"

	"github.com/orbitlang/orbitc/internal/token"
)

// Severity is the driver's three-level error model: Warning never
// rejects the program, Error rejects it but lets analysis continue,
// Critical halts the phase.
type Severity int

const (
	Warning Severity = iota
	Error
	Critical
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	default:
		return "error"
	}
}

// Kind is a diagnostic's category, so the diagnostics renderer and any
// downstream tooling can match on it without parsing message text. The
// constants below name the semantic error taxonomy and two warning
// kinds; the analyzer also builds a few kinds inline ("empty block",
// "signed repeat count", "nested function declaration"), and the check
// command adds "lex error" and "parse error".
type Kind string

const (
	UndeclaredIdentifier Kind = "undeclared identifier"
	RedeclarationInScope Kind = "redeclaration in scope"
	TypeMismatch         Kind = "type mismatch"
	ArityMismatch        Kind = "arity mismatch"
	NotCallable          Kind = "not callable"
	NotIndexable         Kind = "not indexable"
	MissingField         Kind = "missing field"
	ImmutableTarget      Kind = "immutable target"
	InvalidCast          Kind = "invalid cast"
	NonBoolCondition     Kind = "non-bool condition"
	BreakOutsideLoop     Kind = "break outside loop"
	ContinueOutsideLoop  Kind = "continue outside loop"
	ReturnOutsideFunc    Kind = "return outside function"
	IncompleteInitializer Kind = "incomplete initializer"
	UnknownType          Kind = "unknown type"

	// Shadowing and demotion are warnings, not members of the error
	// taxonomy proper, but they share the same diagnostic shape.
	Shadowing Kind = "shadowing"
	Demotion  Kind = "demotion"
)

// Diagnostic is a single semantic finding, positioned at the offending
// node: failures are signaled by a flag plus a logged diagnostic at
// the node's position, never an exception.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Message  string
	Pos      token.Position
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Pos.Line, d.Pos.Column, d.Severity, d.Message)
}
