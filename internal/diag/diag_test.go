package diag

import (
	"strings"
	"testing"

	"github.com/orbitlang/orbitc/internal/semantic"
	"github.com/orbitlang/orbitc/internal/token"
)

func TestCompilerErrorFormatIncludesCaret(t *testing.T) {
	d := semantic.Diagnostic{
		Kind:     semantic.UndeclaredIdentifier,
		Severity: semantic.Error,
		Message:  `undeclared identifier "y"`,
		Pos:      token.Position{Line: 1, Column: 9},
	}
	ce := CompilerError{Diagnostic: d, Source: "let x = y + 1;", File: "a.orbit"}
	out := ce.Format(false)
	if !strings.Contains(out, "a.orbit:1:9") {
		t.Fatalf("missing file:line:col header: %s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("missing caret: %s", out)
	}
	if !strings.Contains(out, `undeclared identifier "y"`) {
		t.Fatalf("missing message: %s", out)
	}
}

func TestFormatAllNumbersMultipleDiagnostics(t *testing.T) {
	diags := []semantic.Diagnostic{
		{Kind: semantic.UndeclaredIdentifier, Severity: semantic.Error, Message: "a", Pos: token.Position{Line: 1, Column: 1}},
		{Kind: semantic.TypeMismatch, Severity: semantic.Error, Message: "b", Pos: token.Position{Line: 2, Column: 1}},
	}
	out := FormatAll(diags, "x\ny", "f.orbit", false)
	if !strings.Contains(out, "2 diagnostic(s)") {
		t.Fatalf("missing count header: %s", out)
	}
	if !strings.Contains(out, "[1 of 2]") || !strings.Contains(out, "[2 of 2]") {
		t.Fatalf("missing numbering: %s", out)
	}
}

func TestToJSONRendersEveryField(t *testing.T) {
	diags := []semantic.Diagnostic{
		{Kind: semantic.ArityMismatch, Severity: semantic.Warning, Message: "m", Pos: token.Position{Line: 3, Column: 4}},
	}
	out, err := ToJSON(diags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(out)
	for _, want := range []string{`"kind"`, `"arity mismatch"`, `"severity"`, `"warning"`, `"line"`, `3`, `"column"`, `4`} {
		if !strings.Contains(s, want) {
			t.Fatalf("missing %q in %s", want, s)
		}
	}
}

func TestToJSONEmptyDiagnostics(t *testing.T) {
	out, err := ToJSON(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(string(out)) != "[]" {
		t.Fatalf("got %q, want []", out)
	}
}
