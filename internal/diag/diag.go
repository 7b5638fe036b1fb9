// Package diag renders the semantic analyzer's diagnostics for the CLI
// driver: a plain source-context form with a caret under the
// offending column, and a structured JSON form for machine consumption.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/orbitlang/orbitc/internal/semantic"
	"github.com/orbitlang/orbitc/internal/token"
)

// Level is one of the four logging levels the logging collaborator
// exposes.
type Level int

const (
	Info Level = iota
	Warning
	Error
	Critical
)

func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Logger is the logging collaborator: four levels, each call carrying a
// message, a position (zero when not applicable), and an optional list
// of auxiliary strings.
type Logger interface {
	Log(level Level, pos token.Position, message string, aux ...string)
}

// WriterLogger is the simplest Logger: it writes one line per call to an
// io.Writer, in the `level at line:column: message (aux, aux, ...)`
// shape. The driver's --verbose mode uses it to narrate each phase.
type WriterLogger struct {
	W io.Writer
}

func (wl WriterLogger) Log(level Level, pos token.Position, message string, aux ...string) {
	if pos.Line == 0 && pos.Column == 0 {
		fmt.Fprintf(wl.W, "%s: %s", level, message)
	} else {
		fmt.Fprintf(wl.W, "%s at %d:%d: %s", level, pos.Line, pos.Column, message)
	}
	if len(aux) > 0 {
		fmt.Fprintf(wl.W, " (%s)", strings.Join(aux, ", "))
	}
	fmt.Fprintln(wl.W)
}

// CompilerError renders one diagnostic against its source line with a
// caret, wrapping a semantic.Diagnostic directly rather than a bare
// Message/Pos pair.
type CompilerError struct {
	Diagnostic semantic.Diagnostic
	Source     string
	File       string
}

// Format renders the error with an optional ANSI-colored caret.
func (e CompilerError) Format(color bool) string {
	var sb strings.Builder

	pos := e.Diagnostic.Pos
	sev := capitalize(e.Diagnostic.Severity.String())
	if e.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", sev, e.File, pos.Line, pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s at line %d:%d\n", sev, pos.Line, pos.Column)
	}

	if line := e.sourceLine(pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(string(e.Diagnostic.Kind))
	sb.WriteString(": ")
	sb.WriteString(e.Diagnostic.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (e CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders every diagnostic in order, numbering them when
// there is more than one.
func FormatAll(diags []semantic.Diagnostic, source, file string, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return CompilerError{Diagnostic: diags[0], Source: source, File: file}.Format(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d diagnostic(s):\n\n", len(diags))
	for i, d := range diags {
		fmt.Fprintf(&sb, "[%d of %d]\n", i+1, len(diags))
		sb.WriteString(CompilerError{Diagnostic: d, Source: source, File: file}.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
