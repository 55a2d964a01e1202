// Package errors formats pretty, caret-style diagnostics for immediate
// and file-mode syntax errors, in the same spirit as the teacher's
// compiler error formatter: a short header, the offending source line,
// and a caret under the column where the lexer or evaluator gave up.
package errors

import (
	"fmt"
	"strings"
)

// CompilerError is a single formatted diagnostic tied to one line of
// BASIC source text and a byte column within it.
type CompilerError struct {
	LineNumber int // program line number, or -1 in immediate mode
	Column     int // 0-based byte offset into Source
	Message    string
	Source     string
}

// New creates a CompilerError.
func New(lineNumber, column int, message, source string) *CompilerError {
	return &CompilerError{LineNumber: lineNumber, Column: column, Message: message, Source: source}
}

// Error implements the error interface with uncolored output.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the header, source line, and caret. When color is true,
// the caret and message are wrapped in ANSI codes for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.LineNumber >= 0 {
		sb.WriteString(fmt.Sprintf("Error in line %d, column %d\n", e.LineNumber, e.Column+1))
	} else {
		sb.WriteString(fmt.Sprintf("Error at column %d\n", e.Column+1))
	}

	sb.WriteString(e.Source)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", e.Column))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString("^")
	if color {
		sb.WriteString("\033[0m")
	}
	sb.WriteString("\n")

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}
