package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"metatape/internal/ast"
)

func TestFormatErrorIncludesCodeAndMessage(t *testing.T) {
	source := "(.\n"
	reporter := NewErrorReporter("test.mt", source)

	formatted := reporter.FormatError(CompilerError{
		Level:    Error,
		Code:     ErrorUnmatchedIf,
		Message:  "if has no matching else or endif",
		Position: ast.Position{Line: 1, Column: 1},
		Length:   1,
	})

	assert.Contains(t, formatted, "["+ErrorUnmatchedIf+"]")
	assert.Contains(t, formatted, "if has no matching else or endif")
	assert.Contains(t, formatted, "test.mt:1:1")
}

func TestFormatErrorShowsSourceLineAndCaret(t *testing.T) {
	source := "ex<\n!hello\n"
	reporter := NewErrorReporter("test.mt", source)

	formatted := reporter.FormatError(CompilerError{
		Level:    Error,
		Code:     ErrorMalformedSubroutineDef,
		Message:  "instruction name is empty",
		Position: ast.Position{Line: 2, Column: 1},
		Length:   1,
	})

	assert.Contains(t, formatted, "!hello")
	assert.Contains(t, formatted, "^")
}

func TestFormatErrorUsesWarningLevel(t *testing.T) {
	reporter := NewErrorReporter("test.mt", "...")

	formatted := reporter.FormatError(CompilerError{
		Level:    Warning,
		Code:     ErrorLoadNotImplemented,
		Message:  "load is reserved but not implemented",
		Position: ast.Position{Line: 1, Column: 1},
		Length:   1,
	})

	assert.Contains(t, formatted, "warning")
	assert.Contains(t, formatted, ErrorLoadNotImplemented)
}
