package grammar

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
)

var sourceParser = participle.MustBuild[SourceFile](
	participle.Lexer(MetatapeLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

// ParseFile reads path and parses it into a SourceFile.
func ParseFile(path string) (*SourceFile, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseString(path, string(source))
}

// ParseString parses source under the given name, used for diagnostics.
// A syntax error is returned as a participle.Error for the caller to
// render; internal/parser wraps it into a ParseError and
// cmd/metatape is the only place that actually prints one, via
// internal/errors.ErrorReporter's caret-style formatting.
func ParseString(name, source string) (*SourceFile, error) {
	return sourceParser.ParseString(name, source)
}
