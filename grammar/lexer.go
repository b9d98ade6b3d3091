package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// MetatapeLexer tokenizes Metatape source. Instruction symbols are
// single characters, several of which (e, x, n, i, o, h, f) overlap the
// identifier alphabet used for subroutine and call names; Ident
// consumes the longest run of identifier characters it finds, so a
// program like "eox" with no separating whitespace comes back as one
// Ident token "eox" rather than three. grammar.LetterRun and
// internal/parser's lowering step are what split such a run back into
// individual instructions — the lexer itself stays a flat,
// context-free tokenizer, the same division of labor as the teacher's
// KansoLexer.
var MetatapeLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Ident", `[A-Za-z_][A-Za-z0-9_]*`, nil},
		{"Punct", `[.<>()|\[\]?{}!@]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
