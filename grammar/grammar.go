package grammar

import "github.com/alecthomas/participle/v2/lexer"

// SourceFile is the raw parse tree produced directly from source, before
// internal/parser lowers it into ast.Program with resolved jump targets.
type SourceFile struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Elements []*TopLevelElement `@@*`
}

// TopLevelElement is either a subroutine definition or a plain
// instruction. A subroutine definition is only legal here; one found
// nested inside an Instruction is a grammar-level match but a semantic
// error, reported by internal/parser as NestedSubroutineDef.
type TopLevelElement struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Subroutine *SubroutineDef `  @@`
	Instr      *Instruction   `| @@`
}

// SubroutineDef is "@ name { ... }". Words is the whitespace-separated
// identifier sequence following "@"; internal/parser joins it with a
// single space to form the subroutine's lookup name.
type SubroutineDef struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Words  []string   `"@" @Ident+`
	Body   *BlockBody `@@`
}

// BlockBody is "{ instr* }", shared by bare blocks, fork bodies, and
// subroutine bodies.
type BlockBody struct {
	Pos          lexer.Position
	EndPos       lexer.Position
	Instructions []*Instruction `"{" @@* "}"`
}

// Instruction is a single instruction. Nested holds a SubroutineDef
// that parsed successfully but is only valid at top level.
//
// Order matters for the two alternatives that overlap the identifier
// alphabet:
//   - Fork is tried before Letters: "f" immediately followed by "{"
//     must win the fork reading even though a bare "f" token also
//     matches Letters. Letters only ever sees "f" when Fork's "{"
//     lookahead fails, e.g. a stray "f" with no block after it.
//   - Named is tried before Letters for the same reason, but for "l":
//     unlike "!", which is punctuation and can never be part of a
//     longer identifier token, "l" is itself a letter, so "l name"
//     lexes as two separate Ident tokens ("l", then "name"). If
//     Letters were tried first it would just consume the lone "l"
//     token and leave "name" to parse (and fail to lower) as its own
//     letter run.
type Instruction struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Punct   *PunctInstr    `  @@`
	Fork    *ForkInstr     `| @@`
	Named   *NamedInstr    `| @@`
	Letters *LetterRun     `| @@`
	Block   *BlockBody     `| @@`
	Nested  *SubroutineDef `| @@`
}

// PunctInstr is one of the nine punctuation-symbol instructions. These
// are never part of the identifier alphabet, so they always lex as
// their own single-character token regardless of what's adjacent.
//
//	.  Nop    (  If      [  Loop
//	<  Left   |  Else    ]  EndLoop
//	>  Right  )  EndIf   ?  Random
type PunctInstr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Op     string `@("." | "<" | ">" | "(" | "|" | ")" | "[" | "]" | "?")`
}

// LetterRun is a maximal run of adjacent letter-alphabet instructions
// with no separating whitespace, e.g. "eox" or "oooooooo". The lexer
// has no way to know where one single-character instruction ends and
// the next begins, so it hands the whole run over as one Ident token;
// internal/parser splits Letters back into individual instructions,
// one per rune.
//
//	e  Enter   i  Input
//	x  Exit    o  Output
//	n  Null    h  Halt
type LetterRun struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Letters string `@Ident`
}

// ForkInstr is "f { ... }".
type ForkInstr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Body   *BlockBody `"f" @@`
}

// NamedInstr is a string instruction: "!" calls a subroutine by name,
// the reserved "l" loads one dynamically (unimplemented). Both take
// one or more whitespace-joined identifier words as the name.
type NamedInstr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Sigil  string   `@("!" | "l")`
	Words  []string `@Ident+`
}
