// Package parser lowers a grammar.SourceFile parse tree into an
// ast.Program: a Main body, a subroutine table, and placeholder (zero)
// jump targets for If/Else/EndLoop, ready for internal/linker to
// resolve.
package parser

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"metatape/grammar"
	"metatape/internal/ast"
	interr "metatape/internal/errors"
)

// ParseError is a single parse-stage diagnostic: a syntax error from
// the underlying grammar, or a semantic problem found while lowering
// (a nested subroutine definition, an empty subroutine name).
type ParseError struct {
	Code     string
	Message  string
	Position ast.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Position)
}

// ParseSource parses and lowers source under the given filename. A
// grammar-level syntax error short-circuits with a single ParseError;
// lowering errors (nested subroutine definitions, malformed names) are
// collected and returned together so a caller can report more than one
// at a time.
func ParseSource(filename, source string) (*ast.Program, []*ParseError) {
	file, err := grammar.ParseString(filename, source)
	if err != nil {
		return nil, []*ParseError{syntaxError(filename, err)}
	}

	b := &builder{filename: filename}
	subroutines := ast.SubroutineTable{}
	var main ast.Body

	for _, el := range file.Elements {
		switch {
		case el.Subroutine != nil:
			name, body := b.lowerSubroutineDef(el.Subroutine)
			subroutines[name] = body
		case el.Instr != nil:
			main = append(main, b.lowerInstruction(el.Instr)...)
		}
	}

	if len(b.errs) > 0 {
		return nil, b.errs
	}

	return &ast.Program{
		Source:      source,
		Filename:    filename,
		Main:        &main,
		Subroutines: subroutines,
	}, nil
}

func syntaxError(filename string, err error) *ParseError {
	pe, ok := err.(participle.Error)
	if !ok {
		return &ParseError{Code: interr.ErrorSyntax, Message: err.Error(), Position: ast.Position{Filename: filename}}
	}
	pos := pe.Position()
	return &ParseError{
		Code:    interr.ErrorSyntax,
		Message: pe.Message(),
		Position: ast.Position{
			Filename: filename,
			Offset:   pos.Offset,
			Line:     pos.Line,
			Column:   pos.Column,
		},
	}
}

// builder accumulates lowering errors while walking the parse tree.
type builder struct {
	filename string
	errs     []*ParseError
}

func (b *builder) pos(lp lexer.Position) ast.Position {
	return ast.Position{
		Filename: b.filename,
		Offset:   lp.Offset,
		Line:     lp.Line,
		Column:   lp.Column,
	}
}

func (b *builder) errorf(lp lexer.Position, code, format string, args ...any) {
	b.errorAt(b.pos(lp), code, format, args...)
}

// errorAt is errorf for a position already adjusted away from the
// lexer's own token position, e.g. one rune into a LetterRun.
func (b *builder) errorAt(pos ast.Position, code, format string, args ...any) {
	b.errs = append(b.errs, &ParseError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
	})
}

func (b *builder) lowerSubroutineDef(def *grammar.SubroutineDef) (string, *ast.Body) {
	name := strings.Join(def.Words, " ")
	if name == "" {
		b.errorf(def.Pos, interr.ErrorMalformedSubroutineDef, "subroutine definition has no name")
	}
	body := b.lowerBody(def.Body.Instructions)
	return name, &body
}

func (b *builder) lowerBody(instrs []*grammar.Instruction) ast.Body {
	body := make(ast.Body, 0, len(instrs))
	for _, in := range instrs {
		body = append(body, b.lowerInstruction(in)...)
	}
	return body
}

// lowerInstruction returns one ast.Instr for every grammar alternative
// except Letters, which expands to one instruction per rune: a
// letter-alphabet run like "eox" is a single grammar node but three
// instructions.
func (b *builder) lowerInstruction(in *grammar.Instruction) []ast.Instr {
	switch {
	case in.Punct != nil:
		return []ast.Instr{b.lowerPunct(in.Punct)}
	case in.Fork != nil:
		body := b.lowerBody(in.Fork.Body.Instructions)
		return []ast.Instr{ast.NewFork(b.pos(in.Fork.Pos), &body)}
	case in.Letters != nil:
		return b.lowerLetterRun(in.Letters)
	case in.Block != nil:
		body := b.lowerBody(in.Block.Instructions)
		return []ast.Instr{ast.NewBlock(b.pos(in.Block.Pos), &body)}
	case in.Named != nil:
		return []ast.Instr{b.lowerNamed(in.Named)}
	case in.Nested != nil:
		b.errorf(in.Nested.Pos, interr.ErrorNestedSubroutineDef,
			"subroutine definitions are only legal at top level")
		// Lower the nested body anyway so later instructions still get
		// a position-accurate walk instead of being silently dropped.
		_, nestedBody := b.lowerSubroutineDef(in.Nested)
		return []ast.Instr{ast.NewBlock(b.pos(in.Nested.Pos), nestedBody)}
	default:
		b.errorf(in.Pos, interr.ErrorUnrecognizedInstruction, "unrecognized instruction")
		return []ast.Instr{ast.NewNop(b.pos(in.Pos))}
	}
}

func (b *builder) lowerPunct(in *grammar.PunctInstr) ast.Instr {
	at := b.pos(in.Pos)
	switch in.Op {
	case ".":
		return ast.NewNop(at)
	case "<":
		return ast.NewLeft(at)
	case ">":
		return ast.NewRight(at)
	case "(":
		return ast.NewIf(at)
	case "|":
		return ast.NewElse(at)
	case ")":
		return ast.NewEndIf(at)
	case "[":
		return ast.NewLoop(at)
	case "]":
		return ast.NewEndLoop(at)
	case "?":
		return ast.NewRandom(at)
	default:
		b.errorf(in.Pos, interr.ErrorUnrecognizedInstruction, "unrecognized instruction %q", in.Op)
		return ast.NewNop(at)
	}
}

// lowerLetterRun splits a glommed run of letter-alphabet instructions
// into one ast.Instr per rune, each carrying its own column within the
// run. "f" is not a valid bare letter instruction (it only means Fork
// immediately followed by "{", handled by grammar.ForkInstr), so one
// appearing inside a run — e.g. "of{" with no space before the fork —
// is reported the same as any other unrecognized character.
func (b *builder) lowerLetterRun(in *grammar.LetterRun) []ast.Instr {
	instrs := make([]ast.Instr, 0, len(in.Letters))
	for i, r := range in.Letters {
		at := b.pos(in.Pos)
		at.Offset += i
		at.Column += i

		switch r {
		case 'e':
			instrs = append(instrs, ast.NewEnter(at))
		case 'x':
			instrs = append(instrs, ast.NewExit(at))
		case 'n':
			instrs = append(instrs, ast.NewNull(at))
		case 'i':
			instrs = append(instrs, ast.NewInput(at))
		case 'o':
			instrs = append(instrs, ast.NewOutput(at))
		case 'h':
			instrs = append(instrs, ast.NewHalt(at))
		default:
			b.errorAt(at, interr.ErrorUnrecognizedInstruction, "unrecognized instruction %q", r)
			instrs = append(instrs, ast.NewNop(at))
		}
	}
	return instrs
}

func (b *builder) lowerNamed(in *grammar.NamedInstr) ast.Instr {
	at := b.pos(in.Pos)
	name := strings.Join(in.Words, " ")
	if name == "" {
		b.errorf(in.Pos, interr.ErrorMalformedSubroutineDef, "instruction name is empty")
	}
	switch in.Sigil {
	case "!":
		return ast.NewCall(at, name)
	case "l":
		return ast.NewLoad(at, name)
	default:
		b.errorf(in.Pos, interr.ErrorUnrecognizedInstruction, "unrecognized sigil %q", in.Sigil)
		return ast.NewNop(at)
	}
}
