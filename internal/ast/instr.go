package ast

// Body is an ordered sequence of instructions: a block, a fork body, a
// subroutine body, or the program main. Bodies are shared by reference
// once linking is done, so Block/Fork/Call dispatch is O(1) to copy.
type Body []Instr

// Instr is the instruction sum type. Every variant embeds a Position
// carrying its originating source byte offset, used for diagnostics.
// Variants are always held as pointers (mirroring the teacher's AST
// node convention) so the linker can patch a jump Target in place
// instead of rebuilding the enclosing slice element.
type Instr interface {
	Pos() Position
	isInstr()
}

type base struct {
	At Position
}

func (b *base) Pos() Position { return b.At }

// Nop does nothing.
type Nop struct{ base }

// Left and Right step along the current tape.
type Left struct{ base }
type Right struct{ base }

// Enter descends into the focused cell's child tape.
type Enter struct{ base }

// Exit ascends to the enclosing tape.
type Exit struct{ base }

// Null clears the focused cell's child.
type Null struct{ base }

// If jumps to Target (the matching Else or EndIf) when the focused
// cell's child is empty; otherwise it falls through.
type If struct {
	base
	Target int
}

// Else jumps unconditionally to Target, the matching EndIf.
type Else struct {
	base
	Target int
}

// EndIf closes an If/Else chain; stepping over it is a no-op.
type EndIf struct{ base }

// Loop marks the top of a loop; stepping over it is a no-op.
type Loop struct{ base }

// EndLoop jumps back to Target, the matching Loop.
type EndLoop struct {
	base
	Target int
}

// Block pushes Body as the executing body, to be popped when it runs
// off the end.
type Block struct {
	base
	Body *Body
}

// Fork behaves like Block, but on return restores the head the Fork was
// entered with, with its focused child replaced by the callee's focused
// child. Block, by contrast, keeps whatever head its body left behind.
type Fork struct {
	base
	Body *Body
}

// Call looks up Name in the program's subroutine table at execution
// time and behaves like Block with that body.
type Call struct {
	base
	Name string
}

// Load is the reserved, unimplemented dynamic-source-load opcode. It
// parses like Call (a string instruction taking a space-joined name)
// but the linker rejects any body that contains one.
type Load struct {
	base
	Name string
}

// Random clears the focused cell's child with probability 1/2.
type Random struct{ base }

// Input consumes one bit from the input buffer, clearing the focused
// cell's child if the bit is 0.
type Input struct{ base }

// Output appends HasChild() of the focused cell to the output buffer.
type Output struct{ base }

// Halt stops execution; stepping past it first advances the
// instruction pointer so a subsequent step does not re-halt.
type Halt struct{ base }

func (*Nop) isInstr()     {}
func (*Left) isInstr()    {}
func (*Right) isInstr()   {}
func (*Enter) isInstr()   {}
func (*Exit) isInstr()    {}
func (*Null) isInstr()    {}
func (*If) isInstr()      {}
func (*Else) isInstr()    {}
func (*EndIf) isInstr()   {}
func (*Loop) isInstr()    {}
func (*EndLoop) isInstr() {}
func (*Block) isInstr()   {}
func (*Fork) isInstr()    {}
func (*Call) isInstr()    {}
func (*Load) isInstr()    {}
func (*Random) isInstr()  {}
func (*Input) isInstr()   {}
func (*Output) isInstr()  {}
func (*Halt) isInstr()    {}
