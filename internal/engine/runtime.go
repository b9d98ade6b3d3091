// Package engine executes a linked ast.Program one instruction at a
// time: Step advances the virtual machine by exactly one instruction,
// threading the persistent tape head, the call stack, and the bit
// buffers through each call.
package engine

import (
	"math/rand"

	"metatape/internal/ast"
	"metatape/internal/tape"
)

// StepInfo is the observable result of a successful Step: the bit
// decided or produced by an If, Random, Input, or Output instruction,
// and the source position of the instruction that ran. Bit is nil for
// every other instruction.
type StepInfo struct {
	Bit      *bool
	Position ast.Position
}

// Runtime is the engine's mutable execution state. Every call into
// internal/tape hands back a new Head; Runtime just holds onto whatever
// the current one is.
type Runtime struct {
	Program *ast.Program
	Head    *tape.Head
	Body    *ast.Body
	IP      int
	Stack   []Frame

	Input  *InputBuffer
	Output *OutputBuffer
	Source ByteSource
	Sink   ByteSink

	rng *rand.Rand
}

// New builds a Runtime ready to execute prog's Main body from a fresh,
// entirely blank tape. rngSeed seeds Random's coin flips; callers that
// don't care about reproducibility can pass any int64 backed by actual
// entropy.
func New(prog *ast.Program, source ByteSource, sink ByteSink, rngSeed int64) *Runtime {
	return &Runtime{
		Program: prog,
		Head:    tape.New(),
		Body:    prog.Main,
		IP:      0,
		Input:   NewInputBuffer(),
		Output:  NewOutputBuffer(),
		Source:  source,
		Sink:    sink,
		rng:     rand.New(rand.NewSource(rngSeed)),
	}
}

func boolPtr(b bool) *bool { return &b }

// fetch returns the instruction at the current Body/IP. It returns
// EndOfProgram when the main body has already run off its end (e.g.
// stepping again after a Halt that was the last instruction), and
// InstructionPointerOutOfBounds if IP doesn't otherwise name an
// instruction. A correctly-linked program never reaches the latter;
// it is a backstop, not a normal control path.
func (r *Runtime) fetch() (ast.Instr, error) {
	if r.IP == len(*r.Body) && len(r.Stack) == 0 {
		return nil, &RuntimeError{Kind: EndOfProgram}
	}
	if r.IP < 0 || r.IP >= len(*r.Body) {
		return nil, &RuntimeError{Kind: InstructionPointerOutOfBounds}
	}
	return (*r.Body)[r.IP], nil
}

// Step executes exactly one instruction and reports what, if anything,
// it observed. A non-nil error means the instruction did not run to
// completion in the usual sense: EndOfProgram and Halt are normal ways
// for a program to stop, the other two are bugs.
func (r *Runtime) Step() (*StepInfo, error) {
	instr, err := r.fetch()
	if err != nil {
		return nil, err
	}

	info := &StepInfo{Position: instr.Pos()}

	var callBody *ast.Body
	var forkCallerHead *tape.Head
	entering := false

	switch v := instr.(type) {
	case *ast.Nop, *ast.EndIf, *ast.Loop:
		// no-op

	case *ast.Left:
		r.Head = r.Head.MoveLeft()
	case *ast.Right:
		r.Head = r.Head.MoveRight()
	case *ast.Enter:
		r.Head = r.Head.Enter()
	case *ast.Exit:
		r.Head = r.Head.Exit()
	case *ast.Null:
		r.Head = r.Head.NullChild()

	case *ast.If:
		if r.Head.HasChild() {
			info.Bit = boolPtr(true)
		} else {
			info.Bit = boolPtr(false)
			r.IP = v.Target
		}

	case *ast.Else:
		r.IP = v.Target
	case *ast.EndLoop:
		r.IP = v.Target

	case *ast.Block:
		callBody = v.Body
		entering = true

	case *ast.Call:
		body, ok := r.Program.Subroutines[v.Name]
		if !ok {
			return nil, &RuntimeError{Kind: SubroutineNotFound, Name: v.Name}
		}
		callBody = body
		entering = true

	case *ast.Fork:
		callBody = v.Body
		forkCallerHead = r.Head
		entering = true

	case *ast.Random:
		if r.rng.Intn(2) == 1 {
			info.Bit = boolPtr(true)
		} else {
			info.Bit = boolPtr(false)
			r.Head = r.Head.NullChild()
		}

	case *ast.Input:
		if r.Input.ReadBit(r.Source) {
			info.Bit = boolPtr(true)
		} else {
			info.Bit = boolPtr(false)
			r.Head = r.Head.NullChild()
		}

	case *ast.Output:
		has := r.Head.HasChild()
		info.Bit = boolPtr(has)
		r.Output.WriteBit(r.Sink, has)

	case *ast.Halt:
		_ = r.advance()
		return nil, &RuntimeError{Kind: Halt}

	case *ast.Load:
		// Unreachable: internal/linker rejects any body containing Load.
		return nil, &RuntimeError{Kind: InstructionPointerOutOfBounds}
	}

	if entering {
		if forkCallerHead != nil {
			r.Stack = append(r.Stack, &ForkFrame{Body: r.Body, IP: r.IP, CallerHead: forkCallerHead})
		} else {
			r.Stack = append(r.Stack, &BlockFrame{Body: r.Body, IP: r.IP})
		}
		// Start one before the new body and advance onto its first
		// instruction, so an empty body pops straight back out.
		r.Body = callBody
		r.IP = -1
		if err := r.advance(); err != nil {
			return info, err
		}
		return info, nil
	}

	if err := r.advance(); err != nil {
		return info, err
	}
	return info, nil
}

// advance moves the instruction pointer to the next instruction in the
// current body, popping finished call-stack frames until it lands on a
// valid one. It returns EndOfProgram once the stack is exhausted.
func (r *Runtime) advance() error {
	for {
		r.IP++
		if r.IP < len(*r.Body) {
			return nil
		}
		if len(r.Stack) == 0 {
			return &RuntimeError{Kind: EndOfProgram}
		}
		frame := r.Stack[len(r.Stack)-1]
		r.Stack = r.Stack[:len(r.Stack)-1]
		switch f := frame.(type) {
		case *BlockFrame:
			r.Body = f.Body
			r.IP = f.IP
		case *ForkFrame:
			r.Head = f.CallerHead.CopyChildFrom(r.Head)
			r.Body = f.Body
			r.IP = f.IP
		}
	}
}
