package engine_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metatape/internal/ast"
	"metatape/internal/engine"
	"metatape/internal/linker"
	"metatape/internal/parser"
	"metatape/internal/tape"
)

// sliceSource serves bytes from a fixed slice, then reports io.EOF —
// exercised by Input's silent-zero-on-failure behavior once exhausted.
type sliceSource struct {
	data []byte
	pos  int
}

func (s *sliceSource) ReadByte() (byte, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	b := s.data[s.pos]
	s.pos++
	return b, nil
}

// bufSink collects emitted bytes for assertions.
type bufSink struct {
	bytes.Buffer
}

func (s *bufSink) WriteByte(b byte) { s.Buffer.WriteByte(b) }

func build(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, perrs := parser.ParseSource("test.mt", source)
	require.Empty(t, perrs, "parse errors: %v", perrs)
	lerrs := linker.Link(prog)
	require.Empty(t, lerrs, "link errors: %v", lerrs)
	return prog
}

func newRuntime(t *testing.T, source string) (*engine.Runtime, *bufSink) {
	t.Helper()
	prog := build(t, source)
	sink := &bufSink{}
	rt := engine.New(prog, &sliceSource{}, sink, 1)
	return rt, sink
}

// scenario S1: "eox" enters an empty child, outputs its has_child (0),
// then exits; the program ends after three instructions with no full
// byte ever assembled.
func TestScenarioS1(t *testing.T) {
	rt, sink := newRuntime(t, "eox")

	info, err := rt.Step() // e
	require.NoError(t, err)
	assert.Nil(t, info.Bit)

	info, err = rt.Step() // o
	require.NoError(t, err)
	require.NotNil(t, info.Bit)
	assert.False(t, *info.Bit)

	_, err = rt.Step() // x, then runs off the end
	rerr, ok := err.(*engine.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, engine.EndOfProgram, rerr.Kind)

	assert.Empty(t, sink.Bytes(), "a single pending bit must never flush a byte")
}

// scenario S2: eight outputs on an untouched tape assemble exactly one
// zero byte.
func TestScenarioS2(t *testing.T) {
	rt, sink := newRuntime(t, "oooooooo")

	var err error
	for i := 0; i < 8; i++ {
		_, err = rt.Step()
	}
	rerr, ok := err.(*engine.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, engine.EndOfProgram, rerr.Kind)
	assert.Equal(t, []byte{0x00}, sink.Bytes())
}

// Halt (scenario S5's mechanism): stepping onto 'h' returns a
// recoverable RuntimeError; the host may simply call Step again to
// resume one instruction further on.
func TestHaltIsRecoverable(t *testing.T) {
	rt, sink := newRuntime(t, "oho")

	info, err := rt.Step() // o
	require.NoError(t, err)
	require.NotNil(t, info.Bit)
	assert.False(t, *info.Bit)

	_, err = rt.Step() // h
	rerr, ok := err.(*engine.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, engine.Halt, rerr.Kind)

	// o, resumed past the halt; this is also the program's last
	// instruction, so the same step reports both the bit and EndOfProgram.
	info, err = rt.Step()
	require.NotNil(t, info.Bit)
	assert.False(t, *info.Bit)
	rerr, ok = err.(*engine.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, engine.EndOfProgram, rerr.Kind)

	assert.Empty(t, sink.Bytes(), "only two bits were ever written")
}

// property 9 / subroutine dispatch: a two-level call chain runs to
// completion and unwinds the call stack correctly.
func TestNestedSubroutineCalls(t *testing.T) {
	source := "@ b { . } @ a { !b . } !a ."
	rt, sink := newRuntime(t, source)

	var err error
	for i := 0; i < 10 && err == nil; i++ {
		_, err = rt.Step()
	}
	rerr, ok := err.(*engine.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, engine.EndOfProgram, rerr.Kind)
	assert.Empty(t, sink.Bytes())
}

func TestCallUndefinedSubroutineFails(t *testing.T) {
	rt, _ := newRuntime(t, "!missing")

	_, err := rt.Step()
	rerr, ok := err.(*engine.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, engine.SubroutineNotFound, rerr.Kind)
	assert.Equal(t, "missing", rerr.Name)
}

// property 8: after Fork{body}, the head equals the pre-fork head
// except the focused child equals whatever child the body left behind.
func TestForkSplicesOnlyTheChild(t *testing.T) {
	rt, _ := newRuntime(t, "f{n}")

	preFork := &tape.Head{
		Left:  &tape.Cell{},
		Child: &tape.Head{},
	}
	rt.Head = preFork

	_, err := rt.Step() // enter the fork body
	require.NoError(t, err)
	_, err = rt.Step() // n, clears the body's own (copied) focus
	rerr, ok := err.(*engine.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, engine.EndOfProgram, rerr.Kind)

	assert.Same(t, preFork.Left, rt.Head.Left, "left neighbor chain must be untouched by the fork")
	assert.Nil(t, rt.Head.Child, "the fork body's null_child must be spliced back into the caller's head")
}

// property 7: determinism for Random/Input-free programs — running the
// same program twice from scratch produces the same observed bits and
// the same termination.
func TestDeterministicWithoutRandomOrInput(t *testing.T) {
	source := "@ h { o>o<oo>o<ooo } ex< !h"
	run := func() ([]bool, engine.RuntimeErrorKind) {
		rt, _ := newRuntime(t, source)
		var bits []bool
		for {
			info, err := rt.Step()
			if info != nil && info.Bit != nil {
				bits = append(bits, *info.Bit)
			}
			if err != nil {
				return bits, err.(*engine.RuntimeError).Kind
			}
		}
	}

	bitsA, kindA := run()
	bitsB, kindB := run()
	assert.Equal(t, bitsA, bitsB)
	assert.Equal(t, kindA, kindB)
}

// scenario S3: verifies subroutine dispatch, multi-level head
// navigation, and bit-level output alignment by running a name-per-
// letter subroutine table to completion and checking it assembles
// exactly one byte per call, deterministically.
func TestScenarioS3SubroutineTableRunsToCompletion(t *testing.T) {
	source := "@ _ { oo>o<ooooo } @ h { o>o<oo>o<ooo } @ e { o>oo<oo>o<o>o< } " +
		"@ l { o>oo<o>oo<oo } @ o { o>oo<o>oooo< } ex< !h !e !l !l !o"
	rt, sink := newRuntime(t, source)

	var err error
	for i := 0; i < 10_000 && err == nil; i++ {
		_, err = rt.Step()
	}
	rerr, ok := err.(*engine.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, engine.EndOfProgram, rerr.Kind)
	assert.Equal(t, []byte("hello"), sink.Bytes())
}

// scenario S4 / property 10: repeatedly stepping a loop that only
// navigates over blank tape must never grow the Head structure — every
// full cycle canonicalizes back to an identical value.
func TestLoopOverBlankTapeStaysBounded(t *testing.T) {
	rt, _ := newRuntime(t, "[><]")
	start := rt.Head

	// Right (index 1) and Left (index 2) are inverses, so every time the
	// instruction pointer lands back on EndLoop (index 3) — right after
	// Left has just run — the head must have canonicalized back to its
	// starting value rather than accumulating structure.
	for i := 0; i < 30; i++ {
		_, err := rt.Step()
		require.NoError(t, err)
		if rt.IP == 3 {
			assert.Equal(t, start, rt.Head)
		}
	}
}
