package engine

import (
	"metatape/internal/ast"
	"metatape/internal/tape"
)

// Frame is one saved caller context on the call stack, resumed when the
// callee's body runs off its end. BlockFrame and ForkFrame are the only
// two shapes a call ever takes, so Frame is a closed tagged union rather
// than an erased closure.
type Frame interface {
	isFrame()
}

// BlockFrame restores the body and instruction pointer a Block or Call
// was entered from; execution resumes one instruction past the
// instruction that pushed it.
type BlockFrame struct {
	Body *ast.Body
	IP   int
}

func (*BlockFrame) isFrame() {}

// ForkFrame restores the same way BlockFrame does, and additionally
// splices the callee's focused child back into the head the Fork was
// entered with, so the caller's own position, neighbors, and ancestry
// are otherwise untouched by whatever the fork body did to its head.
type ForkFrame struct {
	Body       *ast.Body
	IP         int
	CallerHead *tape.Head
}

func (*ForkFrame) isFrame() {}
