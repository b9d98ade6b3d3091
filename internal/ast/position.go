// Package ast holds the linked program representation: the instruction
// sum type, bodies, and the subroutine table produced by internal/parser
// and finished by internal/linker.
package ast

import "fmt"

// Position locates a span of source text.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}
