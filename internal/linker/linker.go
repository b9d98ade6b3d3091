// Package linker resolves the placeholder jump targets internal/parser
// leaves behind: two independent one-pass bracket-matching walks per
// body, If/Else/EndIf and Loop/EndLoop, applied recursively into every
// nested Block/Fork body and every subroutine body.
package linker

import (
	"fmt"

	"metatape/internal/ast"
	interr "metatape/internal/errors"
)

// LinkError is a single link-stage diagnostic: an unmatched bracket, or
// a body containing the reserved Load instruction.
type LinkError struct {
	Code     string
	Message  string
	Position ast.Position
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Position)
}

// Link resolves jump targets across the whole program: Main, and every
// subroutine body, each linked independently.
func Link(prog *ast.Program) []*LinkError {
	var errs []*LinkError
	errs = append(errs, linkBody(prog.Main)...)
	for _, body := range prog.Subroutines {
		errs = append(errs, linkBody(body)...)
	}
	return errs
}

func linkBody(body *ast.Body) []*LinkError {
	var errs []*LinkError
	errs = append(errs, resolveConditions(body)...)
	errs = append(errs, resolveLoops(body)...)

	for _, instr := range *body {
		switch v := instr.(type) {
		case *ast.Block:
			errs = append(errs, linkBody(v.Body)...)
		case *ast.Fork:
			errs = append(errs, linkBody(v.Body)...)
		case *ast.Load:
			errs = append(errs, &LinkError{
				Code:     interr.ErrorLoadNotImplemented,
				Message:  fmt.Sprintf("load %q is reserved but not implemented", v.Name),
				Position: v.Pos(),
			})
		}
	}
	return errs
}

// openIf tracks a still-open If while walking a body; elseIndex is -1
// until a matching Else is seen.
type openIf struct {
	ifIndex   int
	elseIndex int
}

// resolveConditions matches If/Else/EndIf within a single body. An If
// with no Else jumps straight to its EndIf; one with an Else jumps
// there instead, and the Else jumps to the EndIf.
func resolveConditions(body *ast.Body) []*LinkError {
	var stack []openIf
	var errs []*LinkError

	for i, instr := range *body {
		switch v := instr.(type) {
		case *ast.If:
			stack = append(stack, openIf{ifIndex: i, elseIndex: -1})
		case *ast.Else:
			if len(stack) == 0 {
				errs = append(errs, unmatched(interr.ErrorUnmatchedElseOrEndIf, "else has no matching if", v.Pos()))
				continue
			}
			top := &stack[len(stack)-1]
			ifInstr := (*body)[top.ifIndex].(*ast.If)
			ifInstr.Target = i
			top.elseIndex = i
		case *ast.EndIf:
			if len(stack) == 0 {
				errs = append(errs, unmatched(interr.ErrorUnmatchedElseOrEndIf, "endif has no matching if", v.Pos()))
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.elseIndex >= 0 {
				(*body)[top.elseIndex].(*ast.Else).Target = i
			} else {
				(*body)[top.ifIndex].(*ast.If).Target = i
			}
		}
	}

	for _, o := range stack {
		ifInstr := (*body)[o.ifIndex].(*ast.If)
		errs = append(errs, unmatched(interr.ErrorUnmatchedIf, "if has no matching else or endif", ifInstr.Pos()))
	}
	return errs
}

// resolveLoops matches Loop/EndLoop within a single body. EndLoop jumps
// back to its Loop; Loop itself is a no-op landing pad.
func resolveLoops(body *ast.Body) []*LinkError {
	var stack []int
	var errs []*LinkError

	for i, instr := range *body {
		switch v := instr.(type) {
		case *ast.Loop:
			stack = append(stack, i)
		case *ast.EndLoop:
			if len(stack) == 0 {
				errs = append(errs, unmatched(interr.ErrorUnmatchedEndLoop, "endloop has no matching loop", v.Pos()))
				continue
			}
			openIdx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			v.Target = openIdx
		}
	}

	for _, idx := range stack {
		loopInstr := (*body)[idx].(*ast.Loop)
		errs = append(errs, unmatched(interr.ErrorUnmatchedLoop, "loop has no matching endloop", loopInstr.Pos()))
	}
	return errs
}

func unmatched(code, message string, pos ast.Position) *LinkError {
	return &LinkError{Code: code, Message: message, Position: pos}
}
