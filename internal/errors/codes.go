package errors

// Error codes for the Metatape toolchain.
//
// Error code ranges:
// E0100-E0199: Parse and link errors
// E0200-E0299: Reserved-but-unimplemented opcode errors

const (
	// E0100: grammar failure reported by the underlying parser.
	ErrorSyntax = "E0100"

	// E0101: grammar accepted the token but internal/parser has no
	// lowering rule for it, e.g. a letter inside a letter run that is
	// not one of the letter instructions (such as "q", or an "f" not
	// directly followed by "{").
	ErrorUnrecognizedInstruction = "E0101"

	// E0102: a subroutine definition appears inside a block, fork body,
	// or another subroutine body instead of at top level.
	ErrorNestedSubroutineDef = "E0102"

	// E0103: a subroutine definition's name is empty or malformed.
	ErrorMalformedSubroutineDef = "E0103"

	// E0104: an If has no matching Else or EndIf in the same body.
	ErrorUnmatchedIf = "E0104"

	// E0105: an Else or EndIf has no matching If in the same body.
	ErrorUnmatchedElseOrEndIf = "E0105"

	// E0106: a Loop has no matching EndLoop in the same body.
	ErrorUnmatchedLoop = "E0106"

	// E0107: an EndLoop has no matching Loop in the same body.
	ErrorUnmatchedEndLoop = "E0107"

	// E0200: a body contains the reserved Load instruction, which the
	// engine has no runtime dispatch case for.
	ErrorLoadNotImplemented = "E0200"
)

// GetErrorDescription returns a human-readable description of the error code.
func GetErrorDescription(code string) string {
	switch code {
	case ErrorSyntax:
		return "Source does not match the Metatape grammar"
	case ErrorUnrecognizedInstruction:
		return "Instruction is not recognized by the lowering pass"
	case ErrorNestedSubroutineDef:
		return "Subroutine definitions are only legal at top level"
	case ErrorMalformedSubroutineDef:
		return "Subroutine definition is missing a name"
	case ErrorUnmatchedIf:
		return "If has no matching Else or EndIf"
	case ErrorUnmatchedElseOrEndIf:
		return "Else or EndIf has no matching If"
	case ErrorUnmatchedLoop:
		return "Loop has no matching EndLoop"
	case ErrorUnmatchedEndLoop:
		return "EndLoop has no matching Loop"
	case ErrorLoadNotImplemented:
		return "Load is reserved but not implemented"
	default:
		return "Unknown error code"
	}
}

// GetErrorCategory returns the category of the error based on its code.
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0100" && code < "E0200":
		return "Parse/Link"
	case code >= "E0200" && code < "E0300":
		return "Reserved Opcode"
	default:
		return "Unknown"
	}
}
