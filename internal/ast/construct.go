package ast

// Constructors for the Instr variants. base is unexported so that only
// this package can build a well-formed node; internal/parser and
// internal/linker build instructions exclusively through these.

func NewNop(at Position) *Nop       { return &Nop{base{at}} }
func NewLeft(at Position) *Left     { return &Left{base{at}} }
func NewRight(at Position) *Right   { return &Right{base{at}} }
func NewEnter(at Position) *Enter   { return &Enter{base{at}} }
func NewExit(at Position) *Exit     { return &Exit{base{at}} }
func NewNull(at Position) *Null     { return &Null{base{at}} }
func NewEndIf(at Position) *EndIf   { return &EndIf{base{at}} }
func NewLoop(at Position) *Loop     { return &Loop{base{at}} }
func NewRandom(at Position) *Random { return &Random{base{at}} }
func NewInput(at Position) *Input   { return &Input{base{at}} }
func NewOutput(at Position) *Output { return &Output{base{at}} }
func NewHalt(at Position) *Halt     { return &Halt{base{at}} }

// NewIf, NewElse and NewEndLoop start with a placeholder Target of 0,
// patched in place by internal/linker once the matching bracket is found.
func NewIf(at Position) *If           { return &If{base: base{at}, Target: 0} }
func NewElse(at Position) *Else       { return &Else{base: base{at}, Target: 0} }
func NewEndLoop(at Position) *EndLoop { return &EndLoop{base: base{at}, Target: 0} }

func NewBlock(at Position, body *Body) *Block { return &Block{base: base{at}, Body: body} }
func NewFork(at Position, body *Body) *Fork   { return &Fork{base: base{at}, Body: body} }
func NewCall(at Position, name string) *Call  { return &Call{base: base{at}, Name: name} }
func NewLoad(at Position, name string) *Load  { return &Load{base: base{at}, Name: name} }
