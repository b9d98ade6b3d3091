package tape

// Head is the focus of a zipper over one level of tape: the neighbor
// chains to the left and right, the focused cell's own child tape, and
// a pointer back out to the enclosing cell (nil at the outermost
// tape). A Head is never mutated after construction; every primitive
// below returns a new one, sharing whatever substructure didn't change.
type Head struct {
	Left   *Cell
	Right  *Cell
	Child  *Head
	Parent *Head
}

// New returns a fresh, entirely blank top-level tape.
func New() *Head {
	return &Head{}
}

// MoveLeft returns the Head focused one cell to the left.
func (h *Head) MoveLeft() *Head {
	var left *Cell
	var child *Head
	if h.Left != nil {
		left = h.Left.Next
		child = h.Left.Child
	}
	right := pushCell(h.Child, h.Right)
	return &Head{Left: left, Right: right, Child: child, Parent: h.Parent}
}

// MoveRight returns the Head focused one cell to the right.
func (h *Head) MoveRight() *Head {
	var right *Cell
	var child *Head
	if h.Right != nil {
		right = h.Right.Next
		child = h.Right.Child
	}
	left := pushCell(h.Child, h.Left)
	return &Head{Left: left, Right: right, Child: child, Parent: h.Parent}
}

// Enter descends into the focused cell's child tape, creating a fresh
// blank one if it has none. The old surrounding context (h itself)
// becomes one frame on the new parent chain — canonicalized away to
// nil if h's left chain, right chain, and own parent chain are all
// already absent, since such a frame carries nothing Exit couldn't
// reconstruct on its own.
func (h *Head) Enter() *Head {
	child := h.Child
	if child == nil {
		child = New()
	}
	parent := h
	if h.Left == nil && h.Right == nil && h.Parent == nil {
		parent = nil
	}
	return &Head{Left: child.Left, Right: child.Right, Child: child.Child, Parent: parent}
}

// Exit ascends back to the enclosing tape, writing the current
// (possibly modified) position back as the enclosing cell's child
// unconditionally — even a still-blank child is packaged rather than
// canonicalized to nil. Enter and Exit are therefore not quite
// symmetric: Enter may collapse an all-absent parent chain, but Exit
// never collapses the child it writes back. A nil parent chain (either
// true top level, or one Enter canonicalized away) reconstructs as the
// canonical blank outer context rather than refusing to ascend: the
// universe extends upward just as it does downward and sideways.
func (h *Head) Exit() *Head {
	var outerLeft, outerRight *Cell
	var outerParent *Head
	if h.Parent != nil {
		outerLeft, outerRight, outerParent = h.Parent.Left, h.Parent.Right, h.Parent.Parent
	}
	newChild := &Head{Left: h.Left, Right: h.Right, Child: h.Child, Parent: nil}
	return &Head{Left: outerLeft, Right: outerRight, Child: newChild, Parent: outerParent}
}

// NullChild clears the focused cell's child.
func (h *Head) NullChild() *Head {
	return &Head{Left: h.Left, Right: h.Right, Child: nil, Parent: h.Parent}
}

// HasChild reports whether the focused cell currently has a child.
func (h *Head) HasChild() bool {
	return h.Child != nil
}

// CopyChildFrom returns a Head like h but with its child replaced by
// src's child — a cheap, structure-sharing copy, not a deep clone.
func (h *Head) CopyChildFrom(src *Head) *Head {
	return &Head{Left: h.Left, Right: h.Right, Child: src.Child, Parent: h.Parent}
}
