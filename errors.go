package cgeltree

import (
	"errors"
	"fmt"
)

// Conversion errors shared by the converters. A failure is local to the tree
// being converted; callers record it and move on to the next tree.
var (
	// ErrStructure indicates unbalanced brackets in a macro-notation tree.
	ErrStructure = errors.New("unbalanced tree structure")
	// ErrLabel indicates a node label region that neither dialect can read.
	ErrLabel = errors.New("unparseable node label")
	// ErrFormat indicates bracket-notation text that does not match the rewrite rules.
	ErrFormat = errors.New("malformed bracket notation")
	// ErrSpanInvariant indicates a broken span after resolution (left > right or
	// a child outside its parent). It signals a bug, not bad input.
	ErrSpanInvariant = errors.New("span invariant violated")

	// ErrUnknownDialect is returned when a dialect name is not recognised.
	ErrUnknownDialect = errors.New("unknown label dialect")
)

// TreeError ties a conversion failure to the tree it happened in.
type TreeError struct {
	TreeID string
	Offset int // byte offset inside the tree text, -1 when unknown
	Err    error
}

func (e *TreeError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("tree %s: %v (offset %d)", e.TreeID, e.Err, e.Offset)
	}

	return fmt.Sprintf("tree %s: %v", e.TreeID, e.Err)
}

func (e *TreeError) Unwrap() error {
	return e.Err
}

// NewTreeError wraps err with the tree identity. Offset may be -1.
func NewTreeError(treeID string, offset int, err error) *TreeError {
	return &TreeError{TreeID: treeID, Offset: offset, Err: err}
}
