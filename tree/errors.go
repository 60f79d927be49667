package tree

import "errors"

// Sentinel errors
var (
	// ErrNotPreorder indicates a parent index that does not precede its child.
	ErrNotPreorder = errors.New("node list is not in preorder")
	// ErrNoRoot indicates an empty node list.
	ErrNoRoot = errors.New("tree has no root node")
)
