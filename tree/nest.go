package tree

import "fmt"

// Nest rebuilds the bracket structure of a preorder parent-pointer list.
// For every node it first closes the open nodes that are not its parent,
// then opens the node at its depth. Remaining nodes are closed at the end,
// innermost first. parents[i] is NoParent for a root.
func Nest(parents []int, enter func(index, depth int), leave func(index int)) error {
	stack := []int{NoParent}

	for i, parent := range parents {
		if parent != NoParent && (parent < 0 || parent >= i) {
			return fmt.Errorf("%w: node %d has parent %d", ErrNotPreorder, i, parent)
		}

		for stack[len(stack)-1] != parent {
			if len(stack) == 1 {
				return fmt.Errorf("%w: parent %d of node %d is already closed", ErrNotPreorder, parent, i)
			}

			leave(stack[len(stack)-1])
			stack = stack[:len(stack)-1]
		}

		enter(i, len(stack)-1)
		stack = append(stack, i)
	}

	for len(stack) > 1 {
		leave(stack[len(stack)-1])
		stack = stack[:len(stack)-1]
	}

	return nil
}
