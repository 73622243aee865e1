package richtext

import "strings"

// frame is one pending node on the extraction stack.
type frame struct {
	node  *Node
	next  int      // index of the next child to visit
	parts []string // extracted text of visited children
}

// ExtractText flattens a node tree depth-first in document order.
//
// A node with non-empty text yields that text and its children are not
// visited. Otherwise the outputs of its children are joined with "\n".
// A nil node, or a node with neither text nor children, yields "".
//
// The walk uses an explicit stack, so arbitrarily deep trees cannot
// exhaust the goroutine stack.
func ExtractText(root *Node) string {
	var result string
	stack := []*frame{{node: root}}

	deliver := func(s string) {
		if len(stack) == 0 {
			result = s
			return
		}
		top := stack[len(stack)-1]
		top.parts = append(top.parts, s)
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		switch {
		case top.node == nil:
			stack = stack[:len(stack)-1]
			deliver("")
		case top.node.Text != "":
			stack = stack[:len(stack)-1]
			deliver(top.node.Text)
		case top.next < len(top.node.Content):
			child := top.node.Content[top.next]
			top.next++
			stack = append(stack, &frame{node: child})
		default:
			stack = stack[:len(stack)-1]
			deliver(strings.Join(top.parts, "\n"))
		}
	}

	return result
}
