package tree

import (
	"fmt"
	"io"
)

// Print writes id's subtree to w using the same ASCII box-drawing layout
// used for the table-driven driver's parse-tree dumps.
func Print(w io.Writer, t *Tree, id NodeID) error {
	return printNode(w, t, id, "", "")
}

func printNode(w io.Writer, t *Tree, id NodeID, ruledLine, childPrefix string) error {
	n, err := t.Node(id)
	if err != nil {
		return err
	}

	if n.Payload != "" {
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, n.Kind, n.Payload)
	} else {
		fmt.Fprintf(w, "%v%v\n", ruledLine, n.Kind)
	}

	children, err := t.Children(id)
	if err != nil {
		return err
	}
	num := len(children)
	for i, child := range children {
		var line, prefix string
		if num > 1 && i < num-1 {
			line = "├─ "
			prefix = "│  "
		} else {
			line = "└─ "
			prefix = "   "
		}
		if err := printNode(w, t, child, childPrefix+line, childPrefix+prefix); err != nil {
			return err
		}
	}
	return nil
}
