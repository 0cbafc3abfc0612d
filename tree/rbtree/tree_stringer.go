package rbtree

import (
	"fmt"
	"strings"
)

// String returns a sideways drawing of the tree, right subtrees on top.
// Every node is printed as item[color]. Should not be used for large trees.
func (t *Tree[T]) String() string {
	if t == nil || t.root == nil {
		return "────┤ empty"
	}
	var sb strings.Builder
	print(&sb, t.root, "", false, true)
	return sb.String()
}

func print[T any](sb *strings.Builder, n *node[T], prefix string, tail, isRoot bool) {
	if r := n.children[right]; r != nil {
		print(sb, r, rightNodePrefix(prefix, tail), false, false)
	}
	fmt.Fprintf(sb, "%s─┤ %v[%s]\n", branch(prefix, isRoot, tail), n.item, n.color)
	if l := n.children[left]; l != nil {
		print(sb, l, leftNodePrefix(prefix, tail, isRoot), true, false)
	}
}

func branch(prefix string, isRoot, tail bool) string {
	switch {
	case isRoot:
		return prefix + "───"
	case tail:
		return prefix + "└──"
	default:
		return prefix + "┌──"
	}
}

func rightNodePrefix(prefix string, tail bool) string {
	if tail {
		return prefix + "│\t"
	}
	return prefix + "\t"
}

func leftNodePrefix(prefix string, tail, isRoot bool) string {
	if tail || isRoot {
		return prefix + "\t"
	}
	return prefix + "│\t"
}
