package rbtree

type (
	color uint8
	side  uint8

	node[T any] struct {
		item     T
		color    color
		parent   *node[T]    // navigation only, children own the subtree
		children [2]*node[T] // indexed by side
	}
)

const (
	red color = iota
	black
)

const (
	left side = iota
	right
)

func (c color) String() string {
	if c == red {
		return "R"
	}
	return "B"
}

func (s side) opposite() side {
	return 1 - s
}

// absent children count as black
func isRed[T any](n *node[T]) bool {
	return n != nil && n.color == red
}

func isBlack[T any](n *node[T]) bool {
	return n == nil || n.color == black
}

// side returns on which side of its parent n hangs. The root reports left.
func (n *node[T]) side() side {
	if n.parent != nil && n.parent.children[right] == n {
		return right
	}
	return left
}

func (n *node[T]) sibling() *node[T] {
	return n.parent.children[n.side().opposite()]
}

func (n *node[T]) leftmost() *node[T] {
	for n.children[left] != nil {
		n = n.children[left]
	}
	return n
}

/*
rotate moves n one level down toward dir, its child on the opposite side
takes its place. rotate(x, left):

	    X		     Y
	  A   Y	    =>     X   C
	     B C 	  A B
*/
func (t *Tree[T]) rotate(n *node[T], dir side) {
	pivot := n.children[dir.opposite()]
	inner := pivot.children[dir]
	n.children[dir.opposite()] = inner
	if inner != nil {
		inner.parent = n
	}
	t.transplant(n, pivot)
	pivot.children[dir] = n
	n.parent = pivot
}

// transplant links n (which may be nil) into old's position under old's parent.
// Links of old itself are left untouched.
func (t *Tree[T]) transplant(old, n *node[T]) {
	p := old.parent
	switch {
	case p == nil:
		t.root = n
	case p.children[left] == old:
		p.children[left] = n
	default:
		p.children[right] = n
	}
	if n != nil {
		n.parent = p
	}
}
