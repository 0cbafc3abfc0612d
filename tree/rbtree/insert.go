package rbtree

// insertCase classifies the red-black violation at a freshly painted red node.
type insertCase uint8

const (
	insertAtRoot      insertCase = iota // node is the root
	insertBlackParent                   // nothing is violated
	insertRedUncle                      // parent and uncle are red
	insertBlackUncle                    // parent is red, uncle is black or absent
)

func classifyInsert[T any](n *node[T]) insertCase {
	p := n.parent
	switch {
	case p == nil:
		return insertAtRoot
	case p.color == black:
		return insertBlackParent
	case isRed(p.sibling()):
		return insertRedUncle
	default:
		return insertBlackUncle
	}
}

// Insert adds item to the tree. It returns ErrDuplicate if an equal item is
// already present and ErrAllocation if the free list refuses to hand out a
// node. The tree is not modified in either case.
func (t *Tree[T]) Insert(item T) error {
	var parent *node[T]
	dir := left
	for n := t.root; n != nil; n = n.children[dir] {
		c := t.compare(n.item, item)
		if c == 0 {
			return ErrDuplicate
		}
		parent = n
		if c < 0 {
			dir = right
		} else {
			dir = left
		}
	}

	n, err := t.freelist.newNode()
	if err != nil {
		return err
	}
	n.item = item
	n.color = red
	n.parent = parent
	if parent == nil {
		t.root = n
	} else {
		parent.children[dir] = n
	}
	t.insertFixup(n)
	t.size++
	return nil
}

// insertFixup restores the red-black properties after n was attached as a red leaf.
func (t *Tree[T]) insertFixup(n *node[T]) {
	for {
		switch classifyInsert(n) {
		case insertAtRoot:
			n.color = black
			return
		case insertBlackParent:
			return
		case insertRedUncle:
			p := n.parent
			g := p.parent
			p.color = black
			p.sibling().color = black
			g.color = red
			n = g
		case insertBlackUncle:
			p := n.parent
			g := p.parent
			outer := p.side()
			if n.side() != outer {
				// inner grandchild, make it an outer one first
				t.rotate(p, outer)
				n, p = p, n
			}
			t.rotate(g, outer.opposite())
			p.color = black
			g.color = red
			return
		}
	}
}
