package rbtree

// deleteCase classifies the double black position left behind by removing a black node.
type deleteCase uint8

const (
	deleteAtRoot       deleteCase = iota // deficiency reached the root, nothing to fix
	deleteRedNode                        // the position holds a red node
	deleteRedSibling                     // sibling is red
	deleteBlackNephews                   // sibling is black (or absent) with black children
	deleteNearNephew                     // sibling is black, only the near child is red
	deleteFarNephew                      // sibling is black, far child is red
)

// classifyDelete inspects the position on side s of parent p currently holding x.
func classifyDelete[T any](x, p *node[T], s side) deleteCase {
	if isRed(x) {
		return deleteRedNode
	}
	if p == nil {
		return deleteAtRoot
	}
	w := p.children[s.opposite()]
	switch {
	case isRed(w):
		return deleteRedSibling
	case w == nil || (isBlack(w.children[left]) && isBlack(w.children[right])):
		return deleteBlackNephews
	case isRed(w.children[s.opposite()]):
		return deleteFarNephew
	default:
		return deleteNearNephew
	}
}

// Delete removes the item equal to key and releases it with the tree's free
// function. It returns ErrNotFound if there is no such item.
func (t *Tree[T]) Delete(key T) error {
	n := t.find(key)
	if n == nil {
		return ErrNotFound
	}
	t.unlink(n)
	t.size--
	t.free(n.item)
	t.freelist.freeNode(n)
	return nil
}

// unlink detaches n from the tree and rebalances. When n has two children
// its in-order successor is relinked into n's position, so every other
// node keeps carrying the same item.
func (t *Tree[T]) unlink(n *node[T]) {
	var x, xParent *node[T]
	var xSide side
	removed := n.color

	switch {
	case n.children[left] == nil:
		x = n.children[right]
		xParent, xSide = n.parent, n.side()
		t.transplant(n, x)
	case n.children[right] == nil:
		x = n.children[left]
		xParent, xSide = n.parent, n.side()
		t.transplant(n, x)
	default:
		s := n.children[right].leftmost()
		removed = s.color
		x = s.children[right]
		if s.parent == n {
			xParent, xSide = s, right
		} else {
			xParent, xSide = s.parent, left
			t.transplant(s, x)
			s.children[right] = n.children[right]
			s.children[right].parent = s
		}
		t.transplant(n, s)
		s.children[left] = n.children[left]
		s.children[left].parent = s
		s.color = n.color
	}

	if removed == black {
		t.deleteFixup(x, xParent, xSide)
	}
}

// deleteFixup removes the extra black from the position on side xSide of
// xParent, currently holding x (possibly nil).
func (t *Tree[T]) deleteFixup(x, xParent *node[T], xSide side) {
	for {
		switch classifyDelete(x, xParent, xSide) {
		case deleteRedNode:
			x.color = black
			return
		case deleteAtRoot:
			return
		case deleteRedSibling:
			w := xParent.children[xSide.opposite()]
			w.color = black
			xParent.color = red
			t.rotate(xParent, xSide)
		case deleteBlackNephews:
			if w := xParent.children[xSide.opposite()]; w != nil {
				w.color = red
			}
			x = xParent
			xParent = x.parent
			xSide = x.side()
		case deleteNearNephew:
			w := xParent.children[xSide.opposite()]
			w.children[xSide].color = black
			w.color = red
			t.rotate(w, xSide.opposite())
		case deleteFarNephew:
			w := xParent.children[xSide.opposite()]
			w.color = xParent.color
			xParent.color = black
			w.children[xSide.opposite()].color = black
			t.rotate(xParent, xSide)
			return
		}
	}
}
