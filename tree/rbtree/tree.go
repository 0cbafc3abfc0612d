// Package rbtree implements an ordered set on top of a red-black tree.
package rbtree

import (
	"errors"

	"github.com/alphabill-org/rbtree/internal/util"
)

// DefaultFreeListSize is the size of the node free list created for a tree
// when none is supplied with WithFreeList.
const DefaultFreeListSize = 32

var (
	ErrNilCompareFunc = errors.New("compare function is nil")
	ErrNilFreeFunc    = errors.New("free function is nil")
	ErrDuplicate      = errors.New("item already exists")
	ErrNotFound       = errors.New("item not found")
	ErrAllocation     = errors.New("node allocation failed")
)

type (
	// CompareFunc returns a negative number when a < b, zero when a == b and
	// a positive number when a > b. The tree always calls it as
	// compare(itemInTree, key).
	CompareFunc[T any] func(a, b T) int

	// FreeFunc releases an item. It is called exactly once for every item
	// that leaves the tree, either by Delete or by Destroy.
	FreeFunc[T any] func(item T)

	// VisitFunc is called by ForEach for every item in ascending order.
	// Returning false stops the traversal.
	VisitFunc[T any] func(item T) bool

	// Tree is an ordered set of unique items kept in a red-black tree.
	//
	// This implementation is not safe for concurrent use by multiple goroutines. If multiple
	// goroutines access a tree concurrently, and at least one of them modifies the tree, it
	// must be synchronized externally. The tree must not be accessed from inside the
	// compare, free or visit callbacks.
	Tree[T any] struct {
		root     *node[T]
		size     int
		compare  CompareFunc[T]
		free     FreeFunc[T]
		freelist *FreeList[T]
	}

	Option[T any] func(*Tree[T])
)

// WithFreeList makes the tree take its nodes from fl. A free list may be
// shared by several trees.
func WithFreeList[T any](fl *FreeList[T]) Option[T] {
	return func(t *Tree[T]) {
		if fl != nil {
			t.freelist = fl
		}
	}
}

// New returns an empty tree ordered by compare. Items leaving the tree are
// released with free.
func New[T any](compare CompareFunc[T], free FreeFunc[T], opts ...Option[T]) (*Tree[T], error) {
	if compare == nil {
		return nil, ErrNilCompareFunc
	}
	if free == nil {
		return nil, ErrNilFreeFunc
	}
	t := &Tree[T]{compare: compare, free: free}
	for _, opt := range opts {
		opt(t)
	}
	if t.freelist == nil {
		t.freelist = NewFreeList[T](DefaultFreeListSize)
	}
	return t, nil
}

// Len returns the number of items in the tree.
func (t *Tree[T]) Len() int {
	return t.size
}

// Contains reports whether an item equal to key is in the tree.
func (t *Tree[T]) Contains(key T) bool {
	return t.find(key) != nil
}

// Find returns the item in the tree that compares equal to key.
func (t *Tree[T]) Find(key T) (item T, found bool) {
	if n := t.find(key); n != nil {
		return n.item, true
	}
	return item, false
}

// ForEach calls visit for every item in ascending order. It returns false
// if visit stopped the traversal (or is nil), true otherwise.
func (t *Tree[T]) ForEach(visit VisitFunc[T]) bool {
	if visit == nil {
		return false
	}
	var stack util.Stack[*node[T]]
	n := t.root
	for n != nil || !stack.IsEmpty() {
		for ; n != nil; n = n.children[left] {
			stack.Push(n)
		}
		n = stack.Pop()
		if !visit(n.item) {
			return false
		}
		n = n.children[right]
	}
	return true
}

// Destroy releases every item (children before their parent) and leaves
// the tree empty.
func (t *Tree[T]) Destroy() {
	var pending, postOrder util.Stack[*node[T]]
	if t.root != nil {
		pending.Push(t.root)
	}
	for !pending.IsEmpty() {
		n := pending.Pop()
		postOrder.Push(n)
		for _, c := range n.children {
			if c != nil {
				pending.Push(c)
			}
		}
	}
	for !postOrder.IsEmpty() {
		n := postOrder.Pop()
		t.free(n.item)
		t.freelist.freeNode(n)
	}
	t.root = nil
	t.size = 0
}

func (t *Tree[T]) find(key T) *node[T] {
	n := t.root
	for n != nil {
		c := t.compare(n.item, key)
		switch {
		case c == 0:
			return n
		case c < 0:
			n = n.children[right]
		default:
			n = n.children[left]
		}
	}
	return nil
}
