package rbtree

import "sync"

// FreeList represents a free list of tree nodes. By default each Tree has
// its own FreeList, but multiple trees can share the same FreeList.
//
// A bounded free list also caps the number of nodes that may be out at the
// same time, Insert reports ErrAllocation once the cap is reached.
type FreeList[T any] struct {
	mu       sync.Mutex
	freelist []*node[T]
	limit    int
	live     int
}

// NewFreeList creates a new free list.
// size is the maximum number of released nodes kept for reuse.
func NewFreeList[T any](size int) *FreeList[T] {
	return &FreeList[T]{freelist: make([]*node[T], 0, size)}
}

// NewBoundedFreeList creates a free list which hands out at most limit
// nodes at a time. Non-positive limit means no limit.
func NewBoundedFreeList[T any](size, limit int) *FreeList[T] {
	fl := NewFreeList[T](size)
	fl.limit = limit
	return fl
}

// Live returns the number of nodes handed out and not yet released.
func (f *FreeList[T]) Live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.live
}

func (f *FreeList[T]) newNode() (*node[T], error) {
	f.mu.Lock()
	if f.limit > 0 && f.live >= f.limit {
		f.mu.Unlock()
		return nil, ErrAllocation
	}
	f.live++
	index := len(f.freelist) - 1
	if index < 0 {
		f.mu.Unlock()
		return new(node[T]), nil
	}
	n := f.freelist[index]
	f.freelist[index] = nil
	f.freelist = f.freelist[:index]
	f.mu.Unlock()
	return n, nil
}

// freeNode returns n to the list, reporting whether it was kept for reuse.
func (f *FreeList[T]) freeNode(n *node[T]) (out bool) {
	// drop references so the item can be collected
	*n = node[T]{}
	f.mu.Lock()
	f.live--
	if len(f.freelist) < cap(f.freelist) {
		f.freelist = append(f.freelist, n)
		out = true
	}
	f.mu.Unlock()
	return
}
