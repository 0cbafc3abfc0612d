package rbtree

import "golang.org/x/exp/constraints"

// CompareOrdered is a CompareFunc for the built-in ordered types.
func CompareOrdered[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// NoopFree is a FreeFunc for items which hold no resources.
func NoopFree[T any](T) {}
