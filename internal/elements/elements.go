/*
Package elements implements the element types stored in rbtree.Tree by the
rbtree tool: numeric vectors, words and unit identifiers. For every type it
provides the comparator and destructor the tree needs, the visitors used to
aggregate a tree, and decoders for the supported input formats.
*/
package elements

import "github.com/alphabill-org/rbtree/tree/rbtree"

// Iterable is the part of rbtree.Tree the aggregating visitors need.
type Iterable[T any] interface {
	ForEach(visit rbtree.VisitFunc[T]) bool
}
