package elements

import (
	"strings"

	"github.com/alphabill-org/rbtree/tree/rbtree"
)

// CompareWords orders words byte-wise.
func CompareWords(a, b string) int {
	return strings.Compare(a, b)
}

// FreeWord is the destructor of words, strings hold no resources.
var FreeWord rbtree.FreeFunc[string] = rbtree.NoopFree[string]

// ConcatenateWords joins the words of the tree in order, every word followed by a newline.
func ConcatenateWords(tree Iterable[string]) string {
	var sb strings.Builder
	tree.ForEach(func(w string) bool {
		sb.WriteString(w)
		sb.WriteByte('\n')
		return true
	})
	return sb.String()
}
