package logger

import (
	"os"
	"strings"
)

// shortCaller keeps the last three elements of the caller path, ie "tree/rbtree/tree.go:42".
// Meant for using in console for development - not performance optimized.
func shortCaller(i interface{}) string {
	c, _ := i.(string)
	parts := strings.Split(c, string(os.PathSeparator))
	if len(parts) > 3 {
		parts = parts[len(parts)-3:]
	}
	return strings.Join(parts, "/")
}
