package logger

import (
	"runtime"
	"strings"
)

// PackageNameResolver finds the name of the calling package relative to BasePackage.
type PackageNameResolver struct {
	BasePackage string
	// Depth is the number of stack frames to skip, defaults to 2 (caller of the logger factory)
	Depth int
}

func (r *PackageNameResolver) PackageName() string {
	depth := r.Depth
	if depth == 0 {
		depth = 2
	}
	pc, _, _, ok := runtime.Caller(depth)
	if !ok {
		return ""
	}
	// For example: github.com/alphabill-org/rbtree/internal/logger.TestPackageName
	fn := runtime.FuncForPC(pc).Name()
	if _, after, found := strings.Cut(fn, r.BasePackage); found {
		fn = after
	}
	// package path ends at the first dot after the last slash
	lastSlash := strings.LastIndex(fn, "/")
	if dot := strings.Index(fn[lastSlash+1:], "."); dot >= 0 {
		fn = fn[:lastSlash+1+dot]
	}
	return strings.Trim(fn, "/")
}
