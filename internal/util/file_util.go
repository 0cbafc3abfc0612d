package util

import (
	"errors"
	"io/fs"
	"os"
)

// FileExists reports whether path exists. Stat errors other than "not exist" are treated as existing file.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
