// Package fs provides file system adapters for fingerprinting config sources
// and locating bundle mapping files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
)

var skippedDirs = []string{".git", ".jj", ".ormwire", "node_modules", "vendor"}

// Walker yields the files below a directory in lexical order.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file below root, skipping VCS, vendor and
// workspace directories.
func (w *Walker) WalkFiles(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && slices.Contains(skippedDirs, d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
