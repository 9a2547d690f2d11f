// Package sizes pre-computes cumulative directory sizes in a single
// bottom-up pass so the main walk never re-reads a subtree.
package sizes

import (
	"context"
	"os"
	"path/filepath"
)

// ErrorFunc receives paths that could not be read during the size pass.
type ErrorFunc func(path string, err error)

// SkipFunc reports whether a path is excluded from the scan. Skipped
// entries contribute nothing to any directory total.
type SkipFunc func(path string) bool

type frame struct {
	path    string
	subdirs []string
	next    int
	total   int64
}

// Aggregate performs one post-order traversal of the tree rooted at root
// and returns the cumulative byte size of every directory keyed by its
// path. Each directory is listed exactly once. Unreadable directories
// contribute zero to their parent and are reported through onError;
// siblings continue. Symlinks are never followed and symlinked files do
// not count toward totals.
//
// The traversal uses an explicit stack rather than native recursion so
// pathologically deep trees cannot exhaust the goroutine stack.
func Aggregate(ctx context.Context, root string, skip SkipFunc, onError ErrorFunc) (map[string]int64, error) {
	totals := make(map[string]int64)

	open := func(path string) (frame, bool) {
		ents, err := os.ReadDir(path)
		if err != nil {
			if onError != nil {
				onError(path, err)
			}
			totals[path] = 0
			return frame{}, false
		}
		f := frame{path: path}
		for _, de := range ents {
			child := filepath.Join(path, de.Name())
			if skip != nil && skip(child) {
				continue
			}
			if de.IsDir() {
				f.subdirs = append(f.subdirs, child)
				continue
			}
			info, err := os.Lstat(child)
			if err != nil {
				if onError != nil {
					onError(child, err)
				}
				continue
			}
			if info.Mode().IsRegular() {
				f.total += info.Size()
			}
		}
		return f, true
	}

	rootFrame, ok := open(root)
	if !ok {
		return totals, nil
	}

	stack := make([]frame, 0, 64)
	stack = append(stack, rootFrame)
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return totals, err
		}

		top := &stack[len(stack)-1]
		if top.next < len(top.subdirs) {
			child := top.subdirs[top.next]
			top.next++
			if cf, ok := open(child); ok {
				stack = append(stack, cf)
			}
			continue
		}

		// Post-order: every subdirectory of top is resolved by now.
		totals[top.path] = top.total
		total := top.total
		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			stack[len(stack)-1].total += total
		}
	}

	return totals, nil
}
