package pathutil

import (
	"path/filepath"
	"strings"
)

// Levels splits an entry's path relative to the scan root into folder-level
// segments. The scan root's own name is always level 1. Directories include
// their own name as the deepest level; files stop at their containing
// folder. rel is the entry's path relative to the root ("." for the root
// itself).
func Levels(rootName, rel string, isDir bool) []string {
	levels := []string{rootName}
	rel = filepath.ToSlash(Normalize(rel))
	if rel == "." || rel == "" {
		return levels
	}
	segments := strings.Split(rel, "/")
	if !isDir {
		segments = segments[:len(segments)-1]
	}
	return append(levels, segments...)
}
