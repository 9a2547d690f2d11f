package entry

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// Entry represents one inventoried filesystem object. Entries are never
// mutated after being appended to a Report, with the single exception of
// level padding once the full depth of the tree is known.
type Entry struct {
	Path    string
	RelPath string
	Name    string
	IsDir   bool

	// Size is the entry's own size for files and the cumulative size of
	// the whole subtree for directories.
	Size int64

	// Created is nil on platforms or filesystems that do not expose a
	// birth time for the entry.
	Created  *time.Time
	Modified time.Time

	// Kind is the human-readable type description from the attribute
	// probe ("JPEG image", "Folder"). Empty when the probe is
	// unavailable or failed for this entry.
	Kind string
	Tags []string

	Hidden   string
	FileType string

	Depth  int
	Levels []string
}

// ErrorKind classifies a per-entry read failure.
type ErrorKind uint8

const (
	ErrAccessDenied ErrorKind = iota
	ErrReadFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrAccessDenied:
		return "access-denied"
	default:
		return "read-failed"
	}
}

// KindOfError maps a filesystem error to an ErrorKind.
func KindOfError(err error) ErrorKind {
	if errors.Is(err, fs.ErrPermission) {
		return ErrAccessDenied
	}
	return ErrReadFailed
}

// ScanError records a filesystem object that could not be read.
type ScanError struct {
	Path    string
	Kind    ErrorKind
	Message string
}

// Report is the aggregate result of one scan and the sole artifact handed
// to the export layer.
type Report struct {
	Root    string
	Entries []Entry
	Errors  []ScanError

	Processed int64
	Files     int64
	Dirs      int64
	TotalSize int64
	MaxDepth  int

	Started time.Time
	Elapsed time.Duration

	// Interrupted is set when the scan was cancelled cooperatively and
	// the report covers only a prefix of the tree.
	Interrupted bool
}

// ErrorCount returns the number of read failures recorded during the scan.
func (r *Report) ErrorCount() int64 {
	return int64(len(r.Errors))
}

// ElapsedSeconds returns the wall-clock duration of the scan in seconds.
func (r *Report) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}

// NormalizeLevels pads every entry's folder levels with empty strings to
// the maximum depth observed, so the level column count is uniform across
// the whole report. Called once after the walk completes.
func (r *Report) NormalizeLevels() {
	max := 0
	for i := range r.Entries {
		if n := len(r.Entries[i].Levels); n > max {
			max = n
		}
	}
	r.MaxDepth = max
	for i := range r.Entries {
		for len(r.Entries[i].Levels) < max {
			r.Entries[i].Levels = append(r.Entries[i].Levels, "")
		}
	}
}

// Visibility classifies an entry name the way Finder-adjacent tooling
// does: dotfiles are hidden, Office lock files ("~$...") are temporary.
func Visibility(name string) string {
	switch {
	case strings.HasPrefix(name, "~$"):
		return "temporary"
	case strings.HasPrefix(name, "."):
		return "hidden"
	default:
		return "visible"
	}
}

// FileTypeOf derives the short type label for an entry: "Folder" for
// directories, the bare extension for files, "File" when there is none.
func FileTypeOf(name string, isDir bool) string {
	if isDir {
		return "Folder"
	}
	ext := filepath.Ext(name)
	if ext == "" || ext == "." {
		return "File"
	}
	return strings.TrimPrefix(ext, ".")
}
