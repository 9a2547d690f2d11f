package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/sztaroszta/dirscope/internal/entry"
	"github.com/sztaroszta/dirscope/internal/pathutil"
)

// Progress callbacks fire every progressStride processed entries.
const progressStride = 10

type work struct {
	path  string
	rel   string
	depth int
}

// walk visits every non-excluded object under root exactly once,
// depth-first, parent before children, children in lexicographic name
// order. Directory sizes come from the precomputed totals map and are
// never recomputed. The walk checks for cancellation between entries;
// no partial entry is ever emitted.
//
// An explicit stack bounds memory to the tree depth instead of the
// goroutine call stack.
func (s *Scanner) walk(ctx context.Context, root string, totals map[string]int64, report *entry.Report) {
	rootName := filepath.Base(root)

	stack := make([]work, 0, 64)
	push := func(parent work, names []string) {
		// Reverse order so the lexicographically first child pops next.
		for i := len(names) - 1; i >= 0; i-- {
			stack = append(stack, work{
				path:  filepath.Join(parent.path, names[i]),
				rel:   filepath.Join(parent.rel, names[i]),
				depth: parent.depth + 1,
			})
		}
	}

	rootWork := work{path: root, rel: ".", depth: 0}
	names, err := s.readChildNames(root)
	if err != nil {
		s.recordError(report, root, err)
		return
	}
	push(rootWork, names)

	for len(stack) > 0 {
		if ctx.Err() != nil {
			report.Interrupted = true
			return
		}

		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s.current.Store(w.path)

		info, err := os.Lstat(w.path)
		if err != nil {
			s.recordError(report, w.path, err)
			continue
		}

		report.Entries = append(report.Entries, s.buildEntry(ctx, w, info, rootName, totals))
		processed := atomic.AddInt64(&s.processed, 1)
		report.Processed++
		if info.IsDir() {
			atomic.AddInt64(&s.dirs, 1)
			report.Dirs++
		} else {
			atomic.AddInt64(&s.files, 1)
			report.Files++
			if info.Mode().IsRegular() {
				atomic.AddInt64(&s.totalBytes, info.Size())
			}
		}

		if s.opts.OnProgress != nil && processed%progressStride == 0 {
			s.opts.OnProgress(processed, w.path)
		}

		if info.IsDir() {
			names, err := s.readChildNames(w.path)
			if err != nil {
				s.recordError(report, w.path, err)
				continue
			}
			push(w, names)
		}
	}
}

// readChildNames lists a directory's non-excluded children. os.ReadDir
// returns entries sorted by name, which fixes the traversal order.
func (s *Scanner) readChildNames(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ents))
	for _, de := range ents {
		child := filepath.Join(dir, de.Name())
		if s.opts.ShouldExclude(child) {
			continue
		}
		names = append(names, de.Name())
	}
	return names, nil
}

func (s *Scanner) buildEntry(ctx context.Context, w work, info fs.FileInfo, rootName string, totals map[string]int64) entry.Entry {
	isDir := info.IsDir()

	var size int64
	if isDir {
		size = totals[w.path]
	} else if info.Mode().IsRegular() {
		size = info.Size()
	}

	e := entry.Entry{
		Path:     w.path,
		RelPath:  filepath.ToSlash(w.rel),
		Name:     info.Name(),
		IsDir:    isDir,
		Size:     size,
		Created:  createdAt(info),
		Modified: info.ModTime(),
		Hidden:   entry.Visibility(info.Name()),
		FileType: entry.FileTypeOf(info.Name(), isDir),
		Depth:    w.depth,
		Levels:   pathutil.Levels(rootName, w.rel, isDir),
	}

	if s.opts.Prober != nil {
		attrs, err := s.opts.Prober.Probe(ctx, w.path)
		if err != nil {
			// Metadata is best-effort: the fields stay absent and the
			// core size/path/timestamp data is kept.
			s.opts.Logger.Debug("metadata probe failure", zap.String("path", w.path), zap.Error(err))
		} else {
			e.Kind = attrs.Kind
			e.Tags = attrs.Tags
		}
	}
	return e
}
