//go:build darwin

package scan

import (
	"io/fs"
	"syscall"
	"time"
)

// createdAt returns the entry's birth time from the stat structure.
func createdAt(info fs.FileInfo) *time.Time {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return nil
	}
	t := time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
	return &t
}
