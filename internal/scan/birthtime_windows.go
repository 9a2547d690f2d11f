//go:build windows

package scan

import (
	"io/fs"
	"syscall"
	"time"
)

// createdAt returns the entry's creation time from the Win32 attribute
// data.
func createdAt(info fs.FileInfo) *time.Time {
	d, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return nil
	}
	t := time.Unix(0, d.CreationTime.Nanoseconds())
	return &t
}
