//go:build !darwin && !windows

package scan

import (
	"io/fs"
	"time"
)

// createdAt reports an explicit absence: the platform's stat data does
// not carry a birth time.
func createdAt(info fs.FileInfo) *time.Time {
	return nil
}
