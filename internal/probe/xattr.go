//go:build linux || darwin || freebsd || netbsd

package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/xattr"
)

// Freedesktop baseline attributes; the closest analogue to Finder tags
// on non-macOS systems.
const (
	xattrTags    = "user.xdg.tags"
	xattrComment = "user.xdg.comment"
)

// Xattr reads user extended attributes directly from the filesystem.
type Xattr struct{}

func newXattr() (Prober, error) {
	return Xattr{}, nil
}

func (Xattr) Name() string { return "xattr" }

// Probe reads the xdg tag list and comment for path. Attributes are read
// from the link itself, never the target.
func (Xattr) Probe(ctx context.Context, path string) (Attributes, error) {
	if err := ctx.Err(); err != nil {
		return Attributes{}, err
	}

	var attrs Attributes
	raw, tagErr := xattr.LGet(path, xattrTags)
	if tagErr == nil {
		for _, part := range strings.Split(string(raw), ",") {
			if tag := strings.TrimSpace(part); tag != "" {
				attrs.Tags = append(attrs.Tags, tag)
			}
		}
	}
	comment, commentErr := xattr.LGet(path, xattrComment)
	if commentErr == nil {
		attrs.Kind = strings.TrimSpace(string(comment))
	}

	// A missing attribute is a normal empty result; only report paths
	// where the filesystem refused the lookup mechanism itself.
	if tagErr != nil && commentErr != nil && !xattrIsNotExist(tagErr) {
		return Attributes{}, fmt.Errorf("%w: %v", ErrUnavailable, tagErr)
	}
	return attrs, nil
}

func xattrIsNotExist(err error) bool {
	if e, ok := err.(*xattr.Error); ok {
		return xattr.ENOATTR == e.Err
	}
	return false
}
