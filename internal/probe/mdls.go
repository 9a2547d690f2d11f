package probe

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// mdls prints "(null)" for attributes Spotlight has no value for.
const mdlsNull = "(null)"

// MDLS queries the macOS Spotlight metadata store through the mdls
// command-line tool, one exec per attribute lookup.
type MDLS struct {
	Timeout time.Duration
}

// NewMDLS creates an mdls-backed prober with the default per-call timeout.
func NewMDLS() *MDLS {
	return &MDLS{Timeout: 10 * time.Second}
}

func (p *MDLS) Name() string { return "mdls" }

// Available reports whether the mdls tool can be found on PATH.
func (p *MDLS) Available() bool {
	_, err := exec.LookPath("mdls")
	return err == nil
}

// Probe fetches the Spotlight kind string and Finder tags for path.
func (p *MDLS) Probe(ctx context.Context, path string) (Attributes, error) {
	kind, kindErr := p.query(ctx, "kMDItemKind", path)
	rawTags, tagsErr := p.query(ctx, "kMDItemUserTags", path)
	if kindErr != nil && tagsErr != nil {
		return Attributes{}, fmt.Errorf("%w: %v", ErrUnavailable, kindErr)
	}
	return Attributes{
		Kind: cleanMDLSValue(kind),
		Tags: ParseTagList(rawTags),
	}, nil
}

func (p *MDLS) query(ctx context.Context, attr, path string) (string, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	out, err := exec.CommandContext(ctx, "mdls", "-name", attr, "-raw", path).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func cleanMDLSValue(raw string) string {
	if raw == "" || raw == mdlsNull {
		return ""
	}
	return raw
}

// ParseTagList cleans the raw kMDItemUserTags output, which is either
// "(null)", a single bare tag, or a parenthesized comma-separated list
// with optional quoting.
func ParseTagList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == mdlsNull {
		return nil
	}
	raw = strings.TrimPrefix(raw, "(")
	raw = strings.TrimSuffix(raw, ")")

	var tags []string
	for _, part := range strings.Split(raw, ",") {
		tag := strings.Trim(strings.TrimSpace(part), `"`)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
