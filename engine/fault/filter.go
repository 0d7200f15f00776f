package fault

import (
	"errors"
	"path"
	"strings"
)

// DefaultKeywords are the engine-name, graphics-API and asset-format substrings that
// attribute an untyped host error to the 3D subsystem.
// The engine name is matched with its ".js" suffix; the bare word appears in ordinary prose.
var DefaultKeywords = []string{"wgpu", "webgpu", "webgl", "three.js", "gltf", "glb"}

// Filter decides whether a process-wide error belongs to the 3D subsystem.
//
// Typed RuntimeErrors always match. Untyped errors match when their message contains one
// of the keywords, case-insensitively. Unrelated errors elsewhere in the process must not
// take the backdrop down, so anything else is rejected.
type Filter struct {
	keywords []string
}

// NewFilter creates a Filter from a keyword list and the asset path. The asset's base
// name without extension is added as a keyword.
//
// Parameters:
//   - keywords: substrings to match; nil uses DefaultKeywords
//   - assetPath: the asset path whose base name is also matched (may be empty)
//
// Returns:
//   - Filter: the configured filter
func NewFilter(keywords []string, assetPath string) Filter {
	if keywords == nil {
		keywords = DefaultKeywords
	}
	f := Filter{keywords: make([]string, 0, len(keywords)+1)}
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			f.keywords = append(f.keywords, k)
		}
	}
	if assetPath != "" {
		base := path.Base(strings.ReplaceAll(assetPath, "\\", "/"))
		base = strings.TrimSuffix(base, path.Ext(base))
		if base = strings.ToLower(base); base != "" && base != "." && base != "/" {
			f.keywords = append(f.keywords, base)
		}
	}
	return f
}

// Keywords returns a copy of the filter's keywords.
func (f Filter) Keywords() []string {
	out := make([]string, len(f.keywords))
	copy(out, f.keywords)
	return out
}

// Match reports whether err should move the display into its error state.
//
// Parameters:
//   - err: the host-level error
//
// Returns:
//   - bool: true if err is attributed to the 3D subsystem
func (f Filter) Match(err error) bool {
	if err == nil {
		return false
	}
	var rtErr *RuntimeError
	if errors.As(err, &rtErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, k := range f.keywords {
		if strings.Contains(msg, k) {
			return true
		}
	}
	return false
}
