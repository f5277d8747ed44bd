package relocate

import (
	"strings"

	"catalog-export/core/utils"
)

const (
	KindImages   = "images"
	KindTorrents = "torrents"
)

// Join builds a storage key from path segments, dropping empty ones and stray slashes.
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

// Path returns <kind>/<naturalKey>/<subkinds...>/<basename of sourceURL>.
// It returns "" when sourceURL has no basename.
func Path(kind, naturalKey, sourceURL string, subkinds ...string) string {
	base := utils.Basename(sourceURL)
	if base == "" {
		return ""
	}
	segments := append([]string{kind, naturalKey}, subkinds...)
	return Join(append(segments, base)...)
}

// ImagePath is Path for the images kind.
func ImagePath(naturalKey, sourceURL string, subkinds ...string) string {
	return Path(KindImages, naturalKey, sourceURL, subkinds...)
}

// IsRemote reports whether ref is an http(s) URL that can be relocated.
// Empty values and other schemes, such as magnet links, are not.
func IsRemote(ref string) bool {
	lower := strings.ToLower(strings.TrimSpace(ref))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Ref is one media field of a persisted record.
type Ref struct {
	Field string `json:"field"`
	URL   string `json:"url"`
}
