package cache

import (
	"strings"

	"openshelf/feature/cache/models"
)

// Classifier decides whether a cache entry looks like a valid external
// record, a shadow of a native record, or neither. It is a pure function of
// the entry's fields; the precedence below is the single source of truth.
type Classifier struct {
	// Prefix is the external-source id prefix, e.g. "ext-".
	Prefix string
}

// Classify categorizes a single entry.
//
// Precedence:
//  1. NativeShadow if the id lacks the external prefix, or the entry
//     carries any native-only field (AuthorName, CoverImage).
//  2. ValidExternal if the id is well shaped (prefix + numeric suffix) and
//     the entry carries the external-only fields (Author, CoverURL).
//  3. Suspicious otherwise. Inconsistent entries are surfaced, never
//     silently dropped.
func (cl Classifier) Classify(e models.CacheEntry) models.Classification {
	if !strings.HasPrefix(e.ID, cl.Prefix) || e.AuthorName != "" || e.CoverImage != "" {
		return models.NativeShadow
	}
	if cl.IsExternalID(e.ID) && e.Author != "" && e.CoverURL != "" {
		return models.ValidExternal
	}
	return models.Suspicious
}

// IsExternalID reports whether id has the external shape: the configured
// prefix followed by a non-empty, entirely numeric suffix.
func (cl Classifier) IsExternalID(id string) bool {
	suffix, ok := strings.CutPrefix(id, cl.Prefix)
	if !ok || suffix == "" {
		return false
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// RawID strips the external prefix, yielding the candidate native id.
// "ext-7" -> "7". Ids without the prefix are returned unchanged.
func (cl Classifier) RawID(id string) string {
	return strings.TrimPrefix(id, cl.Prefix)
}
