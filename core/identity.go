package core

import (
	"regexp"
	"strings"
)

// Identity is the stable deduplication key for a profile, derived from its
// display name. Two profiles whose names normalize identically share one
// identity on purpose: re-indexing the same person replaces the previous
// entry instead of accumulating duplicates.
type Identity string

// maxIdentityRunes caps the length of a normalized identity.
const maxIdentityRunes = 100

var (
	identityStripRE     = regexp.MustCompile(`[^\p{L}\p{N}_\s-]+`)
	identitySeparatorRE = regexp.MustCompile(`[-\s]+`)
)

// NormalizeIdentity derives an Identity from a human-readable name.
// Characters other than letters, digits and underscores are stripped, runs
// of whitespace and hyphens collapse to a single underscore, and the result
// is capped at 100 runes with leading and trailing underscores trimmed.
// Names that normalize to nothing yield "unnamed".
func NormalizeIdentity(name string) Identity {
	if name == "" {
		return "unnamed"
	}

	normalized := identityStripRE.ReplaceAllString(name, "")
	normalized = identitySeparatorRE.ReplaceAllString(normalized, "_")

	if runes := []rune(normalized); len(runes) > maxIdentityRunes {
		normalized = string(runes[:maxIdentityRunes])
	}
	normalized = strings.Trim(normalized, "_")

	if normalized == "" {
		return "unnamed"
	}
	return Identity(normalized)
}
