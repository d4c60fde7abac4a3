package domain

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	MaxSlugLength    = 60
	fallbackSlugBase = "property"
)

// GenerateSlug derives a URL-safe slug from a title: accents folded, lowercased,
// every run of characters outside [a-z0-9] collapsed to a single dash, trimmed,
// and cut to MaxSlugLength.
func GenerateSlug(title string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		title,
	)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	slug := b.String()
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	if slug == "" {
		return fallbackSlugBase
	}
	return slug
}

// SlugCandidate returns base for attempt 0 and base-N for attempt N.
func SlugCandidate(base string, attempt int) string {
	if attempt <= 0 {
		return base
	}
	return base + "-" + strconv.Itoa(attempt)
}
