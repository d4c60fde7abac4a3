package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := map[string]string{
		"Modern 3BHK Apartment":         "modern-3bhk-apartment",
		"  Luxury Villa -- with Garden ": "luxury-villa-with-garden",
		"Café Résidence, Goa!":          "cafe-residence-goa",
		"2/3 BHK @ Sector 150":          "2-3-bhk-sector-150",
		"!!!":                           "property",
		"":                              "property",
	}

	for title, want := range cases {
		assert.Equal(t, want, GenerateSlug(title), "title %q", title)
	}
}

func TestGenerateSlug_TruncatesWithoutTrailingDash(t *testing.T) {
	title := strings.Repeat("a", 59) + " bcdef"

	slug := GenerateSlug(title)

	assert.LessOrEqual(t, len(slug), MaxSlugLength)
	assert.False(t, strings.HasSuffix(slug, "-"))
	assert.Equal(t, strings.Repeat("a", 59), slug)
}

func TestSlugCandidate(t *testing.T) {
	assert.Equal(t, "villa", SlugCandidate("villa", 0))
	assert.Equal(t, "villa-1", SlugCandidate("villa", 1))
	assert.Equal(t, "villa-12", SlugCandidate("villa", 12))
}
