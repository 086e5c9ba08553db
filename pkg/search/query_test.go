package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "flowers", Normalize("FLOWERS"))
	assert.Equal(t, "flowers", Normalize("  Flowers  "))
	assert.Equal(t, "floral border", Normalize("Floral Border"))
	assert.Equal(t, "", Normalize("   "))

	// Idempotent: normalizing a normalized key changes nothing.
	key := Normalize(" Butterfly Garden ")
	assert.Equal(t, key, Normalize(key))
}

func TestSplitTerms(t *testing.T) {
	assert.Equal(t, []string{"floral", "border"}, SplitTerms("Floral   Border"))
	assert.Equal(t, []string{"star"}, SplitTerms("a star I"))
	assert.Empty(t, SplitTerms("a b c"))
	assert.Empty(t, SplitTerms("   "))

	// Two-character terms are kept, single runes are not.
	assert.Equal(t, []string{"ab"}, SplitTerms("ab c"))
}
