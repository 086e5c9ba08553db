package implementation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"flowers":  "flowers",
		"50%":      `50\%`,
		"snake_":   `snake\_`,
		`back\cut`: `back\\cut`,
		"%_":       `\%\_`,
	}
	for in, want := range cases {
		assert.Equal(t, want, escapeLike(in), "input %q", in)
	}
}
