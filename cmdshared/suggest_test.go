package cmdshared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestNames(t *testing.T) {
	pinned := []string{"sodium", "sodium-extra", "lithium", "iris"}

	suggestions := SuggestNames("sodum", pinned)
	assert.Subset(t, suggestions, []string{"sodium", "sodium-extra"})
	assert.NotContains(t, suggestions, "lithium")

	assert.Empty(t, SuggestNames("zzz", pinned))
	assert.Empty(t, SuggestNames("", pinned))
	assert.Empty(t, SuggestNames("sodium", nil))
}
