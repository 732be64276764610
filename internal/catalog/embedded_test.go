package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedItemsParse(t *testing.T) {
	c, err := Parse(embeddedItems)
	require.NoError(t, err)

	assert.Len(t, c.Items(), 27)
	assert.Len(t, c.Topics(), 5)

	for _, id := range []string{"how_are_you", "where_is"} {
		it, ok := c.Item(id)
		require.True(t, ok, id)
		assert.Contains(t, it.English, "?")
		assert.Contains(t, it.Bengali, "?")
		assert.Contains(t, it.Translit, "?")
	}
}
