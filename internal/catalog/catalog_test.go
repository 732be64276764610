package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/bengalibuddy/internal/catalog"
	"github.com/vytor/bengalibuddy/internal/models"
)

func TestDefault_Topics(t *testing.T) {
	c := catalog.Default()

	assert.Equal(t, []string{"Basics", "Food", "Travel", "Transport", "Numbers"}, c.Topics())
	assert.Len(t, c.Items(), 27)
	assert.Equal(t, 10, c.Count("Basics"))
	assert.Equal(t, 8, c.Count("Food"))
	assert.Equal(t, 2, c.Count("Travel"))
	assert.Equal(t, 4, c.Count("Transport"))
	assert.Equal(t, 3, c.Count("Numbers"))
	assert.Equal(t, 0, c.Count("Unknown"))
}

func TestDefault_ItemFields(t *testing.T) {
	c := catalog.Default()

	it, ok := c.Item("how_are_you")
	require.True(t, ok)
	assert.Equal(t, "How are you?", it.English)
	assert.Equal(t, "আপনি কেমন আছেন?", it.Bengali)
	assert.Equal(t, "apni kemon achen?", it.Translit)
	assert.Equal(t, "Basics", it.Topic)
	assert.True(t, it.HasImage())

	yes, ok := c.Item("yes")
	require.True(t, ok)
	assert.Equal(t, "Yes", yes.English)

	_, ok = c.Item("missing")
	assert.False(t, ok)
}

func TestDefault_TopicCountsMatchItems(t *testing.T) {
	c := catalog.Default()
	total := 0
	for topic, n := range c.TopicCounts() {
		assert.Len(t, c.ItemsByTopic(topic), n, topic)
		total += n
	}
	assert.Equal(t, len(c.Items()), total)
}

func TestSummaries(t *testing.T) {
	c := catalog.Default()
	s := c.Summaries()
	require.Len(t, s, 5)
	assert.Equal(t, models.TopicSummary{Name: "Numbers", ItemCount: 3}, s[4])
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "items: [\n"},
		{"empty", "items: []"},
		{"missing bengali", "items:\n  - {id: a, en: A, translit: a, topic: T}"},
		{"duplicate id", "items:\n  - {id: a, en: A, bn: আ, translit: a, topic: T}\n  - {id: a, en: B, bn: ব, translit: b, topic: T}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParse_Valid(t *testing.T) {
	c, err := catalog.Parse([]byte("items:\n  - {id: a, en: A, bn: আ, translit: a, topic: T}\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"T"}, c.Topics())
	it, _ := c.Item("a")
	assert.False(t, it.HasImage())
	assert.Equal(t, "🖼️", it.Symbol())
}

func TestItems_ReturnsCopy(t *testing.T) {
	c := catalog.Default()
	items := c.Items()
	items[0].ID = "changed"
	first := c.Items()[0]
	assert.Equal(t, "hello", first.ID)
}
