// Package catalog holds the fixed set of learnable items.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vytor/bengalibuddy/internal/models"
)

//go:embed items.yaml
var embeddedItems []byte

var validate = validator.New()

// Catalog is read-only after construction.
type Catalog struct {
	items  []models.Item
	byID   map[string]models.Item
	topics []string
	counts map[string]int
}

type document struct {
	Items []models.Item `yaml:"items" validate:"required,min=1,dive"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(embeddedItems)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded items.yaml is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load reads a catalog from a YAML file on disk.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes and validates a YAML catalog document.
func Parse(b []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}
	return New(doc.Items)
}

// New builds a catalog from items. IDs must be unique.
func New(items []models.Item) (*Catalog, error) {
	c := &Catalog{
		items:  make([]models.Item, 0, len(items)),
		byID:   make(map[string]models.Item, len(items)),
		counts: make(map[string]int),
	}
	for _, it := range items {
		if err := validate.Struct(it); err != nil {
			return nil, fmt.Errorf("item %q: %w", it.ID, err)
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %q", it.ID)
		}
		c.byID[it.ID] = it
		c.items = append(c.items, it)
		if c.counts[it.Topic] == 0 {
			c.topics = append(c.topics, it.Topic)
		}
		c.counts[it.Topic]++
	}
	return c, nil
}

// Items returns every item in catalog order.
func (c *Catalog) Items() []models.Item {
	out := make([]models.Item, len(c.items))
	copy(out, c.items)
	return out
}

// Item looks up an item by ID.
func (c *Catalog) Item(id string) (models.Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Topics returns the distinct topic labels in order of first appearance.
func (c *Catalog) Topics() []string {
	out := make([]string, len(c.topics))
	copy(out, c.topics)
	return out
}

func (c *Catalog) HasTopic(topic string) bool {
	return c.counts[topic] > 0
}

// Count returns the number of items in topic.
func (c *Catalog) Count(topic string) int {
	return c.counts[topic]
}

// TopicCounts maps each topic to its item count.
func (c *Catalog) TopicCounts() map[string]int {
	out := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// Summaries returns topics with their counts in display order.
func (c *Catalog) Summaries() []models.TopicSummary {
	out := make([]models.TopicSummary, 0, len(c.topics))
	for _, t := range c.topics {
		out = append(out, models.TopicSummary{Name: t, ItemCount: c.counts[t]})
	}
	return out
}

// ItemsByTopic returns the items of one topic in catalog order.
func (c *Catalog) ItemsByTopic(topic string) []models.Item {
	out := make([]models.Item, 0, c.counts[topic])
	for _, it := range c.items {
		if it.Topic == topic {
			out = append(out, it)
		}
	}
	return out
}
