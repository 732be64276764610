package models

// Item is one learnable vocabulary entry.
type Item struct {
	ID         string `json:"id" yaml:"id" validate:"required"`
	English    string `json:"en" yaml:"en" validate:"required"`
	Bengali    string `json:"bn" yaml:"bn" validate:"required"`
	Translit   string `json:"translit" yaml:"translit" validate:"required"`
	Topic      string `json:"topic" yaml:"topic" validate:"required"`
	Emoji      string `json:"emoji,omitempty" yaml:"emoji"`
	ImageQuery string `json:"image_query,omitempty" yaml:"image"`
}

// HasImage reports whether the item has a keyword for the image collaborator.
func (i Item) HasImage() bool {
	return i.ImageQuery != ""
}

// Symbol returns the emoji fallback shown when photos are off or fail to load.
func (i Item) Symbol() string {
	if i.Emoji != "" {
		return i.Emoji
	}
	return "🖼️"
}

type TopicSummary struct {
	Name      string `json:"name"`
	ItemCount int    `json:"item_count"`
}
