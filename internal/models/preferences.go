package models

// Preferences are the learner's display toggles.
type Preferences struct {
	Translit bool `json:"translit"`
	Photos   bool `json:"photos"`
}

// DefaultPreferences is used on first run and whenever the stored value is unusable.
func DefaultPreferences() Preferences {
	return Preferences{Translit: true, Photos: true}
}

const (
	PrefTranslit = "translit"
	PrefPhotos   = "photos"
)
