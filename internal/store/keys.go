package store

// Persisted keys. The namespace matches what earlier browser builds wrote.
const (
	Namespace  = "bengali-buddy:"
	KeyMastery = Namespace + "strength"
	KeyPrefs   = Namespace + "prefs"
	KeyStreak  = Namespace + "streak"
)
