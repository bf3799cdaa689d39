package journal

import "time"

// Moods the client can select. Kept as strings on the wire; the service
// validates against this set.
const (
	MoodGreat    = "great"
	MoodOkay     = "okay"
	MoodLow      = "low"
	MoodStruggle = "struggling"
)

// ValidMood reports whether mood is one of the selectable values.
func ValidMood(mood string) bool {
	switch mood {
	case MoodGreat, MoodOkay, MoodLow, MoodStruggle:
		return true
	}
	return false
}

// Entry is one journal record: a mood selection plus an optional note.
// Entries are stored newest first and never rewritten.
type Entry struct {
	ID        string    `json:"id"`
	Mood      string    `json:"mood"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
