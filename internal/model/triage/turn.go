package triage

import "time"

// Speaker identifies who produced a transcript turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Turn is one transcript entry. Turns are appended, never mutated or
// deleted within a session. Flagged marks answers that raised the tier.
type Turn struct {
	ID        string    `json:"id"`
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	Flagged   bool      `json:"flagged,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
