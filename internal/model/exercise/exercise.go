package exercise

import "time"

// Kind tags the exercise type and decides which result payload applies.
type Kind string

const (
	KindDigitSpan Kind = "digit-span"
	KindFluency   Kind = "fluency"
	KindAttention Kind = "attention"
	KindChoice    Kind = "choice"
)

// Domain names the cognitive domain a score is recorded under.
type Domain string

const (
	DomainMemory    Domain = "memory"
	DomainLanguage  Domain = "language"
	DomainAttention Domain = "attention"
)

// Exercise is one catalog entry. Per-kind fields are only populated for
// the matching kind.
type Exercise struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Kind        Kind     `json:"kind"`
	Domain      Domain   `json:"domain"`
	Sequence    []int    `json:"sequence,omitempty"`    // digit-span
	Category    string   `json:"category,omitempty"`    // fluency
	AnswerKey   []string `json:"-"`                     // fluency, not exposed
	Prompt      string   `json:"prompt,omitempty"`      // choice
	Options     []string `json:"options,omitempty"`     // choice
	Rounds      int      `json:"rounds,omitempty"`      // attention
	DurationSec int      `json:"durationSec,omitempty"` // fluency / attention
}

// ScoreEntry is one appended ledger record for a domain.
type ScoreEntry struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
}

// HomeExercise 描述家庭康复动作清单中的一项。
type HomeExercise struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Repetitions string `json:"repetitions"`
}

// DailyGoal is one of the fixed daily checklist items.
type DailyGoal struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
