package triage

// QuestionKind distinguishes free-text turns from fixed-option turns.
type QuestionKind string

const (
	KindOpenEnded QuestionKind = "open-ended"
	KindChoice    QuestionKind = "choice"
)

// Question is one step of the fixed triage script. Options are ordered
// least to most severe for the choice questions.
type Question struct {
	Index   int          `json:"index"`
	Text    string       `json:"text"`
	Kind    QuestionKind `json:"kind"`
	Options []string     `json:"options,omitempty"`
}

// FollowUp is the scripted assistant reply appended after the answer,
// before the next question is presented.
type FollowUp string

// Script 返回固定的四步风险评估问卷。
func Script() []Question {
	return []Question{
		{
			Index: 0,
			Text:  "How are you feeling today? Tell me a little about what's been on your mind.",
			Kind:  KindOpenEnded,
		},
		{
			Index: 1,
			Text:  "Over the past two weeks, how often have you felt hopeless or down?",
			Kind:  KindChoice,
			Options: []string{
				"Rarely or never",
				"Sometimes",
				"Most of the time",
				"Nearly every day",
			},
		},
		{
			Index: 2,
			Text:  "Have you had any thoughts of harming yourself?",
			Kind:  KindChoice,
			Options: []string{
				"No",
				"Sometimes they cross my mind",
				"Yes, often",
				"Yes, and I might act on them",
			},
		},
		{
			Index: 3,
			Text:  "When things get hard, who can you turn to for support?",
			Kind:  KindChoice,
			Options: []string{
				"Family or a partner",
				"Friends",
				"A few people",
				"No one",
			},
		},
	}
}

// FollowUps returns the scripted assistant reply for each choice question.
// The open-ended question's reply is generated (or the fixed fallback).
func FollowUps() map[int]FollowUp {
	return map[int]FollowUp{
		1: "Thank you for being honest with me. Just a couple more questions.",
		2: "I appreciate you telling me that. One last question.",
	}
}

// FallbackAcknowledgment is substituted when the text-generation call
// fails; the script must continue regardless.
const FallbackAcknowledgment = "Thank you for sharing that with me. Recovery has hard days, and what you're feeling matters. Let me ask you a few short questions so I can point you to the right support."
