package exercise

// Store exposes catalog retrieval for services and HTTP handlers.
type Store interface {
	List() []Exercise
	FindByID(id string) (Exercise, bool)
	HomeExercises() []HomeExercise
	DailyGoals() []DailyGoal
}

// MemoryStore implements Store with fixed in-memory content.
type MemoryStore struct {
	items []Exercise
	home  []HomeExercise
	goals []DailyGoal
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied content.
func NewMemoryStore(items []Exercise, home []HomeExercise, goals []DailyGoal) *MemoryStore {
	return &MemoryStore{
		items: append([]Exercise(nil), items...),
		home:  append([]HomeExercise(nil), home...),
		goals: append([]DailyGoal(nil), goals...),
	}
}

// List returns the cognitive exercise catalog.
func (s *MemoryStore) List() []Exercise {
	return append([]Exercise(nil), s.items...)
}

// FindByID looks up an exercise by identifier.
func (s *MemoryStore) FindByID(id string) (Exercise, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Exercise{}, false
}

// HomeExercises returns the home rehabilitation checklist.
func (s *MemoryStore) HomeExercises() []HomeExercise {
	return append([]HomeExercise(nil), s.home...)
}

// DailyGoals returns the fixed daily goal list.
func (s *MemoryStore) DailyGoals() []DailyGoal {
	return append([]DailyGoal(nil), s.goals...)
}

// Seed 返回默认的认知训练内容。
func Seed() []Exercise {
	return []Exercise{
		{
			ID:       "digit-span-4",
			Title:    "Number Recall (4 digits)",
			Kind:     KindDigitSpan,
			Domain:   DomainMemory,
			Sequence: []int{7, 2, 9, 4},
		},
		{
			ID:       "digit-span-6",
			Title:    "Number Recall (6 digits)",
			Kind:     KindDigitSpan,
			Domain:   DomainMemory,
			Sequence: []int{3, 8, 1, 5, 9, 2},
		},
		{
			ID:          "fluency-animals",
			Title:       "Name the Animals",
			Kind:        KindFluency,
			Domain:      DomainLanguage,
			Category:    "animals",
			DurationSec: 60,
			AnswerKey: []string{
				"dog", "cat", "horse", "cow", "sheep", "pig", "rabbit", "lion",
				"tiger", "elephant", "bear", "wolf", "fox", "deer", "mouse",
				"bird", "fish", "duck", "chicken", "goat", "monkey", "snake",
			},
		},
		{
			ID:          "fluency-fruits",
			Title:       "Name the Fruits",
			Kind:        KindFluency,
			Domain:      DomainLanguage,
			Category:    "fruits",
			DurationSec: 60,
			AnswerKey: []string{
				"apple", "banana", "orange", "grape", "pear", "peach", "plum",
				"cherry", "melon", "watermelon", "strawberry", "blueberry",
				"mango", "pineapple", "kiwi", "lemon", "apricot",
			},
		},
		{
			ID:          "attention-colors",
			Title:       "Color Word Challenge",
			Kind:        KindAttention,
			Domain:      DomainAttention,
			Rounds:      10,
			DurationSec: 45,
		},
		{
			ID:     "choice-odd-one-out",
			Title:  "Odd One Out",
			Kind:   KindChoice,
			Domain: DomainAttention,
			Prompt: "Which of these does not belong?",
			Options: []string{
				"Spoon", "Fork", "Knife", "Pillow",
			},
		},
	}
}

// SeedHomeExercises 返回默认的家庭康复动作。
func SeedHomeExercises() []HomeExercise {
	return []HomeExercise{
		{
			ID:          "shoulder-rolls",
			Title:       "Shoulder Rolls",
			Description: "Sit upright and roll both shoulders slowly backwards, then forwards.",
			Repetitions: "10 each direction",
		},
		{
			ID:          "seated-marching",
			Title:       "Seated Marching",
			Description: "Seated, lift one knee at a time as if marching in place.",
			Repetitions: "20 lifts",
		},
		{
			ID:          "wrist-curls",
			Title:       "Wrist Curls",
			Description: "Rest your forearm on a table, palm up, and curl a light object toward you.",
			Repetitions: "12 per arm",
		},
		{
			ID:          "heel-raises",
			Title:       "Heel Raises",
			Description: "Hold a chair back for balance and rise slowly onto your toes.",
			Repetitions: "15 raises",
		},
		{
			ID:          "grip-squeezes",
			Title:       "Grip Squeezes",
			Description: "Squeeze a soft ball, hold for three seconds, then release.",
			Repetitions: "15 squeezes",
		},
	}
}

// SeedDailyGoals returns the fixed daily checklist.
func SeedDailyGoals() []DailyGoal {
	return []DailyGoal{
		{ID: "mood-checkin", Title: "Record how you're feeling"},
		{ID: "brain-exercise", Title: "Finish one brain exercise"},
		{ID: "breathing", Title: "Complete a guided breathing session"},
		{ID: "home-exercise", Title: "Do one home exercise"},
	}
}
