package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride/backend/internal/model/journal"
)

var ErrInvalidMood = errors.New("unknown mood selection")

// Recorder persists journal state. Implemented by the storage package.
type Recorder interface {
	SaveMood(mood string) error
	Mood() (string, error)
	PrependJournal(entry journal.Entry) error
	JournalEntries() ([]journal.Entry, error)
	SetGoalDone(goalID string, done bool) error
	Goals() (map[string]bool, error)
	SetHomeExerciseDone(id string, done bool) error
	HomeExercises() (map[string]bool, error)
}

// Service captures mood selections and journal notes. Every mutation is
// persisted immediately; nothing is held in memory between calls.
type Service struct {
	store Recorder
}

// NewService wires the recorder.
func NewService(store Recorder) *Service {
	return &Service{store: store}
}

// SetMood persists the current mood selection.
func (s *Service) SetMood(_ context.Context, mood string) error {
	if !journal.ValidMood(mood) {
		return ErrInvalidMood
	}
	if err := s.store.SaveMood(mood); err != nil {
		return fmt.Errorf("failed to save mood: %w", err)
	}
	return nil
}

// Mood returns the persisted selection, empty if never set.
func (s *Service) Mood(_ context.Context) (string, error) {
	return s.store.Mood()
}

// AddEntry prepends a journal record; entries stay newest first.
func (s *Service) AddEntry(_ context.Context, mood, note string) (journal.Entry, error) {
	if !journal.ValidMood(mood) {
		return journal.Entry{}, ErrInvalidMood
	}

	entry := journal.Entry{
		ID:        uuid.NewString(),
		Mood:      mood,
		Note:      strings.TrimSpace(note),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.PrependJournal(entry); err != nil {
		return journal.Entry{}, fmt.Errorf("failed to save entry: %w", err)
	}
	return entry, nil
}

// Entries returns the journal, newest first.
func (s *Service) Entries(_ context.Context) ([]journal.Entry, error) {
	return s.store.JournalEntries()
}

// SetGoalDone flips a daily-goal completion flag.
func (s *Service) SetGoalDone(_ context.Context, goalID string, done bool) error {
	return s.store.SetGoalDone(goalID, done)
}

// Goals returns the daily-goal completion flags.
func (s *Service) Goals(_ context.Context) (map[string]bool, error) {
	return s.store.Goals()
}

// SetHomeExerciseDone marks a home exercise completed or not.
func (s *Service) SetHomeExerciseDone(_ context.Context, id string, done bool) error {
	return s.store.SetHomeExerciseDone(id, done)
}

// HomeExercises returns the completed home-exercise set.
func (s *Service) HomeExercises(_ context.Context) (map[string]bool, error) {
	return s.store.HomeExercises()
}
