package exercise

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/strideapp/stride/backend/internal/model/exercise"
)

var ErrExerciseNotFound = errors.New("exercise not found")

// Ledger persists per-domain score history. Implemented by the storage
// package; stubbed in tests.
type Ledger interface {
	AppendScore(domain exercise.Domain, entry exercise.ScoreEntry) error
	Scores(domain exercise.Domain) ([]exercise.ScoreEntry, error)
}

// Service scores completed exercises and records results on the ledger.
type Service struct {
	catalog exercise.Store
	ledger  Ledger
}

// NewService wires the scorer to the catalog and the ledger.
func NewService(catalog exercise.Store, ledger Ledger) *Service {
	return &Service{catalog: catalog, ledger: ledger}
}

// Outcome reports a scored completion.
type Outcome struct {
	ExerciseID string          `json:"exerciseId"`
	Domain     exercise.Domain `json:"domain"`
	Score      int             `json:"score"`
}

// Complete scores the result for the exercise and appends it to the
// domain's history. Unknown result kinds score zero rather than erroring.
func (s *Service) Complete(_ context.Context, exerciseID string, result exercise.Result) (Outcome, error) {
	item, ok := s.catalog.FindByID(exerciseID)
	if !ok {
		return Outcome{}, ErrExerciseNotFound
	}

	score := Score(result)
	entry := exercise.ScoreEntry{Date: time.Now().UTC(), Score: score}
	if err := s.ledger.AppendScore(item.Domain, entry); err != nil {
		return Outcome{}, fmt.Errorf("failed to record score: %w", err)
	}

	log.Printf("[exercise] recorded id=%s domain=%s score=%d", item.ID, item.Domain, score)
	return Outcome{ExerciseID: item.ID, Domain: item.Domain, Score: score}, nil
}

// History returns the recorded entries for a domain, oldest first.
func (s *Service) History(_ context.Context, domain exercise.Domain) ([]exercise.ScoreEntry, error) {
	return s.ledger.Scores(domain)
}

// Score computes the bounded per-kind score. Exact-match kinds earn full
// credit or nothing; count-based kinds use clamped linear formulas.
func Score(result exercise.Result) int {
	switch r := result.(type) {
	case exercise.DigitSpanResult:
		if r.Correct {
			return 100
		}
		return 0
	case exercise.ChoiceResult:
		if r.Correct {
			return 100
		}
		return 0
	case exercise.FluencyResult:
		return clamp(r.ValidCount*10, 0, 100)
	case exercise.AttentionResult:
		return clamp(r.CorrectClicks*10-r.Errors*10, 0, 100)
	default:
		return 0
	}
}

// CountValidAnswers dedups the submitted answers and counts those present
// in the exercise's answer key. Matching is case-insensitive on both
// sides so a lower-cased key never silently rejects valid answers.
func (s *Service) CountValidAnswers(exerciseID string, answers []string) (int, error) {
	item, ok := s.catalog.FindByID(exerciseID)
	if !ok {
		return 0, ErrExerciseNotFound
	}

	key := make(map[string]bool, len(item.AnswerKey))
	for _, valid := range item.AnswerKey {
		key[strings.ToLower(strings.TrimSpace(valid))] = true
	}

	seen := make(map[string]bool, len(answers))
	count := 0
	for _, answer := range answers {
		normalized := strings.ToLower(strings.TrimSpace(answer))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		if key[normalized] {
			count++
		}
	}
	return count, nil
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
