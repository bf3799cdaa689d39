package exercise_test

import (
	"context"
	"errors"
	"testing"

	exmodel "github.com/strideapp/stride/backend/internal/model/exercise"
	exservice "github.com/strideapp/stride/backend/internal/service/exercise"
)

type memoryLedger struct {
	entries map[exmodel.Domain][]exmodel.ScoreEntry
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{entries: make(map[exmodel.Domain][]exmodel.ScoreEntry)}
}

func (l *memoryLedger) AppendScore(domain exmodel.Domain, entry exmodel.ScoreEntry) error {
	l.entries[domain] = append(l.entries[domain], entry)
	return nil
}

func (l *memoryLedger) Scores(domain exmodel.Domain) ([]exmodel.ScoreEntry, error) {
	return l.entries[domain], nil
}

func newService(ledger exservice.Ledger) *exservice.Service {
	catalog := exmodel.NewMemoryStore(exmodel.Seed(), exmodel.SeedHomeExercises(), exmodel.SeedDailyGoals())
	return exservice.NewService(catalog, ledger)
}

func TestScorePerKind(t *testing.T) {
	cases := []struct {
		name   string
		result exmodel.Result
		want   int
	}{
		{"digit span correct", exmodel.DigitSpanResult{Correct: true}, 100},
		{"digit span wrong", exmodel.DigitSpanResult{Correct: false}, 0},
		{"choice correct", exmodel.ChoiceResult{Correct: true}, 100},
		{"fluency clamped", exmodel.FluencyResult{ValidCount: 17}, 100},
		{"fluency partial", exmodel.FluencyResult{ValidCount: 4}, 40},
		{"attention partial", exmodel.AttentionResult{Errors: 2, CorrectClicks: 8}, 60},
		{"attention floor", exmodel.AttentionResult{Errors: 9, CorrectClicks: 1}, 0},
		{"unknown kind", nil, 0},
	}

	for _, tc := range cases {
		if got := exservice.Score(tc.result); got != tc.want {
			t.Fatalf("%s: score %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestCompleteRecordsToDomain(t *testing.T) {
	ledger := newMemoryLedger()
	svc := newService(ledger)

	outcome, err := svc.Complete(context.Background(), "digit-span-4", exmodel.DigitSpanResult{Correct: true})
	if err != nil {
		t.Fatalf("Complete err: %v", err)
	}
	if outcome.Domain != exmodel.DomainMemory || outcome.Score != 100 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if len(ledger.entries[exmodel.DomainMemory]) != 1 {
		t.Fatalf("ledger has %d entries, want 1", len(ledger.entries[exmodel.DomainMemory]))
	}
}

func TestCompleteUnknownExercise(t *testing.T) {
	svc := newService(newMemoryLedger())

	_, err := svc.Complete(context.Background(), "missing", exmodel.ChoiceResult{Correct: true})
	if !errors.Is(err, exservice.ErrExerciseNotFound) {
		t.Fatalf("expected ErrExerciseNotFound, got %v", err)
	}
}

func TestLedgerIsAppendOnly(t *testing.T) {
	ledger := newMemoryLedger()
	svc := newService(ledger)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Complete(ctx, "digit-span-6", exmodel.DigitSpanResult{Correct: i%2 == 0}); err != nil {
			t.Fatalf("Complete err: %v", err)
		}
	}

	history, err := svc.History(ctx, exmodel.DomainMemory)
	if err != nil {
		t.Fatalf("History err: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history has %d entries, want 3", len(history))
	}
}

func TestCountValidAnswersDedupsAndIgnoresCase(t *testing.T) {
	svc := newService(newMemoryLedger())

	count, err := svc.CountValidAnswers("fluency-animals", []string{
		"Dog", "dog", " CAT ", "spaceship", "", "Horse",
	})
	if err != nil {
		t.Fatalf("CountValidAnswers err: %v", err)
	}
	if count != 3 {
		t.Fatalf("count %d, want 3", count)
	}
}
