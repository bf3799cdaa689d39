package triage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/strideapp/stride/backend/internal/analysis/risk"
	triagemodel "github.com/strideapp/stride/backend/internal/model/triage"
	triage "github.com/strideapp/stride/backend/internal/service/triage"
)

type stubAck struct {
	text string
	err  error
}

func (s stubAck) GenerateAcknowledgment(context.Context, string) (string, error) {
	return s.text, s.err
}

func option(i int) triage.Answer {
	return triage.Answer{Option: &i}
}

func runDialogue(t *testing.T, svc *triage.Service, feeling string, options ...int) triagemodel.Dialogue {
	t.Helper()
	ctx := context.Background()

	dialogue, err := svc.Start(ctx, "session-1")
	if err != nil {
		t.Fatalf("Start err: %v", err)
	}

	state, err := svc.Submit(ctx, dialogue.ID, triage.Answer{Text: feeling})
	if err != nil {
		t.Fatalf("Submit open-ended err: %v", err)
	}

	for _, opt := range options {
		state, err = svc.Submit(ctx, dialogue.ID, option(opt))
		if err != nil {
			t.Fatalf("Submit option %d err: %v", opt, err)
		}
	}
	return state
}

func TestSelfHarmAnswerAlwaysResolvesHigh(t *testing.T) {
	for _, selfHarm := range []int{2, 3} {
		for _, support := range []int{0, 1, 2, 3} {
			svc := triage.NewService(stubAck{text: "I hear you."}, time.Second)
			state := runDialogue(t, svc, "okay I guess", 0, selfHarm, support)

			if state.Tier != risk.TierHigh {
				t.Fatalf("self-harm option %d support %d: tier %s, want high", selfHarm, support, state.Tier)
			}
			if state.Resolution == nil || state.Resolution.Action != triagemodel.ActionConnectHotline {
				t.Fatalf("expected hotline action for high tier, got %+v", state.Resolution)
			}
		}
	}
}

func TestCalmAnswersStayLow(t *testing.T) {
	svc := triage.NewService(stubAck{text: "I hear you."}, time.Second)
	// "Sometimes" hopeless, no self-harm, "A few people" for support.
	state := runDialogue(t, svc, "I feel okay", 1, 0, 2)

	if state.Tier != risk.TierLow {
		t.Fatalf("tier %s, want low", state.Tier)
	}
	if state.Resolution == nil || state.Resolution.Action != triagemodel.ActionDismiss {
		t.Fatalf("expected dismissal action, got %+v", state.Resolution)
	}
}

func TestNoOneIsNeverASoleTrigger(t *testing.T) {
	svc := triage.NewService(stubAck{text: "I hear you."}, time.Second)
	state := runDialogue(t, svc, "fine", 0, 0, 3)

	if state.Tier != risk.TierLow {
		t.Fatalf("no-one from low baseline raised tier to %s", state.Tier)
	}
}

func TestNoOneEscalatesAnElevatedTier(t *testing.T) {
	svc := triage.NewService(stubAck{text: "I hear you."}, time.Second)
	// "Most of the time" hopeless lifts to medium, then "No one" to high.
	state := runDialogue(t, svc, "rough week", 2, 0, 3)

	if state.Tier != risk.TierHigh {
		t.Fatalf("tier %s, want high after elevated no-one", state.Tier)
	}
}

func TestTierNeverDecreases(t *testing.T) {
	svc := triage.NewService(stubAck{text: "I hear you."}, time.Second)
	ctx := context.Background()

	dialogue, err := svc.Start(ctx, "session-1")
	if err != nil {
		t.Fatalf("Start err: %v", err)
	}

	state, err := svc.Submit(ctx, dialogue.ID, triage.Answer{Text: "heavy days"})
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	previous := state.Tier

	// Severe hopelessness, then mild answers everywhere after.
	for _, opt := range []int{3, 1, 0} {
		state, err = svc.Submit(ctx, dialogue.ID, option(opt))
		if err != nil {
			t.Fatalf("Submit err: %v", err)
		}
		if state.Tier < previous {
			t.Fatalf("tier decreased from %s to %s", previous, state.Tier)
		}
		previous = state.Tier
	}

	if state.Tier != risk.TierMedium {
		t.Fatalf("final tier %s, want medium", state.Tier)
	}
}

func TestEmptyOpenEndedAnswerRejected(t *testing.T) {
	svc := triage.NewService(stubAck{text: "I hear you."}, time.Second)
	ctx := context.Background()

	dialogue, err := svc.Start(ctx, "session-1")
	if err != nil {
		t.Fatalf("Start err: %v", err)
	}

	if _, err := svc.Submit(ctx, dialogue.ID, triage.Answer{Text: "   "}); !errors.Is(err, triage.ErrEmptyAnswer) {
		t.Fatalf("expected ErrEmptyAnswer, got %v", err)
	}

	state, err := svc.Get(ctx, dialogue.ID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if state.CurrentQuestion != 0 {
		t.Fatalf("index moved to %d after rejected answer", state.CurrentQuestion)
	}
	if len(state.Transcript) != 0 {
		t.Fatalf("transcript has %d turns after rejected answer", len(state.Transcript))
	}
}

func TestLowTierEndToEnd(t *testing.T) {
	svc := triage.NewService(stubAck{text: "That sounds like a steady day."}, time.Second)
	state := runDialogue(t, svc, "I feel okay", 1, 0, 2)

	if state.Tier != risk.TierLow {
		t.Fatalf("tier %s, want low", state.Tier)
	}
	if state.Resolution == nil {
		t.Fatal("missing resolution")
	}
	if state.Resolution.Action != triagemodel.ActionDismiss {
		t.Fatalf("action %s, want dismiss", state.Resolution.Action)
	}
	if state.CurrentQuestion != 4 {
		t.Fatalf("final index %d, want 4", state.CurrentQuestion)
	}

	// Two turns per step, the terminal step carrying the resolution turn.
	if len(state.Transcript) != 8 {
		t.Fatalf("transcript has %d turns, want 8", len(state.Transcript))
	}
	last := state.Transcript[len(state.Transcript)-1]
	if last.Speaker != triagemodel.SpeakerAssistant || last.Text != state.Resolution.Message {
		t.Fatalf("terminal turn mismatch: %+v", last)
	}
}

func TestHighTierRegardlessOfFinalAnswer(t *testing.T) {
	for _, support := range []int{0, 1, 2, 3} {
		svc := triage.NewService(stubAck{text: "I hear you."}, time.Second)
		// "Most of the time" hopeless + "Yes, and I might act on them".
		state := runDialogue(t, svc, "not great", 2, 3, support)

		if state.Tier != risk.TierHigh {
			t.Fatalf("support %d: tier %s, want high", support, state.Tier)
		}
		if state.Resolution.Action != triagemodel.ActionConnectHotline {
			t.Fatalf("support %d: action %s, want connect-hotline", support, state.Resolution.Action)
		}
	}
}

func TestGenerationFailureFallsBackAndCompletes(t *testing.T) {
	svc := triage.NewService(stubAck{err: errors.New("network down")}, time.Second)
	state := runDialogue(t, svc, "hard morning", 1, 0, 2)

	if state.Resolution == nil {
		t.Fatal("dialogue did not resolve after generation failure")
	}
	if state.Tier != risk.TierLow {
		t.Fatalf("tier %s, want low", state.Tier)
	}

	found := false
	for _, turn := range state.Transcript {
		if turn.Speaker == triagemodel.SpeakerAssistant && turn.Text == triagemodel.FallbackAcknowledgment {
			found = true
		}
	}
	if !found {
		t.Fatal("fallback acknowledgment missing from transcript")
	}
}

func TestEmptyGenerationPayloadFallsBack(t *testing.T) {
	svc := triage.NewService(stubAck{text: "   "}, time.Second)
	ctx := context.Background()

	dialogue, err := svc.Start(ctx, "session-1")
	if err != nil {
		t.Fatalf("Start err: %v", err)
	}

	state, err := svc.Submit(ctx, dialogue.ID, triage.Answer{Text: "tired"})
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if state.Transcript[1].Text != triagemodel.FallbackAcknowledgment {
		t.Fatalf("expected fallback text, got %q", state.Transcript[1].Text)
	}
}

func TestStaleAcknowledgmentIsDiscarded(t *testing.T) {
	svc := triage.NewService(nil, time.Second)
	ctx := context.Background()

	dialogue, err := svc.Start(ctx, "session-1")
	if err != nil {
		t.Fatalf("Start err: %v", err)
	}

	// Simulate the session leaving the mood screen mid-flight: with the
	// dialogue discarded, the returning reply must not resurrect state.
	svc.Discard(ctx, dialogue.ID)

	if _, err := svc.Submit(ctx, dialogue.ID, triage.Answer{Text: "hello"}); !errors.Is(err, triage.ErrDialogueNotFound) {
		t.Fatalf("expected ErrDialogueNotFound, got %v", err)
	}
}

func TestDuplicateSubmissionWhileAwaiting(t *testing.T) {
	release := make(chan struct{})
	svc := triage.NewService(blockingAck{release: release}, time.Minute)
	ctx := context.Background()

	dialogue, err := svc.Start(ctx, "session-1")
	if err != nil {
		t.Fatalf("Start err: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(ctx, dialogue.ID, triage.Answer{Text: "first"})
		done <- err
	}()

	// Wait until the dialogue reports the outstanding call.
	deadline := time.After(2 * time.Second)
	for {
		state, err := svc.Get(ctx, dialogue.ID)
		if err != nil {
			t.Fatalf("Get err: %v", err)
		}
		if state.Awaiting {
			break
		}
		select {
		case <-deadline:
			t.Fatal("dialogue never entered awaiting state")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if _, err := svc.Submit(ctx, dialogue.ID, triage.Answer{Text: "second"}); !errors.Is(err, triage.ErrDialogueBusy) {
		t.Fatalf("expected ErrDialogueBusy, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submission err: %v", err)
	}

	state, err := svc.Get(ctx, dialogue.ID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if state.CurrentQuestion != 1 {
		t.Fatalf("index %d after first submission, want 1", state.CurrentQuestion)
	}
	if len(state.Transcript) != 2 {
		t.Fatalf("transcript has %d turns, want 2", len(state.Transcript))
	}
}

type blockingAck struct {
	release chan struct{}
}

func (b blockingAck) GenerateAcknowledgment(ctx context.Context, _ string) (string, error) {
	select {
	case <-b.release:
		return "thanks for waiting", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func TestFlaggedTurnsMarkRaisingAnswers(t *testing.T) {
	svc := triage.NewService(stubAck{text: "I hear you."}, time.Second)
	state := runDialogue(t, svc, "low today", 3, 0, 2)

	var flagged []string
	for _, turn := range state.Transcript {
		if turn.Flagged {
			flagged = append(flagged, turn.Text)
		}
	}
	if len(flagged) != 1 || flagged[0] != "Nearly every day" {
		t.Fatalf("unexpected flagged turns: %v", flagged)
	}
}
