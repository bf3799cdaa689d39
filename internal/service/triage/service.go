package triage

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride/backend/internal/analysis/risk"
	"github.com/strideapp/stride/backend/internal/model/triage"
)

var (
	ErrDialogueNotFound = errors.New("dialogue not found")
	ErrDialogueBusy     = errors.New("dialogue is awaiting the assistant reply")
	ErrDialogueResolved = errors.New("dialogue already resolved")
	ErrEmptyAnswer      = errors.New("answer must not be empty")
	ErrInvalidOption    = errors.New("option index out of range")
	ErrOptionRequired   = errors.New("question expects an option selection")
)

// AckGenerator produces the empathetic acknowledgment for the open-ended
// turn. Implemented by the ai service; stubbed in tests.
type AckGenerator interface {
	GenerateAcknowledgment(ctx context.Context, feeling string) (string, error)
}

// Answer carries one submitted turn: free text for the open-ended
// question, an option index for the choice questions.
type Answer struct {
	Text   string
	Option *int
}

// Service drives the fixed risk-assessment script. Dialogues live only in
// memory: they are discarded when resolved or when the session leaves the
// mood screen.
type Service struct {
	mu         sync.Mutex
	dialogues  map[string]*triage.Dialogue
	script     []triage.Question
	followUps  map[int]triage.FollowUp
	ack        AckGenerator // nil means the fallback text is always used
	ackTimeout time.Duration
}

// NewService bootstraps the in-memory triage service.
func NewService(ack AckGenerator, ackTimeout time.Duration) *Service {
	if ackTimeout <= 0 {
		ackTimeout = 15 * time.Second
	}
	return &Service{
		dialogues:  make(map[string]*triage.Dialogue),
		script:     triage.Script(),
		followUps:  triage.FollowUps(),
		ack:        ack,
		ackTimeout: ackTimeout,
	}
}

// Script returns the fixed question list for clients to render.
func (s *Service) Script() []triage.Question {
	return append([]triage.Question(nil), s.script...)
}

// Start provisions a dialogue bound to a session, positioned at the first
// question with an empty transcript.
func (s *Service) Start(_ context.Context, sessionID string) (triage.Dialogue, error) {
	dialogue := &triage.Dialogue{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Tier:      risk.TierLow,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.dialogues[dialogue.ID] = dialogue
	s.mu.Unlock()

	return snapshot(dialogue), nil
}

// Get returns a copy of the dialogue state.
func (s *Service) Get(_ context.Context, dialogueID string) (triage.Dialogue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dialogue, ok := s.dialogues[dialogueID]
	if !ok {
		return triage.Dialogue{}, ErrDialogueNotFound
	}
	return snapshot(dialogue), nil
}

// Discard drops a dialogue, e.g. when the session leaves the mood screen.
// An acknowledgment still in flight for it will be ignored on return.
func (s *Service) Discard(_ context.Context, dialogueID string) {
	s.mu.Lock()
	delete(s.dialogues, dialogueID)
	s.mu.Unlock()
}

// DiscardSession drops every dialogue belonging to the session.
func (s *Service) DiscardSession(_ context.Context, sessionID string) {
	s.mu.Lock()
	for id, dialogue := range s.dialogues {
		if dialogue.SessionID == sessionID {
			delete(s.dialogues, id)
		}
	}
	s.mu.Unlock()
}

// Submit applies one answer to the dialogue. The question index advances
// by exactly one per accepted answer; the tier only ever rises. The final
// answer resolves the dialogue and removes it from the service.
func (s *Service) Submit(ctx context.Context, dialogueID string, answer Answer) (triage.Dialogue, error) {
	s.mu.Lock()

	dialogue, ok := s.dialogues[dialogueID]
	if !ok {
		s.mu.Unlock()
		return triage.Dialogue{}, ErrDialogueNotFound
	}
	if dialogue.Awaiting {
		s.mu.Unlock()
		return triage.Dialogue{}, ErrDialogueBusy
	}
	if dialogue.Resolved() || dialogue.CurrentQuestion >= len(s.script) {
		s.mu.Unlock()
		return triage.Dialogue{}, ErrDialogueResolved
	}

	question := s.script[dialogue.CurrentQuestion]
	if question.Kind == triage.KindOpenEnded {
		return s.submitOpenEnded(ctx, dialogue, answer)
	}
	return s.submitChoice(dialogue, question, answer)
}

// submitOpenEnded handles the free-text turn. The lock is released while
// the external call runs so the service stays responsive; Awaiting blocks
// duplicate submissions for this dialogue in the meantime.
func (s *Service) submitOpenEnded(ctx context.Context, dialogue *triage.Dialogue, answer Answer) (triage.Dialogue, error) {
	text := strings.TrimSpace(answer.Text)
	if text == "" {
		s.mu.Unlock()
		return triage.Dialogue{}, ErrEmptyAnswer
	}

	dialogue.Awaiting = true
	dialogueID := dialogue.ID
	questionIndex := dialogue.CurrentQuestion
	s.mu.Unlock()

	acknowledgment := s.generateAcknowledgment(ctx, text)

	s.mu.Lock()
	defer s.mu.Unlock()

	// The dialogue may have been discarded while the call was in flight.
	// A late reply must never resurrect or overwrite state.
	current, ok := s.dialogues[dialogueID]
	if !ok || current.CurrentQuestion != questionIndex {
		log.Printf("[triage] discarding stale acknowledgment for dialogue=%s", dialogueID)
		return triage.Dialogue{}, ErrDialogueNotFound
	}

	current.Awaiting = false
	appendTurn(current, triage.SpeakerUser, text, false)
	appendTurn(current, triage.SpeakerAssistant, acknowledgment, false)
	current.CurrentQuestion++

	return snapshot(current), nil
}

// submitChoice handles the fixed-option turns; the caller holds the lock.
func (s *Service) submitChoice(dialogue *triage.Dialogue, question triage.Question, answer Answer) (triage.Dialogue, error) {
	defer s.mu.Unlock()

	if answer.Option == nil {
		return triage.Dialogue{}, ErrOptionRequired
	}
	option := *answer.Option
	if option < 0 || option >= len(question.Options) {
		return triage.Dialogue{}, ErrInvalidOption
	}

	raised := risk.Raises(dialogue.Tier, question.Index, option)
	dialogue.Tier = risk.Accumulate(dialogue.Tier, question.Index, option)

	appendTurn(dialogue, triage.SpeakerUser, question.Options[option], raised)
	dialogue.CurrentQuestion++

	if dialogue.CurrentQuestion < len(s.script) {
		followUp := s.followUps[question.Index]
		appendTurn(dialogue, triage.SpeakerAssistant, string(followUp), false)
		return snapshot(dialogue), nil
	}

	// Terminal step: one assistant turn carrying the tier-keyed resolution.
	resolution := triage.ResolveTier(dialogue.Tier)
	dialogue.Resolution = &resolution
	appendTurn(dialogue, triage.SpeakerAssistant, resolution.Message, false)

	result := snapshot(dialogue)
	delete(s.dialogues, dialogue.ID)
	log.Printf("[triage] dialogue=%s resolved tier=%s action=%s", dialogue.ID, resolution.Tier, resolution.Action)
	return result, nil
}

// generateAcknowledgment asks the external model and falls back to the
// fixed text on any failure. It never returns an error: the external
// service must not be able to block the script.
func (s *Service) generateAcknowledgment(ctx context.Context, feeling string) string {
	if s.ack == nil {
		return triage.FallbackAcknowledgment
	}

	callCtx, cancel := context.WithTimeout(ctx, s.ackTimeout)
	defer cancel()

	text, err := s.ack.GenerateAcknowledgment(callCtx, feeling)
	if err != nil {
		log.Printf("[triage] acknowledgment generation failed, using fallback: %v", err)
		return triage.FallbackAcknowledgment
	}
	if strings.TrimSpace(text) == "" {
		log.Printf("[triage] acknowledgment payload empty, using fallback")
		return triage.FallbackAcknowledgment
	}
	return text
}

func appendTurn(dialogue *triage.Dialogue, speaker triage.Speaker, text string, flagged bool) {
	dialogue.Transcript = append(dialogue.Transcript, triage.Turn{
		ID:        uuid.NewString(),
		Speaker:   speaker,
		Text:      text,
		Flagged:   flagged,
		CreatedAt: time.Now().UTC(),
	})
}

func snapshot(dialogue *triage.Dialogue) triage.Dialogue {
	copied := *dialogue
	copied.Transcript = append([]triage.Turn(nil), dialogue.Transcript...)
	if dialogue.Resolution != nil {
		resolution := *dialogue.Resolution
		copied.Resolution = &resolution
	}
	return copied
}
