package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/stride/backend/internal/model/triage"
	triageservice "github.com/strideapp/stride/backend/internal/service/triage"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownScreen   = errors.New("unknown screen")
	ErrWrongScreen     = errors.New("triage dialogue requires the mood screen")
	ErrNoDialogue      = errors.New("no active dialogue")
)

// Screen names one of the fixed client surfaces. Exactly one is active
// per session.
type Screen string

const (
	ScreenHome          Screen = "home"
	ScreenBrainExercise Screen = "brain-exercise"
	ScreenMood          Screen = "mood"
	ScreenBreathing     Screen = "breathing"
	ScreenHomeExercises Screen = "home-exercises"
	ScreenResources     Screen = "resources"
)

// ValidScreen reports whether s names a known screen.
func ValidScreen(s Screen) bool {
	switch s {
	case ScreenHome, ScreenBrainExercise, ScreenMood, ScreenBreathing,
		ScreenHomeExercises, ScreenResources:
		return true
	}
	return false
}

// Session is the process-scoped state the view shell owns for one client.
type Session struct {
	SessionID    string    `json:"id"`
	ActiveScreen Screen    `json:"activeScreen"`
	DialogueID   string    `json:"dialogueId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Service owns session objects and scopes the triage dialogue to the
// mood screen's lifetime: switching away discards it.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	triage   *triageservice.Service
}

// NewService bootstraps the in-memory session service.
func NewService(triageSvc *triageservice.Service) *Service {
	return &Service{
		sessions: make(map[string]*Session),
		triage:   triageSvc,
	}
}

// Create provisions an anonymous session starting on the home screen.
func (s *Service) Create(_ context.Context) Session {
	session := &Session{
		SessionID:    uuid.NewString(),
		ActiveScreen: ScreenHome,
		CreatedAt:    time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[session.SessionID] = session
	s.mu.Unlock()

	return *session
}

// Get returns a copy of the session.
func (s *Service) Get(_ context.Context, sessionID string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return *session, nil
}

// SwitchScreen activates a screen. Other components keep their state
// across switches; only the triage dialogue is discarded when the session
// leaves the mood screen.
func (s *Service) SwitchScreen(ctx context.Context, sessionID string, screen Screen) (Session, error) {
	if !ValidScreen(screen) {
		return Session{}, ErrUnknownScreen
	}

	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return Session{}, ErrSessionNotFound
	}

	var discard string
	if session.ActiveScreen == ScreenMood && screen != ScreenMood {
		discard = session.DialogueID
		session.DialogueID = ""
	}
	session.ActiveScreen = screen
	copied := *session
	s.mu.Unlock()

	if discard != "" {
		s.triage.Discard(ctx, discard)
	}
	return copied, nil
}

// StartDialogue begins a triage run for the session; only valid while the
// mood screen is active. A prior unresolved dialogue is replaced.
func (s *Service) StartDialogue(ctx context.Context, sessionID string) (triage.Dialogue, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return triage.Dialogue{}, ErrSessionNotFound
	}
	if session.ActiveScreen != ScreenMood {
		s.mu.Unlock()
		return triage.Dialogue{}, ErrWrongScreen
	}
	previous := session.DialogueID
	s.mu.Unlock()

	if previous != "" {
		s.triage.Discard(ctx, previous)
	}

	dialogue, err := s.triage.Start(ctx, sessionID)
	if err != nil {
		return triage.Dialogue{}, err
	}

	s.mu.Lock()
	if current, ok := s.sessions[sessionID]; ok {
		current.DialogueID = dialogue.ID
	}
	s.mu.Unlock()

	return dialogue, nil
}

// Dialogue returns the session's active dialogue state.
func (s *Service) Dialogue(ctx context.Context, sessionID string) (triage.Dialogue, error) {
	dialogueID, err := s.dialogueID(sessionID)
	if err != nil {
		return triage.Dialogue{}, err
	}
	return s.triage.Get(ctx, dialogueID)
}

// SubmitAnswer forwards one answer to the session's active dialogue. A
// resolved dialogue is unbound from the session afterwards.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID string, answer triageservice.Answer) (triage.Dialogue, error) {
	dialogueID, err := s.dialogueID(sessionID)
	if err != nil {
		return triage.Dialogue{}, err
	}

	dialogue, err := s.triage.Submit(ctx, dialogueID, answer)
	if err != nil {
		return triage.Dialogue{}, err
	}

	if dialogue.Resolved() {
		s.mu.Lock()
		if session, ok := s.sessions[sessionID]; ok && session.DialogueID == dialogueID {
			session.DialogueID = ""
		}
		s.mu.Unlock()
	}
	return dialogue, nil
}

func (s *Service) dialogueID(sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return "", ErrSessionNotFound
	}
	if session.DialogueID == "" {
		return "", ErrNoDialogue
	}
	return session.DialogueID, nil
}
