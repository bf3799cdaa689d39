package triage

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	triagemodel "github.com/strideapp/stride/backend/internal/model/triage"
	sessionservice "github.com/strideapp/stride/backend/internal/service/session"
	triageservice "github.com/strideapp/stride/backend/internal/service/triage"
	"github.com/strideapp/stride/backend/pkg/utils"
)

// Handler triage对话的HTTP处理器
type Handler struct {
	sessions *sessionservice.Service
	triage   *triageservice.Service
}

// New 创建triage处理器
func New(sessions *sessionservice.Service, triageSvc *triageservice.Service) *Handler {
	return &Handler{sessions: sessions, triage: triageSvc}
}

// RegisterRoutes 注册triage相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/triage/script", h.handleScript)
	r.Post("/sessions/{sessionID}/triage", h.handleStart)
	r.Get("/sessions/{sessionID}/triage", h.handleState)
	r.Post("/sessions/{sessionID}/triage/answer", h.handleAnswer)
	r.Get("/sessions/{sessionID}/triage/wait", h.handleWait)
}

// stateResponse pairs the dialogue with the question the client should
// render next; nil once the dialogue is resolved.
type stateResponse struct {
	Dialogue triagemodel.Dialogue  `json:"dialogue"`
	Question *triagemodel.Question `json:"question,omitempty"`
}

func (h *Handler) stateResponse(dialogue triagemodel.Dialogue) stateResponse {
	resp := stateResponse{Dialogue: dialogue}
	script := h.triage.Script()
	if !dialogue.Resolved() && dialogue.CurrentQuestion < len(script) {
		question := script[dialogue.CurrentQuestion]
		resp.Question = &question
	}
	return resp
}

func (h *Handler) handleScript(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.triage.Script())
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	dialogue, err := h.sessions.StartDialogue(r.Context(), sessionID)
	switch {
	case errors.Is(err, sessionservice.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, sessionservice.ErrWrongScreen):
		utils.RespondError(w, http.StatusConflict, err.Error())
	case err != nil:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	default:
		utils.RespondJSON(w, http.StatusCreated, h.stateResponse(dialogue))
	}
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	dialogue, err := h.sessions.Dialogue(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.stateResponse(dialogue))
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Text   string `json:"text"`
		Option *int   `json:"option"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer := triageservice.Answer{Text: payload.Text, Option: payload.Option}
	dialogue, err := h.sessions.SubmitAnswer(r.Context(), sessionID, answer)
	switch {
	case errors.Is(err, sessionservice.ErrSessionNotFound),
		errors.Is(err, sessionservice.ErrNoDialogue),
		errors.Is(err, triageservice.ErrDialogueNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, triageservice.ErrEmptyAnswer),
		errors.Is(err, triageservice.ErrInvalidOption),
		errors.Is(err, triageservice.ErrOptionRequired):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, triageservice.ErrDialogueBusy),
		errors.Is(err, triageservice.ErrDialogueResolved):
		utils.RespondError(w, http.StatusConflict, err.Error())
	case err != nil:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	default:
		utils.RespondJSON(w, http.StatusOK, h.stateResponse(dialogue))
	}
}

// handleWait streams heartbeat events while the dialogue awaits the
// external acknowledgment, so the client can show its waiting indicator.
func (h *Handler) handleWait(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	utils.SetupSSEHeaders(w)
	ctx := r.Context()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	utils.SendSSEChunk(w, flusher, map[string]any{
		"event":   "status",
		"message": "stream established",
	})

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dialogue, err := h.sessions.Dialogue(ctx, sessionID)
			if err != nil {
				utils.SendSSEChunk(w, flusher, map[string]any{
					"event": "gone",
				})
				return
			}
			if !dialogue.Awaiting {
				utils.SendSSEChunk(w, flusher, map[string]any{
					"event":    "ready",
					"question": dialogue.CurrentQuestion,
				})
				log.Printf("[triage] wait stream done for session=%s", sessionID)
				return
			}
			utils.SendSSEChunk(w, flusher, map[string]any{
				"event":   "awaiting",
				"message": "generating acknowledgment",
			})
		}
	}
}
