package exercise

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	exmodel "github.com/strideapp/stride/backend/internal/model/exercise"
	exservice "github.com/strideapp/stride/backend/internal/service/exercise"
	"github.com/strideapp/stride/backend/pkg/utils"
)

// Handler 认知训练的HTTP处理器
type Handler struct {
	catalog exmodel.Store
	svc     *exservice.Service
}

// New 创建训练处理器
func New(catalog exmodel.Store, svc *exservice.Service) *Handler {
	return &Handler{catalog: catalog, svc: svc}
}

// RegisterRoutes 注册训练相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/exercises", h.handleList)
	r.Get("/exercises/{exerciseID}", h.handleGet)
	r.Post("/exercises/{exerciseID}/complete", h.handleComplete)
	r.Get("/scores/{domain}", h.handleScores)
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.catalog.List())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	exerciseID := chi.URLParam(r, "exerciseID")

	item, ok := h.catalog.FindByID(exerciseID)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "exercise not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}

// completionPayload is the tagged wire form of an exercise result. Kind
// decides which fields apply; fluency may submit raw answers instead of a
// pre-computed count.
type completionPayload struct {
	Kind          string   `json:"kind"`
	Correct       bool     `json:"correct"`
	ValidCount    int      `json:"validCount"`
	Errors        int      `json:"errors"`
	CorrectClicks int      `json:"correctClicks"`
	Answers       []string `json:"answers"`
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	exerciseID := chi.URLParam(r, "exerciseID")

	var payload completionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.buildResult(exerciseID, payload)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	outcome, err := h.svc.Complete(r.Context(), exerciseID, result)
	switch {
	case errors.Is(err, exservice.ErrExerciseNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case err != nil:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	default:
		utils.RespondJSON(w, http.StatusOK, outcome)
	}
}

// buildResult maps the tagged payload to its variant. Unrecognized kinds
// yield a nil result, which scores zero downstream instead of failing.
func (h *Handler) buildResult(exerciseID string, payload completionPayload) (exmodel.Result, error) {
	switch exmodel.Kind(payload.Kind) {
	case exmodel.KindDigitSpan:
		return exmodel.DigitSpanResult{Correct: payload.Correct}, nil
	case exmodel.KindChoice:
		return exmodel.ChoiceResult{Correct: payload.Correct}, nil
	case exmodel.KindAttention:
		return exmodel.AttentionResult{Errors: payload.Errors, CorrectClicks: payload.CorrectClicks}, nil
	case exmodel.KindFluency:
		if payload.Answers != nil {
			count, err := h.svc.CountValidAnswers(exerciseID, payload.Answers)
			if err != nil {
				return nil, err
			}
			return exmodel.FluencyResult{ValidCount: count}, nil
		}
		return exmodel.FluencyResult{ValidCount: payload.ValidCount}, nil
	default:
		return nil, nil
	}
}

func (h *Handler) handleScores(w http.ResponseWriter, r *http.Request) {
	domain := exmodel.Domain(chi.URLParam(r, "domain"))

	history, err := h.svc.History(r.Context(), domain)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if history == nil {
		history = []exmodel.ScoreEntry{}
	}
	utils.RespondJSON(w, http.StatusOK, history)
}
