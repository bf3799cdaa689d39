package journal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	exmodel "github.com/strideapp/stride/backend/internal/model/exercise"
	journalmodel "github.com/strideapp/stride/backend/internal/model/journal"
	journalservice "github.com/strideapp/stride/backend/internal/service/journal"
	"github.com/strideapp/stride/backend/pkg/utils"
)

// Handler 情绪日记与每日清单的HTTP处理器
type Handler struct {
	svc     *journalservice.Service
	catalog exmodel.Store
}

// New 创建日记处理器
func New(svc *journalservice.Service, catalog exmodel.Store) *Handler {
	return &Handler{svc: svc, catalog: catalog}
}

// RegisterRoutes 注册日记相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Put("/mood", h.handleSetMood)
	r.Get("/mood", h.handleGetMood)
	r.Post("/journal", h.handleAddEntry)
	r.Get("/journal", h.handleListEntries)
	r.Get("/goals", h.handleListGoals)
	r.Put("/goals/{goalID}", h.handleSetGoal)
	r.Get("/home-exercises", h.handleListHomeExercises)
	r.Put("/home-exercises/{exerciseID}", h.handleSetHomeExercise)
}

func (h *Handler) handleSetMood(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Mood string `json:"mood"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.SetMood(r.Context(), payload.Mood); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, journalservice.ErrInvalidMood) {
			status = http.StatusBadRequest
		}
		utils.RespondError(w, status, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"mood": payload.Mood})
}

func (h *Handler) handleGetMood(w http.ResponseWriter, r *http.Request) {
	mood, err := h.svc.Mood(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"mood": mood})
}

func (h *Handler) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Mood string `json:"mood"`
		Note string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.svc.AddEntry(r.Context(), payload.Mood, payload.Note)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, journalservice.ErrInvalidMood) {
			status = http.StatusBadRequest
		}
		utils.RespondError(w, status, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusCreated, entry)
}

func (h *Handler) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Entries(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []journalmodel.Entry{}
	}
	utils.RespondJSON(w, http.StatusOK, entries)
}

// goalStatus merges the fixed goal list with the persisted flags.
type goalStatus struct {
	exmodel.DailyGoal
	Done bool `json:"done"`
}

func (h *Handler) handleListGoals(w http.ResponseWriter, r *http.Request) {
	flags, err := h.svc.Goals(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	goals := h.catalog.DailyGoals()
	statuses := make([]goalStatus, 0, len(goals))
	for _, goal := range goals {
		statuses = append(statuses, goalStatus{DailyGoal: goal, Done: flags[goal.ID]})
	}
	utils.RespondJSON(w, http.StatusOK, statuses)
}

func (h *Handler) handleSetGoal(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "goalID")

	var payload struct {
		Done bool `json:"done"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.knownGoal(goalID) {
		utils.RespondError(w, http.StatusNotFound, "goal not found")
		return
	}

	if err := h.svc.SetGoalDone(r.Context(), goalID, payload.Done); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"id": goalID, "done": payload.Done})
}

// homeExerciseStatus merges a checklist item with its completion flag.
type homeExerciseStatus struct {
	exmodel.HomeExercise
	Done bool `json:"done"`
}

func (h *Handler) handleListHomeExercises(w http.ResponseWriter, r *http.Request) {
	flags, err := h.svc.HomeExercises(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	items := h.catalog.HomeExercises()
	statuses := make([]homeExerciseStatus, 0, len(items))
	for _, item := range items {
		statuses = append(statuses, homeExerciseStatus{HomeExercise: item, Done: flags[item.ID]})
	}
	utils.RespondJSON(w, http.StatusOK, statuses)
}

func (h *Handler) handleSetHomeExercise(w http.ResponseWriter, r *http.Request) {
	exerciseID := chi.URLParam(r, "exerciseID")

	var payload struct {
		Done bool `json:"done"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.knownHomeExercise(exerciseID) {
		utils.RespondError(w, http.StatusNotFound, "home exercise not found")
		return
	}

	if err := h.svc.SetHomeExerciseDone(r.Context(), exerciseID, payload.Done); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"id": exerciseID, "done": payload.Done})
}

func (h *Handler) knownGoal(id string) bool {
	for _, goal := range h.catalog.DailyGoals() {
		if goal.ID == id {
			return true
		}
	}
	return false
}

func (h *Handler) knownHomeExercise(id string) bool {
	for _, item := range h.catalog.HomeExercises() {
		if item.ID == id {
			return true
		}
	}
	return false
}
