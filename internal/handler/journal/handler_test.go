package journal_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	journalhandler "github.com/strideapp/stride/backend/internal/handler/journal"
	exmodel "github.com/strideapp/stride/backend/internal/model/exercise"
	journalmodel "github.com/strideapp/stride/backend/internal/model/journal"
	journalservice "github.com/strideapp/stride/backend/internal/service/journal"
	"github.com/strideapp/stride/backend/internal/storage"
)

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "stride.db"))
	if err != nil {
		t.Fatalf("Open err: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	catalog := exmodel.NewMemoryStore(exmodel.Seed(), exmodel.SeedHomeExercises(), exmodel.SeedDailyGoals())
	svc := journalservice.NewService(store)

	r := chi.NewRouter()
	journalhandler.New(svc, catalog).RegisterRoutes(r)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestMoodRoundTripOverHTTP(t *testing.T) {
	r := setupRouter(t)

	if resp := do(t, r, http.MethodPut, "/mood", map[string]string{"mood": "low"}); resp.Code != http.StatusOK {
		t.Fatalf("set mood: %d %s", resp.Code, resp.Body.String())
	}

	resp := do(t, r, http.MethodGet, "/mood", nil)
	var payload map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode mood: %v", err)
	}
	if payload["mood"] != "low" {
		t.Fatalf("mood %q, want low", payload["mood"])
	}
}

func TestInvalidMoodRejected(t *testing.T) {
	r := setupRouter(t)

	resp := do(t, r, http.MethodPut, "/mood", map[string]string{"mood": "ecstatic"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestJournalEntriesNewestFirst(t *testing.T) {
	r := setupRouter(t)

	for _, note := range []string{"rough morning", "better afternoon"} {
		resp := do(t, r, http.MethodPost, "/journal", map[string]string{"mood": "okay", "note": note})
		if resp.Code != http.StatusCreated {
			t.Fatalf("add entry: %d %s", resp.Code, resp.Body.String())
		}
	}

	resp := do(t, r, http.MethodGet, "/journal", nil)
	var entries []journalmodel.Entry
	if err := json.Unmarshal(resp.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode entries: %v", err)
	}
	if len(entries) != 2 || entries[0].Note != "better afternoon" {
		t.Fatalf("unexpected order: %+v", entries)
	}
}

func TestGoalChecklistMergesFlags(t *testing.T) {
	r := setupRouter(t)

	if resp := do(t, r, http.MethodPut, "/goals/breathing", map[string]bool{"done": true}); resp.Code != http.StatusOK {
		t.Fatalf("set goal: %d %s", resp.Code, resp.Body.String())
	}

	resp := do(t, r, http.MethodGet, "/goals", nil)
	var goals []struct {
		ID   string `json:"id"`
		Done bool   `json:"done"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &goals); err != nil {
		t.Fatalf("decode goals: %v", err)
	}
	if len(goals) != 4 {
		t.Fatalf("%d goals, want 4", len(goals))
	}
	for _, goal := range goals {
		want := goal.ID == "breathing"
		if goal.Done != want {
			t.Fatalf("goal %s done=%v, want %v", goal.ID, goal.Done, want)
		}
	}
}

func TestUnknownGoalRejected(t *testing.T) {
	r := setupRouter(t)

	resp := do(t, r, http.MethodPut, "/goals/levitation", map[string]bool{"done": true})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestHomeExerciseFlagCanBeCleared(t *testing.T) {
	r := setupRouter(t)

	if resp := do(t, r, http.MethodPut, "/home-exercises/shoulder-rolls", map[string]bool{"done": true}); resp.Code != http.StatusOK {
		t.Fatalf("set flag: %d", resp.Code)
	}
	if resp := do(t, r, http.MethodPut, "/home-exercises/shoulder-rolls", map[string]bool{"done": false}); resp.Code != http.StatusOK {
		t.Fatalf("clear flag: %d", resp.Code)
	}

	resp := do(t, r, http.MethodGet, "/home-exercises", nil)
	var items []struct {
		ID   string `json:"id"`
		Done bool   `json:"done"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	for _, item := range items {
		if item.Done {
			t.Fatalf("item %s still flagged", item.ID)
		}
	}
}
