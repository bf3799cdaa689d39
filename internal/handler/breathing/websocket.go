package breathing

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	journalservice "github.com/strideapp/stride/backend/internal/service/journal"
)

// breathingGoalID is the daily goal ticked when a session completes.
const breathingGoalID = "breathing"

const (
	defaultCycles = 4
	maxCycles     = 10
)

// phase is one segment of the 4-7-8 pacing pattern.
type phase struct {
	Name     string
	Duration time.Duration
}

func defaultPhases() []phase {
	return []phase{
		{Name: "inhale", Duration: 4 * time.Second},
		{Name: "hold", Duration: 7 * time.Second},
		{Name: "exhale", Duration: 8 * time.Second},
	}
}

// Handler 引导呼吸的WebSocket处理器
type Handler struct {
	journal  *journalservice.Service
	phases   []phase
	upgrader websocket.Upgrader
}

// New 创建呼吸处理器
func New(journal *journalservice.Service) *Handler {
	return &Handler{
		journal: journal,
		phases:  defaultPhases(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册呼吸相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/breathing/ws", h.handleWebSocket)
}

type startMessage struct {
	Type   string `json:"type"`
	Cycles int    `json:"cycles"`
}

type outgoingMessage struct {
	Type      string `json:"type"`
	Phase     string `json:"phase,omitempty"`
	Cycle     int    `json:"cycle,omitempty"`
	Remaining int    `json:"remaining,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// handleWebSocket runs one paced breathing session over the connection:
// the client sends a start message, the server pushes a tick per second
// and a phase message at each transition, then marks the daily goal.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[breathing] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	cycles, err := h.readStart(conn)
	if err != nil {
		log.Printf("[breathing] start message error: %v", err)
		return
	}

	if err := h.runSession(r.Context(), conn, cycles); err != nil {
		log.Printf("[breathing] session ended early: %v", err)
		return
	}

	if err := h.journal.SetGoalDone(r.Context(), breathingGoalID, true); err != nil {
		log.Printf("[breathing] failed to mark goal: %v", err)
	}
}

func (h *Handler) readStart(conn *websocket.Conn) (int, error) {
	_, raw, err := conn.ReadMessage()
	if err != nil {
		return 0, err
	}

	var msg startMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return 0, err
	}

	return clampCycles(msg.Cycles), nil
}

func clampCycles(cycles int) int {
	if cycles <= 0 {
		return defaultCycles
	}
	if cycles > maxCycles {
		return maxCycles
	}
	return cycles
}

func (h *Handler) runSession(ctx context.Context, conn *websocket.Conn, cycles int) error {
	for cycle := 1; cycle <= cycles; cycle++ {
		for _, p := range h.phases {
			if err := h.send(conn, outgoingMessage{
				Type:      "phase",
				Phase:     p.Name,
				Cycle:     cycle,
				Remaining: int(p.Duration / time.Second),
			}); err != nil {
				return err
			}
			if err := h.tickPhase(ctx, conn, p, cycle); err != nil {
				return err
			}
		}
	}

	return h.send(conn, outgoingMessage{Type: "done", Cycle: cycles})
}

func (h *Handler) tickPhase(ctx context.Context, conn *websocket.Conn, p phase, cycle int) error {
	seconds := int(p.Duration / time.Second)
	if seconds == 0 {
		// Sub-second phases (tests) just wait out the duration.
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Duration):
		}
		return nil
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for remaining := seconds - 1; remaining >= 0; remaining-- {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := h.send(conn, outgoingMessage{
				Type:      "tick",
				Phase:     p.Name,
				Cycle:     cycle,
				Remaining: remaining,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *Handler) send(conn *websocket.Conn, msg outgoingMessage) error {
	msg.Timestamp = time.Now().UnixMilli()
	return conn.WriteJSON(msg)
}
