package triage

import (
	"time"

	"github.com/strideapp/stride/backend/internal/analysis/risk"
)

// Action names the terminal affordance offered alongside the resolution.
type Action string

const (
	ActionConnectHotline Action = "connect-hotline"
	ActionOpenResources  Action = "open-resources"
	ActionDismiss        Action = "dismiss"
)

// Resolution is the single terminal outcome of a dialogue, keyed strictly
// by the final accumulated tier.
type Resolution struct {
	Tier    risk.Tier `json:"tier"`
	Message string    `json:"message"`
	Action  Action    `json:"action"`
}

// ResolveTier 根据最终层级给出唯一的收尾话术与动作。
func ResolveTier(tier risk.Tier) Resolution {
	switch tier {
	case risk.TierHigh:
		return Resolution{
			Tier:    tier,
			Message: "What you've told me matters, and you shouldn't carry it alone. Please reach out to a professional right now — I can connect you to the crisis hotline immediately.",
			Action:  ActionConnectHotline,
		}
	case risk.TierMedium:
		return Resolution{
			Tier:    tier,
			Message: "It sounds like things have been heavy lately. Talking with a counselor who knows stroke recovery can really help. I can show you specialized support resources.",
			Action:  ActionOpenResources,
		}
	default:
		return Resolution{
			Tier:    tier,
			Message: "Difficult days are a normal part of recovery, and it sounds like you're coping. Keep leaning on the people around you, and check in with me anytime.",
			Action:  ActionDismiss,
		}
	}
}

// Dialogue captures one triage run. It lives only in memory for the
// duration of the mood screen; it is never persisted.
type Dialogue struct {
	ID              string      `json:"id"`
	SessionID       string      `json:"sessionId"`
	CurrentQuestion int         `json:"currentQuestion"`
	Tier            risk.Tier   `json:"tier"`
	Transcript      []Turn      `json:"transcript"`
	Awaiting        bool        `json:"awaiting"`
	Resolution      *Resolution `json:"resolution,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// Resolved reports whether the dialogue reached its terminal step.
func (d Dialogue) Resolved() bool {
	return d.Resolution != nil
}
