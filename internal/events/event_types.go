package events

import (
	"time"

	"github.com/spec-kit/roleforge-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCharacterCreated      EventType = "character_created"
	EventCampaignCreated       EventType = "campaign_created"
	EventSessionScheduled      EventType = "session_scheduled"
	EventSessionStatusChanged  EventType = "session_status_changed"
	EventAIGenerationCompleted EventType = "ai_generation_completed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CharacterCreatedPayload payload.
type CharacterCreatedPayload struct {
	CharacterID string `json:"character_id"`
	Name        string `json:"name"`
	Class       string `json:"class"`
	Race        string `json:"race"`
	Level       int    `json:"level"`
}

// CampaignCreatedPayload payload.
type CampaignCreatedPayload struct {
	CampaignID string `json:"campaign_id"`
	Name       string `json:"name"`
	Setting    string `json:"setting,omitempty"`
}

// SessionScheduledPayload payload.
type SessionScheduledPayload struct {
	SessionID   string    `json:"session_id"`
	CampaignID  string    `json:"campaign_id"`
	Title       string    `json:"title"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// SessionStatusChangedPayload payload.
type SessionStatusChangedPayload struct {
	SessionID string               `json:"session_id"`
	OldStatus domain.SessionStatus `json:"old_status"`
	NewStatus domain.SessionStatus `json:"new_status"`
}

// AIGenerationCompletedPayload payload.
type AIGenerationCompletedPayload struct {
	RequestID string `json:"request_id"`
	Kind      string `json:"kind"`
	Cached    bool   `json:"cached"`
}
