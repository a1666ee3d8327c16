package dto

import (
	"time"

	"github.com/spec-kit/roleforge-api/internal/domain"
)

// CreateSessionRequest payload for scheduling a game session.
type CreateSessionRequest struct {
	Title           string    `json:"title"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           string    `json:"notes"`
}

// UpdateSessionRequest payload for partial session updates.
type UpdateSessionRequest struct {
	Title           *string    `json:"title"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	DurationMinutes *int       `json:"duration_minutes"`
	Status          *string    `json:"status"`
	Notes           *string    `json:"notes"`
}

// SessionResponse is the public view of a game session.
type SessionResponse struct {
	ID              string    `json:"id"`
	CampaignID      string    `json:"campaign_id"`
	Title           string    `json:"title"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewSessionResponse maps a domain session to its public view.
func NewSessionResponse(gs *domain.GameSession) SessionResponse {
	return SessionResponse{
		ID:              gs.ID,
		CampaignID:      gs.CampaignID,
		Title:           gs.Title,
		ScheduledAt:     gs.ScheduledAt,
		DurationMinutes: gs.DurationMinutes,
		Status:          string(gs.Status),
		Notes:           gs.Notes,
		CreatedAt:       gs.CreatedAt,
		UpdatedAt:       gs.UpdatedAt,
	}
}
