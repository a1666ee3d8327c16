package domain

import "time"

// SessionStatus represents lifecycle states for a game session.
type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "SCHEDULED"
	SessionStatusActive    SessionStatus = "ACTIVE"
	SessionStatusCompleted SessionStatus = "COMPLETED"
	SessionStatusCancelled SessionStatus = "CANCELLED"
)

// GameSession is the domain model for a scheduled play session of a campaign.
type GameSession struct {
	ID              string
	CampaignID      string
	Title           string
	ScheduledAt     time.Time
	DurationMinutes int
	Status          SessionStatus
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SessionUpdate carries the optional fields of a partial session update.
type SessionUpdate struct {
	Title           *string
	ScheduledAt     *time.Time
	DurationMinutes *int
	Status          *SessionStatus
	Notes           *string
}

// CanTransitionTo reports whether a status change is allowed. Terminal states
// accept no further transitions.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	switch s {
	case SessionStatusScheduled:
		return next == SessionStatusActive || next == SessionStatusCancelled
	case SessionStatusActive:
		return next == SessionStatusCompleted || next == SessionStatusCancelled
	default:
		return false
	}
}
