package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/roleforge-api/internal/domain"
	"github.com/spec-kit/roleforge-api/internal/events"
	"github.com/spec-kit/roleforge-api/internal/repository"
	apperrors "github.com/spec-kit/roleforge-api/pkg/util"
)

// SessionService coordinates game session scheduling. Only the campaign GM
// may mutate sessions.
type SessionService struct {
	sessions   repository.SessionRepository
	campaigns  repository.CampaignRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewSessionService constructs the service.
func NewSessionService(sessions repository.SessionRepository, campaigns repository.CampaignRepository, dispatcher events.Dispatcher, logger *zap.Logger) *SessionService {
	return &SessionService{sessions: sessions, campaigns: campaigns, dispatcher: dispatcher, logger: logger}
}

// ScheduleSession creates a session under a campaign owned by the caller.
func (s *SessionService) ScheduleSession(ctx context.Context, gmID, campaignID string, gs *domain.GameSession) (*domain.GameSession, error) {
	if err := s.requireCampaignOwner(ctx, gmID, campaignID); err != nil {
		return nil, err
	}

	gs.CampaignID = campaignID
	gs.Title = strings.TrimSpace(gs.Title)
	if gs.Title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	if gs.ScheduledAt.IsZero() {
		return nil, apperrors.NewValidationError("scheduled_at is required", nil)
	}
	if gs.DurationMinutes <= 0 {
		return nil, apperrors.NewValidationError("duration_minutes must be positive", nil)
	}
	gs.Status = domain.SessionStatusScheduled

	if err := s.sessions.Create(ctx, gs); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventSessionScheduled,
		ActorID: gmID,
		Payload: events.SessionScheduledPayload{
			SessionID:   gs.ID,
			CampaignID:  gs.CampaignID,
			Title:       gs.Title,
			ScheduledAt: gs.ScheduledAt,
		},
	})
	return gs, nil
}

// ListSessions returns sessions of a campaign owned by the caller.
func (s *SessionService) ListSessions(ctx context.Context, gmID, campaignID string, limit, offset int) ([]domain.GameSession, error) {
	if err := s.requireCampaignOwner(ctx, gmID, campaignID); err != nil {
		return nil, err
	}
	return s.sessions.ListByCampaign(ctx, campaignID, limit, offset)
}

// GetSession fetches a session ensuring the caller owns its campaign.
func (s *SessionService) GetSession(ctx context.Context, gmID, sessionID string) (*domain.GameSession, error) {
	gs, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("session", nil)
		}
		return nil, err
	}
	if err := s.requireCampaignOwner(ctx, gmID, gs.CampaignID); err != nil {
		return nil, apperrors.NewNotFound("session", nil)
	}
	return gs, nil
}

// UpdateSession applies a partial update, enforcing the status state machine:
// scheduled may start or cancel, active may complete or cancel, terminal
// states are immutable.
func (s *SessionService) UpdateSession(ctx context.Context, gmID, sessionID string, upd domain.SessionUpdate) (*domain.GameSession, error) {
	gs, err := s.GetSession(ctx, gmID, sessionID)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		gs.Title = strings.TrimSpace(*upd.Title)
		if gs.Title == "" {
			return nil, apperrors.NewValidationError("title must not be empty", nil)
		}
	}
	if upd.ScheduledAt != nil {
		gs.ScheduledAt = *upd.ScheduledAt
	}
	if upd.DurationMinutes != nil {
		if *upd.DurationMinutes <= 0 {
			return nil, apperrors.NewValidationError("duration_minutes must be positive", nil)
		}
		gs.DurationMinutes = *upd.DurationMinutes
	}
	if upd.Notes != nil {
		gs.Notes = *upd.Notes
	}

	oldStatus := gs.Status
	if upd.Status != nil && *upd.Status != gs.Status {
		if !gs.Status.CanTransitionTo(*upd.Status) {
			return nil, apperrors.NewValidationError("invalid status transition", map[string]any{
				"from": string(gs.Status),
				"to":   string(*upd.Status),
			})
		}
		gs.Status = *upd.Status
	}

	if err := s.sessions.Update(ctx, gs); err != nil {
		return nil, err
	}
	if gs.Status != oldStatus {
		s.publishEvent(ctx, events.Event{
			Type:    events.EventSessionStatusChanged,
			ActorID: gmID,
			Payload: events.SessionStatusChangedPayload{
				SessionID: gs.ID,
				OldStatus: oldStatus,
				NewStatus: gs.Status,
			},
		})
	}
	return gs, nil
}

// DeleteSession removes a session of an owned campaign.
func (s *SessionService) DeleteSession(ctx context.Context, gmID, sessionID string) error {
	if _, err := s.GetSession(ctx, gmID, sessionID); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, sessionID)
}

func (s *SessionService) requireCampaignOwner(ctx context.Context, gmID, campaignID string) error {
	cp, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("campaign", nil)
		}
		return err
	}
	if cp.GMID != gmID {
		return apperrors.NewNotFound("campaign", nil)
	}
	return nil
}

func (s *SessionService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
