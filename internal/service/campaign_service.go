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

// CampaignService coordinates campaign workflows.
type CampaignService struct {
	campaigns  repository.CampaignRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCampaignService constructs the service.
func NewCampaignService(campaigns repository.CampaignRepository, dispatcher events.Dispatcher, logger *zap.Logger) *CampaignService {
	return &CampaignService{campaigns: campaigns, dispatcher: dispatcher, logger: logger}
}

// CreateCampaign persists a new campaign owned by the calling GM.
func (s *CampaignService) CreateCampaign(ctx context.Context, gmID string, cp *domain.Campaign) (*domain.Campaign, error) {
	cp.GMID = gmID
	cp.Name = strings.TrimSpace(cp.Name)
	if cp.Name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	if cp.MaxPlayers < 0 {
		return nil, apperrors.NewValidationError("max_players must not be negative", nil)
	}
	if cp.Status == "" {
		cp.Status = domain.CampaignStatusActive
	}

	if err := s.campaigns.Create(ctx, cp); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventCampaignCreated,
		ActorID: gmID,
		Payload: events.CampaignCreatedPayload{
			CampaignID: cp.ID,
			Name:       cp.Name,
			Setting:    cp.Setting,
		},
	})
	return cp, nil
}

// ListCampaigns returns campaigns run by the caller.
func (s *CampaignService) ListCampaigns(ctx context.Context, gmID string, limit, offset int) ([]domain.Campaign, error) {
	return s.campaigns.ListByGM(ctx, gmID, limit, offset)
}

// GetCampaign fetches a campaign ensuring ownership.
func (s *CampaignService) GetCampaign(ctx context.Context, gmID, campaignID string) (*domain.Campaign, error) {
	cp, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("campaign", nil)
		}
		return nil, err
	}
	if cp.GMID != gmID {
		return nil, apperrors.NewNotFound("campaign", nil)
	}
	return cp, nil
}

// UpdateCampaign applies a partial update to an owned campaign.
func (s *CampaignService) UpdateCampaign(ctx context.Context, gmID, campaignID string, upd domain.CampaignUpdate) (*domain.Campaign, error) {
	cp, err := s.GetCampaign(ctx, gmID, campaignID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		cp.Name = strings.TrimSpace(*upd.Name)
		if cp.Name == "" {
			return nil, apperrors.NewValidationError("name must not be empty", nil)
		}
	}
	if upd.Description != nil {
		cp.Description = *upd.Description
	}
	if upd.Setting != nil {
		cp.Setting = *upd.Setting
	}
	if upd.Status != nil {
		switch *upd.Status {
		case domain.CampaignStatusActive, domain.CampaignStatusArchived:
			cp.Status = *upd.Status
		default:
			return nil, apperrors.NewValidationError("invalid campaign status", nil)
		}
	}
	if upd.MaxPlayers != nil {
		if *upd.MaxPlayers < 0 {
			return nil, apperrors.NewValidationError("max_players must not be negative", nil)
		}
		cp.MaxPlayers = *upd.MaxPlayers
	}

	if err := s.campaigns.Update(ctx, cp); err != nil {
		return nil, err
	}
	return cp, nil
}

// DeleteCampaign removes an owned campaign and its sessions.
func (s *CampaignService) DeleteCampaign(ctx context.Context, gmID, campaignID string) error {
	if _, err := s.GetCampaign(ctx, gmID, campaignID); err != nil {
		return err
	}
	return s.campaigns.Delete(ctx, campaignID)
}

func (s *CampaignService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
