package dto

import (
	"time"

	"github.com/spec-kit/roleforge-api/internal/domain"
)

// CreateCampaignRequest payload for new campaigns.
type CreateCampaignRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Setting     string `json:"setting"`
	MaxPlayers  int    `json:"max_players"`
}

// UpdateCampaignRequest payload for partial campaign updates.
type UpdateCampaignRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Setting     *string `json:"setting"`
	Status      *string `json:"status"`
	MaxPlayers  *int    `json:"max_players"`
}

// CampaignResponse is the public view of a campaign.
type CampaignResponse struct {
	ID          string    `json:"id"`
	GMID        string    `json:"gm_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Setting     string    `json:"setting,omitempty"`
	Status      string    `json:"status"`
	MaxPlayers  int       `json:"max_players"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCampaignResponse maps a domain campaign to its public view.
func NewCampaignResponse(cp *domain.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:          cp.ID,
		GMID:        cp.GMID,
		Name:        cp.Name,
		Description: cp.Description,
		Setting:     cp.Setting,
		Status:      string(cp.Status),
		MaxPlayers:  cp.MaxPlayers,
		CreatedAt:   cp.CreatedAt,
		UpdatedAt:   cp.UpdatedAt,
	}
}
