package domain

import "time"

// CampaignStatus represents lifecycle states for a campaign.
type CampaignStatus string

const (
	CampaignStatusActive   CampaignStatus = "ACTIVE"
	CampaignStatusArchived CampaignStatus = "ARCHIVED"
)

// Campaign is the domain model for a game campaign run by a GM.
type Campaign struct {
	ID          string
	GMID        string
	Name        string
	Description string
	Setting     string
	Status      CampaignStatus
	MaxPlayers  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CampaignUpdate carries the optional fields of a partial campaign update.
type CampaignUpdate struct {
	Name        *string
	Description *string
	Setting     *string
	Status      *CampaignStatus
	MaxPlayers  *int
}
