package dto

import (
	"time"

	"github.com/spec-kit/roleforge-api/internal/domain"
)

// CreateCharacterRequest payload for new character sheets.
type CreateCharacterRequest struct {
	Name             string               `json:"name"`
	Race             string               `json:"race"`
	Class            string               `json:"class"`
	Level            int                  `json:"level"`
	Background       string               `json:"background"`
	Alignment        string               `json:"alignment"`
	AbilityScores    domain.AbilityScores `json:"ability_scores"`
	HitPoints        int                  `json:"hit_points"`
	ArmorClass       int                  `json:"armor_class"`
	ExperiencePoints int                  `json:"experience_points"`
	Skills           []string             `json:"skills"`
	Equipment        []string             `json:"equipment"`
	Spells           []string             `json:"spells"`
	Notes            string               `json:"notes"`
	AvatarURL        string               `json:"avatar_url"`
}

// UpdateCharacterRequest payload for partial character updates.
type UpdateCharacterRequest struct {
	Name             *string  `json:"name"`
	Level            *int     `json:"level"`
	HitPoints        *int     `json:"hit_points"`
	ArmorClass       *int     `json:"armor_class"`
	ExperiencePoints *int     `json:"experience_points"`
	Skills           []string `json:"skills"`
	Equipment        []string `json:"equipment"`
	Spells           []string `json:"spells"`
	Notes            *string  `json:"notes"`
	AvatarURL        *string  `json:"avatar_url"`
}

// CharacterResponse is the public view of a character sheet.
type CharacterResponse struct {
	ID               string               `json:"id"`
	UserID           string               `json:"user_id"`
	Name             string               `json:"name"`
	Race             string               `json:"race"`
	Class            string               `json:"class"`
	Level            int                  `json:"level"`
	Background       string               `json:"background,omitempty"`
	Alignment        string               `json:"alignment,omitempty"`
	AbilityScores    domain.AbilityScores `json:"ability_scores"`
	HitPoints        int                  `json:"hit_points"`
	ArmorClass       int                  `json:"armor_class"`
	ExperiencePoints int                  `json:"experience_points"`
	Skills           []string             `json:"skills"`
	Equipment        []string             `json:"equipment"`
	Spells           []string             `json:"spells"`
	Notes            string               `json:"notes,omitempty"`
	AvatarURL        string               `json:"avatar_url,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// CharacterListResponse wraps a paginated listing.
type CharacterListResponse struct {
	Characters []CharacterResponse `json:"characters"`
	Total      int                 `json:"total"`
	Limit      int                 `json:"limit"`
	Offset     int                 `json:"offset"`
}

// NewCharacterResponse maps a domain character to its public view.
func NewCharacterResponse(ch *domain.Character) CharacterResponse {
	return CharacterResponse{
		ID:               ch.ID,
		UserID:           ch.UserID,
		Name:             ch.Name,
		Race:             ch.Race,
		Class:            ch.Class,
		Level:            ch.Level,
		Background:       ch.Background,
		Alignment:        ch.Alignment,
		AbilityScores:    ch.AbilityScores,
		HitPoints:        ch.HitPoints,
		ArmorClass:       ch.ArmorClass,
		ExperiencePoints: ch.ExperiencePoints,
		Skills:           ch.Skills,
		Equipment:        ch.Equipment,
		Spells:           ch.Spells,
		Notes:            ch.Notes,
		AvatarURL:        ch.AvatarURL,
		CreatedAt:        ch.CreatedAt,
		UpdatedAt:        ch.UpdatedAt,
	}
}
