package domain

import "time"

// AbilityScores holds the six core D&D 5e ability scores.
type AbilityScores struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// Character is the domain model for player character sheets.
type Character struct {
	ID               string
	UserID           string
	Name             string
	Race             string
	Class            string
	Level            int
	Background       string
	Alignment        string
	AbilityScores    AbilityScores
	HitPoints        int
	ArmorClass       int
	ExperiencePoints int
	Skills           []string
	Equipment        []string
	Spells           []string
	Notes            string
	AvatarURL        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CharacterUpdate carries the optional fields of a partial character update.
type CharacterUpdate struct {
	Name             *string
	Level            *int
	HitPoints        *int
	ArmorClass       *int
	ExperiencePoints *int
	Skills           []string
	Equipment        []string
	Spells           []string
	Notes            *string
	AvatarURL        *string
}
