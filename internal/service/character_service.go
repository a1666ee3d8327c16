package service

import (
	"context"
	"errors"
	"fmt"
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

// CharacterService coordinates character sheet workflows.
type CharacterService struct {
	characters repository.CharacterRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCharacterService constructs the service.
func NewCharacterService(characters repository.CharacterRepository, dispatcher events.Dispatcher, logger *zap.Logger) *CharacterService {
	return &CharacterService{characters: characters, dispatcher: dispatcher, logger: logger}
}

// CreateCharacter validates and persists a new character sheet for the owner.
func (s *CharacterService) CreateCharacter(ctx context.Context, userID string, ch *domain.Character) (*domain.Character, error) {
	ch.UserID = userID
	ch.Name = strings.TrimSpace(ch.Name)
	if ch.Level == 0 {
		ch.Level = 1
	}

	if err := validateCharacter(ch); err != nil {
		return nil, err
	}

	if err := s.characters.Create(ctx, ch); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventCharacterCreated,
		ActorID: userID,
		Payload: events.CharacterCreatedPayload{
			CharacterID: ch.ID,
			Name:        ch.Name,
			Class:       ch.Class,
			Race:        ch.Race,
			Level:       ch.Level,
		},
	})
	return ch, nil
}

// ListCharacters returns the owner's characters with pagination metadata.
func (s *CharacterService) ListCharacters(ctx context.Context, userID string, filter repository.CharacterFilter) ([]domain.Character, int, error) {
	return s.characters.ListByOwner(ctx, userID, filter)
}

// GetCharacter fetches a character ensuring ownership. Characters of other
// owners are reported as not found rather than forbidden.
func (s *CharacterService) GetCharacter(ctx context.Context, userID, characterID string) (*domain.Character, error) {
	ch, err := s.characters.GetByID(ctx, characterID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("character", nil)
		}
		return nil, err
	}
	if ch.UserID != userID {
		return nil, apperrors.NewNotFound("character", nil)
	}
	return ch, nil
}

// UpdateCharacter applies a partial update to an owned character.
func (s *CharacterService) UpdateCharacter(ctx context.Context, userID, characterID string, upd domain.CharacterUpdate) (*domain.Character, error) {
	ch, err := s.GetCharacter(ctx, userID, characterID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		ch.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Level != nil {
		ch.Level = *upd.Level
	}
	if upd.HitPoints != nil {
		ch.HitPoints = *upd.HitPoints
	}
	if upd.ArmorClass != nil {
		ch.ArmorClass = *upd.ArmorClass
	}
	if upd.ExperiencePoints != nil {
		ch.ExperiencePoints = *upd.ExperiencePoints
	}
	if upd.Skills != nil {
		ch.Skills = upd.Skills
	}
	if upd.Equipment != nil {
		ch.Equipment = upd.Equipment
	}
	if upd.Spells != nil {
		ch.Spells = upd.Spells
	}
	if upd.Notes != nil {
		ch.Notes = *upd.Notes
	}
	if upd.AvatarURL != nil {
		ch.AvatarURL = *upd.AvatarURL
	}

	if err := validateCharacter(ch); err != nil {
		return nil, err
	}
	if err := s.characters.Update(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

// DeleteCharacter removes an owned character.
func (s *CharacterService) DeleteCharacter(ctx context.Context, userID, characterID string) error {
	if _, err := s.GetCharacter(ctx, userID, characterID); err != nil {
		return err
	}
	return s.characters.Delete(ctx, characterID)
}

func (s *CharacterService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}

func validateCharacter(ch *domain.Character) error {
	if ch.Name == "" || ch.Race == "" || ch.Class == "" {
		return apperrors.NewValidationError("name, race and class are required", nil)
	}
	if ch.Level < 1 || ch.Level > 20 {
		return apperrors.NewValidationError("level must be between 1 and 20", nil)
	}
	if ch.HitPoints < 1 || ch.HitPoints > 1000 {
		return apperrors.NewValidationError("hit_points must be between 1 and 1000", nil)
	}
	if ch.ArmorClass < 1 || ch.ArmorClass > 30 {
		return apperrors.NewValidationError("armor_class must be between 1 and 30", nil)
	}
	if ch.ExperiencePoints < 0 {
		return apperrors.NewValidationError("experience_points must not be negative", nil)
	}

	scores := map[string]int{
		"strength":     ch.AbilityScores.Strength,
		"dexterity":    ch.AbilityScores.Dexterity,
		"constitution": ch.AbilityScores.Constitution,
		"intelligence": ch.AbilityScores.Intelligence,
		"wisdom":       ch.AbilityScores.Wisdom,
		"charisma":     ch.AbilityScores.Charisma,
	}
	for name, score := range scores {
		if score < 1 || score > 30 {
			return apperrors.NewValidationError(fmt.Sprintf("%s must be between 1 and 30", name), nil)
		}
	}
	return nil
}
