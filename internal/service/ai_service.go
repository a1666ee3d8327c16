package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/roleforge-api/internal/ai"
	"github.com/spec-kit/roleforge-api/internal/config"
	"github.com/spec-kit/roleforge-api/internal/events"
	"github.com/spec-kit/roleforge-api/internal/persistence"
	apperrors "github.com/spec-kit/roleforge-api/pkg/util"
)

const (
	backstorySystemPrompt = "You are a creative assistant for tabletop role-playing games. " +
		"Write an evocative character backstory grounded in the details provided."
	npcSystemPrompt = "You are a game master's assistant. Create a non-player character " +
		"with a name, appearance, personality, motivation and a plot hook."
)

// GenerationResult is the outcome of an AI generation request.
type GenerationResult struct {
	RequestID string
	Content   string
	ImageURL  string
	Cached    bool
}

// AIService orchestrates content generation against the external provider,
// with a Redis cache in front keyed by prompt.
type AIService struct {
	client     *ai.Client
	cache      *persistence.Redis
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAIService constructs the service.
func NewAIService(cfg config.AIConfig, client *ai.Client, cache *persistence.Redis, dispatcher events.Dispatcher, logger *zap.Logger) *AIService {
	return &AIService{
		client:     client,
		cache:      cache,
		cacheTTL:   cfg.CacheTTL(),
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// GenerateBackstory produces a character backstory for the prompt.
func (s *AIService) GenerateBackstory(ctx context.Context, userID, prompt string) (*GenerationResult, error) {
	return s.generateText(ctx, userID, "backstory", backstorySystemPrompt, prompt)
}

// GenerateNPC produces a non-player character description for the prompt.
func (s *AIService) GenerateNPC(ctx context.Context, userID, prompt string) (*GenerationResult, error) {
	return s.generateText(ctx, userID, "npc", npcSystemPrompt, prompt)
}

// GenerateImage produces artwork for the prompt. Image URLs are short-lived
// upstream and therefore never cached.
func (s *AIService) GenerateImage(ctx context.Context, userID, prompt string) (*GenerationResult, error) {
	requestID := uuid.NewString()

	url, err := s.client.GenerateImage(ctx, prompt)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("ai", err)
	}

	s.publishCompleted(ctx, userID, requestID, "image", false)
	return &GenerationResult{RequestID: requestID, ImageURL: url}, nil
}

func (s *AIService) generateText(ctx context.Context, userID, kind, system, prompt string) (*GenerationResult, error) {
	requestID := uuid.NewString()
	cacheKey := fmt.Sprintf("ai:%s:%s", kind, hashPrompt(prompt))

	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		s.publishCompleted(ctx, userID, requestID, kind, true)
		return &GenerationResult{RequestID: requestID, Content: cached, Cached: true}, nil
	}

	content, err := s.client.Complete(ctx, system, prompt)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("ai", err)
	}

	s.cacheSet(ctx, cacheKey, content)
	s.publishCompleted(ctx, userID, requestID, kind, false)
	return &GenerationResult{RequestID: requestID, Content: content}, nil
}

func (s *AIService) cacheGet(ctx context.Context, key string) (string, bool) {
	if s.cache == nil || s.cache.Client == nil || s.cacheTTL <= 0 {
		return "", false
	}
	val, err := s.cache.Client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (s *AIService) cacheSet(ctx context.Context, key, value string) {
	if s.cache == nil || s.cache.Client == nil || s.cacheTTL <= 0 {
		return
	}
	if err := s.cache.Client.Set(ctx, key, value, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("cache generation result failed", zap.Error(err))
	}
}

func (s *AIService) publishCompleted(ctx context.Context, userID, requestID, kind string, cached bool) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAIGenerationCompleted,
		ActorID:   userID,
		Timestamp: time.Now(),
		Payload: events.AIGenerationCompletedPayload{
			RequestID: requestID,
			Kind:      kind,
			Cached:    cached,
		},
	})
}

func hashPrompt(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
