package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/roleforge-api/internal/events"
)

// NotificationService logs domain events as they occur; a real deployment
// would fan them out to email or webhooks.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventCharacterCreated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventCampaignCreated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventSessionScheduled, n.handleEvent)
	n.dispatcher.Subscribe(events.EventSessionStatusChanged, n.handleEvent)
	n.dispatcher.Subscribe(events.EventAIGenerationCompleted, n.handleEvent)
}

func (n *NotificationService) handleEvent(_ context.Context, event events.Event) error {
	n.logger.Info("domain event",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	return nil
}
