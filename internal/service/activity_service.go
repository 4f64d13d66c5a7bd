package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/taskboard/internal/events"
)

// ActivityService records an activity log line for every domain event, so
// operators can reconstruct who changed what without querying the store.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger) *ActivityService {
	return &ActivityService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to every mutation event.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range events.MutationEventTypes() {
		a.dispatcher.Subscribe(eventType, a.handleEvent)
	}
}

func (a *ActivityService) handleEvent(_ context.Context, event events.Event) error {
	a.logger.Info("activity",
		zap.String("event", string(event.Type)),
		zap.String("project_id", event.ProjectID),
		zap.String("actor_id", event.Actor.UserID),
		zap.String("actor_role", string(event.Actor.Role)),
		zap.Any("payload", event.Payload),
	)
	return nil
}
