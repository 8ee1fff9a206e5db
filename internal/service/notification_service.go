package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/mesadeayuda/helpdesk/internal/events"
	"github.com/mesadeayuda/helpdesk/internal/observability"
)

// NotificationService logs ticket lifecycle events and feeds the event
// counters. It is the hook point for whatever delivery channel (email,
// webhook) gets added later.
type NotificationService struct {
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, metrics: metrics, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventTicketClaimed, n.handleEvent)
	n.dispatcher.Subscribe(events.EventTicketCompleted, n.handleEvent)
	n.dispatcher.Subscribe(events.EventTicketCancelled, n.handleEvent)
}

func (n *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	n.metrics.RecordTicketEvent(string(event.Type))
	n.logger.Info(string(event.Type),
		zap.String("ticket_id", event.TicketID),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	return nil
}
