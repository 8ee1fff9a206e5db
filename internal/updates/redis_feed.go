package updates

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mesadeayuda/helpdesk/internal/domain"
	"github.com/mesadeayuda/helpdesk/internal/events"
)

// RedisFeed is the push transport: ticket mutations publish to a Redis
// channel, and every service instance forwards received messages to its
// local broadcaster. Works across processes, unlike the poller's
// in-process comparison.
type RedisFeed struct {
	client      *redis.Client
	channel     string
	broadcaster *Broadcaster
	logger      *zap.Logger
}

// NewRedisFeed constructs a feed over the given channel.
func NewRedisFeed(client *redis.Client, channel string, broadcaster *Broadcaster, logger *zap.Logger) *RedisFeed {
	return &RedisFeed{
		client:      client,
		channel:     channel,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// RegisterHandlers publishes a change message for every ticket mutation
// event.
func (f *RedisFeed) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventTicketCreated,
		events.EventTicketClaimed,
		events.EventTicketCompleted,
		events.EventTicketCancelled,
	} {
		dispatcher.Subscribe(eventType, f.handleEvent)
	}
}

func (f *RedisFeed) handleEvent(ctx context.Context, event events.Event) error {
	status := domain.TicketStatusNotStarted
	if payload, ok := event.Payload.(events.TicketStatusChangedPayload); ok {
		status = payload.NewStatus
	}
	change := Change{
		TicketID:    event.TicketID,
		Status:      status,
		LastUpdated: event.Timestamp,
	}
	body, err := json.Marshal(change)
	if err != nil {
		return err
	}
	if err := f.client.Publish(ctx, f.channel, body).Err(); err != nil {
		f.logger.Warn("publish ticket change", zap.Error(err))
		return err
	}
	return nil
}

// Run subscribes to the channel and forwards messages until the context
// is cancelled.
func (f *RedisFeed) Run(ctx context.Context) {
	sub := f.client.Subscribe(ctx, f.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var change Change
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				f.logger.Warn("decode ticket change", zap.Error(err))
				continue
			}
			f.broadcaster.Notify(ChangeSet{
				Changes:    []Change{change},
				ObservedAt: time.Now(),
			})
		}
	}
}
