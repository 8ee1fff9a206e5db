package updates

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mesadeayuda/helpdesk/internal/repository"
)

// Poller re-fetches ticket state on a fixed interval and notifies the
// broadcaster with only the tickets whose status or last-updated stamp
// moved, sparing subscribers a full redraw on every tick.
//
// The watermark advances to the newest last_updated the poller has seen,
// so after the first tick the database clock is the only clock that
// matters and app/DB skew cannot drop or replay notifications.
type Poller struct {
	tickets     repository.TicketRepository
	broadcaster *Broadcaster
	interval    time.Duration
	logger      *zap.Logger
	watermark   time.Time
}

// NewPoller constructs a poller.
func NewPoller(tickets repository.TicketRepository, broadcaster *Broadcaster, interval time.Duration, logger *zap.Logger) *Poller {
	return &Poller{
		tickets:     tickets,
		broadcaster: broadcaster,
		interval:    interval,
		logger:      logger,
	}
}

// Run polls until the context is cancelled.
func (p *Poller) Run(ctx context.Context) {
	if p.watermark.IsZero() {
		p.watermark = time.Now()
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	changed, err := p.tickets.ListChangedSince(ctx, p.watermark)
	if err != nil {
		p.logger.Warn("poll tickets", zap.Error(err))
		return
	}
	if len(changed) == 0 {
		return
	}

	set := ChangeSet{ObservedAt: time.Now()}
	for _, t := range changed {
		if t.LastUpdated.After(p.watermark) {
			p.watermark = t.LastUpdated
		}
		set.Changes = append(set.Changes, Change{
			TicketID:    t.ID,
			Status:      t.EffectiveStatus(),
			LastUpdated: t.LastUpdated,
		})
	}
	p.broadcaster.Notify(set)
}
