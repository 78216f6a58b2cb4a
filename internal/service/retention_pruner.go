package service

import (
	"context"
	"time"

	"github.com/diagnosis/patrol-checkpoints/internal/repository"
	"github.com/diagnosis/patrol-checkpoints/pkg/events"
	"github.com/diagnosis/patrol-checkpoints/pkg/logger"
)

// RetentionPruner periodically deletes attendance records older than the
// configured number of months. A retention of 0 disables it.
type RetentionPruner struct {
	repo      repository.AttendanceRepository
	publisher events.Publisher
	months    int
	interval  time.Duration
	now       func() time.Time
	started   bool
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewRetentionPruner(repo repository.AttendanceRepository, publisher events.Publisher, months int, interval time.Duration) *RetentionPruner {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &RetentionPruner{
		repo:      repo,
		publisher: publisher,
		months:    months,
		interval:  interval,
		now:       time.Now,
		done:      make(chan struct{}),
	}
}

// Start runs one prune immediately, then one per interval until ctx ends or Stop is called.
func (p *RetentionPruner) Start(ctx context.Context) {
	p.started = true
	if p.months <= 0 {
		logger.InfoContext(ctx, "Attendance retention disabled")
		close(p.done)
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)
	go p.loop(ctx)

	logger.InfoContext(ctx, "Attendance retention started", "months", p.months, "interval", p.interval.String())
}

// Stop signals the loop to exit and waits for it. It is a no-op before Start.
func (p *RetentionPruner) Stop() {
	if !p.started {
		return
	}
	if p.cancel != nil {
		p.cancel()
	}
	<-p.done
}

func (p *RetentionPruner) loop(ctx context.Context) {
	defer close(p.done)

	p.PruneOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.PruneOnce(ctx)
		}
	}
}

// PruneOnce deletes records scanned before now minus the retention and returns the count.
func (p *RetentionPruner) PruneOnce(ctx context.Context) int64 {
	cutoff := p.now().UTC().AddDate(0, -p.months, 0)
	deleted, err := p.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		logger.ErrorContext(ctx, "Attendance prune failed", "error", err)
		return 0
	}
	if deleted == 0 {
		return 0
	}

	logger.InfoContext(ctx, "Attendance pruned", "deleted", deleted, "cutoff", cutoff.Format(time.RFC3339))
	evt := events.AttendancePurgedEvent{Cutoff: cutoff, Deleted: deleted}
	if err := p.publisher.Publish(ctx, events.AttendancePurged, evt); err != nil {
		logger.WarnContext(ctx, "Failed to publish purge event", "error", err)
	}
	return deleted
}
