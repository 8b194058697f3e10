// Package schedule drives the periodic feed refresh and re-indexing loop.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Ray3n-Hamd1/kariera/matching"
	"github.com/Ray3n-Hamd1/kariera/pkg/logx"
	"github.com/Ray3n-Hamd1/kariera/posting/postingsrv"
)

// Scheduler wraps robfig/cron and manages the refresh loop: pull the feed,
// expire stale postings, then queue a full re-index for the ingest workers.
type Scheduler struct {
	cron     *cron.Cron
	postings *postingsrv.Service
	queue    matching.IngestQueue
	interval time.Duration
	maxAge   time.Duration
}

// New creates a Scheduler that fires every interval.
func New(postings *postingsrv.Service, queue matching.IngestQueue, interval, maxAge time.Duration) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		postings: postings,
		queue:    queue,
		interval: interval,
		maxAge:   maxAge,
	}
}

// Start registers the refresh job and starts the scheduler. One refresh runs
// immediately so the index is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, func() {
		s.runRefresh(ctx)
	}); err != nil {
		return fmt.Errorf("schedule refresh job: %w", err)
	}

	s.cron.Start()
	logx.Infof("Scheduler started, refreshing every %s", s.interval)

	// Run immediately on startup (non-blocking)
	go s.runRefresh(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	logx.Info("Scheduler stopped")
}

func (s *Scheduler) runRefresh(ctx context.Context) {
	logx.Info("Scheduled refresh starting")

	if _, err := s.postings.RefreshFeed(ctx); err != nil {
		logx.Errorf("Scheduled feed refresh failed: %v", err)
	}

	if _, err := s.postings.ExpireStale(ctx, s.maxAge); err != nil {
		logx.Errorf("Scheduled expiry pass failed: %v", err)
	}

	trigger := matching.IngestTrigger{
		RequestedBy: "scheduler",
		EnqueuedAt:  time.Now(),
	}
	if err := s.queue.Enqueue(ctx, trigger); err != nil {
		logx.Errorf("Failed to queue scheduled re-index: %v", err)
		return
	}

	logx.Info("Scheduled refresh queued re-index")
}
