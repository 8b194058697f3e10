package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Ray3n-Hamd1/kariera/matching"
	"github.com/Ray3n-Hamd1/kariera/matching/matchsrv"
	"github.com/Ray3n-Hamd1/kariera/pkg/kernel"
	"github.com/Ray3n-Hamd1/kariera/pkg/logx"
	"github.com/Ray3n-Hamd1/kariera/posting"
)

// dequeueTimeout bounds each blocking pop so workers notice a cancelled
// context promptly.
const dequeueTimeout = 5 * time.Second

// IngestWorker consumes ingestion triggers from the queue and runs the
// chunk-embed-upsert pipeline over active postings. Triggers are coarse:
// one trigger reindexes either a set of postings or everything.
type IngestWorker struct {
	ingester *matchsrv.Ingester
	queue    matching.IngestQueue
	postings posting.Repository
	workers  int
}

func NewIngestWorker(ingester *matchsrv.Ingester, queue matching.IngestQueue, postings posting.Repository, workers int) *IngestWorker {
	if workers <= 0 {
		workers = 1
	}
	return &IngestWorker{
		ingester: ingester,
		queue:    queue,
		postings: postings,
		workers:  workers,
	}
}

// Start launches the worker pool. Workers run until ctx is cancelled.
func (w *IngestWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d ingest workers", w.workers)

	for i := 0; i < w.workers; i++ {
		go w.processTriggers(ctx, i)
	}
}

func (w *IngestWorker) processTriggers(ctx context.Context, workerID int) {
	logx.Infof("Ingest worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Ingest worker %d stopping", workerID)
			return
		default:
			data, err := w.queue.Dequeue(ctx, dequeueTimeout)
			if err != nil {
				logx.Errorf("Ingest worker %d dequeue error: %v", workerID, err)
				continue
			}

			// Timeout with nothing queued
			if len(data) == 0 {
				continue
			}

			var trigger matching.IngestTrigger
			if err := json.Unmarshal(data, &trigger); err != nil {
				logx.Errorf("Ingest worker %d unmarshal error: %v (data: %s)", workerID, err, string(data))
				continue
			}

			logx.Infof("Ingest worker %d processing trigger from %s (%d postings)", workerID, trigger.RequestedBy, len(trigger.PostingIDs))
			if err := w.runTrigger(ctx, trigger); err != nil {
				logx.Errorf("Ingest worker %d trigger failed: %v", workerID, err)
			}
		}
	}
}

// runTrigger loads the postings a trigger names (all active ones when it
// names none) and indexes them.
func (w *IngestWorker) runTrigger(ctx context.Context, trigger matching.IngestTrigger) error {
	var (
		batch []*posting.JobPosting
		err   error
	)
	if len(trigger.PostingIDs) > 0 {
		ids := make([]kernel.PostingID, 0, len(trigger.PostingIDs))
		for _, id := range trigger.PostingIDs {
			ids = append(ids, kernel.PostingID(id))
		}
		batch, err = w.postings.ListActiveByIDs(ctx, ids)
	} else {
		batch, err = w.postings.ListActive(ctx)
	}
	if err != nil {
		return err
	}

	ingestible := batch[:0]
	for _, p := range batch {
		if p.IsIngestible() {
			ingestible = append(ingestible, p)
		}
	}

	if len(ingestible) == 0 {
		logx.Infof("Ingest worker: nothing to index")
		return nil
	}

	return w.ingester.Ingest(ctx, ingestible)
}
