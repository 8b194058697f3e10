package matching

import (
	"context"
	"time"

	"github.com/Ray3n-Hamd1/kariera/pkg/kernel"
)

// VectorStore stores embedding vectors with metadata and answers
// nearest-neighbor queries.
type VectorStore interface {
	// Upsert writes records, idempotent by ID. Implementations issue bounded
	// batches sequentially; a failure mid-sequence leaves earlier batches
	// committed.
	Upsert(ctx context.Context, records []VectorRecord) error

	// Query returns up to topK records nearest to vector, ordered by
	// descending similarity, with metadata. An empty index yields an empty
	// slice, not an error. The model tag must match the stored records'.
	Query(ctx context.Context, vector []float32, model string, topK int) ([]QueryMatch, error)
}

// ResumeSource supplies the plain resume text of a user. The text-extraction
// step that turns an uploaded document into this string lives outside the
// core.
type ResumeSource interface {
	RawResumeText(ctx context.Context, userID kernel.UserID) (string, error)
}

// IngestQueue carries on-demand ingestion triggers to the worker.
type IngestQueue interface {
	// Enqueue adds a trigger to the queue.
	Enqueue(ctx context.Context, trigger IngestTrigger) error

	// Dequeue blocks up to timeout for a trigger. A nil payload with a nil
	// error means the timeout elapsed with the queue empty.
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)

	// Size returns the number of pending triggers.
	Size(ctx context.Context) (int64, error)
}
