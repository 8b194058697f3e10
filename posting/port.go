package posting

import (
	"context"

	"github.com/Ray3n-Hamd1/kariera/pkg/kernel"
)

type Repository interface {
	// Upsert creates or replaces a posting by ID.
	Upsert(ctx context.Context, posting *JobPosting) error

	// GetByID retrieves a posting by ID.
	GetByID(ctx context.Context, id kernel.PostingID) (*JobPosting, error)

	// List retrieves postings with pagination, newest first.
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[JobPosting], error)

	// ListActive retrieves every active posting.
	ListActive(ctx context.Context) ([]*JobPosting, error)

	// ListActiveByIDs retrieves the active postings among the given IDs.
	ListActiveByIDs(ctx context.Context, ids []kernel.PostingID) ([]*JobPosting, error)

	// Deactivate marks a posting inactive.
	Deactivate(ctx context.Context, id kernel.PostingID) error

	// Expire marks a posting expired and inactive.
	Expire(ctx context.Context, id kernel.PostingID) error

	// IncrementViewCount bumps the view counter.
	IncrementViewCount(ctx context.Context, id kernel.PostingID) error

	// IncrementApplicationCount bumps the application counter.
	IncrementApplicationCount(ctx context.Context, id kernel.PostingID) error

	// CountActive counts active postings.
	CountActive(ctx context.Context) (int64, error)
}
