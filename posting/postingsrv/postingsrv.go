package postingsrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Ray3n-Hamd1/kariera/pkg/kernel"
	"github.com/Ray3n-Hamd1/kariera/pkg/logx"
	"github.com/Ray3n-Hamd1/kariera/posting"
)

// Service implements the posting use cases: manual submission, the sample
// feed refresh, lookups, and lifecycle transitions.
type Service struct {
	repo posting.Repository
	feed FeedSource
}

// NewService creates the posting service. feed may be nil when feed refresh
// is not wired.
func NewService(repo posting.Repository, feed FeedSource) *Service {
	return &Service{repo: repo, feed: feed}
}

// SubmitPosting validates and stores a manually submitted posting. Submitting
// the same ID again replaces the earlier version.
func (s *Service) SubmitPosting(ctx context.Context, req posting.SubmitPostingRequest) (*posting.PostingResponse, error) {
	if req.Title == "" || req.Company == "" || req.Description == "" || req.JobURL == "" {
		return nil, posting.ErrInvalidPosting().
			WithDetail("reason", "title, company, description and job_url are required")
	}

	jobType := posting.JobType(req.JobType)
	if req.JobType != "" && !jobType.IsValid() {
		return nil, posting.ErrInvalidPosting().
			WithDetail("job_type", req.JobType)
	}
	if req.JobType == "" {
		jobType = posting.JobTypeFullTime
	}

	id := kernel.NewPostingID(req.ID)
	if id.IsEmpty() {
		id = kernel.NewPostingID("job-" + uuid.New().String())
	}

	p := &posting.JobPosting{
		ID:          id,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Description: req.Description,
		JobURL:      req.JobURL,
		IsRemote:    req.IsRemote,
		JobType:     jobType,
		Salary:      req.Salary,
		Skills:      req.Skills,
		Source:      "manual",
		IsActive:    true,
		PostedAt:    time.Now(),
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	logx.Infof("Posting submitted: %s (%s at %s)", p.ID, p.Title, p.Company)
	return posting.ToPostingResponse(p), nil
}

// GetPosting retrieves a posting and records the view.
func (s *Service) GetPosting(ctx context.Context, id kernel.PostingID) (*posting.PostingResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementViewCount(ctx, id); err != nil {
		// The lookup succeeded; a lost view count is not worth failing over.
		logx.Warnf("Failed to record view for posting %s: %v", id, err)
	} else {
		p.ViewCount++
	}

	return posting.ToPostingResponse(p), nil
}

// ListPostings returns a page of postings, newest first.
func (s *Service) ListPostings(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[posting.PostingResponse], error) {
	page, err := s.repo.List(ctx, pagination)
	if err != nil {
		return nil, err
	}

	items := make([]posting.PostingResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *posting.ToPostingResponse(&page.Items[i]))
	}

	return kernel.NewPaginated(items, page.Page.Number, page.Page.Size, page.Page.Total), nil
}

// DeactivatePosting marks a posting inactive.
func (s *Service) DeactivatePosting(ctx context.Context, id kernel.PostingID) error {
	return s.repo.Deactivate(ctx, id)
}

// ExpirePosting marks a posting expired and inactive.
func (s *Service) ExpirePosting(ctx context.Context, id kernel.PostingID) error {
	return s.repo.Expire(ctx, id)
}

// RecordApplication bumps a posting's application counter.
func (s *Service) RecordApplication(ctx context.Context, id kernel.PostingID) error {
	return s.repo.IncrementApplicationCount(ctx, id)
}

// RefreshFeed pulls the configured feed and upserts every posting it
// returns. Postings keep their feed-assigned IDs, so repeated refreshes
// update in place rather than duplicate.
func (s *Service) RefreshFeed(ctx context.Context) (int, error) {
	if s.feed == nil {
		return 0, nil
	}

	batch, err := s.feed.Fetch(ctx)
	if err != nil {
		return 0, err
	}

	stored := 0
	for _, p := range batch {
		if err := s.repo.Upsert(ctx, p); err != nil {
			logx.Errorf("Failed to store feed posting %s: %v", p.ID, err)
			continue
		}
		stored++
	}

	logx.Infof("Feed refresh stored %d/%d postings", stored, len(batch))
	return stored, nil
}

// ExpireStale expires active postings older than maxAge. Expired postings
// stay in storage for history but stop being listed or re-indexed.
func (s *Service) ExpireStale(ctx context.Context, maxAge time.Duration) (int, error) {
	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	expired := 0
	for _, p := range active {
		if p.PostedAt.After(cutoff) {
			continue
		}
		if err := s.repo.Expire(ctx, p.ID); err != nil {
			logx.Errorf("Failed to expire posting %s: %v", p.ID, err)
			continue
		}
		expired++
	}

	if expired > 0 {
		logx.Infof("Expired %d stale postings", expired)
	}
	return expired, nil
}
