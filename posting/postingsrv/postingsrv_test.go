package postingsrv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ray3n-Hamd1/kariera/pkg/errx"
	"github.com/Ray3n-Hamd1/kariera/pkg/kernel"
	"github.com/Ray3n-Hamd1/kariera/posting"
)

// fakeRepo is an in-memory posting.Repository.
type fakeRepo struct {
	postings map[kernel.PostingID]*posting.JobPosting
	failAll  bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{postings: map[kernel.PostingID]*posting.JobPosting{}}
}

func (r *fakeRepo) Upsert(_ context.Context, p *posting.JobPosting) error {
	if r.failAll {
		return posting.ErrStorageFailed()
	}
	cp := *p
	r.postings[p.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id kernel.PostingID) (*posting.JobPosting, error) {
	p, ok := r.postings[id]
	if !ok {
		return nil, posting.ErrPostingNotFound()
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) List(_ context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[posting.JobPosting], error) {
	pagination = pagination.Normalize()
	items := make([]posting.JobPosting, 0, len(r.postings))
	for _, p := range r.postings {
		items = append(items, *p)
	}
	return kernel.NewPaginated(items, pagination.Page, pagination.PageSize, len(items)), nil
}

func (r *fakeRepo) ListActive(_ context.Context) ([]*posting.JobPosting, error) {
	var active []*posting.JobPosting
	for _, p := range r.postings {
		if p.IsActive {
			cp := *p
			active = append(active, &cp)
		}
	}
	return active, nil
}

func (r *fakeRepo) ListActiveByIDs(ctx context.Context, ids []kernel.PostingID) ([]*posting.JobPosting, error) {
	var out []*posting.JobPosting
	for _, id := range ids {
		if p, ok := r.postings[id]; ok && p.IsActive {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepo) Deactivate(_ context.Context, id kernel.PostingID) error {
	p, ok := r.postings[id]
	if !ok {
		return posting.ErrPostingNotFound()
	}
	p.Deactivate()
	return nil
}

func (r *fakeRepo) Expire(_ context.Context, id kernel.PostingID) error {
	p, ok := r.postings[id]
	if !ok {
		return posting.ErrPostingNotFound()
	}
	p.Expire()
	return nil
}

func (r *fakeRepo) IncrementViewCount(_ context.Context, id kernel.PostingID) error {
	p, ok := r.postings[id]
	if !ok {
		return posting.ErrPostingNotFound()
	}
	p.ViewCount++
	return nil
}

func (r *fakeRepo) IncrementApplicationCount(_ context.Context, id kernel.PostingID) error {
	p, ok := r.postings[id]
	if !ok {
		return posting.ErrPostingNotFound()
	}
	p.ApplicationCount++
	return nil
}

func (r *fakeRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, p := range r.postings {
		if p.IsActive {
			n++
		}
	}
	return n, nil
}

func validRequest() posting.SubmitPostingRequest {
	return posting.SubmitPostingRequest{
		Title:       "Backend Engineer",
		Company:     "TechCorp",
		Location:    "Berlin, Germany",
		Description: "Build APIs in Go",
		JobURL:      "https://example.com/jobs/backend-engineer",
		JobType:     "full-time",
		Skills:      []string{"Go"},
	}
}

func TestSubmitPostingStoresAndDefaults(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	resp, err := svc.SubmitPosting(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.True(t, resp.IsActive)
	assert.Equal(t, posting.JobTypeFullTime, resp.JobType)

	stored, ok := repo.postings[kernel.PostingID(resp.ID)]
	require.True(t, ok)
	assert.Equal(t, "manual", stored.Source)
}

func TestSubmitPostingRejectsMissingFields(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	req := validRequest()
	req.Description = ""

	_, err := svc.SubmitPosting(context.Background(), req)
	require.Error(t, err)

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, string(posting.CodeInvalidPosting), e.Code)
}

func TestSubmitPostingRejectsUnknownJobType(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	req := validRequest()
	req.JobType = "gig"

	_, err := svc.SubmitPosting(context.Background(), req)
	require.Error(t, err)
}

func TestSubmitPostingSameIDReplaces(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	req := validRequest()
	req.ID = "job-1"
	_, err := svc.SubmitPosting(context.Background(), req)
	require.NoError(t, err)

	req.Title = "Senior Backend Engineer"
	_, err = svc.SubmitPosting(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, repo.postings, 1)
	assert.Equal(t, "Senior Backend Engineer", repo.postings["job-1"].Title)
}

func TestGetPostingCountsView(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	req := validRequest()
	req.ID = "job-1"
	_, err := svc.SubmitPosting(context.Background(), req)
	require.NoError(t, err)

	resp, err := svc.GetPosting(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ViewCount)
	assert.Equal(t, 1, repo.postings["job-1"].ViewCount)
}

func TestRefreshFeedStoresBatch(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, NewSampleFeed(10))

	stored, err := svc.RefreshFeed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, stored)
	assert.Len(t, repo.postings, 10)

	for _, p := range repo.postings {
		assert.True(t, p.IsIngestible(), "feed posting %s must be ingestible", p.ID)
		assert.Equal(t, "scraped", p.Source)
	}
}

func TestRefreshFeedWithoutFeed(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	stored, err := svc.RefreshFeed(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stored)
}

func TestExpireStale(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	old := &posting.JobPosting{
		ID:       "job-old",
		Title:    "Old",
		Company:  "X",
		IsActive: true,
		PostedAt: time.Now().Add(-40 * 24 * time.Hour),
	}
	fresh := &posting.JobPosting{
		ID:       "job-fresh",
		Title:    "Fresh",
		Company:  "X",
		IsActive: true,
		PostedAt: time.Now(),
	}
	repo.postings[old.ID] = old
	repo.postings[fresh.ID] = fresh

	expired, err := svc.ExpireStale(context.Background(), 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	assert.False(t, repo.postings["job-old"].IsActive)
	assert.True(t, repo.postings["job-old"].IsExpired())
	assert.True(t, repo.postings["job-fresh"].IsActive)
}

func TestRefreshFeedContinuesOnStorageError(t *testing.T) {
	repo := newFakeRepo()
	repo.failAll = true
	svc := NewService(repo, NewSampleFeed(3))

	stored, err := svc.RefreshFeed(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stored)
}

func TestSampleFeedFetch(t *testing.T) {
	feed := NewSampleFeed(25)

	batch, err := feed.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, batch, 25)

	for _, p := range batch {
		assert.NotEmpty(t, p.ID)
		assert.True(t, p.IsIngestible())
		assert.Contains(t, []posting.JobType{posting.JobTypeFullTime, posting.JobTypeInternship}, p.JobType)
		require.NotNil(t, p.Salary)
		assert.Equal(t, "USD", p.Salary.Currency)
	}
}

func TestSampleFeedUniqueIDsPerBatch(t *testing.T) {
	feed := NewSampleFeed(30)

	batch, err := feed.Fetch(context.Background())
	require.NoError(t, err)

	seen := map[kernel.PostingID]bool{}
	for _, p := range batch {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}
