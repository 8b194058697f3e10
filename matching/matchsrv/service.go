package matchsrv

import (
	"context"
	"strings"
	"time"

	"github.com/Ray3n-Hamd1/kariera/internal/ai/embeddings"
	"github.com/Ray3n-Hamd1/kariera/matching"
	"github.com/Ray3n-Hamd1/kariera/pkg/kernel"
	"github.com/Ray3n-Hamd1/kariera/pkg/logx"
)

// DefaultCallTimeout bounds each embedding, vector-store and generative-AI
// call. The pipeline otherwise relies on the originating request's context.
const DefaultCallTimeout = 30 * time.Second

// matchSeparator joins formatted match blocks into the composite string
// handed to the formatter stage.
const matchSeparator = "\n\n---\n\n"

// Service orchestrates one recommendation request: structuring, query
// building, query embedding, vector search and recommendation formatting.
// Each request's intermediate state is local to the call; concurrent
// requests share nothing but the vector index.
type Service struct {
	structurer  *Structurer
	formatter   *Formatter
	embedder    embeddings.Provider
	store       matching.VectorStore
	resumes     matching.ResumeSource
	queue       matching.IngestQueue
	callTimeout time.Duration
}

// NewService creates the matching service.
func NewService(
	structurer *Structurer,
	formatter *Formatter,
	embedder embeddings.Provider,
	store matching.VectorStore,
	resumes matching.ResumeSource,
	queue matching.IngestQueue,
) *Service {
	return &Service{
		structurer:  structurer,
		formatter:   formatter,
		embedder:    embedder,
		store:       store,
		resumes:     resumes,
		queue:       queue,
		callTimeout: DefaultCallTimeout,
	}
}

// WithCallTimeout overrides the per-call timeout.
func (s *Service) WithCallTimeout(d time.Duration) *Service {
	s.callTimeout = d
	return s
}

// ============================================================================
// Recommendations
// ============================================================================

// GetRecommendations is the single entry point for the recommendation HTTP
// handler: it loads the user's stored resume text and runs the full pipeline.
func (s *Service) GetRecommendations(ctx context.Context, userID kernel.UserID, params matching.SearchParams) ([]matching.JobRecommendation, error) {
	rawText, err := s.resumes.RawResumeText(ctx, userID)
	if err != nil {
		return nil, matching.ErrResumeNotFound().WithCause(err).
			WithDetail("user_id", userID.String())
	}
	return s.RecommendFromText(ctx, rawText, params)
}

// RecommendFromText runs the full pipeline on raw resume text. Any stage
// failing is terminal for the request; nothing is retried and nothing
// partial is delivered.
func (s *Service) RecommendFromText(ctx context.Context, rawText string, params matching.SearchParams) ([]matching.JobRecommendation, error) {
	params = params.Normalize()
	logx.Infof("Recommendation request: role=%q country=%q topK=%d", params.JobTitle, params.Country, params.NumberOfJobs)

	logx.Debugf("Request stage: %s", matching.StageStructuring)
	resume, err := s.structure(ctx, rawText)
	if err != nil {
		logx.Debugf("Request stage: %s", matching.StageFailed)
		return nil, err
	}

	rawMatches, err := s.Match(ctx, resume, params)
	if err != nil {
		logx.Debugf("Request stage: %s", matching.StageFailed)
		return nil, err
	}

	logx.Debugf("Request stage: %s", matching.StageFormatting)
	jobs, err := s.formatWithTimeout(ctx, rawMatches)
	if err != nil {
		logx.Debugf("Request stage: %s", matching.StageFailed)
		return jobs, err
	}

	logx.Debugf("Request stage: %s", matching.StageDelivered)
	return jobs, nil
}

// Match builds the search query, embeds it with the same backend that
// ingested the index, and runs the vector query. The result is the composite
// plain-text block for the formatter stage; an empty index yields an empty
// string, not an error.
func (s *Service) Match(ctx context.Context, resume *matching.StructuredResume, params matching.SearchParams) (string, error) {
	params = params.Normalize()

	logx.Debugf("Request stage: %s", matching.StageQueryBuilding)
	query := BuildSearchQuery(resume, params.JobTitle, params.Country)

	logx.Debugf("Request stage: %s", matching.StageEmbedding)
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	vector, err := s.embedder.Embed(callCtx, query)
	if err != nil {
		return "", matching.ErrProviderFailed().WithCause(err).
			WithDetail("operation", "query_embedding")
	}

	logx.Debugf("Request stage: %s", matching.StageVectorSearch)
	queryCtx, cancelQuery := context.WithTimeout(ctx, s.callTimeout)
	defer cancelQuery()
	matches, err := s.store.Query(queryCtx, vector, s.embedder.Model(), params.NumberOfJobs)
	if err != nil {
		return "", err
	}

	logx.Infof("Vector search returned %d matches", len(matches))
	return FormatMatches(matches), nil
}

// ============================================================================
// Ingestion trigger
// ============================================================================

// TriggerIngest enqueues an on-demand ingestion run for the worker.
func (s *Service) TriggerIngest(ctx context.Context, trigger matching.IngestTrigger) (int64, error) {
	if trigger.EnqueuedAt.IsZero() {
		trigger.EnqueuedAt = time.Now()
	}
	if err := s.queue.Enqueue(ctx, trigger); err != nil {
		return 0, matching.ErrEnqueueFailed().WithCause(err)
	}

	pending, err := s.queue.Size(ctx)
	if err != nil {
		// Trigger landed; size is informational only.
		logx.Warnf("Failed to read ingest queue size: %v", err)
		pending = 0
	}
	return pending, nil
}

// ============================================================================
// Helpers
// ============================================================================

func (s *Service) structure(ctx context.Context, rawText string) (*matching.StructuredResume, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.structurer.Structure(callCtx, rawText)
}

func (s *Service) formatWithTimeout(ctx context.Context, rawMatches string) ([]matching.JobRecommendation, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.formatter.Format(callCtx, rawMatches)
}

// FormatMatches renders each match as a plain-text block (Title, Company,
// description, Location, Job URL, blank fields omitted) and joins the blocks
// with a fixed separator.
func FormatMatches(matches []matching.QueryMatch) string {
	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		var lines []string
		if title := metaString(m.Metadata, "title"); title != "" {
			lines = append(lines, "Title: "+title)
		}
		if company := metaString(m.Metadata, "company"); company != "" {
			lines = append(lines, "Company: "+company)
		}
		if description := metaString(m.Metadata, "description"); description != "" {
			lines = append(lines, description)
		}
		if location := metaString(m.Metadata, "location"); location != "" {
			lines = append(lines, "Location: "+location)
		}
		if jobURL := metaString(m.Metadata, "job_url"); jobURL != "" {
			lines = append(lines, "Job URL: "+jobURL)
		}
		if len(lines) > 0 {
			blocks = append(blocks, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(blocks, matchSeparator)
}

func metaString(meta map[string]any, key string) string {
	if meta == nil {
		return ""
	}
	if v, ok := meta[key].(string); ok {
		return v
	}
	return ""
}
