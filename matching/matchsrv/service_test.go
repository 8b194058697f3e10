package matchsrv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ray3n-Hamd1/kariera/matching"
	"github.com/Ray3n-Hamd1/kariera/pkg/errx"
	"github.com/Ray3n-Hamd1/kariera/pkg/kernel"
)

// scriptedCompleter replays responses in order; the structurer consumes the
// first, the formatter the second.
type scriptedCompleter struct {
	responses []string
	prompts   []string
}

func (s *scriptedCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.prompts) > len(s.responses) {
		return "", errors.New("no scripted response left")
	}
	return s.responses[len(s.prompts)-1], nil
}

type fakeResumeSource struct {
	texts map[string]string
}

func (f *fakeResumeSource) RawResumeText(_ context.Context, userID kernel.UserID) (string, error) {
	text, ok := f.texts[userID.String()]
	if !ok {
		return "", errors.New("no resume stored")
	}
	return text, nil
}

type fakeIngestQueue struct {
	triggers []matching.IngestTrigger
	err      error
}

func (f *fakeIngestQueue) Enqueue(_ context.Context, trigger matching.IngestTrigger) error {
	if f.err != nil {
		return f.err
	}
	f.triggers = append(f.triggers, trigger)
	return nil
}

func (f *fakeIngestQueue) Dequeue(_ context.Context, _ time.Duration) ([]byte, error) {
	return nil, nil
}

func (f *fakeIngestQueue) Size(_ context.Context) (int64, error) {
	return int64(len(f.triggers)), nil
}

func storeMatch(title, company, description, location, url string) matching.QueryMatch {
	return matching.QueryMatch{
		ID:    "job-1#0",
		Score: 0.9,
		Metadata: map[string]any{
			"title":       title,
			"company":     company,
			"description": description,
			"location":    location,
			"job_url":     url,
		},
	}
}

func newTestService(completer *scriptedCompleter, store *fakeVectorStore, resumes matching.ResumeSource, queue matching.IngestQueue) *Service {
	return NewService(
		NewStructurer(completer),
		NewFormatter(completer),
		&fakeEmbedder{model: "text-embedding-3-small"},
		store,
		resumes,
		queue,
	)
}

func TestRecommendFromTextFullPipeline(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{structuredResponse, formattedResponse}}
	store := &fakeVectorStore{
		queryRes: []matching.QueryMatch{
			storeMatch("Software Engineering Intern", "TechCorp", "Work on backend systems", "Berlin, Germany", "https://example.com/jobs/1"),
			storeMatch("Data Scientist Intern", "DataMasters", "Build ML pipelines", "Paris, France", "https://example.com/jobs/2"),
		},
	}
	svc := newTestService(completer, store, &fakeResumeSource{}, &fakeIngestQueue{})

	jobs, err := svc.RecommendFromText(context.Background(), "raw resume text", matching.SearchParams{
		Country:      "germany",
		JobTitle:     "backend engineer",
		NumberOfJobs: 5,
	})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Software Engineering Intern", jobs[0].JobTitle)

	// Query used the embedder's model and the requested topK.
	assert.Equal(t, "text-embedding-3-small", store.queryModel)
	assert.Equal(t, 5, store.queryTopK)

	// Formatter saw the rendered match blocks.
	require.Len(t, completer.prompts, 2)
	formatterPrompt := completer.prompts[1]
	assert.Contains(t, formatterPrompt, "Title: Software Engineering Intern")
	assert.Contains(t, formatterPrompt, "Company: TechCorp")
	assert.Contains(t, formatterPrompt, "\n\n---\n\n")
}

func TestRecommendFromTextAppliesDefaults(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{structuredResponse, formattedResponse}}
	store := &fakeVectorStore{
		queryRes: []matching.QueryMatch{
			storeMatch("Software Engineering Intern", "TechCorp", "Work on backend systems", "Berlin, Germany", "https://example.com/jobs/1"),
		},
	}
	svc := newTestService(completer, store, &fakeResumeSource{}, &fakeIngestQueue{})

	_, err := svc.RecommendFromText(context.Background(), "raw resume text", matching.SearchParams{})
	require.NoError(t, err)

	assert.Equal(t, 4, store.queryTopK)
	assert.Contains(t, completer.prompts[0], "raw resume text")
}

func TestRecommendFromTextEmptyIndex(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{structuredResponse}}
	store := &fakeVectorStore{queryRes: []matching.QueryMatch{}}
	svc := newTestService(completer, store, &fakeResumeSource{}, &fakeIngestQueue{})

	jobs, err := svc.RecommendFromText(context.Background(), "raw resume text", matching.SearchParams{})
	require.NoError(t, err)
	assert.Empty(t, jobs)

	// No matches means the formatter never calls the model.
	assert.Len(t, completer.prompts, 1)
}

func TestRecommendFromTextPropagatesModelMismatch(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{structuredResponse}}
	store := &fakeVectorStore{queryErr: matching.ErrModelMismatch()}
	svc := newTestService(completer, store, &fakeResumeSource{}, &fakeIngestQueue{})

	_, err := svc.RecommendFromText(context.Background(), "raw resume text", matching.SearchParams{})
	require.Error(t, err)

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, string(matching.CodeModelMismatch), e.Code)
}

func TestGetRecommendationsLoadsStoredResume(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{structuredResponse, formattedResponse}}
	store := &fakeVectorStore{
		queryRes: []matching.QueryMatch{
			storeMatch("Software Engineering Intern", "TechCorp", "Work on backend systems", "Berlin, Germany", "https://example.com/jobs/1"),
		},
	}
	resumes := &fakeResumeSource{texts: map[string]string{"user-7": "stored resume text"}}
	svc := newTestService(completer, store, resumes, &fakeIngestQueue{})

	jobs, err := svc.GetRecommendations(context.Background(), "user-7", matching.SearchParams{})
	require.NoError(t, err)
	assert.NotEmpty(t, jobs)
	assert.Contains(t, completer.prompts[0], "stored resume text")
}

func TestGetRecommendationsUnknownUser(t *testing.T) {
	completer := &scriptedCompleter{}
	svc := newTestService(completer, &fakeVectorStore{}, &fakeResumeSource{}, &fakeIngestQueue{})

	_, err := svc.GetRecommendations(context.Background(), "nobody", matching.SearchParams{})
	require.Error(t, err)

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, string(matching.CodeResumeNotFound), e.Code)
	assert.Empty(t, completer.prompts)
}

func TestTriggerIngest(t *testing.T) {
	queue := &fakeIngestQueue{}
	svc := newTestService(&scriptedCompleter{}, &fakeVectorStore{}, &fakeResumeSource{}, queue)

	pending, err := svc.TriggerIngest(context.Background(), matching.IngestTrigger{RequestedBy: "test"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)

	require.Len(t, queue.triggers, 1)
	assert.Equal(t, "test", queue.triggers[0].RequestedBy)
	assert.False(t, queue.triggers[0].EnqueuedAt.IsZero())
}

func TestTriggerIngestEnqueueFailure(t *testing.T) {
	queue := &fakeIngestQueue{err: errors.New("redis down")}
	svc := newTestService(&scriptedCompleter{}, &fakeVectorStore{}, &fakeResumeSource{}, queue)

	_, err := svc.TriggerIngest(context.Background(), matching.IngestTrigger{})
	require.Error(t, err)

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, string(matching.CodeEnqueueFailed), e.Code)
}

func TestFormatMatchesRendersBlocks(t *testing.T) {
	matches := []matching.QueryMatch{
		storeMatch("Software Engineering Intern", "TechCorp", "Work on backend systems", "Berlin, Germany", "https://example.com/jobs/1"),
		storeMatch("Data Scientist Intern", "DataMasters", "Build ML pipelines", "Paris, France", "https://example.com/jobs/2"),
	}

	text := FormatMatches(matches)

	assert.Equal(t,
		"Title: Software Engineering Intern\n"+
			"Company: TechCorp\n"+
			"Work on backend systems\n"+
			"Location: Berlin, Germany\n"+
			"Job URL: https://example.com/jobs/1"+
			"\n\n---\n\n"+
			"Title: Data Scientist Intern\n"+
			"Company: DataMasters\n"+
			"Build ML pipelines\n"+
			"Location: Paris, France\n"+
			"Job URL: https://example.com/jobs/2",
		text)
}

func TestFormatMatchesOmitsBlankFields(t *testing.T) {
	matches := []matching.QueryMatch{
		{
			ID:       "job-1#0",
			Metadata: map[string]any{"title": "QA Intern"},
		},
	}

	assert.Equal(t, "Title: QA Intern", FormatMatches(matches))
}

func TestFormatMatchesEmpty(t *testing.T) {
	assert.Equal(t, "", FormatMatches(nil))
	assert.Equal(t, "", FormatMatches([]matching.QueryMatch{{ID: "x", Metadata: map[string]any{}}}))
}
