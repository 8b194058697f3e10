package matchsrv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ray3n-Hamd1/kariera/matching"
	"github.com/Ray3n-Hamd1/kariera/pkg/errx"
)

const formattedResponse = `{
	"jobs": [
		{
			"jobTitle": "Software Engineering Intern",
			"link": "https://example.com/jobs/techcorp/software-engineering-intern-0",
			"description": "Work on backend systems",
			"location": "Berlin, Germany"
		},
		{
			"jobTitle": "Data Scientist Intern",
			"link": "https://example.com/jobs/datamasters/data-scientist-intern-1",
			"description": "Build ML pipelines",
			"location": "Paris, France"
		}
	]
}`

func TestFormatterReturnsRecommendations(t *testing.T) {
	completer := &fakeCompleter{response: formattedResponse}
	formatter := NewFormatter(completer)

	jobs, err := formatter.Format(context.Background(), "Title: Software Engineering Intern\nCompany: TechCorp")
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "Software Engineering Intern", jobs[0].JobTitle)
	assert.Equal(t, "https://example.com/jobs/techcorp/software-engineering-intern-0", jobs[0].Link)
	assert.Equal(t, "Paris, France", jobs[1].Location)

	require.Len(t, completer.prompts, 1)
	assert.Contains(t, completer.prompts[0], "Title: Software Engineering Intern")
}

func TestFormatterEmptyInputSkipsProvider(t *testing.T) {
	completer := &fakeCompleter{response: formattedResponse}
	formatter := NewFormatter(completer)

	jobs, err := formatter.Format(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, jobs)
	assert.NotNil(t, jobs)
	assert.Empty(t, completer.prompts)
}

func TestFormatterToleratesCodeFence(t *testing.T) {
	completer := &fakeCompleter{response: "```json\n" + formattedResponse + "\n```"}
	formatter := NewFormatter(completer)

	jobs, err := formatter.Format(context.Background(), "some matches")
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestFormatterEmptyListOnProviderFailure(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("model overloaded")}
	formatter := NewFormatter(completer)

	jobs, err := formatter.Format(context.Background(), "some matches")
	require.Error(t, err)
	assert.Empty(t, jobs)
	assert.NotNil(t, jobs)

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, string(matching.CodeProviderFailed), e.Code)
}

func TestFormatterEmptyListOnMalformedResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not JSON", "Here are your jobs!"},
		{"missing jobs key", `{"results": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := NewFormatter(&fakeCompleter{response: tt.response})

			jobs, err := formatter.Format(context.Background(), "some matches")
			require.Error(t, err)
			assert.Empty(t, jobs)

			var e *errx.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, string(matching.CodeFormattingFailed), e.Code)
		})
	}
}

func TestFormatterAcceptsEmptyJobsArray(t *testing.T) {
	formatter := NewFormatter(&fakeCompleter{response: `{"jobs": []}`})

	jobs, err := formatter.Format(context.Background(), "some matches")
	require.NoError(t, err)
	assert.Empty(t, jobs)
}
