package matchsrv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ray3n-Hamd1/kariera/internal/ai/completion"
	"github.com/Ray3n-Hamd1/kariera/matching"
	"github.com/Ray3n-Hamd1/kariera/pkg/logx"
)

// Formatter restructures raw matched-job text into the fixed recommendation
// schema via one generative-AI call. On any failure the caller gets an empty
// list together with the error; entries are never guessed or fabricated.
type Formatter struct {
	completer completion.Completer
}

// NewFormatter creates a recommendation formatter.
func NewFormatter(completer completion.Completer) *Formatter {
	return &Formatter{completer: completer}
}

const formattingPromptTemplate = `You are a job recommendation system. Use these search results: %s to format them in a better structure. Note that the output should be in JSON format and make sure the JSON is correct:
{
    "jobs": [
        {
            "jobTitle": "Brand Marketing Intern",
            "link": "https://www.example.com/job/brand-marketing-intern",
            "description": "Assist with marketing campaigns",
            "location": "Chicago, IL"
        },
        {
            "jobTitle": "Software Engineering Intern",
            "link": "https://www.example.com/job/software-engineering-intern",
            "description": "Work on backend systems",
            "location": "San Francisco, CA"
        }
    ]
}
Return ONLY valid JSON. Do not include code blocks, comments, or extra text.`

// Format turns the composite match text into recommendations.
func (f *Formatter) Format(ctx context.Context, rawMatchesText string) ([]matching.JobRecommendation, error) {
	if rawMatchesText == "" {
		return []matching.JobRecommendation{}, nil
	}

	prompt := fmt.Sprintf(formattingPromptTemplate, rawMatchesText)

	response, err := f.completer.Complete(ctx, prompt)
	if err != nil {
		return []matching.JobRecommendation{}, matching.ErrProviderFailed().WithCause(err).
			WithDetail("operation", "recommendation_formatting")
	}

	jobs, err := parseRecommendations(response)
	if err != nil {
		logx.Errorf("Failed to parse recommendation formatting response: %v", err)
		return []matching.JobRecommendation{}, matching.ErrFormattingFailed().WithCause(err)
	}

	return jobs, nil
}

func parseRecommendations(response string) ([]matching.JobRecommendation, error) {
	raw := stripCodeFence(response)

	var envelope struct {
		Jobs []matching.JobRecommendation `json:"jobs"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, fmt.Errorf("invalid JSON in formatting response: %w", err)
	}
	if envelope.Jobs == nil {
		return nil, fmt.Errorf("formatting response missing jobs key")
	}

	return envelope.Jobs, nil
}
