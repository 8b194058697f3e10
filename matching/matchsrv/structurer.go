package matchsrv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ray3n-Hamd1/kariera/internal/ai/completion"
	"github.com/Ray3n-Hamd1/kariera/matching"
	"github.com/Ray3n-Hamd1/kariera/pkg/logx"
)

// Structurer converts free-text resume content into a StructuredResume via
// one generative-AI extraction call against a fixed JSON schema. A failure is
// terminal for the request; there is no automatic retry.
type Structurer struct {
	completer completion.Completer
}

// NewStructurer creates a resume structurer.
func NewStructurer(completer completion.Completer) *Structurer {
	return &Structurer{completer: completer}
}

const structuringPromptTemplate = `You are an expert resume parser.

Extract only the information explicitly present in the CV text below and return it as a valid JSON object in the exact format provided.

- Do not infer, fabricate, or guess missing details.
- If a field is not present in the CV, leave it as an empty string or empty array as appropriate.
- Ensure the output is valid, clean JSON with no additional text, explanations, or formatting outside the JSON structure.

CV Text:
'''
%s
'''

Expected Output Format:
{
"Informations": [
{
"job_to_search_for": "",
"Work Experience": "",
"Key_Responsibilities_and_Achievements": [],
"Skills": [],
"Certifications": [],
"Projects": [],
"recap": ""
}
]
}

Return only the JSON object, with all fields present.`

// Structure extracts a StructuredResume from raw resume text. Code-fence
// markers around the model output are tolerated; anything else that is not
// the pinned schema fails with a structuring error.
func (s *Structurer) Structure(ctx context.Context, rawText string) (*matching.StructuredResume, error) {
	if rawText == "" {
		return nil, matching.ErrEmptyResume()
	}

	prompt := fmt.Sprintf(structuringPromptTemplate, rawText)

	response, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, matching.ErrProviderFailed().WithCause(err).
			WithDetail("operation", "resume_structuring")
	}

	resume, err := parseStructuredResume(response)
	if err != nil {
		logx.Errorf("Failed to parse resume structuring response: %v", err)
		return nil, matching.ErrStructuringFailed().WithCause(err)
	}

	return resume, nil
}

func parseStructuredResume(response string) (*matching.StructuredResume, error) {
	raw := stripCodeFence(response)

	var envelope struct {
		Informations []matching.StructuredResume `json:"Informations"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, fmt.Errorf("invalid JSON in structuring response: %w", err)
	}
	if len(envelope.Informations) == 0 {
		return nil, fmt.Errorf("structuring response missing Informations array")
	}

	resume := envelope.Informations[0]
	resume.Normalize()
	return &resume, nil
}
