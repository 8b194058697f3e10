// Package matching holds the resume-to-job vector matching domain: structured
// resumes, vector records, search queries and job recommendations.
package matching

import "time"

// StructuredResume is the AI-normalized candidate profile extracted from raw
// resume text. JSON field names are a structural contract with downstream
// consumers and must not change.
type StructuredResume struct {
	JobToSearchFor   string   `json:"job_to_search_for"`
	WorkExperience   string   `json:"Work Experience"`
	Responsibilities []string `json:"Key_Responsibilities_and_Achievements"`
	Skills           []string `json:"Skills"`
	Certifications   []string `json:"Certifications"`
	Projects         []string `json:"Projects"`
	Recap            string   `json:"recap"`
}

// Normalize guarantees that all list fields are non-nil after structuring.
func (r *StructuredResume) Normalize() {
	if r.Responsibilities == nil {
		r.Responsibilities = []string{}
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.Certifications == nil {
		r.Certifications = []string{}
	}
	if r.Projects == nil {
		r.Projects = []string{}
	}
}

// VectorRecord is the unit stored in the vector index. Metadata carries the
// denormalized posting fields needed to render a result without a secondary
// lookup. Model tags the embedding space the values belong to.
type VectorRecord struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Model    string         `json:"model"`
	Metadata map[string]any `json:"metadata"`
}

// QueryMatch is one nearest-neighbor result, ordered by descending Score.
type QueryMatch struct {
	ID       string         `json:"id"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata"`
}

// JobRecommendation is a formatted listing returned to the caller. JSON field
// names are a structural contract with the UI and must not change.
type JobRecommendation struct {
	JobTitle    string `json:"jobTitle"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// SearchParams are the user-supplied knobs of one recommendation request.
type SearchParams struct {
	Country      string `json:"country"`
	JobTitle     string `json:"jobTitle"`
	NumberOfJobs int    `json:"numberOfJobs"`
}

// Normalize applies the defaults the legacy API used.
func (p SearchParams) Normalize() SearchParams {
	if p.Country == "" {
		p.Country = "usa"
	}
	if p.JobTitle == "" {
		p.JobTitle = "internship"
	}
	if p.NumberOfJobs <= 0 {
		p.NumberOfJobs = 4
	}
	return p
}

// Stage labels the phases of one recommendation request. Any stage failing
// moves the request directly to StageFailed; there are no silent retries and
// no partial delivery.
type Stage string

const (
	StageReceived      Stage = "RECEIVED"
	StageStructuring   Stage = "STRUCTURING"
	StageQueryBuilding Stage = "QUERY_BUILDING"
	StageEmbedding     Stage = "EMBEDDING"
	StageVectorSearch  Stage = "VECTOR_SEARCH"
	StageFormatting    Stage = "FORMATTING"
	StageDelivered     Stage = "DELIVERED"
	StageFailed        Stage = "FAILED"
)

// IngestTrigger is the payload queued for on-demand ingestion runs. An empty
// PostingIDs slice means "ingest every active posting".
type IngestTrigger struct {
	RequestedBy string    `json:"requested_by,omitempty"`
	PostingIDs  []string  `json:"posting_ids,omitempty"`
	EnqueuedAt  time.Time `json:"enqueued_at"`
}
