package matching

// RecommendationsRequest is the HTTP body of a recommendation request.
// Fields mirror the legacy API; zero values fall back to defaults via
// SearchParams.Normalize.
type RecommendationsRequest struct {
	Country      string `json:"country"`
	JobTitle     string `json:"jobTitle"`
	NumberOfJobs int    `json:"numberOfJobs"`

	// ResumeText optionally supplies raw resume text inline instead of the
	// caller's stored resume.
	ResumeText string `json:"resumeText,omitempty"`
}

// Params converts the request into normalized search parameters.
func (r RecommendationsRequest) Params() SearchParams {
	return SearchParams{
		Country:      r.Country,
		JobTitle:     r.JobTitle,
		NumberOfJobs: r.NumberOfJobs,
	}.Normalize()
}

// RecommendationsResponse is the HTTP shape of a recommendation result.
type RecommendationsResponse struct {
	Success bool                `json:"success"`
	Jobs    []JobRecommendation `json:"jobs"`
}

// IngestResponse reports an accepted on-demand ingestion trigger.
type IngestResponse struct {
	Enqueued bool  `json:"enqueued"`
	Pending  int64 `json:"pending"`
}
