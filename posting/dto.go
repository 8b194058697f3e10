package posting

import "time"

// SubmitPostingRequest is the HTTP body for submitting a posting manually.
type SubmitPostingRequest struct {
	ID          string       `json:"id,omitempty"`
	Title       string       `json:"title"`
	Company     string       `json:"company"`
	Location    string       `json:"location"`
	Description string       `json:"description"`
	JobURL      string       `json:"job_url"`
	IsRemote    bool         `json:"is_remote"`
	JobType     string       `json:"job_type"`
	Salary      *SalaryRange `json:"salary,omitempty"`
	Skills      []string     `json:"skills,omitempty"`
}

// PostingResponse is the client-facing posting shape.
type PostingResponse struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Company          string       `json:"company"`
	Location         string       `json:"location"`
	Description      string       `json:"description"`
	JobURL           string       `json:"job_url"`
	IsRemote         bool         `json:"is_remote"`
	JobType          JobType      `json:"job_type"`
	Salary           *SalaryRange `json:"salary,omitempty"`
	Skills           []string     `json:"skills,omitempty"`
	IsActive         bool         `json:"is_active"`
	ViewCount        int          `json:"view_count"`
	ApplicationCount int          `json:"application_count"`
	PostedAt         time.Time    `json:"posted_at"`
}

// ToPostingResponse maps a domain posting to its response shape.
func ToPostingResponse(p *JobPosting) *PostingResponse {
	return &PostingResponse{
		ID:               p.ID.String(),
		Title:            p.Title,
		Company:          p.Company,
		Location:         p.Location,
		Description:      p.Description,
		JobURL:           p.JobURL,
		IsRemote:         p.IsRemote,
		JobType:          p.JobType,
		Salary:           p.Salary,
		Skills:           p.Skills,
		IsActive:         p.IsActive,
		ViewCount:        p.ViewCount,
		ApplicationCount: p.ApplicationCount,
		PostedAt:         p.PostedAt,
	}
}
