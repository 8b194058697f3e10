// Package posting holds the job-posting domain: advertisements scraped or
// submitted into the platform, persisted and fed to the vector index.
package posting

import (
	"time"

	"github.com/Ray3n-Hamd1/kariera/pkg/kernel"
)

// JobType enumerates employment arrangements.
type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeFreelance  JobType = "freelance"
)

// IsValid reports whether the job type is one of the known values.
func (t JobType) IsValid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeFreelance:
		return true
	}
	return false
}

// SalaryRange is an optional advertised salary band.
type SalaryRange struct {
	Min      int    `db:"salary_min" json:"min"`
	Max      int    `db:"salary_max" json:"max"`
	Currency string `db:"salary_currency" json:"currency"`
}

// JobPosting is a job advertisement. Postings are never hard-deleted; they
// are marked inactive or expired instead.
type JobPosting struct {
	ID          kernel.PostingID `db:"id" json:"id"`
	Title       string           `db:"title" json:"title"`
	Company     string           `db:"company" json:"company"`
	Location    string           `db:"location" json:"location"`
	Description string           `db:"description" json:"description"`
	JobURL      string           `db:"job_url" json:"job_url"`
	IsRemote    bool             `db:"is_remote" json:"is_remote"`
	JobType     JobType          `db:"job_type" json:"job_type"`
	Salary      *SalaryRange     `db:"-" json:"salary,omitempty"`
	Skills      []string         `db:"-" json:"skills,omitempty"`
	Source      string           `db:"source" json:"source"`
	IsActive    bool             `db:"is_active" json:"is_active"`

	ViewCount        int `db:"view_count" json:"view_count"`
	ApplicationCount int `db:"application_count" json:"application_count"`

	PostedAt  time.Time  `db:"posted_at" json:"posted_at"`
	ExpiredAt *time.Time `db:"expired_at" json:"expired_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsExpired reports whether the posting has been marked expired.
func (p *JobPosting) IsExpired() bool {
	return p.ExpiredAt != nil
}

// Deactivate marks the posting inactive without deleting it.
func (p *JobPosting) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
}

// Expire marks the posting expired and inactive.
func (p *JobPosting) Expire() {
	now := time.Now()
	p.IsActive = false
	p.ExpiredAt = &now
	p.UpdatedAt = now
}

// IsIngestible reports whether the posting carries enough text to embed.
func (p *JobPosting) IsIngestible() bool {
	return p.Title != "" && p.Company != "" && p.Description != "" && p.JobURL != ""
}
