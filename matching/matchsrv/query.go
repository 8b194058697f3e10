package matchsrv

import (
	"fmt"
	"strings"

	"github.com/Ray3n-Hamd1/kariera/matching"
)

// BuildSearchQuery composes the natural-language search query embedded at
// match time. Pure function: no I/O, empty fields degrade to omission.
func BuildSearchQuery(resume *matching.StructuredResume, jobTitle, country string) string {
	var sb strings.Builder

	if resume.Recap != "" {
		sb.WriteString(resume.Recap)
		sb.WriteString(" ")
	}

	experience := resume.WorkExperience
	if experience == "" {
		experience = "0 years"
	}
	fmt.Fprintf(&sb, "With %s of work experience I'm searching for '%s' in country: '%s'.", experience, jobTitle, country)

	if len(resume.Responsibilities) > 0 {
		fmt.Fprintf(&sb, " I have been responsible for %s.", strings.Join(resume.Responsibilities, ", "))
	}
	if len(resume.Skills) > 0 {
		fmt.Fprintf(&sb, " My skills include %s.", strings.Join(resume.Skills, ", "))
	}
	if len(resume.Certifications) > 0 {
		fmt.Fprintf(&sb, " I have earned certifications such as %s.", strings.Join(resume.Certifications, ", "))
	}
	if len(resume.Projects) > 0 {
		fmt.Fprintf(&sb, " I have worked on projects like %s.", strings.Join(resume.Projects, ", "))
	}

	return sb.String()
}
