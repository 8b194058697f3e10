package postingsrv

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Ray3n-Hamd1/kariera/pkg/kernel"
	"github.com/Ray3n-Hamd1/kariera/posting"
)

// FeedSource supplies batches of postings from an external feed.
type FeedSource interface {
	Fetch(ctx context.Context) ([]*posting.JobPosting, error)
}

// SampleFeed generates realistic placeholder postings. It stands in for a
// real scraping integration in development and demo environments.
type SampleFeed struct {
	count int
	rng   *rand.Rand
}

// NewSampleFeed creates a feed producing count postings per fetch.
func NewSampleFeed(count int) *SampleFeed {
	if count <= 0 {
		count = 50
	}
	return &SampleFeed{
		count: count,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var sampleTitles = []string{
	"Software Engineer Intern",
	"Data Scientist Intern",
	"UX/UI Designer Intern",
	"Product Manager Intern",
	"Marketing Specialist Intern",
	"Frontend Developer Intern",
	"Backend Developer Intern",
	"Full Stack Developer Intern",
	"DevOps Engineer Intern",
	"Mobile App Developer Intern",
	"QA Engineer Intern",
	"Business Analyst Intern",
	"Cybersecurity Analyst Intern",
	"AI/ML Engineer Intern",
	"Game Developer Intern",
	"Web Developer Intern",
	"Cloud Engineer Intern",
	"Database Administrator Intern",
	"Network Engineer Intern",
	"Sales Development Representative Intern",
}

var sampleCompanies = []string{
	"TechCorp",
	"InnovateLabs",
	"DataMasters",
	"DesignThink",
	"ProductInc",
	"MarketGenius",
	"CodeCrafters",
	"CloudNine",
	"SecureNet",
	"GameStudio",
	"WebWizards",
	"AppFactory",
	"StartupHub",
	"Enterprise Solutions",
	"Digital Dynamics",
	"Future Systems",
	"Smart Analytics",
	"Creative Agency",
	"Tech Innovators",
	"Modern Solutions",
}

var sampleLocations = []string{
	"New York, NY, USA",
	"San Francisco, CA, USA",
	"London, UK",
	"Paris, France",
	"Berlin, Germany",
	"Tokyo, Japan",
	"Toronto, Canada",
	"Sydney, Australia",
	"Amsterdam, Netherlands",
	"Stockholm, Sweden",
	"Dublin, Ireland",
	"Barcelona, Spain",
	"Austin, TX, USA",
	"Seattle, WA, USA",
	"Boston, MA, USA",
	"Chicago, IL, USA",
	"Los Angeles, CA, USA",
	"Miami, FL, USA",
	"Denver, CO, USA",
	"Atlanta, GA, USA",
}

var sampleSkillSets = [][]string{
	{"JavaScript", "React", "Node.js", "MongoDB"},
	{"Python", "Django", "PostgreSQL", "Docker"},
	{"Java", "Spring Boot", "MySQL", "Redis"},
	{"TypeScript", "Vue.js", "Express", "GraphQL"},
	{"PHP", "Laravel", "MariaDB", "Nginx"},
	{"C#", ".NET", "SQL Server", "Azure"},
	{"Ruby", "Rails", "PostgreSQL", "Heroku"},
	{"Go", "Kubernetes", "Microservices", "AWS"},
	{"Figma", "Sketch", "Adobe XD", "Prototyping"},
	{"Python", "TensorFlow", "PyTorch", "Pandas"},
}

var sampleDescriptions = []string{
	"Join our dynamic team and work on cutting-edge projects that will shape the future of technology. You will collaborate with experienced professionals and gain hands-on experience with modern development practices.",
	"We are looking for a passionate intern to contribute to our innovative products. This role offers excellent learning opportunities and the chance to work with the latest technologies.",
	"Exciting opportunity to work in a fast-paced environment where you will be involved in the entire product development lifecycle. Perfect for someone looking to kickstart their career.",
	"Be part of our mission to revolutionize the industry through technology. This internship provides exposure to real-world projects and mentorship from senior team members.",
	"We offer a collaborative environment where interns can make meaningful contributions while learning from experts in the field. Great stepping stone for your career.",
	"Join our team and work on projects that impact millions of users worldwide. This role combines learning with practical application of your skills.",
	"Opportunity to work with a talented team on innovative solutions. We provide comprehensive training and support to help you succeed in your role.",
	"Perfect role for someone passionate about technology and eager to learn. You will work on challenging projects and develop skills that will benefit your career.",
	"We are seeking a motivated intern to join our growing team. This position offers excellent growth opportunities and exposure to industry best practices.",
	"Exciting internship opportunity in a company that values innovation and creativity. You will work on meaningful projects and receive mentorship from experienced professionals.",
}

// Fetch generates a fresh batch of sample postings.
func (f *SampleFeed) Fetch(_ context.Context) ([]*posting.JobPosting, error) {
	now := time.Now()
	batch := make([]*posting.JobPosting, 0, f.count)

	for i := 0; i < f.count; i++ {
		title := sampleTitles[f.rng.Intn(len(sampleTitles))]
		company := sampleCompanies[f.rng.Intn(len(sampleCompanies))]

		jobType := posting.JobTypeFullTime
		if f.rng.Float64() > 0.7 {
			jobType = posting.JobTypeInternship
		}

		salaryMin := f.rng.Intn(30000) + 40000
		salaryMax := f.rng.Intn(40000) + 70000

		batch = append(batch, &posting.JobPosting{
			ID:          kernel.PostingID(fmt.Sprintf("job-%d-%d", now.UnixMilli(), i)),
			Title:       title,
			Company:     company,
			Location:    sampleLocations[f.rng.Intn(len(sampleLocations))],
			Description: sampleDescriptions[f.rng.Intn(len(sampleDescriptions))],
			JobURL:      sampleJobURL(company, title, i),
			IsRemote:    f.rng.Float64() > 0.6,
			JobType:     jobType,
			Salary: &posting.SalaryRange{
				Min:      salaryMin,
				Max:      salaryMax,
				Currency: "USD",
			},
			Skills:   sampleSkillSets[f.rng.Intn(len(sampleSkillSets))],
			Source:   "scraped",
			IsActive: true,
			PostedAt: now,
		})
	}

	return batch, nil
}

func sampleJobURL(company, title string, n int) string {
	slug := func(s string) string {
		return strings.ReplaceAll(strings.ToLower(s), " ", "-")
	}
	return fmt.Sprintf("https://example.com/jobs/%s/%s-%d", slug(company), slug(title), n)
}
