package matchapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Ray3n-Hamd1/kariera/matching"
	"github.com/Ray3n-Hamd1/kariera/matching/matchsrv"
	"github.com/Ray3n-Hamd1/kariera/pkg/kernel"
)

type MatchHandlers struct {
	service *matchsrv.Service
}

func NewMatchHandlers(service *matchsrv.Service) *MatchHandlers {
	return &MatchHandlers{service: service}
}

func (h *MatchHandlers) RegisterRoutes(app *fiber.App) {
	jobs := app.Group("/api/jobs")

	jobs.Post("/recommendations", h.GetRecommendations)            // Recommend from inline resume text
	jobs.Post("/ingest", h.TriggerIngest)                          // Queue an ingestion run
	jobs.Get("/users/:user_id/recommendations", h.RecommendForUser) // Recommend from the stored resume
}

// GetRecommendations runs the matching pipeline on resume text supplied in
// the request body.
// POST /api/jobs/recommendations
func (h *MatchHandlers) GetRecommendations(c *fiber.Ctx) error {
	var req matching.RecommendationsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if req.ResumeText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resumeText is required",
		})
	}

	jobs, err := h.service.RecommendFromText(c.Context(), req.ResumeText, req.Params())
	if err != nil {
		return err
	}

	return c.JSON(matching.RecommendationsResponse{
		Success: true,
		Jobs:    jobs,
	})
}

// RecommendForUser runs the matching pipeline on the user's stored resume.
// GET /api/jobs/users/:user_id/recommendations?country=usa&jobTitle=internship&numberOfJobs=4
func (h *MatchHandlers) RecommendForUser(c *fiber.Ctx) error {
	userID := kernel.UserID(c.Params("user_id"))
	if userID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid user ID",
		})
	}

	params := matching.SearchParams{
		Country:      c.Query("country"),
		JobTitle:     c.Query("jobTitle"),
		NumberOfJobs: c.QueryInt("numberOfJobs", 0),
	}.Normalize()

	jobs, err := h.service.GetRecommendations(c.Context(), userID, params)
	if err != nil {
		return err
	}

	return c.JSON(matching.RecommendationsResponse{
		Success: true,
		Jobs:    jobs,
	})
}

// TriggerIngest queues an on-demand ingestion run for the background worker.
// POST /api/jobs/ingest
func (h *MatchHandlers) TriggerIngest(c *fiber.Ctx) error {
	var body struct {
		PostingIDs []string `json:"postingIds"`
	}
	// An empty body means "reindex everything"
	_ = c.BodyParser(&body)

	trigger := matching.IngestTrigger{
		RequestedBy: c.IP(),
		PostingIDs:  body.PostingIDs,
		EnqueuedAt:  time.Now(),
	}

	pending, err := h.service.TriggerIngest(c.Context(), trigger)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(matching.IngestResponse{
		Enqueued: true,
		Pending:  pending,
	})
}
