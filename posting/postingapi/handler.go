package postingapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ray3n-Hamd1/kariera/pkg/kernel"
	"github.com/Ray3n-Hamd1/kariera/posting"
	"github.com/Ray3n-Hamd1/kariera/posting/postingsrv"
)

type PostingHandlers struct {
	service *postingsrv.Service
}

func NewPostingHandlers(service *postingsrv.Service) *PostingHandlers {
	return &PostingHandlers{service: service}
}

func (h *PostingHandlers) RegisterRoutes(app *fiber.App) {
	postings := app.Group("/api/postings")

	postings.Post("/", h.SubmitPosting)
	postings.Get("/", h.ListPostings)
	postings.Get("/:id", h.GetPosting)
	postings.Put("/:id/deactivate", h.DeactivatePosting)
	postings.Put("/:id/expire", h.ExpirePosting)
	postings.Post("/:id/applications", h.RecordApplication)
	postings.Post("/refresh", h.RefreshFeed)
}

// SubmitPosting stores a manually submitted posting.
// POST /api/postings
func (h *PostingHandlers) SubmitPosting(c *fiber.Ctx) error {
	var req posting.SubmitPostingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	response, err := h.service.SubmitPosting(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// ListPostings lists postings, newest first.
// GET /api/postings?page=1&page_size=20
func (h *PostingHandlers) ListPostings(c *fiber.Ctx) error {
	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	response, err := h.service.ListPostings(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// GetPosting retrieves a posting by ID.
// GET /api/postings/:id
func (h *PostingHandlers) GetPosting(c *fiber.Ctx) error {
	id := kernel.PostingID(c.Params("id"))
	if id.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid posting ID",
		})
	}

	response, err := h.service.GetPosting(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// DeactivatePosting marks a posting inactive.
// PUT /api/postings/:id/deactivate
func (h *PostingHandlers) DeactivatePosting(c *fiber.Ctx) error {
	id := kernel.PostingID(c.Params("id"))
	if id.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid posting ID",
		})
	}

	if err := h.service.DeactivatePosting(c.Context(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":    "posting deactivated",
		"posting_id": id,
	})
}

// ExpirePosting marks a posting expired and inactive.
// PUT /api/postings/:id/expire
func (h *PostingHandlers) ExpirePosting(c *fiber.Ctx) error {
	id := kernel.PostingID(c.Params("id"))
	if id.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid posting ID",
		})
	}

	if err := h.service.ExpirePosting(c.Context(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":    "posting expired",
		"posting_id": id,
	})
}

// RecordApplication bumps a posting's application counter.
// POST /api/postings/:id/applications
func (h *PostingHandlers) RecordApplication(c *fiber.Ctx) error {
	id := kernel.PostingID(c.Params("id"))
	if id.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid posting ID",
		})
	}

	if err := h.service.RecordApplication(c.Context(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":    "application recorded",
		"posting_id": id,
	})
}

// RefreshFeed pulls the configured feed and stores its postings.
// POST /api/postings/refresh
func (h *PostingHandlers) RefreshFeed(c *fiber.Ctx) error {
	stored, err := h.service.RefreshFeed(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "feed refreshed",
		"stored":  stored,
	})
}
