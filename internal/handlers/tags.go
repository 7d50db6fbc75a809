package handlers

import (
	"cardfolio/internal/models"
	"cardfolio/internal/services/portfolio"
	"cardfolio/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type TagHandler struct {
	cardService portfolio.Service
}

func NewTagHandler(cardService portfolio.Service) *TagHandler {
	return &TagHandler{cardService: cardService}
}

func (h *TagHandler) GetTags(c *fiber.Ctx) error {
	tags, err := h.cardService.ListTags(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Tags retrieved successfully", tags)
}

func (h *TagHandler) CreateTags(c *fiber.Ctx) error {
	var input models.TagsInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	tags, err := h.cardService.CreateTags(c.UserContext(), input.Tags)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Tags saved", tags)
}

// DeleteTags removes the tags from the registry and from every card.
func (h *TagHandler) DeleteTags(c *fiber.Ctx) error {
	var input models.TagsInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	tags, err := h.cardService.DeleteTags(c.UserContext(), input.Tags)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Tags deleted", tags)
}
