package handlers

import (
	"bytes"

	"cardfolio/internal/models"
	"cardfolio/internal/services/portfolio"
	"cardfolio/internal/utils/pagination"
	"cardfolio/internal/utils/response"
	"cardfolio/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type CreditCardHandler struct {
	cardService portfolio.Service
}

func NewCreditCardHandler(cardService portfolio.Service) *CreditCardHandler {
	return &CreditCardHandler{cardService: cardService}
}

func (h *CreditCardHandler) Dashboard(c *fiber.Ctx) error {
	dash, err := h.cardService.Dashboard(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Dashboard retrieved successfully", dash)
}

// GetCards lists cards. ?status=active|cancelled|all (default all),
// ?sort=order|due (default order), optional ?page=&limit=.
func (h *CreditCardHandler) GetCards(c *fiber.Ctx) error {
	opts, err := portfolio.ParseListOptions(c.Query("status"), c.Query("sort"))
	if err != nil {
		return response.FromError(c, err)
	}

	set, err := h.cardService.List(c.UserContext(), opts)
	if err != nil {
		return response.FromError(c, err)
	}

	page := pagination.ParseFromRequest(c)
	start, end := page.Window(len(set.Cards))

	return response.Success(c, "Cards retrieved successfully", fiber.Map{
		"cards":    set.Cards[start:end],
		"warnings": set.Warnings,
		"meta":     page.Meta(),
	})
}

func (h *CreditCardHandler) GetCard(c *fiber.Ctx) error {
	card, err := h.cardService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Card retrieved successfully", card)
}

func (h *CreditCardHandler) CreateCard(c *fiber.Ctx) error {
	var input models.CardInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	card, err := h.cardService.Add(c.UserContext(), input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Card added successfully", card)
}

func (h *CreditCardHandler) UpdateCard(c *fiber.Ctx) error {
	var input models.CardInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	card, err := h.cardService.Edit(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Card updated successfully", card)
}

func (h *CreditCardHandler) DeleteCard(c *fiber.Ctx) error {
	if err := h.cardService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Card deleted successfully", nil)
}

func (h *CreditCardHandler) CancelCard(c *fiber.Ctx) error {
	card, err := h.cardService.Cancel(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Card cancelled", card)
}

func (h *CreditCardHandler) ReactivateCard(c *fiber.Ctx) error {
	card, err := h.cardService.Reactivate(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Card reactivated", card)
}

func (h *CreditCardHandler) RecordFee(c *fiber.Ctx) error {
	var input models.FeeActionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if fields := validation.Struct(input); len(fields) > 0 {
		return response.ValidationError(c, "invalid input", fields)
	}
	action, _ := models.ParseFeeAction(input.Action)

	card, err := h.cardService.RecordFeeAction(c.UserContext(), c.Params("id"), action)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Fee marked as "+string(action), card)
}

// UpdateSpend takes {"total": n} to set the spend or {"add": n} to add to it.
func (h *CreditCardHandler) UpdateSpend(c *fiber.Ctx) error {
	var input models.SpendInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if fields := validation.Struct(input); len(fields) > 0 {
		return response.ValidationError(c, "invalid input", fields)
	}

	var (
		card *models.CreditCard
		err  error
	)
	if input.Total != nil {
		card, err = h.cardService.UpdateSpend(c.UserContext(), c.Params("id"), *input.Total)
	} else {
		card, err = h.cardService.AddSpend(c.UserContext(), c.Params("id"), *input.Add)
	}
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Spend updated", card)
}

func (h *CreditCardHandler) Reorder(c *fiber.Ctx) error {
	var input models.ReorderInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if fields := validation.Struct(input); len(fields) > 0 {
		return response.ValidationError(c, "invalid input", fields)
	}

	if err := h.cardService.Reorder(c.UserContext(), input.Orders); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Order saved", nil)
}

func (h *CreditCardHandler) GetCatalog(c *fiber.Ctx) error {
	entries, err := h.cardService.Catalog(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Catalog retrieved successfully", entries)
}

func (h *CreditCardHandler) ExportCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.cardService.ExportCSV(c.UserContext(), &buf); err != nil {
		return response.FromError(c, err)
	}
	c.Attachment("my_cards_export.csv")
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}

func (h *CreditCardHandler) ExportXLSX(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.cardService.ExportXLSX(c.UserContext(), &buf); err != nil {
		return response.FromError(c, err)
	}
	c.Attachment("my_cards_export.xlsx")
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf.Bytes())
}
