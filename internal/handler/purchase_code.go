package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/middleware"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/service"
)

type RedeemCodeRequest struct {
	Code string `json:"code"`
}

// RedeemCode exchanges a purchase code for its point value. Unknown and
// already-used codes get the same generic response.
func (h *Handler) RedeemCode(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req RedeemCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	code, balance, err := h.purchaseCodeSvc.Redeem(c.Context(), userID, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrCodeInvalid) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to redeem code",
		})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"points":      code.Points,
		"new_balance": balance,
	})
}

func (h *Handler) GetPaymentOptions(c *fiber.Ctx) error {
	options, err := h.settingsSvc.ListPaymentOptions(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load payment options",
		})
	}
	return c.JSON(options)
}

type SimulatePurchaseRequest struct {
	OptionID string `json:"option_id"`
}

// SimulatePurchase stands in for a real checkout and returns a redeemable
// purchase code for the chosen bundle.
func (h *Handler) SimulatePurchase(c *fiber.Ctx) error {
	var req SimulatePurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	optionID, err := uuid.Parse(req.OptionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid option id",
		})
	}

	code, err := h.purchaseCodeSvc.SimulatePurchase(c.Context(), optionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown payment option",
		})
	}

	return c.JSON(fiber.Map{
		"code":   code.Code,
		"points": code.Points,
	})
}
