package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/middleware"
)

func (h *Handler) GetReferralInfo(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	info, err := h.referralSvc.GetInfo(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load referral info",
		})
	}

	return c.JSON(info)
}
