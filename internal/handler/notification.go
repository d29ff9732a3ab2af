package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/middleware"
)

func (h *Handler) ListNotifications(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	notifications, err := h.notificationSvc.List(c.Context(), userID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load notifications",
		})
	}

	unread, err := h.notificationSvc.CountUnread(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to count notifications",
		})
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"unread":        unread,
	})
}

func (h *Handler) MarkNotificationsRead(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	if err := h.notificationSvc.MarkAllRead(c.Context(), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to mark notifications read",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
