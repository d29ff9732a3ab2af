package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/middleware"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/service"
)

// GetMe resolves the session user, creating one on first visit. This is the
// only endpoint outside the user middleware: the client sends whatever id it
// has (or none) and stores the one it gets back. A ?ref= parameter is
// consumed on the create path only, so reloading with the same link never
// reapplies the referral.
func (h *Handler) GetMe(c *fiber.Ctx) error {
	var id *uuid.UUID
	if raw := c.Get("X-User-Id"); raw != "" {
		if parsed, err := uuid.Parse(raw); err == nil {
			id = &parsed
		}
	}

	refCode := c.Query("ref")

	user, created, err := h.userSvc.GetOrCreateUser(c.Context(), id, refCode)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to resolve user",
		})
	}

	profile, err := h.userSvc.GetProfile(c.Context(), user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load user profile",
		})
	}

	return c.JSON(fiber.Map{
		"user":    profile,
		"created": created,
	})
}

type UpdateNameRequest struct {
	DisplayName string `json:"display_name"`
}

func (h *Handler) UpdateDisplayName(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req UpdateNameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.userSvc.UpdateDisplayName(c.Context(), userID, req.DisplayName); err != nil {
		if errors.Is(err, service.ErrEmptyDisplayName) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update display name",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) GetTransactions(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	transactions, err := h.pointsSvc.GetTransactions(c.Context(), userID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load transactions",
		})
	}

	return c.JSON(transactions)
}
