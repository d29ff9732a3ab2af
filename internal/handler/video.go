package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/middleware"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/service"
)

type SubmitVideoRequest struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// SubmitVideo adds a user video to the collection. The submission fee is
// refunded by the service when validation fails after the deduction.
func (h *Handler) SubmitVideo(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req SubmitVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	video, err := h.videoSvc.SubmitVideo(c.Context(), userID, req.URL, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidVideoURL), errors.Is(err, service.ErrDuplicateVideo):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrInsufficientPoints):
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to submit video",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(video)
}

func (h *Handler) ListVideos(c *fiber.Ctx) error {
	videos, err := h.videoSvc.ListVideos(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list videos",
		})
	}
	return c.JSON(videos)
}
