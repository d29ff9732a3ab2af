package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/middleware"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/service"
)

// GetCurrentVideo returns the video the user should watch now, or null when
// there is nothing left (everything watched, or no videos at all).
func (h *Handler) GetCurrentVideo(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	current, err := h.playlistSvc.Current(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to compute current video",
		})
	}

	h.watchSvc.SyncCurrent(c.Context(), userID, current)

	return c.JSON(fiber.Map{
		"video": current,
	})
}

func (h *Handler) GetQueue(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	queue, err := h.playlistSvc.Queue(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to compute queue",
		})
	}

	return c.JSON(fiber.Map{
		"queue": queue,
	})
}

type AdvanceRequest struct {
	ExcludeID string `json:"exclude_id"`
}

func (h *Handler) AdvanceToNext(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req AdvanceRequest
	_ = c.BodyParser(&req)

	next, err := h.playlistSvc.Advance(c.Context(), userID, req.ExcludeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to advance",
		})
	}

	h.watchSvc.SyncCurrent(c.Context(), userID, next)

	return c.JSON(fiber.Map{
		"video": next,
	})
}

func (h *Handler) ReportPlayStarted(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	if err := h.watchSvc.ReportPlayStarted(c.Context(), userID); err != nil {
		if errors.Is(err, service.ErrNoCurrentVideo) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to start watch session",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) ReportPlayStopped(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	h.watchSvc.ReportPlayStopped(userID)
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) GetWatchProgress(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	progress := h.watchSvc.Progress(userID)
	if progress == nil {
		return c.JSON(fiber.Map{"progress": nil})
	}

	return c.JSON(fiber.Map{"progress": progress})
}
