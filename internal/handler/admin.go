package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/repository"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/service"
)

type AdminHandler struct {
	adminSvc        *service.AdminService
	settingsSvc     *service.SettingsService
	videoSvc        *service.VideoService
	purchaseCodeSvc *service.PurchaseCodeService
	pointsSvc       *service.PointsService
	userSvc         *service.UserService
}

func NewAdminHandler(
	adminSvc *service.AdminService,
	settingsSvc *service.SettingsService,
	videoSvc *service.VideoService,
	purchaseCodeSvc *service.PurchaseCodeService,
	pointsSvc *service.PointsService,
	userSvc *service.UserService,
) *AdminHandler {
	return &AdminHandler{
		adminSvc:        adminSvc,
		settingsSvc:     settingsSvc,
		videoSvc:        videoSvc,
		purchaseCodeSvc: purchaseCodeSvc,
		pointsSvc:       pointsSvc,
		userSvc:         userSvc,
	}
}

type LoginRequest struct {
	Password string `json:"password"`
}

func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	token, err := h.adminSvc.Login(c.Context(), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "login failed",
		})
	}

	return c.JSON(fiber.Map{"token": token})
}

// Settings

func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	return c.JSON(h.settingsSvc.Get(c.Context()))
}

func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var update service.SettingsUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.settingsSvc.Update(c.Context(), update); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update settings",
		})
	}

	return c.JSON(h.settingsSvc.Get(c.Context()))
}

// Payment options

func (h *AdminHandler) AddPaymentOption(c *fiber.Ctx) error {
	option, err := h.settingsSvc.AddPaymentOption(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create payment option",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(option)
}

func (h *AdminHandler) UpdatePaymentOption(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("option_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid option id",
		})
	}

	var option model.PaymentOption
	if err := c.BodyParser(&option); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	option.ID = id

	if err := h.settingsSvc.UpdatePaymentOption(c.Context(), &option); err != nil {
		if errors.Is(err, repository.ErrPaymentOptionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update payment option",
		})
	}

	return c.JSON(option)
}

func (h *AdminHandler) DeletePaymentOption(c *fiber.Ctx) error {
	if err := h.settingsSvc.DeletePaymentOption(c.Context(), c.Params("option_id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// Referral tiers

func (h *AdminHandler) ListReferralTiers(c *fiber.Ctx) error {
	tiers, err := h.settingsSvc.ListReferralTiers(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list referral tiers",
		})
	}
	return c.JSON(tiers)
}

type ReferralTierRequest struct {
	ReferralCount int   `json:"referral_count"`
	BonusPoints   int64 `json:"bonus_points"`
}

func (h *AdminHandler) CreateReferralTier(c *fiber.Ctx) error {
	var req ReferralTierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	tier, err := h.settingsSvc.CreateReferralTier(c.Context(), req.ReferralCount, req.BonusPoints)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create referral tier",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(tier)
}

func (h *AdminHandler) UpdateReferralTier(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("tier_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid tier id",
		})
	}

	var req ReferralTierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	tier := &model.ReferralTier{
		ID:            id,
		ReferralCount: req.ReferralCount,
		BonusPoints:   req.BonusPoints,
	}
	if err := h.settingsSvc.UpdateReferralTier(c.Context(), tier); err != nil {
		if errors.Is(err, repository.ErrReferralTierNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update referral tier",
		})
	}
	return c.JSON(tier)
}

func (h *AdminHandler) DeleteReferralTier(c *fiber.Ctx) error {
	if err := h.settingsSvc.DeleteReferralTier(c.Context(), c.Params("tier_id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// Videos

type UpdateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsDefault   bool   `json:"is_default"`
	Duration    int    `json:"duration"`
}

func (h *AdminHandler) UpdateVideo(c *fiber.Ctx) error {
	var req UpdateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	id := c.Params("video_id")
	if err := h.videoSvc.UpdateVideo(c.Context(), id, req.Title, req.Description, req.IsDefault, req.Duration); err != nil {
		if errors.Is(err, repository.ErrVideoNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update video",
		})
	}

	updated, err := h.videoSvc.GetVideo(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load video",
		})
	}
	return c.JSON(updated)
}

func (h *AdminHandler) DeleteVideo(c *fiber.Ctx) error {
	if err := h.videoSvc.DeleteVideo(c.Context(), c.Params("video_id")); err != nil {
		if errors.Is(err, repository.ErrVideoNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete video",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// Purchase codes

type GenerateCodeRequest struct {
	Points int64 `json:"points"`
}

func (h *AdminHandler) GeneratePurchaseCode(c *fiber.Ctx) error {
	var req GenerateCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if req.Points <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "points must be positive",
		})
	}

	code, err := h.purchaseCodeSvc.Generate(c.Context(), req.Points)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to generate code",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(code)
}

func (h *AdminHandler) ListPurchaseCodes(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	codes, err := h.purchaseCodeSvc.List(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list codes",
		})
	}
	return c.JSON(codes)
}

func (h *AdminHandler) DeletePurchaseCode(c *fiber.Ctx) error {
	if err := h.purchaseCodeSvc.Delete(c.Context(), c.Params("code")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// Users

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	search := c.Query("search")

	users, total, err := h.userSvc.ListUsers(c.Context(), limit, offset, search)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list users",
		})
	}

	return c.JSON(fiber.Map{
		"users": users,
		"total": total,
	})
}

type AddPointsRequest struct {
	Amount int64 `json:"amount"`
}

// AddPointsToUser is the admin-privileged credit. If the target happens to be
// the active session's user the client sees it on its next profile fetch.
func (h *AdminHandler) AddPointsToUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid user id",
		})
	}

	var req AddPointsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	balance, err := h.pointsSvc.AddPointsToUser(c.Context(), userID, req.Amount)
	if err != nil {
		if errors.Is(err, service.ErrNegativeAmount) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to add points",
		})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"new_balance": balance,
	})
}

// Stats

func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.adminSvc.GetStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load stats",
		})
	}
	return c.JSON(stats)
}
