package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/config"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/service"
)

type Handler struct {
	cfg             *config.Config
	userSvc         *service.UserService
	videoSvc        *service.VideoService
	playlistSvc     *service.PlaylistService
	watchSvc        *service.WatchService
	pointsSvc       *service.PointsService
	referralSvc     *service.ReferralService
	purchaseCodeSvc *service.PurchaseCodeService
	notificationSvc *service.NotificationService
	settingsSvc     *service.SettingsService
	adminSvc        *service.AdminService
}

func New(
	cfg *config.Config,
	userSvc *service.UserService,
	videoSvc *service.VideoService,
	playlistSvc *service.PlaylistService,
	watchSvc *service.WatchService,
	pointsSvc *service.PointsService,
	referralSvc *service.ReferralService,
	purchaseCodeSvc *service.PurchaseCodeService,
	notificationSvc *service.NotificationService,
	settingsSvc *service.SettingsService,
	adminSvc *service.AdminService,
) *Handler {
	return &Handler{
		cfg:             cfg,
		userSvc:         userSvc,
		videoSvc:        videoSvc,
		playlistSvc:     playlistSvc,
		watchSvc:        watchSvc,
		pointsSvc:       pointsSvc,
		referralSvc:     referralSvc,
		purchaseCodeSvc: purchaseCodeSvc,
		notificationSvc: notificationSvc,
		settingsSvc:     settingsSvc,
		adminSvc:        adminSvc,
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
