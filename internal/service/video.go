package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"github.com/google/uuid"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/repository"
)

var (
	ErrInvalidVideoURL = errors.New("not a valid YouTube video URL")
	ErrDuplicateVideo  = errors.New("this video has already been submitted")
)

// youtubeIDPattern pulls the video id out of the usual YouTube URL shapes
// (youtu.be short links, /embed/, /v/, watch?v=). A real id is exactly 11
// characters.
var youtubeIDPattern = regexp.MustCompile(`(?:youtu\.be/|/v/|/u/\w/|/embed/|watch\?v=|&v=)([^#&?]*)`)

const youtubeIDLength = 11

// ExtractVideoID returns the 11-character YouTube id from a submitted URL,
// or an empty string when the URL does not contain one.
func ExtractVideoID(url string) string {
	match := youtubeIDPattern.FindStringSubmatch(url)
	if match == nil || len(match[1]) != youtubeIDLength {
		return ""
	}
	return match[1]
}

type VideoService struct {
	repo        *repository.Repository
	settingsSvc *SettingsService
	pointsSvc   *PointsService
	youtube     *YouTubeClient
}

func NewVideoService(repo *repository.Repository, settingsSvc *SettingsService, pointsSvc *PointsService, youtube *YouTubeClient) *VideoService {
	return &VideoService{repo: repo, settingsSvc: settingsSvc, pointsSvc: pointsSvc, youtube: youtube}
}

func (s *VideoService) ListVideos(ctx context.Context) ([]model.Video, error) {
	return s.repo.ListVideos(ctx)
}

func (s *VideoService) GetVideo(ctx context.Context, id string) (*model.Video, error) {
	return s.repo.GetVideo(ctx, id)
}

// SubmitVideo charges the submission fee and adds the video to the
// collection. The fee is deducted up front; if the video then turns out to
// be a duplicate (or creation fails for any other reason) the fee is
// refunded so a failed submission leaves the balance untouched.
func (s *VideoService) SubmitVideo(ctx context.Context, userID uuid.UUID, url, description string) (*model.Video, error) {
	videoID := ExtractVideoID(url)
	if videoID == "" {
		return nil, ErrInvalidVideoURL
	}

	settings := s.settingsSvc.Get(ctx)
	cost := settings.CostPerSubmission

	ref := videoID
	feeDesc := fmt.Sprintf("Video submission fee: -%d points", cost)
	if _, err := s.pointsSvc.SpendPoints(ctx, userID, cost, model.TransactionTypeSubmissionFee, feeDesc, &ref); err != nil {
		return nil, err
	}

	video := &model.Video{
		ID:          videoID,
		Title:       "User Video - " + videoID[:5],
		Description: description,
		SubmittedBy: &userID,
	}
	if video.Description == "" {
		video.Description = "No description provided. Admin can add one later."
	}

	if s.youtube != nil {
		if meta, err := s.youtube.FetchVideoMeta(ctx, videoID); err == nil {
			video.Title = meta.Title
			video.Duration = meta.Duration
		} else {
			log.Printf("[Video] Metadata lookup failed for %s: %v", videoID, err)
		}
	}

	if err := s.repo.CreateVideo(ctx, video); err != nil {
		refundDesc := fmt.Sprintf("Submission refund: +%d points", cost)
		if _, refundErr := s.pointsSvc.AddPoints(ctx, userID, cost, model.TransactionTypeSubmissionRefund, refundDesc, &ref); refundErr != nil {
			log.Printf("[Video] Failed to refund submission fee for %s: %v", userID, refundErr)
		}
		if errors.Is(err, repository.ErrVideoDuplicate) {
			return nil, ErrDuplicateVideo
		}
		return nil, err
	}

	return video, nil
}

func (s *VideoService) UpdateVideo(ctx context.Context, id, title, description string, isDefault bool, duration int) error {
	return s.repo.UpdateVideo(ctx, id, title, description, isDefault, duration)
}

func (s *VideoService) DeleteVideo(ctx context.Context, id string) error {
	return s.repo.DeleteVideo(ctx, id)
}
