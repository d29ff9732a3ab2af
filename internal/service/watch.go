package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/config"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/repository"
)

var ErrNoCurrentVideo = errors.New("no video is currently available")

const (
	// autoSkipDebounce keeps a scheduler that hands back an already-watched
	// video from triggering a tight advance loop.
	autoSkipDebounce = 100 * time.Millisecond
	// advanceDelay leaves the completion message on screen before the player
	// moves on.
	advanceDelay = 1500 * time.Millisecond
)

// WatchService owns the per-user watch session: the timed engagement window
// that gates point awarding. Each session runs a one-second tick for visible
// progress plus a deadline timer that fires completion; both are cancelled
// through a single teardown on every exit path (video change, pause, session
// expiry), because a leaked timer means duplicate awards or stale progress.
type WatchService struct {
	repo        *repository.Repository
	settingsSvc *SettingsService
	pointsSvc   *PointsService
	playlistSvc *PlaylistService
	notifySvc   *NotificationService

	mu       sync.Mutex
	sessions map[uuid.UUID]*watchSession
}

type watchSession struct {
	userID    uuid.UUID
	videoID   string
	state     model.WatchState
	elapsed   int
	required  int
	completed bool // award guard for this video instance

	ticker       *time.Ticker
	tickerDone   chan struct{}
	deadline     *time.Timer
	skipTimer    *time.Timer
	advanceTimer *time.Timer

	lastActive time.Time
}

func NewWatchService(repo *repository.Repository, settingsSvc *SettingsService, pointsSvc *PointsService, playlistSvc *PlaylistService, notifySvc *NotificationService) *WatchService {
	return &WatchService{
		repo:        repo,
		settingsSvc: settingsSvc,
		pointsSvc:   pointsSvc,
		playlistSvc: playlistSvc,
		notifySvc:   notifySvc,
		sessions:    make(map[uuid.UUID]*watchSession),
	}
}

// stopEngagementTimers cancels the tick and the completion deadline. Elapsed
// time is left alone; it only resets on a video change.
func (sess *watchSession) stopEngagementTimers() {
	if sess.ticker != nil {
		sess.ticker.Stop()
		sess.ticker = nil
	}
	if sess.tickerDone != nil {
		close(sess.tickerDone)
		sess.tickerDone = nil
	}
	if sess.deadline != nil {
		sess.deadline.Stop()
		sess.deadline = nil
	}
}

// teardown cancels every timer the session owns.
func (sess *watchSession) teardown() {
	sess.stopEngagementTimers()
	if sess.skipTimer != nil {
		sess.skipTimer.Stop()
		sess.skipTimer = nil
	}
	if sess.advanceTimer != nil {
		sess.advanceTimer.Stop()
		sess.advanceTimer = nil
	}
}

// SyncCurrent aligns the user's session with the current video. A video
// change tears down the previous session completely and starts a fresh one
// at zero elapsed. If the incoming video is somehow already in the user's
// watched set, the session never starts: an auto-skip is scheduled after a
// short debounce instead.
func (s *WatchService) SyncCurrent(ctx context.Context, userID uuid.UUID, video *model.Video) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions[userID]

	if video == nil {
		if sess != nil {
			sess.teardown()
			delete(s.sessions, userID)
		}
		return
	}

	if sess != nil && sess.videoID == video.ID {
		sess.lastActive = time.Now()
		return
	}

	if sess != nil {
		sess.teardown()
	}

	settings := s.settingsSvc.Get(ctx)
	sess = &watchSession{
		userID:     userID,
		videoID:    video.ID,
		state:      model.WatchStateIdle,
		required:   settings.WatchDuration,
		lastActive: time.Now(),
	}
	s.sessions[userID] = sess

	watched, err := s.repo.GetWatchedVideoIDs(ctx, userID)
	if err != nil {
		log.Printf("[Watch] Failed to load watched set for %s: %v", userID, err)
		return
	}
	for _, id := range watched {
		if id == video.ID {
			videoID := video.ID
			sess.skipTimer = time.AfterFunc(autoSkipDebounce, func() {
				s.autoSkip(userID, videoID)
			})
			return
		}
	}
}

func (s *WatchService) autoSkip(userID uuid.UUID, videoID string) {
	ctx := context.Background()
	next, err := s.playlistSvc.Advance(ctx, userID, videoID)
	if err != nil {
		log.Printf("[Watch] Auto-skip advance failed for %s: %v", userID, err)
		return
	}
	s.SyncCurrent(ctx, userID, next)
}

// ReportPlayStarted moves the session from Idle to Watching. It is a no-op
// while already watching, and never restarts a completed session. The tick
// accumulates elapsed seconds capped at the requirement; the deadline fires
// at requirement minus whatever was already accumulated, so a resumed
// session still completes on time.
func (s *WatchService) ReportPlayStarted(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	sess := s.sessions[userID]
	s.mu.Unlock()

	if sess == nil {
		current, err := s.playlistSvc.Current(ctx, userID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrNoCurrentVideo
		}
		s.SyncCurrent(ctx, userID, current)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess = s.sessions[userID]
	if sess == nil {
		return ErrNoCurrentVideo
	}

	sess.lastActive = time.Now()

	if sess.completed || sess.state == model.WatchStateWatching {
		return nil
	}

	sess.state = model.WatchStateWatching

	sess.ticker = time.NewTicker(time.Second)
	done := make(chan struct{})
	sess.tickerDone = done
	go func(sess *watchSession, tick <-chan time.Time) {
		for {
			select {
			case <-done:
				return
			case <-tick:
				s.mu.Lock()
				if sess.state == model.WatchStateWatching && sess.elapsed < sess.required {
					sess.elapsed++
				}
				s.mu.Unlock()
			}
		}
	}(sess, sess.ticker.C)

	remaining := sess.required - sess.elapsed
	if remaining < 0 {
		remaining = 0
	}
	videoID := sess.videoID
	sess.deadline = time.AfterFunc(time.Duration(remaining)*time.Second, func() {
		s.complete(userID, videoID)
	})

	return nil
}

// ReportPlayStopped pauses the session: both engagement timers are cancelled
// and elapsed time is preserved, so the next play resumes rather than
// restarts.
func (s *WatchService) ReportPlayStopped(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions[userID]
	if sess == nil {
		return
	}
	sess.lastActive = time.Now()

	if sess.state != model.WatchStateWatching {
		return
	}
	sess.stopEngagementTimers()
	sess.state = model.WatchStateIdle
}

// complete is the deadline callback. The completed flag is the check-and-set
// that keeps the award exactly-once even if the callback fires twice for the
// same video instance.
func (s *WatchService) complete(userID uuid.UUID, videoID string) {
	s.mu.Lock()
	sess := s.sessions[userID]
	if sess == nil || sess.videoID != videoID || sess.completed {
		s.mu.Unlock()
		return
	}
	sess.completed = true
	sess.elapsed = sess.required
	sess.state = model.WatchStateCompleted
	sess.stopEngagementTimers()
	s.mu.Unlock()

	ctx := context.Background()
	settings := s.settingsSvc.Get(ctx)
	points := settings.PointsPerWatch

	ref := videoID
	description := fmt.Sprintf("Watch reward: +%d points", points)
	if _, err := s.pointsSvc.AddPoints(ctx, userID, points, model.TransactionTypeWatchReward, description, &ref); err != nil {
		log.Printf("[Watch] Failed to award watch points to %s: %v", userID, err)
	}

	if err := s.repo.IncrementViews(ctx, videoID); err != nil {
		log.Printf("[Watch] Failed to increment views for %s: %v", videoID, err)
	}

	if _, err := s.repo.MarkWatched(ctx, userID, videoID); err != nil {
		log.Printf("[Watch] Failed to mark %s watched for %s: %v", videoID, userID, err)
	}

	s.notifySvc.Notify(ctx, userID, fmt.Sprintf("You earned %d points for watching a video.", points), model.NotificationTypeSuccess)

	s.mu.Lock()
	if cur := s.sessions[userID]; cur == sess {
		sess.advanceTimer = time.AfterFunc(advanceDelay, func() {
			s.advanceAfterComplete(userID, videoID)
		})
	}
	s.mu.Unlock()
}

func (s *WatchService) advanceAfterComplete(userID uuid.UUID, videoID string) {
	ctx := context.Background()
	next, err := s.playlistSvc.Advance(ctx, userID, videoID)
	if err != nil {
		log.Printf("[Watch] Post-completion advance failed for %s: %v", userID, err)
		return
	}
	s.SyncCurrent(ctx, userID, next)
}

// Progress returns the snapshot the client polls while a video plays.
func (s *WatchService) Progress(userID uuid.UUID) *model.WatchProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions[userID]
	if sess == nil {
		return nil
	}
	sess.lastActive = time.Now()

	return &model.WatchProgress{
		VideoID:    sess.videoID,
		State:      sess.state,
		Elapsed:    sess.elapsed,
		Required:   sess.required,
		IsWatching: sess.state == model.WatchStateWatching,
	}
}

func (s *WatchService) IsCurrentlyWatching(userID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions[userID]
	return sess != nil && sess.state == model.WatchStateWatching
}

// StartJanitor prunes sessions that have gone quiet, tearing down their
// timers. Runs until the context is cancelled.
func (s *WatchService) StartJanitor(ctx context.Context) {
	log.Printf("[Watch Janitor] Started, sweeping every %v", config.SessionJanitorInterval)

	ticker := time.NewTicker(config.SessionJanitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[Watch Janitor] Stopped")
			s.Shutdown()
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *WatchService) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-config.SessionIdleTimeout)
	for userID, sess := range s.sessions {
		if sess.lastActive.Before(cutoff) && sess.state != model.WatchStateWatching {
			sess.teardown()
			delete(s.sessions, userID)
		}
	}
}

// Shutdown tears down every live session.
func (s *WatchService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, sess := range s.sessions {
		sess.teardown()
		delete(s.sessions, userID)
	}
}
