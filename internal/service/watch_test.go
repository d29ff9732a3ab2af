package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
)

// newTestWatchService builds a service with a pre-seeded session so the
// state transitions can be exercised without a database. The required
// duration is long enough that the completion deadline never fires during
// the test.
func newTestWatchService(userID uuid.UUID, videoID string) *WatchService {
	s := &WatchService{sessions: make(map[uuid.UUID]*watchSession)}
	s.sessions[userID] = &watchSession{
		userID:     userID,
		videoID:    videoID,
		state:      model.WatchStateIdle,
		required:   3600,
		lastActive: time.Now(),
	}
	return s
}

func TestReportPlayStartedTransitionsToWatching(t *testing.T) {
	userID := uuid.New()
	s := newTestWatchService(userID, "dQw4w9WgXcQ")
	defer s.Shutdown()

	assert.False(t, s.IsCurrentlyWatching(userID))

	err := s.ReportPlayStarted(context.Background(), userID)
	assert.NoError(t, err)
	assert.True(t, s.IsCurrentlyWatching(userID))

	progress := s.Progress(userID)
	assert.Equal(t, "dQw4w9WgXcQ", progress.VideoID)
	assert.Equal(t, model.WatchStateWatching, progress.State)
	assert.Equal(t, 3600, progress.Required)
}

func TestReportPlayStartedIdempotentWhileWatching(t *testing.T) {
	userID := uuid.New()
	s := newTestWatchService(userID, "dQw4w9WgXcQ")
	defer s.Shutdown()

	assert.NoError(t, s.ReportPlayStarted(context.Background(), userID))
	firstTicker := s.sessions[userID].ticker

	// A second play report while watching must not restart the timers.
	assert.NoError(t, s.ReportPlayStarted(context.Background(), userID))
	assert.Same(t, firstTicker, s.sessions[userID].ticker)
}

func TestReportPlayStoppedPreservesElapsed(t *testing.T) {
	userID := uuid.New()
	s := newTestWatchService(userID, "dQw4w9WgXcQ")
	defer s.Shutdown()

	assert.NoError(t, s.ReportPlayStarted(context.Background(), userID))

	s.mu.Lock()
	s.sessions[userID].elapsed = 12
	s.mu.Unlock()

	s.ReportPlayStopped(userID)
	assert.False(t, s.IsCurrentlyWatching(userID))

	progress := s.Progress(userID)
	assert.Equal(t, model.WatchStateIdle, progress.State)
	assert.Equal(t, 12, progress.Elapsed)

	sess := s.sessions[userID]
	assert.Nil(t, sess.ticker)
	assert.Nil(t, sess.deadline)
}

func TestReportPlayStoppedWithoutSessionIsNoop(t *testing.T) {
	s := &WatchService{sessions: make(map[uuid.UUID]*watchSession)}
	s.ReportPlayStopped(uuid.New())
	assert.Nil(t, s.Progress(uuid.New()))
}

func TestCompletedSessionNeverRestarts(t *testing.T) {
	userID := uuid.New()
	s := newTestWatchService(userID, "dQw4w9WgXcQ")
	defer s.Shutdown()

	s.mu.Lock()
	sess := s.sessions[userID]
	sess.completed = true
	sess.state = model.WatchStateCompleted
	sess.elapsed = sess.required
	s.mu.Unlock()

	assert.NoError(t, s.ReportPlayStarted(context.Background(), userID))

	progress := s.Progress(userID)
	assert.Equal(t, model.WatchStateCompleted, progress.State)
	assert.Nil(t, s.sessions[userID].ticker)
}

func TestTeardownCancelsAllTimers(t *testing.T) {
	sess := &watchSession{
		ticker:       time.NewTicker(time.Second),
		tickerDone:   make(chan struct{}),
		deadline:     time.NewTimer(time.Hour),
		skipTimer:    time.NewTimer(time.Hour),
		advanceTimer: time.NewTimer(time.Hour),
		elapsed:      7,
	}

	sess.teardown()

	assert.Nil(t, sess.ticker)
	assert.Nil(t, sess.tickerDone)
	assert.Nil(t, sess.deadline)
	assert.Nil(t, sess.skipTimer)
	assert.Nil(t, sess.advanceTimer)
	assert.Equal(t, 7, sess.elapsed)
}

func TestShutdownDropsAllSessions(t *testing.T) {
	userA, userB := uuid.New(), uuid.New()
	s := newTestWatchService(userA, "dQw4w9WgXcQ")
	s.sessions[userB] = &watchSession{userID: userB, videoID: "3JZ_D3ELwOQ", required: 3600}

	assert.NoError(t, s.ReportPlayStarted(context.Background(), userA))
	s.Shutdown()

	assert.Empty(t, s.sessions)
	assert.Nil(t, s.Progress(userA))
}
