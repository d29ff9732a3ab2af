package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/repository"
)

const queueSize = 4

// PlaylistService derives the per-user current video and upcoming queue from
// the video collection. The playlist is never cached: it is recomputed as a
// pure function of the collection and the user's watched set on every call,
// so there is no incremental state to drift out of sync.
type PlaylistService struct {
	repo *repository.Repository
}

func NewPlaylistService(repo *repository.Repository) *PlaylistService {
	return &PlaylistService{repo: repo}
}

// buildFairPlaylist filters out the excluded and already-watched videos, then
// splits the remainder into the admin-curated and user-submitted lanes, sorts
// each lane fewest-viewed-first (stable, so insertion order breaks ties) and
// merges them round-robin with the admin lane leading. Neither lane can
// starve the other, and low-view videos surface before well-viewed ones.
func buildFairPlaylist(videos []model.Video, watched map[string]struct{}, excludeID string) []model.Video {
	eligible := make([]model.Video, 0, len(videos))
	for _, v := range videos {
		if v.ID == excludeID {
			continue
		}
		if _, ok := watched[v.ID]; ok {
			continue
		}
		eligible = append(eligible, v)
	}

	var adminLane, userLane []model.Video
	for _, v := range eligible {
		if v.IsDefault {
			adminLane = append(adminLane, v)
		} else {
			userLane = append(userLane, v)
		}
	}

	sort.SliceStable(adminLane, func(i, j int) bool { return adminLane[i].Views < adminLane[j].Views })
	sort.SliceStable(userLane, func(i, j int) bool { return userLane[i].Views < userLane[j].Views })

	playlist := make([]model.Video, 0, len(eligible))
	for i, j := 0, 0; i < len(adminLane) || j < len(userLane); {
		if i < len(adminLane) {
			playlist = append(playlist, adminLane[i])
			i++
		}
		if j < len(userLane) {
			playlist = append(playlist, userLane[j])
			j++
		}
	}
	return playlist
}

func playlistIndexOf(playlist []model.Video, videoID string) int {
	for i, v := range playlist {
		if v.ID == videoID {
			return i
		}
	}
	return -1
}

func (s *PlaylistService) watchedSet(ctx context.Context, userID uuid.UUID) (map[string]struct{}, error) {
	ids, err := s.repo.GetWatchedVideoIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	watched := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		watched[id] = struct{}{}
	}
	return watched, nil
}

// Current returns the video the user should be shown now. If no current
// video is set, or the stored one is no longer eligible (just watched, or
// deleted), it falls back to the head of the fair playlist, or nil when
// everything has been watched.
func (s *PlaylistService) Current(ctx context.Context, userID uuid.UUID) (*model.Video, error) {
	videos, err := s.repo.ListVideos(ctx)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, s.repo.SetCurrentVideo(ctx, userID, nil)
	}

	watched, err := s.watchedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	playlist := buildFairPlaylist(videos, watched, "")
	if len(playlist) == 0 {
		return nil, s.repo.SetCurrentVideo(ctx, userID, nil)
	}

	state, err := s.repo.GetPlayerState(ctx, userID)
	if err != nil {
		return nil, err
	}

	if state.CurrentVideoID != nil {
		if idx := playlistIndexOf(playlist, *state.CurrentVideoID); idx >= 0 {
			return &playlist[idx], nil
		}
	}

	next := playlist[0]
	if err := s.repo.SetCurrentVideo(ctx, userID, &next.ID); err != nil {
		return nil, err
	}
	return &next, nil
}

// Advance moves to the next playlist entry, wrapping at the end. The id of a
// video that was just finished or skipped is passed as excludeID so it is
// dropped from the recomputed playlist even before the watched set catches
// up. When the current video is absent from the recomputed playlist the
// rotation restarts at the head; an empty playlist clears the player.
func (s *PlaylistService) Advance(ctx context.Context, userID uuid.UUID, excludeID string) (*model.Video, error) {
	videos, err := s.repo.ListVideos(ctx)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, s.repo.SetCurrentVideo(ctx, userID, nil)
	}

	watched, err := s.watchedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	playlist := buildFairPlaylist(videos, watched, excludeID)
	if len(playlist) == 0 {
		return nil, s.repo.SetCurrentVideo(ctx, userID, nil)
	}

	state, err := s.repo.GetPlayerState(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	if state.CurrentVideoID != nil {
		idx = playlistIndexOf(playlist, *state.CurrentVideoID)
	}
	next := playlist[(idx+1)%len(playlist)]

	if err := s.repo.SetCurrentVideo(ctx, userID, &next.ID); err != nil {
		return nil, err
	}
	return &next, nil
}

// Queue returns up to four upcoming videos after the current one, wrapping
// around the playlist. A playlist of one (or none) has an empty queue.
func (s *PlaylistService) Queue(ctx context.Context, userID uuid.UUID) ([]model.Video, error) {
	current, err := s.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return []model.Video{}, nil
	}

	videos, err := s.repo.ListVideos(ctx)
	if err != nil {
		return nil, err
	}
	watched, err := s.watchedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	playlist := buildFairPlaylist(videos, watched, "")
	idx := playlistIndexOf(playlist, current.ID)
	if idx < 0 || len(playlist) <= 1 {
		return []model.Video{}, nil
	}

	n := queueSize
	if n > len(playlist)-1 {
		n = len(playlist) - 1
	}
	queue := make([]model.Video, 0, n)
	for i := 1; i <= n; i++ {
		queue = append(queue, playlist[(idx+i)%len(playlist)])
	}
	return queue, nil
}
