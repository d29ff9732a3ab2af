package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
)

func video(id string, isDefault bool, views int64) model.Video {
	return model.Video{ID: id, IsDefault: isDefault, Views: views}
}

func playlistIDs(playlist []model.Video) []string {
	ids := make([]string, len(playlist))
	for i, v := range playlist {
		ids[i] = v.ID
	}
	return ids
}

func TestBuildFairPlaylistInterleavesLanes(t *testing.T) {
	videos := []model.Video{
		video("admin-5", true, 5),
		video("admin-2", true, 2),
		video("admin-8", true, 8),
		video("user-1", false, 1),
		video("user-9", false, 9),
	}

	playlist := buildFairPlaylist(videos, nil, "")

	// Admin lane leads, each lane ordered fewest-viewed-first.
	assert.Equal(t, []string{"admin-2", "user-1", "admin-5", "user-9", "admin-8"}, playlistIDs(playlist))
}

func TestBuildFairPlaylistDrainRemainder(t *testing.T) {
	videos := []model.Video{
		video("admin-1", true, 1),
		video("user-1", false, 1),
		video("user-2", false, 2),
		video("user-3", false, 3),
	}

	playlist := buildFairPlaylist(videos, nil, "")

	// When one lane runs out the other continues uninterrupted.
	assert.Equal(t, []string{"admin-1", "user-1", "user-2", "user-3"}, playlistIDs(playlist))
}

func TestBuildFairPlaylistSkipsWatched(t *testing.T) {
	videos := []model.Video{
		video("a", true, 0),
		video("b", true, 0),
		video("c", false, 0),
	}
	watched := map[string]struct{}{"a": {}, "c": {}}

	playlist := buildFairPlaylist(videos, watched, "")

	assert.Equal(t, []string{"b"}, playlistIDs(playlist))
}

func TestBuildFairPlaylistExcludesJustWatched(t *testing.T) {
	videos := []model.Video{
		video("a", true, 0),
		video("b", true, 1),
	}

	playlist := buildFairPlaylist(videos, nil, "a")

	assert.Equal(t, []string{"b"}, playlistIDs(playlist))
}

func TestBuildFairPlaylistTieBreaksByInsertionOrder(t *testing.T) {
	// Equal view counts: the stable sort preserves collection order.
	videos := []model.Video{
		video("first", false, 3),
		video("second", false, 3),
		video("third", false, 3),
	}

	playlist := buildFairPlaylist(videos, nil, "")

	assert.Equal(t, []string{"first", "second", "third"}, playlistIDs(playlist))
}

func TestBuildFairPlaylistEmptyWhenAllWatched(t *testing.T) {
	videos := []model.Video{
		video("a", true, 0),
		video("b", false, 0),
	}
	watched := map[string]struct{}{"a": {}, "b": {}}

	assert.Empty(t, buildFairPlaylist(videos, watched, ""))
}

func TestPlaylistIndexOf(t *testing.T) {
	playlist := []model.Video{
		video("a", true, 0),
		video("b", false, 0),
	}

	assert.Equal(t, 0, playlistIndexOf(playlist, "a"))
	assert.Equal(t, 1, playlistIndexOf(playlist, "b"))
	assert.Equal(t, -1, playlistIndexOf(playlist, "missing"))
}

func TestAdvanceWrapsAround(t *testing.T) {
	// The rotation index arithmetic Advance relies on: absent current video
	// maps to index -1, which lands on the head; the last entry wraps to the
	// head as well.
	playlist := []model.Video{
		video("a", true, 0),
		video("b", false, 0),
		video("c", false, 1),
	}

	idx := playlistIndexOf(playlist, "nonexistent")
	assert.Equal(t, "a", playlist[(idx+1)%len(playlist)].ID)

	idx = playlistIndexOf(playlist, "c")
	assert.Equal(t, "a", playlist[(idx+1)%len(playlist)].ID)

	idx = playlistIndexOf(playlist, "a")
	assert.Equal(t, "b", playlist[(idx+1)%len(playlist)].ID)
}
