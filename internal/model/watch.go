package model

// WatchState is the per-video engagement state. A session moves
// Idle -> Watching while the player reports playback, and reaches Completed
// exactly once when the required watch duration has elapsed.
type WatchState string

const (
	WatchStateIdle      WatchState = "idle"
	WatchStateWatching  WatchState = "watching"
	WatchStateCompleted WatchState = "completed"
)

// WatchProgress is the snapshot the client polls while a video plays.
type WatchProgress struct {
	VideoID    string     `json:"video_id"`
	State      WatchState `json:"state"`
	Elapsed    int        `json:"elapsed"`
	Required   int        `json:"required"`
	IsWatching bool       `json:"is_watching"`
}
