package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
)

var (
	ErrVideoNotFound  = errors.New("video not found")
	ErrVideoDuplicate = errors.New("video already submitted")
)

// ListVideos returns the whole collection in insertion order. The scheduler
// depends on this ordering being stable.
func (r *Repository) ListVideos(ctx context.Context) ([]model.Video, error) {
	videos := []model.Video{}
	err := r.db.SelectContext(ctx, &videos, "SELECT * FROM videos ORDER BY seq")
	return videos, err
}

func (r *Repository) GetVideo(ctx context.Context, id string) (*model.Video, error) {
	var video model.Video
	err := r.db.GetContext(ctx, &video, "SELECT * FROM videos WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return &video, nil
}

func (r *Repository) CreateVideo(ctx context.Context, video *model.Video) error {
	query := `
		INSERT INTO videos (id, title, description, is_default, duration, submitted_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING seq, views, submitted_at`

	err := r.db.QueryRowContext(ctx, query,
		video.ID,
		video.Title,
		video.Description,
		video.IsDefault,
		video.Duration,
		video.SubmittedBy,
	).Scan(&video.Seq, &video.Views, &video.SubmittedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrVideoDuplicate
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateVideo(ctx context.Context, id, title, description string, isDefault bool, duration int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE videos SET title = $2, description = $3, is_default = $4, duration = $5
		WHERE id = $1`, id, title, description, isDefault, duration)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVideoNotFound
	}
	return nil
}

func (r *Repository) DeleteVideo(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM videos WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVideoNotFound
	}
	return nil
}

func (r *Repository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE videos SET views = views + 1 WHERE id = $1", id)
	return err
}

func (r *Repository) GetWatchedVideoIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	ids := []string{}
	err := r.db.SelectContext(ctx, &ids, `
		SELECT video_id FROM watched_videos WHERE user_id = $1 ORDER BY watched_at`, userID)
	return ids, err
}

// MarkWatched records the video in the user's watched set. Returns false if it
// was already there, so completion handling stays idempotent.
func (r *Repository) MarkWatched(ctx context.Context, userID uuid.UUID, videoID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO watched_videos (user_id, video_id) VALUES ($1, $2)
		ON CONFLICT (user_id, video_id) DO NOTHING`, userID, videoID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *Repository) GetPlayerState(ctx context.Context, userID uuid.UUID) (*model.PlayerState, error) {
	var state model.PlayerState
	err := r.db.GetContext(ctx, &state, "SELECT * FROM player_states WHERE user_id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &model.PlayerState{UserID: userID}, nil
		}
		return nil, err
	}
	return &state, nil
}

func (r *Repository) SetCurrentVideo(ctx context.Context, userID uuid.UUID, videoID *string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO player_states (user_id, current_video_id, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET current_video_id = $2, updated_at = NOW()`,
		userID, videoID)
	return err
}
