package repository

import (
	"context"
)

type Stats struct {
	TotalUsers          int   `json:"total_users" db:"total_users"`
	TotalVideos         int   `json:"total_videos" db:"total_videos"`
	UserSubmittedVideos int   `json:"user_submitted_videos" db:"user_submitted_videos"`
	TotalViews          int64 `json:"total_views" db:"total_views"`
	PointsInCirculation int64 `json:"points_in_circulation" db:"points_in_circulation"`
	PointsEverIssued    int64 `json:"points_ever_issued" db:"points_ever_issued"`
	CodesRedeemed       int   `json:"codes_redeemed" db:"codes_redeemed"`
}

func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := r.db.GetContext(ctx, &stats, `
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(*) FROM videos) AS total_videos,
			(SELECT COUNT(*) FROM videos WHERE is_default = FALSE) AS user_submitted_videos,
			(SELECT COALESCE(SUM(views), 0) FROM videos) AS total_views,
			(SELECT COALESCE(SUM(points), 0) FROM users) AS points_in_circulation,
			(SELECT COALESCE(SUM(total_points_earned), 0) FROM users) AS points_ever_issued,
			(SELECT COUNT(*) FROM purchase_codes WHERE is_redeemed = TRUE) AS codes_redeemed`)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
