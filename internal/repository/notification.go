package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
)

func (r *Repository) CreateNotification(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (user_id, message, type)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query, n.UserID, n.Message, n.Type).
		Scan(&n.ID, &n.CreatedAt)
}

func (r *Repository) ListNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	notifications := []model.Notification{}
	err := r.db.SelectContext(ctx, &notifications, `
		SELECT * FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	return notifications, err
}

func (r *Repository) CountUnreadNotifications(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID)
	return count, err
}

func (r *Repository) MarkNotificationsRead(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	return err
}
