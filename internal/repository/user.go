package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, display_name, referral_code, referred_by)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		user.ID,
		user.DisplayName,
		user.ReferralCode,
		user.ReferredBy,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *Repository) UpdateDisplayName(ctx context.Context, id uuid.UUID, name string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET display_name = $2, updated_at = NOW() WHERE id = $1`, id, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repository) GetUserByReferralCode(ctx context.Context, code string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE referral_code = $1", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetReferredUserIDs returns the ids of users referred by the given user, in
// signup order.
func (r *Repository) GetReferredUserIDs(ctx context.Context, referrerID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := r.db.SelectContext(ctx, &ids, `
		SELECT id FROM users WHERE referred_by = $1 ORDER BY created_at`, referrerID)
	return ids, err
}

func (r *Repository) CountReferrals(ctx context.Context, referrerID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM users WHERE referred_by = $1`, referrerID)
	return count, err
}

func (r *Repository) ListUsers(ctx context.Context, limit, offset int, search string) ([]model.User, int, error) {
	var users []model.User
	var total int

	where := ""
	args := []interface{}{limit, offset}
	if search != "" {
		where = " WHERE display_name ILIKE $3 OR referral_code ILIKE $3"
		args = append(args, "%"+search+"%")
	}

	err := r.db.SelectContext(ctx, &users, `
		SELECT * FROM users`+where+`
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, args...)
	if err != nil {
		return nil, 0, err
	}

	countArgs := args[2:]
	countWhere := ""
	if search != "" {
		countWhere = " WHERE display_name ILIKE $1 OR referral_code ILIKE $1"
	}
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM users"+countWhere, countArgs...); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *Repository) GetUserProfile(ctx context.Context, id uuid.UUID) (*model.UserProfile, error) {
	user, err := r.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	watched, err := r.GetWatchedVideoIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	referred, err := r.GetReferredUserIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.UserProfile{
		User:            *user,
		WatchedVideoIDs: watched,
		ReferredUserIDs: referred,
	}, nil
}
