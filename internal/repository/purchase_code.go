package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
)

var (
	ErrPurchaseCodeNotFound = errors.New("purchase code not found")
	ErrPurchaseCodeRedeemed = errors.New("purchase code already redeemed")
)

func (r *Repository) CreatePurchaseCode(ctx context.Context, code *model.PurchaseCode) error {
	query := `
		INSERT INTO purchase_codes (code, points)
		VALUES ($1, $2)
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query, code.Code, code.Points).Scan(&code.CreatedAt)
}

func (r *Repository) ListPurchaseCodes(ctx context.Context, limit, offset int) ([]model.PurchaseCode, error) {
	codes := []model.PurchaseCode{}
	err := r.db.SelectContext(ctx, &codes, `
		SELECT * FROM purchase_codes
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	return codes, err
}

func (r *Repository) DeletePurchaseCode(ctx context.Context, code string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM purchase_codes WHERE code = $1", code)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPurchaseCodeNotFound
	}
	return nil
}

// RedeemPurchaseCode marks the code redeemed by the user. The lookup is
// case-insensitive on an already-trimmed token. The row is locked for the
// check-and-set on is_redeemed, so a code can never be redeemed twice even
// under concurrent submissions.
func (r *Repository) RedeemPurchaseCode(ctx context.Context, token string, userID uuid.UUID) (*model.PurchaseCode, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var code model.PurchaseCode
	err = tx.GetContext(ctx, &code, `
		SELECT * FROM purchase_codes WHERE UPPER(code) = UPPER($1) FOR UPDATE`, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPurchaseCodeNotFound
		}
		return nil, err
	}

	if code.IsRedeemed {
		return nil, ErrPurchaseCodeRedeemed
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE purchase_codes SET is_redeemed = TRUE, redeemed_by = $2, redeemed_at = NOW()
		WHERE code = $1`, code.Code, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	code.IsRedeemed = true
	code.RedeemedBy = &userID
	return &code, nil
}
