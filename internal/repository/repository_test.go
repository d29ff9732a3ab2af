package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
)

func setupTestRepo(t *testing.T) (*Repository, func()) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	schema := fmt.Sprintf("test_%d", time.Now().UnixNano())

	admin, err := sqlx.Connect("pgx", databaseURL)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := admin.ExecContext(ctx, fmt.Sprintf("CREATE SCHEMA %s", schema)); err != nil {
		admin.Close()
		t.Fatalf("create schema: %v", err)
	}

	sep := "?"
	if strings.Contains(databaseURL, "?") {
		sep = "&"
	}
	repo, err := New(databaseURL + sep + "options=-csearch_path%3D" + schema)
	if err != nil {
		admin.Close()
		t.Fatalf("connect scoped: %v", err)
	}
	if err := createTestTables(ctx, repo.db); err != nil {
		repo.Close()
		admin.Close()
		t.Fatalf("create tables: %v", err)
	}

	return repo, func() {
		repo.Close()
		_, _ = admin.ExecContext(ctx, fmt.Sprintf("DROP SCHEMA %s CASCADE", schema))
		admin.Close()
	}
}

func createTestTables(ctx context.Context, db *sqlx.DB) error {
	queries := []string{
		`CREATE TABLE users (id uuid PRIMARY KEY DEFAULT gen_random_uuid(), display_name text NOT NULL, points bigint NOT NULL DEFAULT 0, total_points_earned bigint NOT NULL DEFAULT 0, referral_code text NOT NULL UNIQUE, referred_by uuid, created_at timestamptz NOT NULL DEFAULT now(), updated_at timestamptz NOT NULL DEFAULT now())`,
		`CREATE TABLE videos (id text PRIMARY KEY, seq bigserial NOT NULL, title text NOT NULL, description text NOT NULL DEFAULT '', is_default boolean NOT NULL DEFAULT false, views bigint NOT NULL DEFAULT 0, duration int NOT NULL DEFAULT 0, submitted_by uuid, submitted_at timestamptz NOT NULL DEFAULT now())`,
		`CREATE TABLE watched_videos (user_id uuid NOT NULL, video_id text NOT NULL, watched_at timestamptz NOT NULL DEFAULT now(), PRIMARY KEY (user_id, video_id))`,
		`CREATE TABLE player_states (user_id uuid PRIMARY KEY, current_video_id text, updated_at timestamptz NOT NULL DEFAULT now())`,
		`CREATE TABLE settings (key text PRIMARY KEY, value text NOT NULL, updated_at timestamptz NOT NULL DEFAULT now())`,
		`CREATE TABLE purchase_codes (code text PRIMARY KEY, points bigint NOT NULL, is_redeemed boolean NOT NULL DEFAULT false, redeemed_by uuid, created_at timestamptz NOT NULL DEFAULT now(), redeemed_at timestamptz)`,
		`CREATE TABLE point_transactions (id uuid PRIMARY KEY DEFAULT gen_random_uuid(), user_id uuid NOT NULL, amount bigint NOT NULL, type text NOT NULL, description text, reference_id text, balance_before bigint NOT NULL, balance_after bigint NOT NULL, created_at timestamptz NOT NULL DEFAULT now())`,
	}
	for _, query := range queries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

func createTestUser(t *testing.T, repo *Repository) *model.User {
	t.Helper()
	user := &model.User{
		ID:           uuid.New(),
		DisplayName:  "Test User",
		ReferralCode: uuid.New().String()[:8],
	}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestCreditAndDebitPoints(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	user := createTestUser(t, repo)

	balance, err := repo.CreditPoints(ctx, user.ID, 100, model.TransactionTypeWatchReward, "watch reward", nil)
	if err != nil || balance != 100 {
		t.Fatalf("credit failed: balance=%d err=%v", balance, err)
	}

	balance, err = repo.DebitPoints(ctx, user.ID, 30, model.TransactionTypeSubmissionFee, "submission fee", nil)
	if err != nil || balance != 70 {
		t.Fatalf("debit failed: balance=%d err=%v", balance, err)
	}

	// The lifetime counter only grows on credits.
	updated, err := repo.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if updated.Points != 70 || updated.TotalPointsEarned != 100 {
		t.Fatalf("expected points=70 lifetime=100, got points=%d lifetime=%d", updated.Points, updated.TotalPointsEarned)
	}

	transactions, err := repo.GetPointTransactions(ctx, user.ID, 10, 0)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("expected 2 audit rows, got %d", len(transactions))
	}
}

func TestDebitPointsInsufficient(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	user := createTestUser(t, repo)
	if _, err := repo.CreditPoints(ctx, user.ID, 50, model.TransactionTypePurchaseCode, "", nil); err != nil {
		t.Fatalf("credit: %v", err)
	}

	if _, err := repo.DebitPoints(ctx, user.ID, 100, model.TransactionTypeSubmissionFee, "", nil); !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("expected insufficient points, got %v", err)
	}

	// A rejected debit leaves no trace: balance and audit log unchanged.
	balance, err := repo.GetUserPoints(ctx, user.ID)
	if err != nil || balance != 50 {
		t.Fatalf("balance changed after rejected debit: balance=%d err=%v", balance, err)
	}
	transactions, err := repo.GetPointTransactions(ctx, user.ID, 10, 0)
	if err != nil || len(transactions) != 1 {
		t.Fatalf("expected 1 audit row, got %d (err=%v)", len(transactions), err)
	}
}

func TestRedeemPurchaseCodeOnce(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	user := createTestUser(t, repo)
	code := &model.PurchaseCode{Code: "BUY-TESTCODE", Points: 500}
	if err := repo.CreatePurchaseCode(ctx, code); err != nil {
		t.Fatalf("create code: %v", err)
	}

	// Lookup is case-insensitive.
	redeemed, err := repo.RedeemPurchaseCode(ctx, "buy-testcode", user.ID)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if !redeemed.IsRedeemed || redeemed.Points != 500 {
		t.Fatalf("unexpected redeemed code: %+v", redeemed)
	}

	if _, err := repo.RedeemPurchaseCode(ctx, "BUY-TESTCODE", user.ID); !errors.Is(err, ErrPurchaseCodeRedeemed) {
		t.Fatalf("expected already redeemed, got %v", err)
	}

	if _, err := repo.RedeemPurchaseCode(ctx, "BUY-NOPE", user.ID); !errors.Is(err, ErrPurchaseCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMarkWatchedIdempotent(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	user := createTestUser(t, repo)
	video := &model.Video{ID: "dQw4w9WgXcQ", Title: "Test"}
	if err := repo.CreateVideo(ctx, video); err != nil {
		t.Fatalf("create video: %v", err)
	}

	first, err := repo.MarkWatched(ctx, user.ID, video.ID)
	if err != nil || !first {
		t.Fatalf("first mark: inserted=%v err=%v", first, err)
	}
	second, err := repo.MarkWatched(ctx, user.ID, video.ID)
	if err != nil || second {
		t.Fatalf("second mark should be noop: inserted=%v err=%v", second, err)
	}

	watched, err := repo.GetWatchedVideoIDs(ctx, user.ID)
	if err != nil || len(watched) != 1 {
		t.Fatalf("expected 1 watched id, got %v (err=%v)", watched, err)
	}
}

func TestCreateVideoDuplicate(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	if err := repo.CreateVideo(ctx, &model.Video{ID: "dQw4w9WgXcQ", Title: "First"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.CreateVideo(ctx, &model.Video{ID: "dQw4w9WgXcQ", Title: "Again"}); !errors.Is(err, ErrVideoDuplicate) {
		t.Fatalf("expected duplicate, got %v", err)
	}
}

func TestPlayerStateUpsert(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	user := createTestUser(t, repo)

	// Absent row reads as an empty state, not an error.
	state, err := repo.GetPlayerState(ctx, user.ID)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state.CurrentVideoID != nil {
		t.Fatalf("expected empty state, got %+v", state)
	}

	videoID := "dQw4w9WgXcQ"
	if err := repo.SetCurrentVideo(ctx, user.ID, &videoID); err != nil {
		t.Fatalf("set current: %v", err)
	}
	state, err = repo.GetPlayerState(ctx, user.ID)
	if err != nil || state.CurrentVideoID == nil || *state.CurrentVideoID != videoID {
		t.Fatalf("expected current %s, got %+v (err=%v)", videoID, state, err)
	}

	if err := repo.SetCurrentVideo(ctx, user.ID, nil); err != nil {
		t.Fatalf("clear current: %v", err)
	}
	state, err = repo.GetPlayerState(ctx, user.ID)
	if err != nil || state.CurrentVideoID != nil {
		t.Fatalf("expected cleared state, got %+v (err=%v)", state, err)
	}
}

func TestListVideosInsertionOrder(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	for _, id := range []string{"aaaaaaaaaaa", "bbbbbbbbbbb", "ccccccccccc"} {
		if err := repo.CreateVideo(ctx, &model.Video{ID: id, Title: id}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	videos, err := repo.ListVideos(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(videos) != 3 || videos[0].ID != "aaaaaaaaaaa" || videos[2].ID != "ccccccccccc" {
		t.Fatalf("unexpected order: %v", videos)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	if err := repo.SetSetting(ctx, model.SettingPointsPerWatch, "25"); err != nil {
		t.Fatalf("set: %v", err)
	}
	// Upsert overwrites.
	if err := repo.SetSetting(ctx, model.SettingPointsPerWatch, "40"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	all, err := repo.GetAllSettings(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if all[model.SettingPointsPerWatch] != "40" {
		t.Fatalf("expected 40, got %q", all[model.SettingPointsPerWatch])
	}

	value, err := repo.GetSettingInt(ctx, model.SettingPointsPerWatch)
	if err != nil || value != 40 {
		t.Fatalf("expected int 40, got %d (err=%v)", value, err)
	}

	if _, err := repo.GetSetting(ctx, "no_such_key"); !errors.Is(err, ErrSettingNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCountReferrals(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	referrer := createTestUser(t, repo)
	for i := 0; i < 3; i++ {
		referred := &model.User{
			ID:           uuid.New(),
			DisplayName:  "Referred",
			ReferralCode: uuid.New().String()[:8],
			ReferredBy:   &referrer.ID,
		}
		if err := repo.CreateUser(ctx, referred); err != nil {
			t.Fatalf("create referred: %v", err)
		}
	}

	count, err := repo.CountReferrals(ctx, referrer.ID)
	if err != nil || count != 3 {
		t.Fatalf("expected 3 referrals, got %d (err=%v)", count, err)
	}

	ids, err := repo.GetReferredUserIDs(ctx, referrer.ID)
	if err != nil || len(ids) != 3 {
		t.Fatalf("expected 3 referred ids, got %v (err=%v)", ids, err)
	}
}
