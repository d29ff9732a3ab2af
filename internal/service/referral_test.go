package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
)

var testTiers = []model.ReferralTier{
	{ReferralCount: 5, BonusPoints: 250},
	{ReferralCount: 10, BonusPoints: 1000},
	{ReferralCount: 25, BonusPoints: 5000},
}

func TestTierBonusExactMatch(t *testing.T) {
	assert.Equal(t, int64(250), tierBonus(testTiers, 5))
	assert.Equal(t, int64(1000), tierBonus(testTiers, 10))
	assert.Equal(t, int64(5000), tierBonus(testTiers, 25))
}

func TestTierBonusNoMatchBetweenThresholds(t *testing.T) {
	// Thresholds pay out only on the exact count, never retroactively.
	assert.Zero(t, tierBonus(testTiers, 4))
	assert.Zero(t, tierBonus(testTiers, 6))
	assert.Zero(t, tierBonus(testTiers, 11))
	assert.Zero(t, tierBonus(testTiers, 26))
}

func TestTierBonusNoTiers(t *testing.T) {
	assert.Zero(t, tierBonus(nil, 5))
	assert.Zero(t, tierBonus([]model.ReferralTier{}, 1))
}
