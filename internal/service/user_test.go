package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReferralCode(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 100; i++ {
		code, err := generateReferralCode()
		assert.NoError(t, err)
		assert.Len(t, code, 8)
		assert.Equal(t, strings.ToUpper(code), code)
		assert.NotContains(t, code, "=")
		seen[code] = struct{}{}
	}

	// 40 bits of entropy per code: collisions across 100 draws would point
	// at a broken generator.
	assert.Len(t, seen, 100)
}
