package utils

import (
	"testing"

	"github.com/campusconnect/lost-and-found-api/internal/constants"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}

	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, constants.OTPLength)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9', "OTP must be numeric, got %q", code)
		}
		seen[code] = true
	}

	// 50 draws from a million values colliding down to a handful would mean
	// the generator is broken
	require.Greater(t, len(seen), 10)
}
