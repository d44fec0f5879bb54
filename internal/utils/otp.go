package utils

import (
	"crypto/rand"
	"fmt"

	"github.com/campusconnect/lost-and-found-api/internal/constants"
)

// GenerateOTP returns a random numeric one-time code of the configured length.
func GenerateOTP() (string, error) {
	const digits = "0123456789"

	bytes := make([]byte, constants.OTPLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	for i, b := range bytes {
		bytes[i] = digits[int(b)%len(digits)]
	}

	return string(bytes), nil
}
