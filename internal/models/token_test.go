package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResetToken_Status(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		expected  TokenStatus
	}{
		{
			name:      "active before expiry",
			expiresAt: now.Add(time.Hour),
			expected:  TokenStatusActive,
		},
		{
			name:      "active exactly at expiry",
			expiresAt: now,
			expected:  TokenStatusActive,
		},
		{
			name:      "expired after expiry",
			expiresAt: now.Add(-time.Second),
			expected:  TokenStatusExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := ResetToken{Value: "token", ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.expected, token.Status(now))
		})
	}
}
