package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-order-tokens"

func TestOrderHistoryToken_RoundTrip(t *testing.T) {
	token, err := GenerateOrderHistoryToken([]uint{3, 7}, testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	orderIDs, err := ParseOrderHistoryToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 7}, orderIDs)
}

func TestParseOrderHistoryToken_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr error
	}{
		{
			name:    "garbage token",
			token:   "not-a-token",
			secret:  testSecret,
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong secret",
			token: func() string {
				token, _ := GenerateOrderHistoryToken([]uint{1}, "other-secret", time.Hour)
				return token
			}(),
			secret:  testSecret,
			wantErr: ErrInvalidToken,
		},
		{
			name: "expired token",
			token: func() string {
				token, _ := GenerateOrderHistoryToken([]uint{1}, testSecret, -time.Minute)
				return token
			}(),
			secret:  testSecret,
			wantErr: ErrExpiredToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOrderHistoryToken(tt.token, tt.secret)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAppendOrderToToken(t *testing.T) {
	t.Run("starts history without a prior token", func(t *testing.T) {
		token, err := AppendOrderToToken("", 42, testSecret, time.Hour)
		require.NoError(t, err)

		orderIDs, err := ParseOrderHistoryToken(token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, []uint{42}, orderIDs)
	})

	t.Run("appends to existing history", func(t *testing.T) {
		first, err := AppendOrderToToken("", 1, testSecret, time.Hour)
		require.NoError(t, err)
		second, err := AppendOrderToToken(first, 2, testSecret, time.Hour)
		require.NoError(t, err)

		orderIDs, err := ParseOrderHistoryToken(second, testSecret)
		require.NoError(t, err)
		assert.Equal(t, []uint{1, 2}, orderIDs)
	})

	t.Run("ignores an unusable prior token", func(t *testing.T) {
		token, err := AppendOrderToToken("broken", 9, testSecret, time.Hour)
		require.NoError(t, err)

		orderIDs, err := ParseOrderHistoryToken(token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, []uint{9}, orderIDs)
	})

	t.Run("does not duplicate an order", func(t *testing.T) {
		first, err := AppendOrderToToken("", 5, testSecret, time.Hour)
		require.NoError(t, err)
		second, err := AppendOrderToToken(first, 5, testSecret, time.Hour)
		require.NoError(t, err)

		orderIDs, err := ParseOrderHistoryToken(second, testSecret)
		require.NoError(t, err)
		assert.Equal(t, []uint{5}, orderIDs)
	})
}
