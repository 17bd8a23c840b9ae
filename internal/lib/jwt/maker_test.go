package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour)

	token, err := maker.GenerateToken("42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseToken_Invalid(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour)

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name:  "мусор вместо токена",
			token: func(_ *testing.T) string { return "not.a.token" },
		},
		{
			name: "чужой секрет",
			token: func(t *testing.T) string {
				other := NewJWTMaker("other-secret", time.Hour)
				token, err := other.GenerateToken("42")
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "истекший токен",
			token: func(t *testing.T) string {
				expired := NewJWTMaker("test-secret", -time.Minute)
				token, err := expired.GenerateToken("42")
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "пустой subject",
			token: func(t *testing.T) string {
				token, err := maker.GenerateToken("")
				require.NoError(t, err)
				return token
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := maker.ParseToken(tt.token(t))
			assert.Error(t, err)
		})
	}
}
