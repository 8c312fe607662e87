package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/pinterest-insights-api/internal/config"
	"github.com/vfg2006/pinterest-insights-api/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims domain.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "header ausente", header: "", wantErr: ErrMissingToken},
		{name: "sem esquema bearer", header: "abc", wantErr: ErrMissingBearer},
		{name: "esquema basic", header: "Basic abc", wantErr: ErrMissingBearer},
		{name: "bearer vazio", header: "Bearer   ", wantErr: ErrMissingBearer},
		{name: "bearer válido", header: "Bearer abc.def", want: "abc.def"},
		{name: "esquema minúsculo", header: "bearer abc", want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_ValidateToken(t *testing.T) {
	service := NewService(&config.Config{Auth: config.Auth{Secret: testSecret}})

	t.Run("token válido resolve o dono", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), domain.Claims{
			UserID: "owner-1",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "owner-1", claims.OwnerID())
	})

	t.Run("subject é usado quando user_id está ausente", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), domain.Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "owner-sub"},
		})

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "owner-sub", claims.OwnerID())
	})

	t.Run("segredo diferente é rejeitado", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte("other"), domain.Claims{UserID: "owner-1"})

		_, err := service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.True(t, IsAuthorizationError(err))
	})

	t.Run("token expirado", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), domain.Claims{
			UserID: "owner-1",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		})

		_, err := service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("token sem identidade", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), domain.Claims{Role: "admin"})

		_, err := service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrMissingOwner)
	})

	t.Run("lixo não é um JWT", func(t *testing.T) {
		_, err := service.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
