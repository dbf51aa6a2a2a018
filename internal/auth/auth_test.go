package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc", "abc", false},
		{"Bearer   abc  ", "abc", false},
		{"", "", true},
		{"Basic abc", "", true},
		{"bearer abc", "", true},
		{"Bearer ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnauthorized)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerifier_Verify(t *testing.T) {
	v := NewVerifier(testSecret)

	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{"string user id", sign(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"user_id": "u-1"}), "u-1", false},
		{"numeric user id", sign(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"user_id": 42}), "42", false},
		{"missing user id", sign(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"sub": "x"}), "", true},
		{"wrong secret", sign(t, jwt.SigningMethodHS256, "other", jwt.MapClaims{"user_id": "u-1"}), "", true},
		{"wrong algorithm", sign(t, jwt.SigningMethodHS512, testSecret, jwt.MapClaims{"user_id": "u-1"}), "", true},
		{"expired", sign(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"user_id": "u-1", "exp": time.Now().Add(-time.Hour).Unix()}), "", true},
		{"garbage", "not.a.token", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Verify(tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerifier_NoSecret(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"user_id": "u-1"})
	_, err := NewVerifier("").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Middleware(NewVerifier(testSecret), nil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":    c.GetString(ContextUserID),
			"credential": c.GetString(ContextCredential),
		})
	})

	valid := sign(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"user_id": "u-1"})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid", "Bearer " + valid, http.StatusOK, `{"user_id":"u-1","credential":"` + valid + `"}`},
		{"missing header", "", http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{"wrong scheme", "Token " + valid, http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, `{"error":"Invalid token"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
