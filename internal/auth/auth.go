package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	// ErrUnauthorized means the request carried no bearer credential
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidToken means the bearer credential failed verification
	ErrInvalidToken = errors.New("invalid token")
)

// Context keys set by Middleware
const (
	ContextUserID     = "user_id"
	ContextCredential = "credential"
)

// Verifier checks HS256 bearer tokens and maps them to a user id
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier for tokens signed with secret
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) (string, error) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", ErrUnauthorized
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", ErrUnauthorized
	}
	return token, nil
}

// Verify validates the token and returns its user_id claim as a string
func (v *Verifier) Verify(token string) (string, error) {
	if len(v.secret) == 0 {
		return "", fmt.Errorf("%w: no signing secret configured", ErrInvalidToken)
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	switch id := claims["user_id"].(type) {
	case string:
		if id != "" {
			return id, nil
		}
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("%w: missing user_id claim", ErrInvalidToken)
}

// Middleware rejects requests without a valid bearer token and stores the
// user id and raw credential on the gin context
func Middleware(v *Verifier, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		token, err := BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		userID, err := v.Verify(token)
		if err != nil {
			logger.Debug("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextCredential, token)
		c.Next()
	}
}
