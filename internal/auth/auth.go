// Package auth implements the community login: any email on the allowed
// domain gets a short-lived session token, checked as a Bearer header on
// mutating routes.
package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/SBleeyouk/deepfake-daily/pkg/errors"
)

// ContextEmailKey is where the middleware stashes the authenticated email.
const ContextEmailKey = "userEmail"

const tokenLifetime = 24 * time.Hour

// Claims is the JWT payload for a session token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service issues and verifies session tokens.
type Service struct {
	secret        []byte
	allowedDomain string
}

// NewService creates an auth service for the given signing secret and
// allowed email domain.
func NewService(secret, allowedDomain string) *Service {
	return &Service{
		secret:        []byte(secret),
		allowedDomain: strings.ToLower(allowedDomain),
	}
}

// AllowedDomain returns the community email domain.
func (s *Service) AllowedDomain() string {
	return s.allowedDomain
}

// Login validates the email's domain and issues a signed token.
func (s *Service) Login(email string) (string, error) {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" {
		return "", errors.NewDomainNotAllowed("")
	}
	domain := strings.ToLower(parts[1])
	if domain != s.allowedDomain {
		return "", errors.NewDomainNotAllowed(domain)
	}

	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks a token and returns the email it was issued for.
func (s *Service) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", errors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Email == "" {
		return "", errors.ErrInvalidToken
	}
	return claims.Email, nil
}

// Middleware guards a route group, rejecting requests without a valid
// Bearer token and exposing the email via the gin context.
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		email, err := s.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ContextEmailKey, email)
		c.Next()
	}
}
