package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"issueflow/internal/shared/biztime"
)

const defaultAccessExpMinutes = 7 * 24 * 60

type TokenType string

const TokenTypeAccess TokenType = "access"

// Claims ties an access token to the session row that backs it.
type Claims struct {
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	Email     string    `json:"email"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret           []byte
	accessExpMinutes int
}

func NewJWTService(secret string, accessExpMinutes int) *JWTService {
	if accessExpMinutes <= 0 {
		accessExpMinutes = defaultAccessExpMinutes
	}
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
	}
}

// AccessTTL is how long issued tokens (and their sessions) live.
func (s *JWTService) AccessTTL() time.Duration {
	return time.Duration(s.accessExpMinutes) * time.Minute
}

// Generate signs an access token that expires together with its session.
func (s *JWTService) Generate(userID, sessionID, email string, expiresAt time.Time) (string, error) {
	now := biztime.NowUTC()
	claims := &Claims{
		UserID:    userID,
		SessionID: sessionID,
		Email:     email,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.TokenType != TokenTypeAccess || claims.UserID == "" || claims.SessionID == "" {
		return nil, fmt.Errorf("token is not an access token")
	}
	return claims, nil
}

// IsExpired reports whether err from Verify was caused by token expiry.
func IsExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}
