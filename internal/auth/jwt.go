package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/Varun5711/authcore/internal/apperror"
	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the lifetime of every issued token. Tokens are not renewable.
const TokenTTL = time.Hour

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	return c.Subject
}

type JWTManager struct {
	secretKey     string
	tokenDuration time.Duration
	now           func() time.Time
}

func NewJWTManager(secretKey string, tokenDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     secretKey,
		tokenDuration: tokenDuration,
		now:           time.Now,
	}
}

func (m *JWTManager) GenerateToken(userID, email string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.tokenDuration)

	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// ValidateToken verifies signature and expiry. Expired tokens fail with
// apperror.KindExpiredToken, everything else with apperror.KindInvalidToken.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperror.New(apperror.KindInvalidToken, "empty token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.secretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.Wrap(apperror.KindExpiredToken, "token expired", err)
		}
		return nil, apperror.Wrap(apperror.KindInvalidToken, "invalid token", err)
	}

	if !token.Valid {
		return nil, apperror.New(apperror.KindInvalidToken, "invalid token")
	}

	if claims.Subject == "" {
		return nil, apperror.New(apperror.KindInvalidToken, "token has no subject")
	}

	return claims, nil
}
