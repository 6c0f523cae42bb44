package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/Varun5711/authcore/internal/apperror"
	"github.com/golang-jwt/jwt/v5"
)

func TestNewJWTManager(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	if manager == nil {
		t.Fatal("expected JWTManager to be created")
	}
	if manager.secretKey != "test-secret" {
		t.Errorf("expected secretKey 'test-secret', got '%s'", manager.secretKey)
	}
	if manager.tokenDuration != time.Hour {
		t.Errorf("expected tokenDuration 1h, got %v", manager.tokenDuration)
	}
}

func TestGenerateToken(t *testing.T) {
	manager := NewJWTManager("test-secret-key", TokenTTL)

	token, expiresAt, err := manager.GenerateToken("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if token == "" {
		t.Error("expected non-empty token")
	}

	expectedExpiry := time.Now().Add(time.Hour)
	if expiresAt.Before(expectedExpiry.Add(-time.Minute)) || expiresAt.After(expectedExpiry.Add(time.Minute)) {
		t.Errorf("expiry time not within expected range")
	}
}

func TestValidateToken_Valid(t *testing.T) {
	manager := NewJWTManager("test-secret-key", time.Hour)

	token, _, err := manager.GenerateToken("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("unexpected error validating token: %v", err)
	}

	if claims.UserID() != "user-123" {
		t.Errorf("expected UserID 'user-123', got '%s'", claims.UserID())
	}
	if claims.Email != "test@example.com" {
		t.Errorf("expected Email 'test@example.com', got '%s'", claims.Email)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatal("expected iat and exp claims")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("expected exp - iat == 1h, got %v", got)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	manager := NewJWTManager("test-secret-key", -time.Hour)

	token, _, err := manager.GenerateToken("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	_, err = manager.ValidateToken(token)
	if !errors.Is(err, apperror.ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateToken_ExpiresAfterTTLElapses(t *testing.T) {
	manager := NewJWTManager("test-secret-key", TokenTTL)
	issued := time.Now()
	manager.now = func() time.Time { return issued }

	token, _, err := manager.GenerateToken("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := manager.ValidateToken(token); err != nil {
		t.Fatalf("expected token to be valid right after issuance, got %v", err)
	}

	manager.now = func() time.Time { return issued.Add(TokenTTL + time.Second) }
	_, err = manager.ValidateToken(token)
	if !errors.Is(err, apperror.ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken after TTL, got %v", err)
	}
}

func TestValidateToken_InvalidSignature(t *testing.T) {
	manager1 := NewJWTManager("secret-key-1", time.Hour)
	manager2 := NewJWTManager("secret-key-2", time.Hour)

	token, _, err := manager1.GenerateToken("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	_, err = manager2.ValidateToken(token)
	if !errors.Is(err, apperror.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong signature, got %v", err)
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	manager := NewJWTManager("test-secret-key", time.Hour)

	_, err := manager.ValidateToken("not-a-valid-token")
	if !errors.Is(err, apperror.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestValidateToken_EmptyToken(t *testing.T) {
	manager := NewJWTManager("test-secret-key", time.Hour)

	_, err := manager.ValidateToken("")
	if !errors.Is(err, apperror.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for empty token, got %v", err)
	}
}

func TestValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	manager := NewJWTManager("test-secret-key", time.Hour)

	claims := Claims{
		Email: "test@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	_, err = manager.ValidateToken(token)
	if !errors.Is(err, apperror.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestValidateToken_MissingSubject(t *testing.T) {
	manager := NewJWTManager("test-secret-key", time.Hour)

	token, _, err := manager.GenerateToken("", "test@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	_, err = manager.ValidateToken(token)
	if !errors.Is(err, apperror.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for token without subject, got %v", err)
	}
}
