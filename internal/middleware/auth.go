package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Varun5711/authcore/internal/apperror"
	"github.com/Varun5711/authcore/internal/auth"
	"github.com/Varun5711/authcore/internal/logger"
	"github.com/Varun5711/authcore/internal/metrics"
	usermodel "github.com/Varun5711/authcore/internal/models/user"
	"github.com/Varun5711/authcore/internal/presenter"
)

type contextKey string

const identityKey contextKey = "identity"

const (
	bearerPrefix       = "Bearer "
	defaultLookupLimit = 5 * time.Second
)

type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id string) (*usermodel.User, error)
}

// AuthMiddleware gates protected routes. A request moves through
// token extraction, token validation and identity resolution; any failed
// step rejects it with 401 and the reason goes to the log only.
type AuthMiddleware struct {
	tokens        TokenValidator
	users         UserFinder
	log           *logger.Logger
	lookupTimeout time.Duration
}

func NewAuthMiddleware(tokens TokenValidator, users UserFinder, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:        tokens,
		users:         users,
		log:           log,
		lookupTimeout: defaultLookupLimit,
	}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := extractBearerToken(r)
		if !ok {
			m.reject(w, "missing bearer token", "missing or malformed Authorization header")
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			reason := "invalid token"
			if errors.Is(err, apperror.ErrExpiredToken) {
				reason = "expired token"
			}
			m.reject(w, "unauthorized", reason+": "+err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), m.lookupTimeout)
		defer cancel()

		// Always re-read the account: a removed user loses access at once
		// even though the token is still within its lifetime.
		user, err := m.users.FindByID(ctx, claims.UserID())
		if err != nil {
			m.log.Error("Failed to resolve identity for subject %s: %v", claims.UserID(), err)
			metrics.RecordAuthEvent("authenticate", "error")
			presenter.AppError(w, err)
			return
		}
		if user == nil {
			m.reject(w, "unauthorized", "no user for subject "+claims.UserID())
			return
		}

		metrics.RecordAuthEvent("authenticate", "success")
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), user.Identity())))
	})
}

func (m *AuthMiddleware) reject(w http.ResponseWriter, message, reason string) {
	m.log.Warn("Rejected request: %s", reason)
	metrics.RecordAuthEvent("authenticate", "rejected")
	presenter.Error(w, http.StatusUnauthorized, message)
}

// extractBearerToken checks the header is present before touching its value.
func extractBearerToken(r *http.Request) (string, bool) {
	values, present := r.Header["Authorization"]
	if !present || len(values) == 0 {
		return "", false
	}

	header := values[0]
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", false
	}

	return token, true
}

func WithIdentity(ctx context.Context, identity usermodel.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFromContext(ctx context.Context) (usermodel.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(usermodel.Identity)
	return identity, ok
}
