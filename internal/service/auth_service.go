package service

import (
	"context"
	"errors"
	"time"

	"github.com/Varun5711/authcore/internal/apperror"
	"github.com/Varun5711/authcore/internal/auth"
	usermodel "github.com/Varun5711/authcore/internal/models/user"
	"github.com/Varun5711/authcore/internal/storage"
	"github.com/Varun5711/authcore/internal/validation"
)

const invalidCredentialsMessage = "invalid email or password"

// AuthService holds the registration, login and token rules. It has no
// transport concerns and keeps no per-request state.
type AuthService struct {
	store      storage.CredentialStore
	hasher     *auth.PasswordHasher
	jwtManager *auth.JWTManager
}

type LoginResult struct {
	User      *usermodel.User
	Token     string
	ExpiresAt time.Time
}

func NewAuthService(store storage.CredentialStore, hasher *auth.PasswordHasher, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		store:      store,
		hasher:     hasher,
		jwtManager: jwtManager,
	}
}

func (s *AuthService) RegisterUser(ctx context.Context, email, password string) (*usermodel.User, error) {
	email = validation.NormalizeEmail(email)

	if err := validation.ValidateEmail(email); err != nil {
		return nil, apperror.Wrap(apperror.KindInvalidInput, err.Error(), err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, apperror.Wrap(apperror.KindInvalidInput, err.Error(), err)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "failed to hash password", err)
	}

	user, err := s.store.Insert(ctx, email, passwordHash)
	if err != nil {
		return nil, storeError(err, "failed to create user")
	}

	return user, nil
}

// VerifyCredentials never reveals whether the email exists: an unknown email
// and a wrong password fail with the same error after the same amount of work.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) (*usermodel.User, error) {
	email = validation.NormalizeEmail(email)

	if email == "" || password == "" {
		return nil, apperror.New(apperror.KindInvalidInput, "email and password are required")
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, storeError(err, "failed to get user")
	}

	if user == nil {
		_ = s.hasher.CompareDummy(password)
		return nil, apperror.New(apperror.KindInvalidCredentials, invalidCredentialsMessage)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperror.New(apperror.KindInvalidCredentials, invalidCredentialsMessage)
	}

	return user, nil
}

func (s *AuthService) IssueToken(user *usermodel.User) (string, time.Time, error) {
	token, expiresAt, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", time.Time{}, apperror.Wrap(apperror.KindInternal, "failed to generate token", err)
	}
	return token, expiresAt, nil
}

func (s *AuthService) ValidateToken(token string) (*auth.Claims, error) {
	return s.jwtManager.ValidateToken(token)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// storeError keeps typed store errors and classifies anything else as a store
// failure.
func storeError(err error, message string) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Wrap(apperror.KindStoreUnavailable, message, err)
}
