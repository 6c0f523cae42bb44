package storage

import (
	"context"
	"sync"
	"time"

	"github.com/Varun5711/authcore/internal/apperror"
	usermodel "github.com/Varun5711/authcore/internal/models/user"
	"github.com/google/uuid"
)

// MemoryUserStorage is an in-process CredentialStore. Records are copied on
// the way in and out so callers never share state with the store.
type MemoryUserStorage struct {
	mu      sync.RWMutex
	byID    map[string]*usermodel.User
	byEmail map[string]string
}

func NewMemoryUserStorage() *MemoryUserStorage {
	return &MemoryUserStorage{
		byID:    make(map[string]*usermodel.User),
		byEmail: make(map[string]string),
	}
}

func (s *MemoryUserStorage) Insert(ctx context.Context, email, passwordHash string) (*usermodel.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.Wrap(apperror.KindStoreUnavailable, "failed to create user", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, apperror.New(apperror.KindDuplicateCredential, "email already registered")
	}

	user := &usermodel.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.byID[user.ID] = user
	s.byEmail[email] = user.ID

	copied := *user
	return &copied, nil
}

func (s *MemoryUserStorage) FindByEmail(ctx context.Context, email string) (*usermodel.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.Wrap(apperror.KindStoreUnavailable, "failed to get user", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.byEmail[email]
	if !exists {
		return nil, nil
	}

	copied := *s.byID[id]
	return &copied, nil
}

func (s *MemoryUserStorage) FindByID(ctx context.Context, id string) (*usermodel.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.Wrap(apperror.KindStoreUnavailable, "failed to get user", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.byID[id]
	if !exists {
		return nil, nil
	}

	copied := *user
	return &copied, nil
}

// Delete removes a user. Only tests and the memory driver use it; the
// service never deletes accounts.
func (s *MemoryUserStorage) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.byID[id]
	if !exists {
		return false
	}

	delete(s.byEmail, user.Email)
	delete(s.byID, id)
	return true
}

func (s *MemoryUserStorage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.byID)
}
