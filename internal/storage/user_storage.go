package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Varun5711/authcore/internal/apperror"
	"github.com/Varun5711/authcore/internal/database"
	usermodel "github.com/Varun5711/authcore/internal/models/user"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		email         VARCHAR(254) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

type UserStorage struct {
	db *database.DBManager
}

func NewUserStorage(db *database.DBManager) *UserStorage {
	return &UserStorage{db: db}
}

// EnsureSchema creates the users table when it does not exist yet.
func (s *UserStorage) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Pool().Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

func (s *UserStorage) Insert(ctx context.Context, email, passwordHash string) (*usermodel.User, error) {
	query := `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password_hash, created_at
	`

	var user usermodel.User
	err := s.db.Pool().QueryRow(ctx, query,
		uuid.New().String(),
		email,
		passwordHash,
		time.Now().UTC(),
	).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperror.Wrap(apperror.KindDuplicateCredential, "email already registered", err)
		}
		return nil, apperror.Wrap(apperror.KindStoreUnavailable, "failed to create user", err)
	}

	return &user, nil
}

func (s *UserStorage) FindByEmail(ctx context.Context, email string) (*usermodel.User, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	return s.findOne(ctx, query, email)
}

func (s *UserStorage) FindByID(ctx context.Context, id string) (*usermodel.User, error) {
	if uuid.Validate(id) != nil {
		return nil, nil
	}

	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`

	return s.findOne(ctx, query, id)
}

func (s *UserStorage) findOne(ctx context.Context, query string, arg string) (*usermodel.User, error) {
	var user usermodel.User
	err := s.db.Pool().QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, apperror.Wrap(apperror.KindStoreUnavailable, "failed to get user", err)
	}

	return &user, nil
}
