package storage

import (
	"context"

	usermodel "github.com/Varun5711/authcore/internal/models/user"
)

// CredentialStore persists user records. Lookups return (nil, nil) when no
// user matches. Insert fails with apperror.KindDuplicateCredential when the
// email is taken and never overwrites an existing record.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*usermodel.User, error)
	FindByID(ctx context.Context, id string) (*usermodel.User, error)
	Insert(ctx context.Context, email, passwordHash string) (*usermodel.User, error)
}
