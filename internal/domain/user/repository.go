package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type Repository interface {
	Create(ctx context.Context, email, passwordHash, createdDate string) (int64, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
