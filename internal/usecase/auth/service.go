package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"planboard/internal/domain/user"
	"planboard/internal/pkg/password"
	"planboard/internal/pkg/token"
)

var (
	ErrMissingFields      = errors.New("email and password are required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const minPasswordLength = 6

type SignupResult struct {
	ID    int64
	Email string
}

type LoginResult struct {
	Email string
	Token string
}

type Service struct {
	users     user.Repository
	passwords *password.Service
	tokens    *token.Service

	now func() time.Time
}

func NewService(users user.Repository, passwords *password.Service, tokens *token.Service) *Service {
	return &Service{users: users, passwords: passwords, tokens: tokens, now: time.Now}
}

func (s *Service) Signup(ctx context.Context, email, plain string) (SignupResult, error) {
	email = normalizeEmail(email)
	if email == "" || plain == "" {
		return SignupResult{}, ErrMissingFields
	}
	if len(plain) < minPasswordLength {
		return SignupResult{}, ErrPasswordTooShort
	}

	hash, err := s.passwords.Hash(plain)
	if err != nil {
		return SignupResult{}, err
	}

	created := s.now().UTC().Format(time.RFC3339)
	id, err := s.users.Create(ctx, email, hash, created)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return SignupResult{}, ErrEmailTaken
		}
		return SignupResult{}, err
	}

	return SignupResult{ID: id, Email: email}, nil
}

// Login deliberately reports the same error for an unknown email and a wrong
// password so account existence never leaks.
func (s *Service) Login(ctx context.Context, email, plain string) (LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || plain == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if !s.passwords.Verify(plain, u.PasswordHash) {
		return LoginResult{}, ErrInvalidCredentials
	}

	tok, err := s.tokens.Generate(u.Email)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Email: u.Email, Token: tok}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
