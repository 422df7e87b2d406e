package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"planboard/internal/database"
	"planboard/internal/domain/user"
)

type UserRepository struct {
	db database.DB
}

func NewUserRepository(db database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, email, passwordHash, createdDate string) (int64, error) {
	id, err := r.db.Insert(ctx,
		`INSERT INTO users (email, password, created_date) VALUES (?, ?, ?)`,
		email, passwordHash, createdDate,
	)
	if err != nil {
		if r.db.Dialect().IsUniqueViolation(err) {
			return 0, user.ErrDuplicateEmail
		}
		return 0, err
	}
	return id, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password, created_date FROM users WHERE email = ?`,
		email,
	)

	var u user.User
	var created sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &created); err != nil {
		// The two backends report an empty result with different sentinels.
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.CreatedDate = created.String
	return u, nil
}
