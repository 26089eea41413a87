package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const usersTable = "users"

var userColumns = []string{"uid", "email", "display_name", "password_hash", "provider", "created_at"}

type userRepo struct {
	db *sql.DB
}

func (r *userRepo) Create(ctx context.Context, u User) error {
	query, args := builder().Insert(usersTable).
		Columns(userColumns...).
		Values(u.UID, u.Email, u.DisplayName, u.PasswordHash, u.Provider, formatTime(u.CreatedAt)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user %s: %w", u.Email, ErrDuplicate)
		}
		return fmt.Errorf("create user %s: %w", u.Email, err)
	}
	return nil
}

func (r *userRepo) ByEmail(ctx context.Context, email string) (*User, error) {
	return r.one(ctx, entsql.EQ("email", email))
}

func (r *userRepo) ByUID(ctx context.Context, uid string) (*User, error) {
	return r.one(ctx, entsql.EQ("uid", uid))
}

func (r *userRepo) one(ctx context.Context, where *entsql.Predicate) (*User, error) {
	b := builder()
	query, args := b.Select(userColumns...).
		From(b.Table(usersTable)).
		Where(where).
		Limit(1).
		Query()

	var (
		u       User
		created string
	)
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&u.UID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.Provider, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	if u.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &u, nil
}
